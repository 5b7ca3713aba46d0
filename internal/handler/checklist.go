package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/household-api/internal/auth"
	"github.com/BuzzLyutic/household-api/internal/model"
	"github.com/BuzzLyutic/household-api/internal/repo"
	"github.com/BuzzLyutic/household-api/internal/service"
	"github.com/BuzzLyutic/household-api/pkg/respond"
)

type ChecklistHandler struct {
	service *service.ChecklistService
	logger  *zap.Logger
}

func NewChecklistHandler(srv *service.ChecklistService, logger *zap.Logger) *ChecklistHandler {
	return &ChecklistHandler{
		service: srv,
		logger:  logger,
	}
}

// List отдаёт список задач дома, по дороге лениво применяя сбросы
func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "no session")
		return
	}

	tasks, err := h.service.Sync(r.Context(), sess, time.Now())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

type createTaskRequest struct {
	Name      string          `json:"name"`
	Frequency model.Frequency `json:"frequency"`
}

func (h *ChecklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "no session")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := h.service.Create(r.Context(), sess, req.Name, req.Frequency, time.Now())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/tasks/"+task.ID.String())
	respond.JSON(w, r, http.StatusCreated, task)
}

type toggleRequest struct {
	IsCompleted *bool `json:"is_completed"`
}

func (h *ChecklistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "no session")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsCompleted == nil {
		respond.Error(w, r, http.StatusBadRequest, "is_completed is required")
		return
	}

	task, err := h.service.Toggle(r.Context(), sess, id, *req.IsCompleted, time.Now())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *ChecklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "no session")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}

	if err := h.service.Delete(r.Context(), sess, id); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChecklistHandler) Audit(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "no session")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.service.Recent(r.Context(), sess, limit)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, entries)
}

func (h *ChecklistHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "validation error")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict")
	case errors.Is(err, repo.ErrorTransient):
		// сюда попадаем уже после одного повтора в сервисе
		respond.Error(w, r, http.StatusServiceUnavailable, "temporarily unavailable")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
