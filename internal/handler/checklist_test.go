package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/household-api/internal/auth"
	"github.com/BuzzLyutic/household-api/internal/model"
	"github.com/BuzzLyutic/household-api/internal/repo"
	"github.com/BuzzLyutic/household-api/internal/service"
	"github.com/BuzzLyutic/household-api/tests"
)

func setupRouter(t *testing.T) (*chi.Mux, *auth.Tokens, func()) {
	pool, cleanup := tests.SetupTestDB(t)

	logger := zap.NewNop()
	taskRepo := repo.NewTaskRepo(pool)
	auditRepo := repo.NewAuditRepo(pool)
	userRepo := repo.NewUserRepo(pool)

	identity := auth.NewIdentity(userRepo)
	tokens := auth.NewTokens("test-secret", time.Hour)
	checklist := service.NewChecklistService(taskRepo, auditRepo, logger)

	router := NewRouter(
		NewAuthHandler(identity, tokens, logger),
		NewChecklistHandler(checklist, logger),
		tokens,
	)
	return router, tokens, cleanup
}

func doJSON(t *testing.T, router *chi.Mux, method, path, token, houseKey string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if houseKey != "" {
		req.Header.Set(HouseKeyHeader, houseKey)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChecklistHandler_TaskLifecycle(t *testing.T) {
	router, tokens, cleanup := setupRouter(t)
	defer cleanup()

	token, err := tokens.Issue("user@example.com")
	require.NoError(t, err)

	// Create
	w := doJSON(t, router, http.MethodPost, "/api/tasks", token, "house-1", createTaskRequest{
		Name:      "Vacuum living room",
		Frequency: model.FrequencyDaily,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "Vacuum living room", created.Name)
	assert.False(t, created.IsCompleted)
	assert.Contains(t, w.Header().Get("Location"), created.ID.String())

	// List
	w = doJSON(t, router, http.MethodGet, "/api/tasks", token, "house-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []model.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Toggle on
	completed := true
	w = doJSON(t, router, http.MethodPatch, "/api/tasks/"+created.ID.String(), token, "house-1", toggleRequest{IsCompleted: &completed})
	require.Equal(t, http.StatusOK, w.Code)

	var toggled model.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&toggled))
	assert.True(t, toggled.IsCompleted)

	// Audit entry written
	w = doJSON(t, router, http.MethodGet, "/api/audit", token, "house-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []model.AuditEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionCompleted, entries[0].Action)
	assert.Equal(t, "user@example.com", entries[0].UserEmail)

	// Same value again is a no-op: no second audit entry
	w = doJSON(t, router, http.MethodPatch, "/api/tasks/"+created.ID.String(), token, "house-1", toggleRequest{IsCompleted: &completed})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/audit", token, "house-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries = nil
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
	assert.Len(t, entries, 1)

	// Delete
	w = doJSON(t, router, http.MethodDelete, "/api/tasks/"+created.ID.String(), token, "house-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/tasks", token, "house-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed = nil
	require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
	assert.Empty(t, listed)
}

func TestChecklistHandler_TenantIsolation(t *testing.T) {
	router, tokens, cleanup := setupRouter(t)
	defer cleanup()

	token, err := tokens.Issue("user@example.com")
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/tasks", token, "house-a", createTaskRequest{
		Name:      "Secret chore",
		Frequency: model.FrequencyWeekly,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	// угадали чужой id - всё равно 404
	completed := true
	w = doJSON(t, router, http.MethodPatch, "/api/tasks/"+created.ID.String(), token, "house-b", toggleRequest{IsCompleted: &completed})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/tasks/"+created.ID.String(), token, "house-b", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/tasks", token, "house-b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []model.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
	assert.Empty(t, listed)

	// и журнал чужого дома пуст
	w = doJSON(t, router, http.MethodGet, "/api/audit", token, "house-b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []model.AuditEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
	assert.Empty(t, entries)
}

func TestChecklistHandler_Validation(t *testing.T) {
	router, tokens, cleanup := setupRouter(t)
	defer cleanup()

	token, err := tokens.Issue("user@example.com")
	require.NoError(t, err)

	tests := []struct {
		name     string
		body     interface{}
		wantCode int
	}{
		{
			name:     "empty name",
			body:     createTaskRequest{Name: "", Frequency: model.FrequencyDaily},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown frequency",
			body:     createTaskRequest{Name: "Vacuum", Frequency: "yearly"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "valid",
			body:     createTaskRequest{Name: "Vacuum", Frequency: model.FrequencyMonthly},
			wantCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/tasks", token, "house-1", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}

	t.Run("toggle without is_completed", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/tasks/%s", "00000000-0000-0000-0000-000000000001"), token, "house-1", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("toggle with malformed id", func(t *testing.T) {
		completed := true
		w := doJSON(t, router, http.MethodPatch, "/api/tasks/not-a-uuid", token, "house-1", toggleRequest{IsCompleted: &completed})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthHandler_RegisterLogin(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	// Register
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", "", credentialsRequest{
		Email:    "new@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user model.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
	assert.NotZero(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email)

	// повторная регистрация того же email
	w = doJSON(t, router, http.MethodPost, "/api/auth/register", "", "", credentialsRequest{
		Email:    "new@example.com",
		Password: "hunter22",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Login
	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", "", credentialsRequest{
		Email:    "new@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp["token"])

	// неверный пароль и неизвестный email дают один и тот же ответ
	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", "", credentialsRequest{
		Email:    "new@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var bad1 map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&bad1))

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", "", credentialsRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var bad2 map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&bad2))

	assert.Equal(t, bad1["error"], bad2["error"])
}
