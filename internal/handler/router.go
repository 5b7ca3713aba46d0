package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BuzzLyutic/household-api/internal/auth"
)

// NewRouter собирает все маршруты, один и тот же для main и для тестов
func NewRouter(authHandler *AuthHandler, checklist *ChecklistHandler, tokens *auth.Tokens) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireSession(tokens))

		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", checklist.List)
			r.Post("/", checklist.Create)
			r.Patch("/{id}", checklist.Toggle)
			r.Delete("/{id}", checklist.Delete)
		})

		r.Get("/api/audit", checklist.Audit)
	})

	return r
}
