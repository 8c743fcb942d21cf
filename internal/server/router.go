package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the handler routes behind the common middleware.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	setupCommonMiddleware(r)
	setupRoutes(r, h)

	return r
}

func setupCommonMiddleware(r *chi.Mux) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
}

func setupRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Index)
	r.Get("/healthz", h.Healthz)

	r.Post("/credential", h.SaveCredential)
	r.Post("/credential/clear", h.ClearCredential)

	r.Post("/generate", h.Generate)
}
