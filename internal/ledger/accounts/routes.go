package accounts

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/seed", h.Seed)
}

func pathParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
