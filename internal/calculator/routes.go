package calculator

import (
	"github.com/go-chi/chi/v5"

	"github.com/Areg888/toolbox-app/internal/calculator/engine"
)

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		for _, op := range engine.Operators() {
			r.Post("/"+op.String(), h.Binary(op))
		}
		r.Post("/chain", h.Chain)
		r.Post("/function/{name}", h.Function)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Delete("/", h.DeleteSession)
				r.Post("/input", h.Input)
				r.Get("/ws", h.Stream)
			})
		})
	})
}
