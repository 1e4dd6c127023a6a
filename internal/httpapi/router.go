package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"clob/internal/engine"
)

// NewRouter wires every route in spec.md §6 plus the ambient /healthz.
func NewRouter(e *engine.Engine) chi.Router {
	h := NewHandler(e)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Healthz)

	r.Post("/accounts", h.CreateAccount)
	r.Get("/accounts/{addr}", h.GetAccount)
	r.Delete("/accounts/{addr}", h.DeleteAccount)

	r.Post("/orders", h.PlaceOrder)
	r.Get("/orders/{hash}", h.GetOrder)
	r.Delete("/orders/{hash}", h.CancelOrder)

	r.Get("/book", h.GetBook)

	return r
}
