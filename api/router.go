package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/subtrack/subscription"
)

// Router builds the HTTP handler for the subscription API.
func Router(svc *subscription.Service, log *slog.Logger) http.Handler {
	if svc == nil {
		panic("api: subscription.Service is required")
	}
	if log == nil {
		log = slog.Default()
	}

	h := &handlers{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/is_api_online", h.isOnline)

	r.Post("/add_subscription", h.addSubscription)
	r.Get("/view_subscriptions", h.viewSubscriptions)
	r.Post("/delete_subscription", h.deleteSubscription)
	r.Delete("/delete_subscription", h.deleteSubscription)
	r.Post("/renew_subscription", h.renewSubscription)
	r.Put("/renew_subscription", h.renewSubscription)
	r.Get("/get_next_index", h.nextIndex)

	r.Get("/get_products", h.getProducts)
	r.Post("/add_product", h.addProduct)
	r.Post("/delete_product", h.deleteProduct)
	r.Delete("/delete_product", h.deleteProduct)

	return r
}
