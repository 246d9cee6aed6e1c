package httpx

import (
	"net/http"
	"time"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/ariefcatur/heritage-market/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Deps struct {
	Market  Market
	Tokens  TokenParser
	Metrics *metrics.Metrics
	Log     zerolog.Logger
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(accessLog(d.Log), d.Metrics.Middleware, middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", d.Metrics.Handler())

	h := &Handler{Market: d.Market, Log: d.Log}
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authenticate(d.Tokens))
		h.Register(r)
	})
	return r
}

// Register mounts every API route on r. Authentication has already run;
// handlers below only check roles.
func (h *Handler) Register(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/products/{id}/reviews", h.productReviews)

	r.Group(func(r chi.Router) {
		r.Use(requireRole(auth.RoleBuyer))
		r.Get("/cart", h.getCart)
		r.Post("/cart/items", h.addCartItem)
		r.Put("/cart/items/{productID}", h.updateCartItem)
		r.Delete("/cart/items/{productID}", h.removeCartItem)
		r.Post("/checkout", h.checkout)
		r.Post("/orders/{id}/cancel", h.cancelOrder)
		r.Post("/reviews", h.submitReview)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireRole(auth.RoleBuyer, auth.RoleSeller, auth.RoleAdmin))
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id}", h.getOrder)
		r.Get("/orders/{id}/status", h.orderStatus)
		r.Get("/orders/{id}/history", h.orderHistory)
	})

	r.Route("/seller", func(r chi.Router) {
		r.Use(requireRole(auth.RoleSeller))
		r.Post("/products", h.createProduct)
		r.Get("/orders", h.listOrders)
		r.Post("/orders/{id}/status", h.advanceOrder)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireRole(auth.RoleAdmin))
		r.Get("/orders", h.listOrders)
		r.Post("/orders/{id}/cancel", h.cancelOrder)
		r.Post("/products/{id}/moderation", h.moderateProduct)
		r.Post("/sellers/{id}/moderation", h.moderateSeller)
		r.Post("/reviews/{id}/moderation", h.moderateReview)
	})
}
