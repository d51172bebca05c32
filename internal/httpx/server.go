package httpx

import (
	"net/http"
	"time"

	"mandimart-be/internal/analytics"
	"mandimart-be/internal/cart"
	"mandimart-be/internal/delivery"
	"mandimart-be/internal/logger"
	"mandimart-be/internal/metrics"
	"mandimart-be/internal/middleware"
	"mandimart-be/internal/notification"
	"mandimart-be/internal/order"
	"mandimart-be/internal/product"
	"mandimart-be/internal/user"
	"mandimart-be/internal/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	UserSvc         user.Service
	ProductSvc      product.Service
	CartSvc         cart.Service
	OrderSvc        order.Service
	DeliverySvc     delivery.Service
	NotificationSvc notification.Service
	AnalyticsSvc    analytics.Service
	Metrics         *metrics.Registry
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)
	r.Use(s.countRequests)
	r.Use(chimw.Timeout(15 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/metrics", s.handleMetrics)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Get("/products", s.handleListProducts)
	r.Get("/products/{id}", s.handleGetProduct)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(utils.RoleSeller))
		r.Get("/seller/products", s.handleSellerProducts)
		r.Post("/seller/products", s.handleCreateProduct)
		r.Patch("/seller/products/{id}", s.handleUpdateProduct)
		r.Delete("/seller/products/{id}", s.handleDeleteProduct)
		r.Get("/seller/analytics", s.handleSellerAnalytics)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(utils.RoleBuyer))
		r.Get("/cart", s.handleGetCart)
		r.Post("/cart", s.handleAddToCart)
		r.Delete("/cart/{productID}", s.handleRemoveFromCart)
		r.Post("/orders", s.handleCheckout)
		r.Get("/orders/{id}/track", s.handleTrackOrder)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(utils.RoleBuyer, utils.RoleSeller, utils.RoleAgent))
		r.Get("/orders", s.handleListOrders)
		r.Get("/orders/{id}", s.handleGetOrder)
		r.Get("/orders/{id}/status", s.handleOrderStatus)
		r.Patch("/orders/{id}/status", s.handleTransition)
		r.Get("/notifications", s.handleListNotifications)
		r.Get("/notifications/unread-count", s.handleUnreadCount)
		r.Post("/notifications/read", s.handleMarkRead)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(utils.RoleAgent))
		r.Get("/delivery/orders", s.handleAvailableOrders)
		r.Get("/delivery/orders/assigned", s.handleAssignedOrders)
		r.Post("/delivery/orders/{id}/claim", s.handleClaim)
		r.Post("/delivery/availability", s.handleToggleAvailability)
	})

	return r
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.Requests.Inc()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]uint64{
		"requests":    s.Metrics.Requests.Load(),
		"checkouts":   s.Metrics.Checkouts.Load(),
		"transitions": s.Metrics.Transitions.Load(),
		"claims":      s.Metrics.Claims.Load(),
	})
}
