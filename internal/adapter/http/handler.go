package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogmarket/internal/core/domain"
	"blogmarket/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter
// for HTTP. Identity is established by the authentication layer in
// front of this service and arrives as request headers; see identity.go.
type Handler struct {
	orders    port.OrderUseCase
	campaigns port.CampaignUseCase
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(orders port.OrderUseCase, campaigns port.CampaignUseCase, logger *slog.Logger) *Handler {
	h := &Handler{orders: orders, campaigns: campaigns, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(identity)

			r.Route("/orders", func(r chi.Router) {
				r.With(requireRole(domain.RoleAdvertiser)).Post("/", h.handleCreateOrder)
				r.With(requireRole(domain.RoleBlogger)).Get("/blogger", h.handleListBloggerOrders)
				r.With(requireRole(domain.RoleAdvertiser)).Get("/advertiser", h.handleListAdvertiserOrders)
				r.Get("/{orderID}", h.handleGetOrder)
				r.With(requireRole(domain.RoleBlogger)).Post("/{orderID}/accept", h.handleAcceptOrder)
				r.With(requireRole(domain.RoleBlogger)).Post("/{orderID}/reject", h.handleRejectOrder)
				r.With(requireRole(domain.RoleBlogger)).Post("/{orderID}/submit", h.handleSubmitOrder)
				r.With(requireRole(domain.RoleAdvertiser)).Post("/{orderID}/approve", h.handleApproveOrder)
			})

			r.Route("/campaigns", func(r chi.Router) {
				r.Use(requireRole(domain.RoleAdvertiser))
				r.Post("/", h.handleCreateCampaign)
				r.Get("/", h.handleListCampaigns)
				r.Get("/{campaignID}", h.handleGetCampaign)
				r.Patch("/{campaignID}/status", h.handleUpdateCampaignStatus)
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
