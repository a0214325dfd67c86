package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogmarket/internal/core/domain"
	"blogmarket/internal/core/port"
)

type createOrderRequest struct {
	CampaignID   uuid.UUID `json:"campaignId"`
	BloggerID    uuid.UUID `json:"bloggerId"`
	ContentType  string    `json:"contentType"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Price        int64     `json:"price"`
	Deadline     time.Time `json:"deadline"`
}

type rejectOrderRequest struct {
	Reason string `json:"reason"`
}

type submitOrderRequest struct {
	ContentURLs  []string `json:"contentUrls"`
	PlatformURLs []string `json:"platformUrls"`
}

type orderResponse struct {
	ID           uuid.UUID  `json:"id"`
	CampaignID   uuid.UUID  `json:"campaignId"`
	BloggerID    uuid.UUID  `json:"bloggerId"`
	AdvertiserID uuid.UUID  `json:"advertiserId"`
	ContentType  string     `json:"contentType"`
	Description  string     `json:"description,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
	Price        int64      `json:"price"`
	Status       string     `json:"status"`
	Deadline     time.Time  `json:"deadline"`
	ContentURLs  []string   `json:"contentUrls,omitempty"`
	PlatformURLs []string   `json:"platformUrls,omitempty"`
	RejectReason string     `json:"rejectReason,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type orderPageResponse struct {
	Orders     []orderResponse `json:"orders"`
	Pagination pagination      `json:"pagination"`
}

type pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		CampaignID:   o.CampaignID,
		BloggerID:    o.BloggerID,
		AdvertiserID: o.AdvertiserID,
		ContentType:  o.ContentType,
		Description:  o.Description,
		Requirements: o.Requirements,
		Price:        o.Price,
		Status:       string(o.Status),
		Deadline:     o.Deadline,
		ContentURLs:  o.ContentURLs,
		PlatformURLs: o.PlatformURLs,
		RejectReason: o.RejectReason,
		CompletedAt:  o.CompletedAt,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func toOrderPageResponse(p *port.OrderPage) orderPageResponse {
	orders := make([]orderResponse, 0, len(p.Orders))
	for i := range p.Orders {
		orders = append(orders, toOrderResponse(&p.Orders[i]))
	}
	totalPages := (p.Total + int64(p.Limit) - 1) / int64(p.Limit)
	return orderPageResponse{
		Orders: orders,
		Pagination: pagination{
			CurrentPage:  p.Page,
			TotalPages:   totalPages,
			TotalItems:   p.Total,
			ItemsPerPage: p.Limit,
		},
	}
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}
	order, err := h.orders.CreateOrder(r.Context(), port.CreateOrderInput{
		CampaignID:   req.CampaignID,
		BloggerID:    req.BloggerID,
		AdvertiserID: user.ID,
		ContentType:  req.ContentType,
		Description:  req.Description,
		Requirements: req.Requirements,
		Price:        req.Price,
		Deadline:     req.Deadline,
	})
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}
	h.writeData(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}
	order, err := h.orders.GetOrder(r.Context(), orderID, user)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) handleAcceptOrder(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, func(orderID uuid.UUID, user domain.UserContext) (*domain.Order, error) {
		return h.orders.AcceptOrder(r.Context(), orderID, user.ID)
	})
}

func (h *Handler) handleRejectOrder(w http.ResponseWriter, r *http.Request) {
	var req rejectOrderRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
			return
		}
	}
	h.handleTransition(w, r, func(orderID uuid.UUID, user domain.UserContext) (*domain.Order, error) {
		return h.orders.RejectOrder(r.Context(), orderID, user.ID, req.Reason)
	})
}

func (h *Handler) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}
	h.handleTransition(w, r, func(orderID uuid.UUID, user domain.UserContext) (*domain.Order, error) {
		return h.orders.SubmitOrder(r.Context(), port.SubmitOrderInput{
			OrderID:      orderID,
			BloggerID:    user.ID,
			ContentURLs:  req.ContentURLs,
			PlatformURLs: req.PlatformURLs,
		})
	})
}

func (h *Handler) handleApproveOrder(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, func(orderID uuid.UUID, user domain.UserContext) (*domain.Order, error) {
		return h.orders.ApproveOrder(r.Context(), orderID, user.ID)
	})
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, op func(uuid.UUID, domain.UserContext) (*domain.Order, error)) {
	user, _ := userFrom(r.Context())
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}
	order, err := op(orderID, user)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) handleListBloggerOrders(w http.ResponseWriter, r *http.Request) {
	h.handleListOrders(w, r, h.orders.ListBloggerOrders)
}

func (h *Handler) handleListAdvertiserOrders(w http.ResponseWriter, r *http.Request) {
	h.handleListOrders(w, r, h.orders.ListAdvertiserOrders)
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, in port.ListOrdersInput) (*port.OrderPage, error)) {
	user, _ := userFrom(r.Context())
	in, err := parseListInput(r, user.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	res, err := list(r.Context(), in)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, toOrderPageResponse(res))
}
