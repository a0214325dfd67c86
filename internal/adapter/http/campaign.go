package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogmarket/internal/core/domain"
	"blogmarket/internal/core/port"
)

type createCampaignRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	CampaignType string     `json:"campaignType"`
	Budget       budgetBody `json:"budget"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}

type budgetBody struct {
	Total      int64 `json:"total"`
	Allocated  int64 `json:"allocated"`
	Spent      int64 `json:"spent"`
	PerBlogger int64 `json:"perBlogger,omitempty"`
}

type updateCampaignStatusRequest struct {
	Status string `json:"status"`
}

type campaignResponse struct {
	ID           uuid.UUID  `json:"id"`
	AdvertiserID uuid.UUID  `json:"advertiserId"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	CampaignType string     `json:"campaignType"`
	Budget       budgetBody `json:"budget"`
	Status       string     `json:"status"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type campaignPageResponse struct {
	Campaigns  []campaignResponse `json:"campaigns"`
	Pagination pagination         `json:"pagination"`
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:           c.ID,
		AdvertiserID: c.AdvertiserID,
		Title:        c.Title,
		Description:  c.Description,
		CampaignType: c.CampaignType,
		Budget: budgetBody{
			Total:      c.Budget.Total,
			Allocated:  c.Budget.Allocated,
			Spent:      c.Budget.Spent,
			PerBlogger: c.Budget.PerBlogger,
		},
		Status:    c.Status,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}
	c, err := h.campaigns.CreateCampaign(r.Context(), port.CreateCampaignInput{
		AdvertiserID: user.ID,
		Title:        req.Title,
		Description:  req.Description,
		CampaignType: req.CampaignType,
		BudgetTotal:  req.Budget.Total,
		PerBlogger:   req.Budget.PerBlogger,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}
	h.writeData(w, http.StatusCreated, toCampaignResponse(c))
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	campaignID, err := uuid.Parse(chi.URLParam(r, "campaignID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "invalid campaign ID")
		return
	}
	c, err := h.campaigns.GetCampaign(r.Context(), campaignID, user.ID)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, toCampaignResponse(c))
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	listIn, err := parseListInput(r, user.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	res, err := h.campaigns.ListCampaigns(r.Context(), port.ListCampaignsInput{
		AdvertiserID: user.ID,
		Status:       listIn.Status,
		Page:         listIn.Page,
		Limit:        listIn.Limit,
	})
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}
	campaigns := make([]campaignResponse, 0, len(res.Campaigns))
	for i := range res.Campaigns {
		campaigns = append(campaigns, toCampaignResponse(&res.Campaigns[i]))
	}
	totalPages := (res.Total + int64(res.Limit) - 1) / int64(res.Limit)
	h.writeData(w, http.StatusOK, campaignPageResponse{
		Campaigns: campaigns,
		Pagination: pagination{
			CurrentPage:  res.Page,
			TotalPages:   totalPages,
			TotalItems:   res.Total,
			ItemsPerPage: res.Limit,
		},
	})
}

func (h *Handler) handleUpdateCampaignStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	campaignID, err := uuid.Parse(chi.URLParam(r, "campaignID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "invalid campaign ID")
		return
	}
	var req updateCampaignStatusRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}
	c, err := h.campaigns.UpdateCampaignStatus(r.Context(), campaignID, user.ID, req.Status)
	if err != nil {
		h.writeBusinessError(w, r, err)
		return
	}
	h.writeData(w, http.StatusOK, toCampaignResponse(c))
}
