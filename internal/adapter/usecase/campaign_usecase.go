package usecase

import (
	"context"
	"unicode/utf8"

	"github.com/google/uuid"

	"blogmarket/internal/core/domain"
	"blogmarket/internal/core/port"
)

const maxCampaignTitleLen = 100

// CampaignUseCase implements port.CampaignUseCase.
type CampaignUseCase struct {
	campaigns port.CampaignRepository
}

// NewCampaignUseCase creates the campaign management service.
func NewCampaignUseCase(campaigns port.CampaignRepository) *CampaignUseCase {
	return &CampaignUseCase{campaigns: campaigns}
}

// CreateCampaign validates and stores a new draft campaign with an
// untouched budget.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, in port.CreateCampaignInput) (*domain.Campaign, error) {
	if in.AdvertiserID == uuid.Nil {
		return nil, domain.Validationf("advertiserId", "advertiser ID is required")
	}
	if in.Title == "" {
		return nil, domain.Validationf("title", "title is required")
	}
	if utf8.RuneCountInString(in.Title) > maxCampaignTitleLen {
		return nil, domain.Validationf("title", "must not exceed %d characters", maxCampaignTitleLen)
	}
	if !domain.ValidCampaignType(in.CampaignType) {
		return nil, domain.Validationf("campaignType", "unknown campaign type %q", in.CampaignType)
	}
	if in.BudgetTotal <= 0 {
		return nil, domain.Validationf("budget.total", "must be positive")
	}
	if in.PerBlogger < 0 {
		return nil, domain.Validationf("budget.perBlogger", "must not be negative")
	}

	c := &domain.Campaign{
		ID:           uuid.New(),
		AdvertiserID: in.AdvertiserID,
		Title:        in.Title,
		Description:  in.Description,
		CampaignType: in.CampaignType,
		Budget:       domain.Budget{Total: in.BudgetTotal, PerBlogger: in.PerBlogger},
		Status:       domain.CampaignStatusDraft,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}
	if err := u.campaigns.CreateCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCampaign returns the advertiser's campaign, or not-found when it
// is missing or owned by someone else.
func (u *CampaignUseCase) GetCampaign(ctx context.Context, id, advertiserID uuid.UUID) (*domain.Campaign, error) {
	c, err := u.campaigns.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.AdvertiserID != advertiserID {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}

// ListCampaigns returns a page of the advertiser's campaigns.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context, in port.ListCampaignsInput) (*port.CampaignPage, error) {
	filter := port.CampaignFilter{AdvertiserID: in.AdvertiserID, Page: in.Page, Limit: in.Limit}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		return nil, domain.Validationf("limit", "must be between 1 and %d", maxPageLimit)
	}
	if in.Status != "" {
		if !domain.ValidCampaignStatus(in.Status) {
			return nil, domain.Validationf("status", "unknown campaign status %q", in.Status)
		}
		filter.Status = &in.Status
	}
	campaigns, total, err := u.campaigns.ListCampaigns(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &port.CampaignPage{Campaigns: campaigns, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// UpdateCampaignStatus sets a new status on the advertiser's campaign.
func (u *CampaignUseCase) UpdateCampaignStatus(ctx context.Context, id, advertiserID uuid.UUID, status string) (*domain.Campaign, error) {
	if !domain.ValidCampaignStatus(status) {
		return nil, domain.Validationf("status", "unknown campaign status %q", status)
	}
	return u.campaigns.UpdateCampaignStatus(ctx, id, advertiserID, status)
}
