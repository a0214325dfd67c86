package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blogmarket/internal/core/domain"
)

// CreateCampaignInput carries an advertiser's new campaign.
type CreateCampaignInput struct {
	AdvertiserID uuid.UUID
	Title        string
	Description  string
	CampaignType string
	BudgetTotal  int64
	PerBlogger   int64
	StartDate    *time.Time
	EndDate      *time.Time
}

// ListCampaignsInput paginates an advertiser's campaigns.
type ListCampaignsInput struct {
	AdvertiserID uuid.UUID
	Status       string
	Page         int
	Limit        int
}

// CampaignPage is one page of a campaign listing.
type CampaignPage struct {
	Campaigns []domain.Campaign
	Total     int64
	Page      int
	Limit     int
}

// CampaignUseCase covers the campaign management surface the order
// workflow collaborates with.
type CampaignUseCase interface {
	CreateCampaign(ctx context.Context, in CreateCampaignInput) (*domain.Campaign, error)
	GetCampaign(ctx context.Context, id, advertiserID uuid.UUID) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context, in ListCampaignsInput) (*CampaignPage, error)
	UpdateCampaignStatus(ctx context.Context, id, advertiserID uuid.UUID, status string) (*domain.Campaign, error)
}
