package port

import (
	"context"

	"github.com/google/uuid"

	"blogmarket/internal/core/domain"
)

// CampaignFilter restricts and paginates campaign listings.
type CampaignFilter struct {
	AdvertiserID uuid.UUID
	Status       *string
	Page         int
	Limit        int
}

// CampaignRepository defines persistence for campaigns. The allocated
// and spent budget fields are owned by the BudgetLedger; this interface
// never mutates them.
type CampaignRepository interface {
	CreateCampaign(ctx context.Context, c *domain.Campaign) error

	// GetCampaign returns the campaign or domain.ErrCampaignNotFound.
	GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)

	// ListCampaigns returns a page of the advertiser's campaigns, newest
	// first, together with the total match count.
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]domain.Campaign, int64, error)

	// UpdateCampaignStatus sets the status of a campaign owned by
	// advertiserID, returning domain.ErrCampaignNotFound when the
	// campaign is missing or owned by someone else.
	UpdateCampaignStatus(ctx context.Context, id, advertiserID uuid.UUID, status string) (*domain.Campaign, error)
}
