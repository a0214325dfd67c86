package domain

import (
	"time"

	"github.com/google/uuid"
)

// Campaign statuses.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// Campaign types.
const (
	CampaignTypeProduct = "product"
	CampaignTypeService = "service"
	CampaignTypeBrand   = "brand"
	CampaignTypeEvent   = "event"
)

// Budget tracks a campaign's money in integer currency units.
// Allocated is the sum of prices of all non-cancelled orders drawn
// against the campaign and must never exceed Total. Spent is the part
// of Allocated belonging to completed orders.
type Budget struct {
	Total      int64
	Allocated  int64
	Spent      int64
	PerBlogger int64
}

// Available returns the budget still free for new orders.
func (b Budget) Available() int64 {
	return b.Total - b.Allocated
}

// Campaign represents an advertiser's budgeted request for influencer
// content. Allocated budget is mutated only through the budget ledger,
// never by direct field assignment from other components.
type Campaign struct {
	ID           uuid.UUID
	AdvertiserID uuid.UUID
	Title        string
	Description  string
	CampaignType string
	Budget       Budget
	Status       string
	StartDate    *time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidCampaignType reports whether t is a known campaign type.
func ValidCampaignType(t string) bool {
	switch t {
	case CampaignTypeProduct, CampaignTypeService, CampaignTypeBrand, CampaignTypeEvent:
		return true
	}
	return false
}

// ValidCampaignStatus reports whether s is a known campaign status.
func ValidCampaignStatus(s string) bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused,
		CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	}
	return false
}
