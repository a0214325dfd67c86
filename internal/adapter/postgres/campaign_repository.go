package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogmarket/internal/core/domain"
	"blogmarket/internal/core/port"
)

const campaignColumns = `id, advertiser_id, title, description, campaign_type, budget_total,
	budget_allocated, budget_spent, budget_per_blogger, status, start_date, end_date,
	created_at, updated_at`

// CampaignRepository implements port.CampaignRepository using pgxpool.
// It never writes the allocated or spent columns; those belong to the
// budget ledger.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

func (r *CampaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.pool.Exec(ctx,
		`INSERT INTO campaigns (id, advertiser_id, title, description, campaign_type, budget_total,
			budget_allocated, budget_spent, budget_per_blogger, status, start_date, end_date, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		c.ID, c.AdvertiserID, c.Title, c.Description, c.CampaignType, c.Budget.Total,
		c.Budget.Allocated, c.Budget.Spent, c.Budget.PerBlogger, c.Status, c.StartDate, c.EndDate,
		c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CampaignRepository) GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM campaigns WHERE id = $1`, campaignColumns), id)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepository) ListCampaigns(ctx context.Context, filter port.CampaignFilter) ([]domain.Campaign, int64, error) {
	where := "WHERE advertiser_id = $1"
	args := []any{filter.AdvertiserID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int64
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM campaigns %s`, where), args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM campaigns %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		campaignColumns, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	campaigns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

func (r *CampaignRepository) UpdateCampaignStatus(ctx context.Context, id, advertiserID uuid.UUID, status string) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE campaigns SET status = $1, updated_at = now()
			WHERE id = $2 AND advertiser_id = $3 RETURNING %s`, campaignColumns),
		status, id, advertiserID)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.AdvertiserID,
		&c.Title,
		&c.Description,
		&c.CampaignType,
		&c.Budget.Total,
		&c.Budget.Allocated,
		&c.Budget.Spent,
		&c.Budget.PerBlogger,
		&c.Status,
		&c.StartDate,
		&c.EndDate,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
