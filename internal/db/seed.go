package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo campaigns and a pending order for each into the
// database. Intended for local development only.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	advertiserID := uuid.New()
	bloggerID := uuid.New()

	for i := 1; i <= 3; i++ {
		campaignID := uuid.New()
		title := fmt.Sprintf("Demo campaign %d", i)
		start := time.Now().AddDate(0, 0, -1)
		end := time.Now().AddDate(0, 1, 0)
		total := int64(300_000)
		_, err := pool.Exec(ctx, `INSERT INTO campaigns
    (id, advertiser_id, title, description, campaign_type, budget_total, budget_allocated,
     budget_spent, budget_per_blogger, status, start_date, end_date, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now()) ON CONFLICT DO NOTHING`,
			campaignID, advertiserID, title, "Seeded demo campaign", "product",
			total, int64(0), int64(0), int64(50_000), "active", start, end)
		if err != nil {
			return err
		}

		orderID := uuid.New()
		price := int64(25_000)
		deadline := time.Now().AddDate(0, 0, 14)
		_, err = pool.Exec(ctx, `INSERT INTO orders
    (id, campaign_id, blogger_id, advertiser_id, content_type, description, requirements,
     price, status, deadline, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now()) ON CONFLICT DO NOTHING`,
			orderID, campaignID, bloggerID, advertiserID, "post",
			"Seeded demo order", "", price, "pending", deadline)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx,
			`UPDATE campaigns SET budget_allocated = budget_allocated + $1 WHERE id = $2`,
			price, campaignID)
		if err != nil {
			return err
		}
	}
	return nil
}
