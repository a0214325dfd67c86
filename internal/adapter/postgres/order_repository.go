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

const orderColumns = `id, campaign_id, blogger_id, advertiser_id, content_type, description,
	requirements, price, status, deadline, content_urls, platform_urls, reject_reason,
	completed_at, created_at, updated_at`

// OrderRepository implements port.OrderRepository using pgxpool for
// PostgreSQL. All multi-write operations run as serializable
// transactions with the campaign row locked before budget arithmetic.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a new repository instance.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// CreateOrder persists a pending order and reserves its price on the
// campaign budget as one atomic unit. The campaign row is locked for
// the whole unit, so concurrent creations against the same campaign
// serialize on the budget check.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var advertiserID uuid.UUID
		var total, allocated int64
		err := tx.QueryRow(ctx,
			`SELECT advertiser_id, budget_total, budget_allocated FROM campaigns WHERE id = $1 FOR UPDATE`,
			order.CampaignID).Scan(&advertiserID, &total, &allocated)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCampaignNotFound
		}
		if err != nil {
			return err
		}
		if advertiserID != order.AdvertiserID {
			return domain.ErrCampaignNotFound
		}
		if order.Price > total-allocated {
			return domain.ErrInsufficientBudget
		}

		now := time.Now().UTC()
		order.CreatedAt = now
		order.UpdatedAt = now
		_, err = tx.Exec(ctx,
			`INSERT INTO orders (id, campaign_id, blogger_id, advertiser_id, content_type, description,
				requirements, price, status, deadline, content_urls, platform_urls, reject_reason, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
			order.ID, order.CampaignID, order.BloggerID, order.AdvertiserID, order.ContentType,
			order.Description, order.Requirements, order.Price, order.Status, order.Deadline,
			order.ContentURLs, order.PlatformURLs, order.RejectReason, order.CreatedAt, order.UpdatedAt)
		if err != nil {
			return err
		}

		// Reserve re-checks the ceiling after its own increment; the
		// whole unit rolls back if that check trips.
		ledger := &txLedger{tx: tx}
		return ledger.Reserve(ctx, order.CampaignID, order.Price)
	})
}

// UpdateOrder loads the order under a row lock, applies fn together
// with a ledger bound to the same transaction and persists the result.
func (r *OrderRepository) UpdateOrder(ctx context.Context, id uuid.UUID, fn func(o *domain.Order, ledger port.BudgetLedger) error) (*domain.Order, error) {
	var order *domain.Order
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1 FOR UPDATE`, orderColumns), id)
		o, err := scanOrder(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if err = fn(o, &txLedger{tx: tx}); err != nil {
			return err
		}
		o.UpdatedAt = time.Now().UTC()
		_, err = tx.Exec(ctx,
			`UPDATE orders SET status = $1, content_urls = $2, platform_urls = $3,
				reject_reason = $4, completed_at = $5, updated_at = $6
			 WHERE id = $7`,
			o.Status, o.ContentURLs, o.PlatformURLs, o.RejectReason, o.CompletedAt, o.UpdatedAt, id)
		if err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder returns the order by id.
func (r *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns), id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ListOrders returns a page of orders matching the filter, newest
// first, and the total match count.
func (r *OrderRepository) ListOrders(ctx context.Context, filter port.OrderFilter) ([]domain.Order, int64, error) {
	where := "WHERE 1=1"
	args := []any{}
	if filter.BloggerID != nil {
		args = append(args, *filter.BloggerID)
		where += fmt.Sprintf(" AND blogger_id = $%d", len(args))
	}
	if filter.AdvertiserID != nil {
		args = append(args, *filter.AdvertiserID)
		where += fmt.Sprintf(" AND advertiser_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int64
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM orders %s`, where), args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	offset := (filter.Page - 1) * filter.Limit
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		o, err := scanOrder(row)
		if err != nil {
			return domain.Order{}, err
		}
		return *o, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.CampaignID,
		&o.BloggerID,
		&o.AdvertiserID,
		&o.ContentType,
		&o.Description,
		&o.Requirements,
		&o.Price,
		&o.Status,
		&o.Deadline,
		&o.ContentURLs,
		&o.PlatformURLs,
		&o.RejectReason,
		&o.CompletedAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
