package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"blogmarket/internal/core/domain"
)

// txLedger is the budget ledger bound to one open transaction. It is
// the only code that writes the allocated and spent columns; its
// writes become visible to other ledger calls only on commit.
type txLedger struct {
	tx pgx.Tx
}

// Reserve locks the campaign row, checks the ceiling against the
// locked read and increments allocated. The post-increment re-check
// guards against lost updates should the isolation level ever let two
// increments interleave.
func (l *txLedger) Reserve(ctx context.Context, campaignID uuid.UUID, amount int64) error {
	var total, allocated int64
	err := l.tx.QueryRow(ctx,
		`SELECT budget_total, budget_allocated FROM campaigns WHERE id = $1 FOR UPDATE`,
		campaignID).Scan(&total, &allocated)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrCampaignNotFound
	}
	if err != nil {
		return err
	}
	if amount > total-allocated {
		return domain.ErrInsufficientBudget
	}
	err = l.tx.QueryRow(ctx,
		`UPDATE campaigns SET budget_allocated = budget_allocated + $1, updated_at = now()
		 WHERE id = $2 RETURNING budget_total, budget_allocated`,
		amount, campaignID).Scan(&total, &allocated)
	if err != nil {
		return err
	}
	if allocated > total {
		return fmt.Errorf("%w: campaign %s allocated %d exceeds total %d",
			domain.ErrInvariantViolation, campaignID, allocated, total)
	}
	return nil
}

// Release decrements allocated, never below zero.
func (l *txLedger) Release(ctx context.Context, campaignID uuid.UUID, amount int64) error {
	var allocated int64
	err := l.tx.QueryRow(ctx,
		`SELECT budget_allocated FROM campaigns WHERE id = $1 FOR UPDATE`,
		campaignID).Scan(&allocated)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrCampaignNotFound
	}
	if err != nil {
		return err
	}
	if allocated < amount {
		return fmt.Errorf("%w: campaign %s release %d below allocated %d",
			domain.ErrInvariantViolation, campaignID, amount, allocated)
	}
	_, err = l.tx.Exec(ctx,
		`UPDATE campaigns SET budget_allocated = budget_allocated - $1, updated_at = now() WHERE id = $2`,
		amount, campaignID)
	return err
}

// MarkSpent moves amount from the unspent part of allocated into spent.
func (l *txLedger) MarkSpent(ctx context.Context, campaignID uuid.UUID, amount int64) error {
	var allocated, spent int64
	err := l.tx.QueryRow(ctx,
		`SELECT budget_allocated, budget_spent FROM campaigns WHERE id = $1 FOR UPDATE`,
		campaignID).Scan(&allocated, &spent)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrCampaignNotFound
	}
	if err != nil {
		return err
	}
	if spent+amount > allocated {
		return fmt.Errorf("%w: campaign %s spent %d would exceed allocated %d",
			domain.ErrInvariantViolation, campaignID, spent+amount, allocated)
	}
	_, err = l.tx.Exec(ctx,
		`UPDATE campaigns SET budget_spent = budget_spent + $1, updated_at = now() WHERE id = $2`,
		amount, campaignID)
	return err
}
