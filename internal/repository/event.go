package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/billmate/billmate/internal/model"
)

// BulkInsertPaymentEvents appends a batch of audit events in one round trip.
// Duplicate IDs are skipped so redelivered stream messages stay idempotent.
func (r *Repository) BulkInsertPaymentEvents(ctx context.Context, events []*model.PaymentEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO payment_events (id, kind, payment_id, bill_id, actor_email, amount, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	for _, ev := range events {
		batch.Queue(query,
			ev.ID,
			ev.Kind,
			ev.PaymentID,
			ev.BillID,
			ev.ActorEmail,
			ev.Amount,
			ev.OccurredAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert payment event: %w", err)
		}
	}

	return nil
}
