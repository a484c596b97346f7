// Package audit captures payment activity events and persists them as an
// append-only trail.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/billmate/billmate/internal/metrics"
	"github.com/billmate/billmate/internal/model"
)

const (
	// StreamKey is the Redis stream for payment audit events.
	StreamKey = "stream:payment_events"

	// DeadLetterStreamKey is the Redis stream for poison messages.
	DeadLetterStreamKey = "stream:payment_events:dlq"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// eventPayload is the compressed event format for the Redis stream.
type eventPayload struct {
	ID         string  `json:"id"`
	Kind       string  `json:"k"`
	PaymentID  string  `json:"pid"`
	BillID     string  `json:"bid,omitempty"`
	ActorEmail string  `json:"ae"`
	Amount     float64 `json:"amt"`
	OccurredAt int64   `json:"t"` // Unix milliseconds
}

func validatePayload(p eventPayload) error {
	switch model.PaymentEventKind(p.Kind) {
	case model.PaymentCreated, model.PaymentUpdated, model.PaymentDeleted:
	default:
		return fmt.Errorf("unknown event kind %q", p.Kind)
	}
	if p.ID == "" {
		return errors.New("event id is required")
	}
	if p.PaymentID == "" {
		return errors.New("payment id is required")
	}
	if p.ActorEmail == "" {
		return errors.New("actor email is required")
	}
	return nil
}

// Publisher enqueues payment audit events to the Redis stream.
type Publisher struct {
	redis   *redis.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates a new audit event publisher.
func NewPublisher(client *redis.Client, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "audit.publisher"),
		metrics: recorder,
	}
}

// Publish adds an audit event to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, event *model.PaymentEvent) (string, error) {
	payload := eventPayload{
		ID:         event.ID,
		Kind:       string(event.Kind),
		PaymentID:  event.PaymentID,
		BillID:     event.BillID,
		ActorEmail: event.ActorEmail,
		Amount:     event.Amount,
		OccurredAt: event.OccurredAt.UnixMilli(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()

	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller.
// Errors are logged but not returned (fire-and-forget).
func (p *Publisher) PublishAsync(event *model.PaymentEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		streamID, err := p.Publish(ctx, event)
		if err != nil {
			p.logger.Warn("failed to publish payment event",
				"kind", event.Kind,
				"payment_id", event.PaymentID,
				"error", err,
			)
			p.metrics.IncAuditEventPublished("dropped")
			return
		}

		p.logger.Debug("payment event published",
			"kind", event.Kind,
			"payment_id", event.PaymentID,
			"stream_id", streamID,
		)
		p.metrics.IncAuditEventPublished("success")
	}()
}
