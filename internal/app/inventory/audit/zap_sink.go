package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/contracts"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
)

// ZapSink publishes audit events as structured log entries. Destination and
// retention are whatever the surrounding logging setup decides; the store
// only commits to emitting the entry.
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink creates an audit sink writing to the given logger.
func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log.Named("audit")}
}

var _ contracts.AuditSink = (*ZapSink)(nil)

// Publish logs one entry per event.
func (s *ZapSink) Publish(_ context.Context, event domain.Event) {
	s.log.Info("record mutation",
		zap.String("event", event.EventType()),
		zap.String("product_no", event.AggregateID()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
}

// NopSink discards events. Useful for tests and tooling.
type NopSink struct{}

var _ contracts.AuditSink = NopSink{}

// Publish does nothing.
func (NopSink) Publish(context.Context, domain.Event) {}
