package contracts

import (
	"context"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
)

// AuditSink receives one structured event per successful mutation.
// Format and destination belong to the external logging collaborator;
// the store only guarantees that events are published after the write.
type AuditSink interface {
	Publish(ctx context.Context, event domain.Event)
}
