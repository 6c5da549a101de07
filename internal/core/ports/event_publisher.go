package ports

import (
	"context"

	"parcelmatch/internal/core/application/events"
	"parcelmatch/internal/core/domain/model/kernel"
)

// EventPublisher pushes envelopes toward a user's live sessions. Handlers
// call it after a successful commit; delivery is best effort and failures
// are logged, never rolled back.
type EventPublisher interface {
	Publish(ctx context.Context, userID kernel.UUID, envelope events.Envelope) error
}
