package ws

import (
	"context"
	"encoding/json"

	"parcelmatch/internal/core/application/events"
	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/application/usecases/queries"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"
	"parcelmatch/internal/realtime"

	"github.com/google/uuid"
)

// ActionRouter dispatches actions sent by connected clients over their
// WebSocket session. Actions ride the same socket as the pushed envelopes
// but flow the other way.
type ActionRouter interface {
	// Route executes the action in the frame on behalf of the user. A
	// non-nil reply is sent back on the session that sent the frame.
	Route(ctx context.Context, userID uuid.UUID, frame []byte) ([]byte, error)
}

// MarkReadHandler marks one notification read.
type MarkReadHandler interface {
	Handle(ctx context.Context, cmd commands.MarkNotificationReadCommand) error
}

// UnreadCountHandler reads a user's unread notification counter.
type UnreadCountHandler interface {
	Handle(ctx context.Context, query queries.GetUnreadCountQuery) (int, error)
}

// CommandActionRouter routes client actions to the command and query
// handlers. Marking a notification read replies over the pub/sub path: the
// command handler pushes the refreshed counter to every session of the
// user, not just the one that sent the action.
type CommandActionRouter struct {
	markRead    MarkReadHandler
	unreadCount UnreadCountHandler
}

// NewCommandActionRouter creates a router over the given handlers.
func NewCommandActionRouter(markRead MarkReadHandler, unreadCount UnreadCountHandler) CommandActionRouter {
	return CommandActionRouter{
		markRead:    markRead,
		unreadCount: unreadCount,
	}
}

// Route decodes the frame as a pass-through action and dispatches it.
func (r CommandActionRouter) Route(ctx context.Context, userID uuid.UUID, frame []byte) ([]byte, error) {
	var action realtime.Action
	if err := json.Unmarshal(frame, &action); err != nil {
		return nil, errs.NewValidationErrorWithCause("action", err)
	}

	owner, err := kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return nil, err
	}

	switch action.Kind {
	case realtime.ActionMarkRead:
		notificationID, err := kernel.UUIDFromString(action.NotificationID)
		if err != nil {
			return nil, errs.NewValidationErrorWithCause("notificationId", err)
		}
		cmd, err := commands.NewMarkNotificationReadCommand(notificationID, owner)
		if err != nil {
			return nil, err
		}
		return nil, r.markRead.Handle(ctx, cmd)

	case realtime.ActionRequestUnreadCount:
		query, err := queries.NewGetUnreadCountQuery(owner)
		if err != nil {
			return nil, err
		}
		count, err := r.unreadCount.Handle(ctx, query)
		if err != nil {
			return nil, err
		}
		env, err := events.NewUnreadCountEnvelope(owner, count)
		if err != nil {
			return nil, err
		}
		return json.Marshal(env)

	default:
		return nil, errs.NewValidationError("kind")
	}
}
