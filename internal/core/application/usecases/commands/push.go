package commands

import (
	"context"
	"errors"

	"parcelmatch/internal/core/application/events"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/domain/services"
	"parcelmatch/internal/core/ports"
	"parcelmatch/internal/pkg/errs"

	"github.com/rs/zerolog/log"
)

// outbound is an envelope staged inside the transaction and pushed only
// after the commit succeeds. Pushing earlier could announce a state that
// the rollback then erases.
type outbound struct {
	userID   kernel.UUID
	envelope events.Envelope
}

// stageNotification persists the notification, recomputes the owner's
// unread counter inside the same transaction, and returns the notification
// and unread-count envelopes to push after commit.
func stageNotification(
	ctx context.Context,
	repo ports.NotificationRepository,
	n *notification.Notification,
) ([]outbound, error) {
	if err := repo.Add(ctx, n); err != nil {
		return nil, err
	}

	count, err := repo.CountUnreadForUser(ctx, n.User())
	if err != nil {
		return nil, err
	}

	notificationEnv, err := events.NewNotificationEnvelope(n)
	if err != nil {
		return nil, err
	}
	countEnv, err := events.NewUnreadCountEnvelope(n.User(), count)
	if err != nil {
		return nil, err
	}

	return []outbound{
		{userID: n.User(), envelope: notificationEnv},
		{userID: n.User(), envelope: countEnv},
	}, nil
}

// stageUnreadCount returns the unread-count envelope for a user, computed
// inside the transaction.
func stageUnreadCount(
	ctx context.Context,
	repo ports.NotificationRepository,
	userID kernel.UUID,
) ([]outbound, error) {
	count, err := repo.CountUnreadForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	env, err := events.NewUnreadCountEnvelope(userID, count)
	if err != nil {
		return nil, err
	}
	return []outbound{{userID: userID, envelope: env}}, nil
}

// flush pushes staged envelopes. Delivery is best effort: the state change
// already committed and the poll fallback reconciles missed pushes, so a
// publish failure is logged and the remaining envelopes still go out.
func flush(ctx context.Context, publisher ports.EventPublisher, pushes []outbound) {
	if publisher == nil {
		return
	}
	for _, p := range pushes {
		if err := publisher.Publish(ctx, p.userID, p.envelope); err != nil {
			log.Warn().
				Err(err).
				Str("user_id", p.userID.String()).
				Str("envelope_type", string(p.envelope.Type)).
				Msg("dropping push after commit, poll fallback will reconcile")
		}
	}
}

// checkGate loads the actor's verification profile and evaluates the gate
// for the action. A missing profile decides as unknown identity.
func checkGate(
	ctx context.Context,
	accounts ports.AccountRepository,
	actor kernel.UUID,
	action services.Action,
) error {
	profile, err := accounts.GetProfile(ctx, actor)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	result := services.NewVerificationGate().Decide(profile, action)
	switch result.Decision {
	case services.Allowed:
		return nil
	case services.Redirected:
		return errs.NewAuthorizationError(string(action), result.RedirectTo)
	default:
		// Deferred: identity unknown. Authentication sits in front of the
		// command layer, so reaching this point means the session expired
		// mid-flight.
		return errs.NewAuthorizationError(string(action), "")
	}
}
