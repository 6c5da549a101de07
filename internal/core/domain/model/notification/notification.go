// Package notification contains the notification envelope created by the
// server on relevant lifecycle transitions, and the fixed type taxonomy
// shared verbatim with clients. Envelopes are mutated only by mark-read and
// deleted only explicitly by their owner.
package notification

import (
	"errors"
	"fmt"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification or RestoreNotification")

// Type tags a notification. The string values are keyed by both the UI and
// the server and must be preserved verbatim.
type Type string

const (
	TypePackageMatched    Type = "package_matched"
	TypePackagePickedUp   Type = "package_picked_up"
	TypePackageInTransit  Type = "package_in_transit"
	TypePackageDelivered  Type = "package_delivered"
	TypePackageCancelled  Type = "package_cancelled"
	TypeNewMatchAvailable Type = "new_match_available"
	TypeRouteMatchFound   Type = "route_match_found"
	TypeNewRating         Type = "new_rating"
	TypePackageMatchFound Type = "package_match_found"
	TypeSystem            Type = "system"
)

// titles maps each type to its one display title.
func titles() map[Type]string {
	return map[Type]string{
		TypePackageMatched:    "Your package has been matched",
		TypePackagePickedUp:   "Your package was picked up",
		TypePackageInTransit:  "Your package is on its way",
		TypePackageDelivered:  "Your package was delivered",
		TypePackageCancelled:  "Package cancelled",
		TypeNewMatchAvailable: "New match available",
		TypeRouteMatchFound:   "A package matches your route",
		TypeNewRating:         "You received a new rating",
		TypePackageMatchFound: "We found a match for your package",
		TypeSystem:            "Notification",
	}
}

// Validate checks that the Type is part of the taxonomy.
func (t Type) Validate() error {
	if _, ok := titles()[t]; !ok {
		return errs.NewValidationErrorWithCause("type", fmt.Errorf("%q is not a valid notification type", t))
	}
	return nil
}

// Title returns the display title for the type.
func (t Type) Title() string {
	return titles()[t]
}

// DeepLink returns the route a tap on the notification should open:
// the parcel detail page when a parcel is referenced, the rater's review
// page for new_rating, otherwise nothing.
func (t Type) DeepLink(parcelID *kernel.UUID, raterID *kernel.UUID) string {
	if t == TypeNewRating {
		if raterID != nil {
			return fmt.Sprintf("/users/%s/reviews", raterID)
		}
		return ""
	}
	if parcelID != nil {
		return fmt.Sprintf("/packages/%s", parcelID)
	}
	return ""
}

// Notification is one envelope addressed to one user.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	kind      Type
	payload   string
	read      bool
	parcelID  *kernel.UUID
	createdAt time.Time

	isConstructed bool
}

// NewNotification creates an unread notification.
func NewNotification(
	id kernel.UUID,
	userID kernel.UUID,
	kind Type,
	payload string,
	parcelID *kernel.UUID,
	now time.Time,
) (*Notification, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if parcelID != nil {
		if err := parcelID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Notification{
		id:            id,
		userID:        userID,
		kind:          kind,
		payload:       payload,
		parcelID:      parcelID,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	userID kernel.UUID,
	kind Type,
	payload string,
	read bool,
	parcelID *kernel.UUID,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, userID, kind, payload, parcelID, createdAt)
	if err != nil {
		return nil, err
	}
	n.read = read
	return n, nil
}

// Validate ensures the Notification was constructed through a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// User returns the addressee's account id.
func (n *Notification) User() kernel.UUID { return n.userID }

// Kind returns the taxonomy type.
func (n *Notification) Kind() Type { return n.kind }

// Title returns the display title derived from the type.
func (n *Notification) Title() string { return n.kind.Title() }

// Payload returns the free-form message body.
func (n *Notification) Payload() string { return n.payload }

// Read reports whether the user marked the notification read.
func (n *Notification) Read() bool { return n.read }

// Parcel returns the optional referenced parcel id.
func (n *Notification) Parcel() *kernel.UUID { return n.parcelID }

// CreatedAt returns the creation time.
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// MarkRead flips the read flag. Idempotent; the only permitted mutation.
func (n *Notification) MarkRead() {
	n.read = true
}
