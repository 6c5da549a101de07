// Package events defines the typed envelopes pushed from the server to
// client sessions, and their classification onto the three logical channels
// the distributor multiplexes: messages, notifications and unread-count.
// The envelope shape {type, payload} is the wire contract shared with the
// websocket gateway and every client.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/pkg/errs"
)

// Channel is one of the three logical subscriber channels.
type Channel string

const (
	ChannelMessages      Channel = "messages"
	ChannelNotifications Channel = "notifications"
	ChannelUnreadCount   Channel = "unread_count"
)

// Validate rejects channels outside the three defined ones.
func (c Channel) Validate() error {
	switch c {
	case ChannelMessages, ChannelNotifications, ChannelUnreadCount:
		return nil
	default:
		return errs.NewValidationErrorWithCause("channel",
			fmt.Errorf("%q is not a known channel", c))
	}
}

// Type tags an envelope. Each type belongs to exactly one channel.
type Type string

const (
	// TypeNotification carries a freshly created notification envelope.
	TypeNotification Type = "notification"

	// TypeUnreadCount carries the authoritative unread counter after it
	// changed.
	TypeUnreadCount Type = "unread_count"

	// TypeMessage carries a chat message between sender and courier.
	TypeMessage Type = "message"
)

// Envelope is the unit pushed over the session transport.
type Envelope struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Channel classifies an envelope onto its logical channel. Unknown types
// are a validation error: the distributor drops them rather than guessing.
func (e Envelope) Channel() (Channel, error) {
	switch e.Type {
	case TypeNotification:
		return ChannelNotifications, nil
	case TypeUnreadCount:
		return ChannelUnreadCount, nil
	case TypeMessage:
		return ChannelMessages, nil
	default:
		return "", errs.NewValidationErrorWithCause("type",
			fmt.Errorf("%q is not a known envelope type", e.Type))
	}
}

// NotificationPayload is the wire form of a notification envelope.
type NotificationPayload struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	PackageID *string   `json:"package_id,omitempty"`
	DeepLink  string    `json:"deep_link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// UnreadCountPayload is the wire form of an unread-count envelope.
type UnreadCountPayload struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
}

// MessagePayload is the wire form of a chat-message envelope. The chat
// feature itself is an external collaborator; the engine only relays.
type MessagePayload struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	PackageID string    `json:"package_id"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

// NewNotificationEnvelope builds the push envelope for a stored notification.
func NewNotificationEnvelope(n *notification.Notification) (Envelope, error) {
	if err := n.Validate(); err != nil {
		return Envelope{}, err
	}

	payload := NotificationPayload{
		ID:        n.ID().String(),
		Kind:      string(n.Kind()),
		Title:     n.Title(),
		Body:      n.Payload(),
		DeepLink:  n.Kind().DeepLink(n.Parcel(), nil),
		Read:      n.Read(),
		CreatedAt: n.CreatedAt(),
	}
	if pid := n.Parcel(); pid != nil {
		s := pid.String()
		payload.PackageID = &s
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: TypeNotification, Payload: raw}, nil
}

// NewUnreadCountEnvelope builds the push envelope for an unread counter.
func NewUnreadCountEnvelope(userID kernel.UUID, count int) (Envelope, error) {
	raw, err := json.Marshal(UnreadCountPayload{UserID: userID.String(), Count: count})
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: TypeUnreadCount, Payload: raw}, nil
}
