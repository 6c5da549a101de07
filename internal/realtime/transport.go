// Package realtime implements the session side of the push path: one
// transport connection per session, a distributor fanning envelopes out to
// local subscribers, a deadline countdown, and a polling fallback that
// reconciles against pushed state.
package realtime

import (
	"context"

	"parcelmatch/internal/core/application/events"
)

// State is the connection state of a transport.
type State int

const (
	// Connecting means the transport is dialing or redialing.
	Connecting State = iota
	// Connected means envelopes are flowing.
	Connected
	// Disconnected means the connection dropped; the transport keeps
	// redialing with backoff.
	Disconnected
	// StateError means the transport gave up or hit a fatal error.
	StateError
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ActionKind names an outbound pass-through action.
type ActionKind string

const (
	// ActionMarkRead asks the server to mark one notification read.
	ActionMarkRead ActionKind = "mark_read"
	// ActionRequestUnreadCount asks the server to push the current unread
	// count.
	ActionRequestUnreadCount ActionKind = "request_unread_count"
)

// Action is an outbound pass-through message. These ride the same connection
// as the pub/sub envelopes but are not part of the pub/sub contract.
type Action struct {
	Kind           ActionKind `json:"kind"`
	NotificationID string     `json:"notificationId,omitempty"`
}

// Transport is a bidirectional channel delivering typed envelopes plus
// connection-state callbacks. Reconnection with backoff lives entirely
// inside the transport; the layers above only observe state changes.
type Transport interface {
	// Start begins the connect loop and delivers envelopes and state
	// changes to the callbacks until the context is cancelled. Callbacks
	// are invoked from the transport's goroutine, one at a time.
	Start(ctx context.Context, onEnvelope func(events.Envelope), onState func(State)) error

	// Send transmits a pass-through action. It fails fast with a
	// transport error while not connected; it never buffers.
	Send(ctx context.Context, action Action) error

	// Close tears the connection down.
	Close() error
}
