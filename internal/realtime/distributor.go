package realtime

import (
	"context"
	"sync"

	"parcelmatch/internal/core/application/events"
	"parcelmatch/internal/pkg/errs"

	"github.com/rs/zerolog/log"
)

// Handler consumes one envelope. Handlers run synchronously on the
// distributor's dispatch path and must not block.
type Handler func(events.Envelope)

// subscription is one registered handler. Registration order is preserved
// for deterministic dispatch; active guards against double removal.
type subscription struct {
	fn     Handler
	active bool
}

// Distributor multiplexes the three logical channels of one transport
// connection onto independent subscriber sets. Each envelope reaches every
// currently registered subscriber of its channel exactly once, synchronously,
// in registration order.
type Distributor struct {
	transport Transport

	mu    sync.Mutex
	subs  map[events.Channel][]*subscription
	state State
}

// NewDistributor creates a distributor over the given transport.
func NewDistributor(transport Transport) *Distributor {
	return &Distributor{
		transport: transport,
		subs:      make(map[events.Channel][]*subscription),
		state:     Connecting,
	}
}

// Start runs the transport until the context is cancelled.
func (d *Distributor) Start(ctx context.Context) error {
	return d.transport.Start(ctx, d.dispatch, d.setState)
}

// Subscribe registers a handler for one channel and returns an unsubscribe
// function that is safe to call at any time, any number of times.
func (d *Distributor) Subscribe(channel events.Channel, fn Handler) (func(), error) {
	if err := channel.Validate(); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, errs.NewValueIsRequiredError("fn")
	}

	sub := &subscription{fn: fn, active: true}

	d.mu.Lock()
	d.subs[channel] = append(d.subs[channel], sub)
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		if !sub.active {
			return
		}
		sub.active = false

		retained := d.subs[channel][:0]
		for _, s := range d.subs[channel] {
			if s != sub {
				retained = append(retained, s)
			}
		}
		d.subs[channel] = retained
	}, nil
}

// State reports the current connection state.
func (d *Distributor) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// MarkNotificationRead sends the mark-read pass-through action. While
// disconnected it fails fast so the caller can fall back to the REST API.
func (d *Distributor) MarkNotificationRead(ctx context.Context, notificationID string) error {
	if err := d.requireConnected("mark_read"); err != nil {
		return err
	}
	return d.transport.Send(ctx, Action{Kind: ActionMarkRead, NotificationID: notificationID})
}

// RequestUnreadCount asks the server to push the current unread count.
func (d *Distributor) RequestUnreadCount(ctx context.Context) error {
	if err := d.requireConnected("request_unread_count"); err != nil {
		return err
	}
	return d.transport.Send(ctx, Action{Kind: ActionRequestUnreadCount})
}

func (d *Distributor) requireConnected(op string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Connected {
		return errs.NewTransportError(op)
	}
	return nil
}

// dispatch classifies an envelope by channel and invokes the channel's
// subscribers. A snapshot is taken under the lock so a handler that
// unsubscribes mid-dispatch does not disturb the iteration; handlers removed
// before their turn are skipped.
func (d *Distributor) dispatch(envelope events.Envelope) {
	channel, err := envelope.Channel()
	if err != nil {
		log.Warn().Str("type", string(envelope.Type)).Msg("dropping envelope of unknown type")
		return
	}

	d.mu.Lock()
	snapshot := make([]*subscription, len(d.subs[channel]))
	copy(snapshot, d.subs[channel])
	d.mu.Unlock()

	for _, sub := range snapshot {
		d.mu.Lock()
		active := sub.active
		d.mu.Unlock()
		if active {
			sub.fn(envelope)
		}
	}
}

func (d *Distributor) setState(state State) {
	d.mu.Lock()
	prev := d.state
	d.state = state
	d.mu.Unlock()

	if prev != state {
		log.Debug().
			Str("from", prev.String()).
			Str("to", state.String()).
			Msg("distributor connection state changed")
	}
}
