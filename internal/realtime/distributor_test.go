package realtime

import (
	"context"
	"encoding/json"
	"testing"

	"parcelmatch/internal/core/application/events"
	"parcelmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport records sent actions and lets tests drive envelopes and
// state transitions by hand.
type fakeTransport struct {
	sent    []Action
	sendErr error
}

func (t *fakeTransport) Start(ctx context.Context, _ func(events.Envelope), _ func(State)) error {
	<-ctx.Done()
	return ctx.Err()
}

func (t *fakeTransport) Send(_ context.Context, action Action) error {
	if t.sendErr != nil {
		return t.sendErr
	}
	t.sent = append(t.sent, action)
	return nil
}

func (t *fakeTransport) Close() error { return nil }

func notificationEnvelope(t *testing.T) events.Envelope {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"id": "n-1"})
	require.NoError(t, err)
	return events.Envelope{Type: events.TypeNotification, Payload: payload}
}

func TestDistributor_FanOutInRegistrationOrder(t *testing.T) {
	d := NewDistributor(&fakeTransport{})

	var order []string
	_, err := d.Subscribe(events.ChannelNotifications, func(events.Envelope) {
		order = append(order, "first")
	})
	require.NoError(t, err)
	_, err = d.Subscribe(events.ChannelNotifications, func(events.Envelope) {
		order = append(order, "second")
	})
	require.NoError(t, err)

	var unreadCalls int
	_, err = d.Subscribe(events.ChannelUnreadCount, func(events.Envelope) {
		unreadCalls++
	})
	require.NoError(t, err)

	d.dispatch(notificationEnvelope(t))

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Zero(t, unreadCalls, "other channels must not receive the envelope")

	d.dispatch(notificationEnvelope(t))
	assert.Equal(t, []string{"first", "second", "first", "second"}, order,
		"each envelope reaches each subscriber exactly once")
}

func TestDistributor_UnsubscribeIsolation(t *testing.T) {
	d := NewDistributor(&fakeTransport{})

	var first, second int
	unsubscribe, err := d.Subscribe(events.ChannelNotifications, func(events.Envelope) { first++ })
	require.NoError(t, err)
	_, err = d.Subscribe(events.ChannelNotifications, func(events.Envelope) { second++ })
	require.NoError(t, err)

	d.dispatch(notificationEnvelope(t))
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	unsubscribe()
	// Idempotent: a second call is a no-op.
	unsubscribe()

	d.dispatch(notificationEnvelope(t))
	assert.Equal(t, 1, first, "unsubscribed handler must not be invoked")
	assert.Equal(t, 2, second, "remaining handler keeps receiving")
}

func TestDistributor_UnsubscribeDuringDispatch(t *testing.T) {
	d := NewDistributor(&fakeTransport{})

	var second int
	var unsubscribeSecond func()

	_, err := d.Subscribe(events.ChannelNotifications, func(events.Envelope) {
		unsubscribeSecond()
	})
	require.NoError(t, err)
	unsubscribeSecond, err = d.Subscribe(events.ChannelNotifications, func(events.Envelope) { second++ })
	require.NoError(t, err)

	d.dispatch(notificationEnvelope(t))
	assert.Zero(t, second, "handler removed mid-dispatch is skipped")
}

func TestDistributor_SubscribeValidation(t *testing.T) {
	d := NewDistributor(&fakeTransport{})

	_, err := d.Subscribe("bogus", func(events.Envelope) {})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = d.Subscribe(events.ChannelMessages, nil)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestDistributor_UnknownEnvelopeTypeDropped(t *testing.T) {
	d := NewDistributor(&fakeTransport{})

	var calls int
	_, err := d.Subscribe(events.ChannelNotifications, func(events.Envelope) { calls++ })
	require.NoError(t, err)

	d.dispatch(events.Envelope{Type: "mystery"})
	assert.Zero(t, calls)
}

func TestDistributor_PassThroughFailsFastWhileDisconnected(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDistributor(transport)

	err := d.MarkNotificationRead(context.Background(), "n-1")
	assert.ErrorIs(t, err, errs.ErrTransport, "connecting state must fail fast")
	assert.Empty(t, transport.sent)

	d.setState(Connected)
	err = d.MarkNotificationRead(context.Background(), "n-1")
	require.NoError(t, err)
	require.Len(t, transport.sent, 1)
	assert.Equal(t, ActionMarkRead, transport.sent[0].Kind)
	assert.Equal(t, "n-1", transport.sent[0].NotificationID)

	err = d.RequestUnreadCount(context.Background())
	require.NoError(t, err)
	require.Len(t, transport.sent, 2)
	assert.Equal(t, ActionRequestUnreadCount, transport.sent[1].Kind)

	d.setState(Disconnected)
	err = d.RequestUnreadCount(context.Background())
	assert.ErrorIs(t, err, errs.ErrTransport)
	assert.Len(t, transport.sent, 2, "nothing is buffered while disconnected")
}

func TestDistributor_StateTransitions(t *testing.T) {
	d := NewDistributor(&fakeTransport{})
	assert.Equal(t, Connecting, d.State())

	d.setState(Connected)
	assert.Equal(t, Connected, d.State())

	d.setState(Disconnected)
	assert.Equal(t, Disconnected, d.State())

	d.setState(StateError)
	assert.Equal(t, StateError, d.State())
}
