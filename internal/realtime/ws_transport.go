package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"parcelmatch/internal/core/application/events"
	"parcelmatch/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketTransportConfig holds the dial and backoff settings.
type WebSocketTransportConfig struct {
	URL            string
	UserID         string
	DialTimeout    time.Duration
	WriteTimeout   time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultWebSocketTransportConfig returns the dial defaults for the gateway
// endpoint.
func DefaultWebSocketTransportConfig(url, userID string) WebSocketTransportConfig {
	return WebSocketTransportConfig{
		URL:            url,
		UserID:         userID,
		DialTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
	}
}

// WebSocketTransport implements Transport over a gorilla websocket
// connection to the gateway. Reconnection with exponential backoff happens
// here; the distributor above only sees state transitions.
type WebSocketTransport struct {
	config WebSocketTransportConfig

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
}

// NewWebSocketTransport creates a transport; Start dials.
func NewWebSocketTransport(config WebSocketTransportConfig) *WebSocketTransport {
	return &WebSocketTransport{config: config}
}

// Start dials the gateway and reads envelopes until the context is
// cancelled. Dropped connections are redialed with exponential backoff.
func (t *WebSocketTransport) Start(ctx context.Context, onEnvelope func(events.Envelope), onState func(State)) error {
	backoff := t.config.InitialBackoff

	for {
		onState(Connecting)

		conn, err := t.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				onState(StateError)
				return ctx.Err()
			}

			onState(Disconnected)
			log.Warn().
				Err(err).
				Dur("backoff", backoff).
				Str("url", t.config.URL).
				Msg("transport dial failed, retrying")

			select {
			case <-ctx.Done():
				onState(StateError)
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, t.config.MaxBackoff)
			continue
		}

		backoff = t.config.InitialBackoff
		t.setConn(conn)
		onState(Connected)

		t.readLoop(ctx, conn, onEnvelope)
		t.setConn(nil)

		if ctx.Err() != nil {
			onState(Disconnected)
			return nil
		}
		onState(Disconnected)
	}
}

func (t *WebSocketTransport) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, t.config.DialTimeout)
	defer cancel()

	header := map[string][]string{"X-User-ID": {t.config.UserID}}
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, t.config.URL, header)
	return conn, err
}

func (t *WebSocketTransport) readLoop(ctx context.Context, conn *websocket.Conn, onEnvelope func(events.Envelope)) {
	// The watcher must end with this connection, not with the session:
	// a long session reconnects many times.
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			return
		}

		var envelope events.Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			log.Warn().Err(err).Msg("dropping malformed envelope")
			continue
		}

		onEnvelope(envelope)
	}
}

// Send transmits one pass-through action. While disconnected it fails fast
// with a transport error instead of buffering.
func (t *WebSocketTransport) Send(_ context.Context, action Action) error {
	t.mu.Lock()
	conn := t.conn
	connected := t.connected
	t.mu.Unlock()

	if !connected || conn == nil {
		return errs.NewTransportError(string(action.Kind))
	}

	data, err := json.Marshal(action)
	if err != nil {
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(t.config.WriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errs.NewTransportErrorWithCause(string(action.Kind), err)
	}
	return nil
}

// Close tears down the current connection.
func (t *WebSocketTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		err := t.conn.Close()
		t.conn = nil
		t.connected = false
		return err
	}
	return nil
}

func (t *WebSocketTransport) setConn(conn *websocket.Conn) {
	t.mu.Lock()
	t.conn = conn
	t.connected = conn != nil
	t.mu.Unlock()
}
