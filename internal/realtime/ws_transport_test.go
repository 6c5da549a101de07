package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"parcelmatch/internal/core/application/events"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startEchoGateway(t *testing.T) (string, chan *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	serverConns := make(chan *websocket.Conn, 32)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http"), serverConns
}

func TestWebSocketTransport_WatcherEndsWithConnection(t *testing.T) {
	url, serverConns := startEchoGateway(t)
	transport := NewWebSocketTransport(DefaultWebSocketTransportConfig(url, "user-1"))

	// The session context stays live across every reconnect; each dropped
	// connection must still release its watcher goroutine.
	ctx := context.Background()
	before := runtime.NumGoroutine()

	for range 20 {
		conn, err := transport.dial(ctx)
		require.NoError(t, err)

		server := <-serverConns
		require.NoError(t, server.Close())

		transport.readLoop(ctx, conn, func(events.Envelope) {})
	}

	time.Sleep(100 * time.Millisecond)
	after := runtime.NumGoroutine()
	assert.Less(t, after, before+10, "watcher goroutines must not accumulate across reconnects")
}

func TestWebSocketTransport_ReadLoopDeliversEnvelopes(t *testing.T) {
	url, serverConns := startEchoGateway(t)
	transport := NewWebSocketTransport(DefaultWebSocketTransportConfig(url, "user-1"))

	ctx := context.Background()
	conn, err := transport.dial(ctx)
	require.NoError(t, err)

	server := <-serverConns
	err = server.WriteMessage(websocket.TextMessage, []byte(`{"type":"unread_count","payload":{"user_id":"u","count":3}}`))
	require.NoError(t, err)
	err = server.WriteMessage(websocket.TextMessage, []byte(`not json`))
	require.NoError(t, err)
	require.NoError(t, server.Close())

	var received []events.Envelope
	transport.readLoop(ctx, conn, func(e events.Envelope) {
		received = append(received, e)
	})

	require.Len(t, received, 1, "malformed frames are dropped")
	assert.Equal(t, events.TypeUnreadCount, received[0].Type)
}
