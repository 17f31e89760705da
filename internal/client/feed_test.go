package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// droppingServer accepts the handshake, reads the join event, then hangs up.
type droppingServer struct {
	srv *httptest.Server

	mu      sync.Mutex
	accepts []time.Time
	second  chan struct{}
}

func newDroppingServer(t *testing.T) *droppingServer {
	t.Helper()

	d := &droppingServer{second: make(chan struct{})}
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	d.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		d.mu.Lock()
		d.accepts = append(d.accepts, time.Now())
		if len(d.accepts) == 2 {
			close(d.second)
		}
		d.mu.Unlock()

		conn.ReadMessage()
		conn.Close()
	}))
	t.Cleanup(d.srv.Close)
	return d
}

func (d *droppingServer) url() string {
	return "ws" + strings.TrimPrefix(d.srv.URL, "http")
}

func TestFeedWaitsBeforeRedialAfterDisconnect(t *testing.T) {
	server := newDroppingServer(t)

	ctrl := NewController(&fakeWriter{}, nil)
	feed, err := NewFeed(ctrl, nil, server.url(), "token", uuid.New())
	require.NoError(t, err)
	feed.BaseDelay = 100 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(ctx) }()

	select {
	case <-server.second:
	case <-time.After(5 * time.Second):
		t.Fatal("feed never reconnected")
	}
	cancel()
	require.Error(t, <-done)

	server.mu.Lock()
	defer server.mu.Unlock()
	require.GreaterOrEqual(t, len(server.accepts), 2)
	gap := server.accepts[1].Sub(server.accepts[0])
	require.GreaterOrEqual(t, gap, 90*time.Millisecond, "redial after a dropped session must back off")
}
