package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/immxrtalbeast/frameboard/internal/realtime"
	"github.com/immxrtalbeast/frameboard/lib/logger/sl"
)

const (
	defaultMaxAttempts  = 10
	defaultBaseDelay    = 500 * time.Millisecond
	defaultMaxDelay     = 10 * time.Second
	defaultWriteTimeout = 5 * time.Second
)

// Feed connects the controller to a hub over websocket: dial with the bearer
// token, join the scene room, decode events into ApplyEvent. Disconnects
// are recovered with a bounded, capped backoff; events sent while
// disconnected are lost, the feed re-joins and continues from there.
type Feed struct {
	URL     string
	Token   string
	SceneID uuid.UUID

	// MaxAttempts bounds consecutive failed dials; zero means the default.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	controller *Controller
	log        *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewFeed(controller *Controller, log *slog.Logger, rawURL string, token string, sceneID uuid.UUID) (*Feed, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("invalid feed url: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Feed{
		URL:        rawURL,
		Token:      token,
		SceneID:    sceneID,
		controller: controller,
		log:        log,
	}, nil
}

// Run blocks until ctx is cancelled or the retry budget is exhausted.
func (f *Feed) Run(ctx context.Context) error {
	maxAttempts := f.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	baseDelay := f.BaseDelay
	if baseDelay <= 0 {
		baseDelay = defaultBaseDelay
	}
	maxDelay := f.MaxDelay
	if maxDelay <= 0 {
		maxDelay = defaultMaxDelay
	}

	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, err := f.dial(ctx)
		if err != nil {
			attempts++
			if attempts >= maxAttempts {
				return fmt.Errorf("feed: giving up after %d attempts: %w", attempts, err)
			}
			delay := baseDelay << (attempts - 1)
			if delay > maxDelay || delay <= 0 {
				delay = maxDelay
			}
			f.log.Warn("feed dial failed, retrying",
				slog.Int("attempt", attempts),
				slog.Duration("delay", delay),
				sl.Err(err),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			continue
		}
		attempts = 0

		f.setConn(conn)
		err = f.consume(ctx, conn)
		f.setConn(nil)
		conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.log.Info("feed disconnected, reconnecting", sl.Err(err))

		// A server that accepts the handshake and drops at once would
		// otherwise be redialled in a tight loop.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(baseDelay):
		}
	}
}

// ErrDisconnected is returned by Notify while the feed has no live
// connection; the event is lost, not queued.
var ErrDisconnected = errors.New("feed disconnected")

// Notify sends one client-originated event (typing signal, post-write
// lifecycle announcement) over the live connection.
func (f *Feed) Notify(event realtime.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn == nil {
		return ErrDisconnected
	}
	f.conn.SetWriteDeadline(time.Now().Add(defaultWriteTimeout))
	defer f.conn.SetWriteDeadline(time.Time{})
	return f.conn.WriteJSON(event)
}

func (f *Feed) setConn(conn *websocket.Conn) {
	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()
}

func (f *Feed) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(f.URL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("token", f.Token)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, err
	}

	// Membership is not remembered across sessions; every connection joins
	// its room explicitly.
	conn.SetWriteDeadline(time.Now().Add(defaultWriteTimeout))
	if err := conn.WriteJSON(realtime.Event{
		Type:    realtime.EventJoinRoom,
		SceneID: f.SceneID,
	}); err != nil {
		conn.Close()
		return nil, err
	}
	conn.SetWriteDeadline(time.Time{})

	return conn, nil
}

func (f *Feed) consume(ctx context.Context, conn *websocket.Conn) error {
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
		var event realtime.Event
		if err := conn.ReadJSON(&event); err != nil {
			return err
		}
		f.controller.ApplyEvent(event)
	}
}
