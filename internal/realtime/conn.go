package realtime

import (
	"github.com/google/uuid"
)

// Conn is one authenticated realtime session. The identity is bound at
// handshake time and never changes for the lifetime of the connection.
type Conn struct {
	UserID   uuid.UUID
	UserName string

	events chan Event
}

func NewConn(userID uuid.UUID, userName string, buffer int) *Conn {
	if buffer <= 0 {
		buffer = 16
	}
	return &Conn{
		UserID:   userID,
		UserName: userName,
		events:   make(chan Event, buffer),
	}
}

// Events is the outbound stream the transport write pump drains.
func (c *Conn) Events() <-chan Event {
	return c.events
}

// enqueue delivers best-effort: a full buffer drops the event rather than
// blocking the hub.
func (c *Conn) enqueue(event Event) bool {
	select {
	case c.events <- event:
		return true
	default:
		return false
	}
}
