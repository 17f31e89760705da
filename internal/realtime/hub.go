package realtime

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Options tune hub policy.
type Options struct {
	// NotifyRejected sends an error event back to the offending connection
	// when its payload is malformed or of unknown kind. Off by default:
	// the protocol is fire-and-forget.
	NotifyRejected bool
}

// Hub owns room membership and relays comment lifecycle events between
// members of the same scene room. All state is in-process and rebuilt from
// scratch on restart; there is no persistence and no replay of missed
// events.
type Hub struct {
	log  *slog.Logger
	opts Options

	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*Conn]struct{}
	// joined tracks the single room a connection currently belongs to;
	// join replaces any prior membership.
	joined map[*Conn]uuid.UUID
}

func NewHub(log *slog.Logger, opts Options) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:    log,
		opts:   opts,
		rooms:  make(map[uuid.UUID]map[*Conn]struct{}),
		joined: make(map[*Conn]uuid.UUID),
	}
}

// Register announces a freshly authenticated connection to the hub. The
// connection belongs to no room until it joins one.
func (h *Hub) Register(conn *Conn) {
	h.log.Debug("connection registered",
		slog.String("user_id", conn.UserID.String()),
		slog.String("user_name", conn.UserName),
	)
}

// Unregister drops the connection from its room (implicit leave) and closes
// its outbound stream. Safe to call for connections that never joined.
func (h *Hub) Unregister(conn *Conn) {
	h.mu.Lock()
	h.removeLocked(conn)
	// Closing under the lock keeps broadcast (which enqueues under RLock)
	// from writing to a closed channel.
	close(conn.events)
	h.mu.Unlock()

	h.log.Debug("connection unregistered", slog.String("user_id", conn.UserID.String()))
}

// Join adds the connection to the scene room, replacing any prior
// membership. First join creates the room implicitly.
func (h *Hub) Join(conn *Conn, sceneID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.joined[conn]; ok {
		if current == sceneID {
			return
		}
		h.removeLocked(conn)
	}

	members, ok := h.rooms[sceneID]
	if !ok {
		members = make(map[*Conn]struct{})
		h.rooms[sceneID] = members
	}
	members[conn] = struct{}{}
	h.joined[conn] = sceneID

	h.log.Info("joined room",
		slog.String("scene_id", sceneID.String()),
		slog.String("user_id", conn.UserID.String()),
		slog.Int("members", len(members)),
	)
}

// Leave removes the connection from the scene room. Empty rooms are
// destroyed.
func (h *Hub) Leave(conn *Conn, sceneID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.joined[conn]; !ok || current != sceneID {
		return
	}
	h.removeLocked(conn)

	h.log.Info("left room",
		slog.String("scene_id", sceneID.String()),
		slog.String("user_id", conn.UserID.String()),
	)
}

// RoomSize reports current membership of a scene room.
func (h *Hub) RoomSize(sceneID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sceneID])
}

// HandleEvent dispatches one inbound event from a connection. Identity
// fields in the payload are never trusted: the hub overwrites them with the
// connection's bound identity before relay. Malformed or unknown events are
// dropped (optionally answered with an error event, see Options).
func (h *Hub) HandleEvent(conn *Conn, event Event) {
	if event.Malformed() {
		h.reject(conn, event, "malformed payload")
		return
	}

	switch event.Type {
	case EventJoinRoom:
		h.Join(conn, event.SceneID)

	case EventLeaveRoom:
		h.Leave(conn, event.SceneID)

	case EventCommentAdded, EventCommentUpdated:
		comment := event.Comment.Clone()
		comment.AuthorID = conn.UserID
		comment.AuthorName = conn.UserName
		event.Comment = comment
		h.broadcast(event.SceneID, event, conn)

	case EventCommentDeleted:
		event.DeletedBy = conn.UserName
		h.broadcast(event.SceneID, event, conn)

	case EventCommentResolved:
		event.ResolvedBy = conn.UserName
		h.broadcast(event.SceneID, event, conn)

	case EventAnnotationUpdated:
		event.UpdatedBy = conn.UserName
		h.broadcast(event.SceneID, event, conn)

	case EventTyping:
		h.broadcast(event.SceneID, Event{
			Type:     EventUserTyping,
			SceneID:  event.SceneID,
			IsTyping: event.IsTyping,
			UserID:   conn.UserID,
			UserName: conn.UserName,
		}, conn)

	default:
		h.reject(conn, event, "unknown event type")
	}
}

// broadcast relays to every member of the scene room except the originator.
// The sender already holds post-write state from its synchronous repository
// call; echoing would force duplicate-apply logic on it.
func (h *Hub) broadcast(sceneID uuid.UUID, event Event, origin *Conn) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for member := range h.rooms[sceneID] {
		if member == origin {
			continue
		}
		if !member.enqueue(event) {
			h.log.Debug("dropping event for slow connection",
				slog.String("user_id", member.UserID.String()),
				slog.String("type", string(event.Type)),
			)
		}
	}
}

func (h *Hub) reject(conn *Conn, event Event, reason string) {
	h.log.Warn("event rejected",
		slog.String("type", string(event.Type)),
		slog.String("user_id", conn.UserID.String()),
		slog.String("reason", reason),
	)

	if !h.opts.NotifyRejected {
		return
	}
	conn.enqueue(Event{
		Type:    EventError,
		SceneID: event.SceneID,
		Error:   reason,
	})
}

// removeLocked detaches conn from its current room. Caller holds h.mu.
func (h *Hub) removeLocked(conn *Conn) {
	sceneID, ok := h.joined[conn]
	if !ok {
		return
	}
	delete(h.joined, conn)

	members, ok := h.rooms[sceneID]
	if !ok {
		return
	}
	delete(members, conn)
	if len(members) == 0 {
		delete(h.rooms, sceneID)
	}
}
