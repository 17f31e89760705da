package realtime

import (
	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
)

// EventType tags the wire contract between connections and the hub. The set
// is closed: both hub and client dispatch exhaustively and drop anything
// unrecognized instead of forwarding it.
type EventType string

const (
	// Client -> hub.
	EventJoinRoom          EventType = "join-room"
	EventLeaveRoom         EventType = "leave-room"
	EventCommentAdded      EventType = "comment-added"
	EventCommentUpdated    EventType = "comment-updated"
	EventCommentDeleted    EventType = "comment-deleted"
	EventCommentResolved   EventType = "comment-resolved"
	EventAnnotationUpdated EventType = "annotation-updated"
	EventTyping            EventType = "typing"

	// Hub -> client only.
	EventUserTyping EventType = "user-typing"
	EventError      EventType = "error"
)

// Event is the single payload shape exchanged over the realtime channel.
// Which fields are meaningful depends on Type; the hub overwrites all
// identity fields from the sending connection before relay, so nothing a
// client puts in them survives.
type Event struct {
	Type    EventType `json:"type"`
	SceneID uuid.UUID `json:"scene_id"`

	Comment    *domain.Comment `json:"comment,omitempty"`
	CommentID  int64           `json:"comment_id,omitempty"`
	Resolved   bool            `json:"resolved,omitempty"`
	Annotation string          `json:"annotation_data,omitempty"`
	IsTyping   bool            `json:"is_typing,omitempty"`

	// Enrichment fields, set by the hub from the bound connection identity.
	UserID     uuid.UUID `json:"user_id,omitempty"`
	UserName   string    `json:"user_name,omitempty"`
	DeletedBy  string    `json:"deleted_by,omitempty"`
	ResolvedBy string    `json:"resolved_by,omitempty"`
	UpdatedBy  string    `json:"updated_by,omitempty"`

	Error string `json:"error,omitempty"`
}

// Malformed reports whether the event is missing fields its kind requires.
// Malformed events are never relayed.
func (e *Event) Malformed() bool {
	if e.SceneID == uuid.Nil {
		return true
	}
	switch e.Type {
	case EventCommentAdded, EventCommentUpdated:
		return e.Comment == nil
	case EventCommentDeleted, EventCommentResolved, EventAnnotationUpdated:
		return e.CommentID == 0
	}
	return false
}
