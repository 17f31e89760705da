package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/immxrtalbeast/frameboard/internal/domain"
)

func newTestConn(name string) *Conn {
	return NewConn(uuid.New(), name, 8)
}

// drain collects everything currently buffered for the connection.
func drain(conn *Conn) []Event {
	var out []Event
	for {
		select {
		case event := <-conn.events:
			out = append(out, event)
		default:
			return out
		}
	}
}

func TestHubJoinAndBroadcast(t *testing.T) {
	hub := NewHub(nil, Options{})
	sceneID := uuid.New()

	alice := newTestConn("alice")
	bob := newTestConn("bob")
	hub.Register(alice)
	hub.Register(bob)
	hub.Join(alice, sceneID)
	hub.Join(bob, sceneID)

	require.Equal(t, 2, hub.RoomSize(sceneID))

	hub.HandleEvent(alice, Event{
		Type:    EventCommentAdded,
		SceneID: sceneID,
		Comment: &domain.Comment{ID: 1, SceneID: sceneID, Content: "first"},
	})

	require.Empty(t, drain(alice), "originator must not receive its own event")

	got := drain(bob)
	require.Len(t, got, 1)
	require.Equal(t, EventCommentAdded, got[0].Type)
	require.Equal(t, "first", got[0].Comment.Content)
}

func TestHubOverwritesAuthorIdentity(t *testing.T) {
	hub := NewHub(nil, Options{})
	sceneID := uuid.New()

	alice := newTestConn("alice")
	bob := newTestConn("bob")
	hub.Join(alice, sceneID)
	hub.Join(bob, sceneID)

	forged := uuid.New()
	hub.HandleEvent(alice, Event{
		Type:    EventCommentAdded,
		SceneID: sceneID,
		Comment: &domain.Comment{ID: 7, SceneID: sceneID, Content: "hi", AuthorID: forged, AuthorName: "mallory"},
	})

	got := drain(bob)
	require.Len(t, got, 1)
	require.Equal(t, alice.UserID, got[0].Comment.AuthorID)
	require.Equal(t, "alice", got[0].Comment.AuthorName)
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub(nil, Options{})
	sceneA := uuid.New()
	sceneB := uuid.New()

	alice := newTestConn("alice")
	bob := newTestConn("bob")
	hub.Join(alice, sceneA)
	hub.Join(bob, sceneB)

	hub.HandleEvent(alice, Event{
		Type:    EventCommentAdded,
		SceneID: sceneA,
		Comment: &domain.Comment{ID: 1, SceneID: sceneA, Content: "scoped"},
	})

	require.Empty(t, drain(bob), "members of other rooms must not receive the event")
}

func TestHubJoinReplacesMembership(t *testing.T) {
	hub := NewHub(nil, Options{})
	sceneA := uuid.New()
	sceneB := uuid.New()

	alice := newTestConn("alice")
	hub.Join(alice, sceneA)
	hub.Join(alice, sceneB)

	require.Equal(t, 0, hub.RoomSize(sceneA), "empty room should be destroyed")
	require.Equal(t, 1, hub.RoomSize(sceneB))
}

func TestHubLateJoinerMissesHistory(t *testing.T) {
	hub := NewHub(nil, Options{})
	sceneID := uuid.New()

	alice := newTestConn("alice")
	hub.Join(alice, sceneID)
	hub.HandleEvent(alice, Event{
		Type:    EventCommentAdded,
		SceneID: sceneID,
		Comment: &domain.Comment{ID: 1, SceneID: sceneID, Content: "before"},
	})

	late := newTestConn("late")
	hub.Join(late, sceneID)

	require.Empty(t, drain(late), "there is no replay of events sent before join")
}

func TestHubTypingEnrichment(t *testing.T) {
	hub := NewHub(nil, Options{})
	sceneID := uuid.New()

	alice := newTestConn("alice")
	bob := newTestConn("bob")
	hub.Join(alice, sceneID)
	hub.Join(bob, sceneID)

	hub.HandleEvent(alice, Event{Type: EventTyping, SceneID: sceneID, IsTyping: true})

	got := drain(bob)
	require.Len(t, got, 1)
	require.Equal(t, EventUserTyping, got[0].Type)
	require.Equal(t, alice.UserID, got[0].UserID)
	require.Equal(t, "alice", got[0].UserName)
	require.True(t, got[0].IsTyping)
}

func TestHubDeleteResolveAnnotationEnrichment(t *testing.T) {
	hub := NewHub(nil, Options{})
	sceneID := uuid.New()

	alice := newTestConn("alice")
	bob := newTestConn("bob")
	hub.Join(alice, sceneID)
	hub.Join(bob, sceneID)

	hub.HandleEvent(alice, Event{Type: EventCommentDeleted, SceneID: sceneID, CommentID: 1})
	hub.HandleEvent(alice, Event{Type: EventCommentResolved, SceneID: sceneID, CommentID: 2, Resolved: true})
	hub.HandleEvent(alice, Event{Type: EventAnnotationUpdated, SceneID: sceneID, CommentID: 3, Annotation: "{}"})

	got := drain(bob)
	require.Len(t, got, 3)
	require.Equal(t, "alice", got[0].DeletedBy)
	require.Equal(t, "alice", got[1].ResolvedBy)
	require.Equal(t, "alice", got[2].UpdatedBy)
}

func TestHubDropsMalformedEvents(t *testing.T) {
	hub := NewHub(nil, Options{})
	sceneID := uuid.New()

	alice := newTestConn("alice")
	bob := newTestConn("bob")
	hub.Join(alice, sceneID)
	hub.Join(bob, sceneID)

	// Missing scene id.
	hub.HandleEvent(alice, Event{Type: EventCommentDeleted, CommentID: 1})
	// Missing comment payload.
	hub.HandleEvent(alice, Event{Type: EventCommentAdded, SceneID: sceneID})
	// Unknown type.
	hub.HandleEvent(alice, Event{Type: "mystery", SceneID: sceneID})

	require.Empty(t, drain(bob))
	require.Empty(t, drain(alice), "rejections are silent by default")
}

func TestHubNotifyRejected(t *testing.T) {
	hub := NewHub(nil, Options{NotifyRejected: true})
	sceneID := uuid.New()

	alice := newTestConn("alice")
	hub.Join(alice, sceneID)

	hub.HandleEvent(alice, Event{Type: "mystery", SceneID: sceneID})

	got := drain(alice)
	require.Len(t, got, 1)
	require.Equal(t, EventError, got[0].Type)
	require.NotEmpty(t, got[0].Error)
}

func TestHubUnregisterCleansUp(t *testing.T) {
	hub := NewHub(nil, Options{})
	sceneID := uuid.New()

	alice := newTestConn("alice")
	bob := newTestConn("bob")
	hub.Join(alice, sceneID)
	hub.Join(bob, sceneID)

	hub.Unregister(alice)
	require.Equal(t, 1, hub.RoomSize(sceneID))

	_, open := <-alice.events
	require.False(t, open, "outbound stream must be closed on unregister")

	hub.Unregister(bob)
	require.Equal(t, 0, hub.RoomSize(sceneID))
}

func TestHubSlowConnectionDropsEvents(t *testing.T) {
	hub := NewHub(nil, Options{})
	sceneID := uuid.New()

	alice := newTestConn("alice")
	slow := NewConn(uuid.New(), "slow", 1)
	hub.Join(alice, sceneID)
	hub.Join(slow, sceneID)

	for i := int64(1); i <= 3; i++ {
		hub.HandleEvent(alice, Event{Type: EventCommentDeleted, SceneID: sceneID, CommentID: i})
	}

	got := drain(slow)
	require.Len(t, got, 1, "events past the buffer are dropped, not queued")
	require.Equal(t, int64(1), got[0].CommentID)
}

func TestEventMalformed(t *testing.T) {
	sceneID := uuid.New()

	cases := []struct {
		name  string
		event Event
		want  bool
	}{
		{"join ok", Event{Type: EventJoinRoom, SceneID: sceneID}, false},
		{"nil scene", Event{Type: EventJoinRoom}, true},
		{"added without comment", Event{Type: EventCommentAdded, SceneID: sceneID}, true},
		{"deleted without id", Event{Type: EventCommentDeleted, SceneID: sceneID}, true},
		{"resolved ok", Event{Type: EventCommentResolved, SceneID: sceneID, CommentID: 4}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.event.Malformed())
		})
	}
}
