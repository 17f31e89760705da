package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/immxrtalbeast/frameboard/internal/domain"
	"github.com/immxrtalbeast/frameboard/internal/realtime"
)

// fakeWriter assigns sequential server ids, mimicking the comment service.
type fakeWriter struct {
	nextID  int64
	created []Draft
	fail    error
}

func (w *fakeWriter) Create(_ context.Context, draft Draft) (*domain.Comment, error) {
	if w.fail != nil {
		return nil, w.fail
	}
	w.nextID++
	w.created = append(w.created, draft)
	now := time.Now().UTC()
	return &domain.Comment{
		ID:        w.nextID,
		SceneID:   draft.SceneID,
		Content:   draft.Content,
		Tag:       draft.Tag,
		ParentID:  draft.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type fakeResolver struct {
	calls []int64
	fail  error
}

func (r *fakeResolver) ToggleResolve(_ context.Context, id int64) error {
	r.calls = append(r.calls, id)
	return r.fail
}

func seedComment(id int64, sceneID uuid.UUID, content string, tag domain.CommentTag, parentID *int64) *domain.Comment {
	return &domain.Comment{ID: id, SceneID: sceneID, Content: content, Tag: tag, ParentID: parentID}
}

func TestControllerAddComment(t *testing.T) {
	writer := &fakeWriter{}
	ctrl := NewController(writer, nil)
	sceneID := uuid.New()

	comment, err := ctrl.AddComment(context.Background(), Draft{SceneID: sceneID, Content: "hello"})
	require.NoError(t, err)
	require.Equal(t, int64(1), comment.ID)
	require.Equal(t, domain.TagComment, comment.Tag, "empty tag defaults")

	got := ctrl.FilteredComments(sceneID)
	require.Len(t, got, 1)
	require.Equal(t, "hello", got[0].Content)
}

func TestControllerAddCommentAnnounces(t *testing.T) {
	writer := &fakeWriter{}
	ctrl := NewController(writer, nil)
	sceneID := uuid.New()

	var announced []realtime.Event
	ctrl.SetAnnouncer(func(event realtime.Event) {
		announced = append(announced, event)
	})

	comment, err := ctrl.AddComment(context.Background(), Draft{SceneID: sceneID, Content: "hello"})
	require.NoError(t, err)

	require.Len(t, announced, 1)
	require.Equal(t, realtime.EventCommentAdded, announced[0].Type)
	require.Equal(t, sceneID, announced[0].SceneID)
	require.NotNil(t, announced[0].Comment)
	require.Equal(t, comment.ID, announced[0].Comment.ID)
}

func TestControllerAddCommentOfflineSkipsAnnounce(t *testing.T) {
	writer := &fakeWriter{fail: errors.New("connection refused")}
	ctrl := NewController(writer, nil)

	var announced []realtime.Event
	ctrl.SetAnnouncer(func(event realtime.Event) {
		announced = append(announced, event)
	})

	_, err := ctrl.AddComment(context.Background(), Draft{SceneID: uuid.New(), Content: "offline"})
	require.NoError(t, err)
	require.Empty(t, announced, "a placeholder id must never reach the room")
}

func TestControllerAddCommentOfflineFallback(t *testing.T) {
	writer := &fakeWriter{fail: errors.New("connection refused")}
	ctrl := NewController(writer, nil)
	sceneID := uuid.New()

	first, err := ctrl.AddComment(context.Background(), Draft{SceneID: sceneID, Content: "offline"})
	require.NoError(t, err, "write failure must not lose user input")
	require.Positive(t, first.ID)

	second, err := ctrl.AddComment(context.Background(), Draft{SceneID: sceneID, Content: "still offline"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID, "placeholder ids must be unique")

	require.Len(t, ctrl.FilteredComments(sceneID), 2)
}

func TestControllerAddReply(t *testing.T) {
	writer := &fakeWriter{nextID: 100}
	ctrl := NewController(writer, nil)
	sceneID := uuid.New()
	ctrl.LoadScene(sceneID, []*domain.Comment{
		seedComment(1, sceneID, "top", domain.TagComment, nil),
	})

	reply, err := ctrl.AddReply(context.Background(), 1, "  a reply  ")
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	require.Equal(t, int64(1), *reply.ParentID)
	require.Equal(t, sceneID, reply.SceneID, "reply inherits the parent's scene")
	require.Equal(t, "a reply", reply.Content)
}

func TestControllerAddReplyWhitespaceNoop(t *testing.T) {
	writer := &fakeWriter{}
	ctrl := NewController(writer, nil)

	reply, err := ctrl.AddReply(context.Background(), 1, "   \n\t ")
	require.NoError(t, err)
	require.Nil(t, reply)
	require.Empty(t, writer.created)
}

func TestControllerAddReplyToReplyReattaches(t *testing.T) {
	writer := &fakeWriter{nextID: 100}
	ctrl := NewController(writer, nil)
	sceneID := uuid.New()
	parentID := int64(1)
	ctrl.LoadScene(sceneID, []*domain.Comment{
		seedComment(1, sceneID, "top", domain.TagComment, nil),
		seedComment(2, sceneID, "child", domain.TagComment, &parentID),
	})

	reply, err := ctrl.AddReply(context.Background(), 2, "nested attempt")
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	require.Equal(t, int64(1), *reply.ParentID, "threading stays two levels deep")
}

func TestControllerAddReplyUnknownParent(t *testing.T) {
	ctrl := NewController(&fakeWriter{}, nil)

	_, err := ctrl.AddReply(context.Background(), 404, "orphan")
	require.ErrorIs(t, err, ErrParentNotFound)
}

func TestControllerToggleResolve(t *testing.T) {
	ctrl := NewController(&fakeWriter{}, nil)
	sceneID := uuid.New()
	ctrl.LoadScene(sceneID, []*domain.Comment{
		seedComment(1, sceneID, "top", domain.TagComment, nil),
	})

	require.True(t, ctrl.ToggleResolve(context.Background(), 1))
	require.True(t, ctrl.FilteredComments(sceneID)[0].Resolved)

	require.True(t, ctrl.ToggleResolve(context.Background(), 1))
	require.False(t, ctrl.FilteredComments(sceneID)[0].Resolved)

	require.False(t, ctrl.ToggleResolve(context.Background(), 404))
}

func TestControllerToggleResolveWriteThrough(t *testing.T) {
	ctrl := NewController(&fakeWriter{}, nil)
	resolver := &fakeResolver{fail: errors.New("boom")}
	ctrl.SetResolveWriter(resolver)
	sceneID := uuid.New()
	ctrl.LoadScene(sceneID, []*domain.Comment{
		seedComment(1, sceneID, "top", domain.TagComment, nil),
	})

	require.True(t, ctrl.ToggleResolve(context.Background(), 1))
	require.Equal(t, []int64{1}, resolver.calls)
	require.True(t, ctrl.FilteredComments(sceneID)[0].Resolved,
		"write-through failure does not undo the local flip")
}

func TestControllerReplyTarget(t *testing.T) {
	ctrl := NewController(&fakeWriter{}, nil)

	_, open := ctrl.ReplyTarget()
	require.False(t, open)

	ctrl.OpenReply(5)
	target, open := ctrl.ReplyTarget()
	require.True(t, open)
	require.Equal(t, int64(5), target)

	ctrl.OpenReply(9)
	target, _ = ctrl.ReplyTarget()
	require.Equal(t, int64(9), target, "opening a reply closes the previous one")

	ctrl.CloseReply()
	_, open = ctrl.ReplyTarget()
	require.False(t, open)
}

func TestControllerFilteredComments(t *testing.T) {
	ctrl := NewController(&fakeWriter{}, nil)
	sceneID := uuid.New()
	otherScene := uuid.New()
	ctrl.LoadScene(sceneID, []*domain.Comment{
		seedComment(1, sceneID, "plain", domain.TagComment, nil),
		seedComment(2, sceneID, "fix this", domain.TagRevision, nil),
		seedComment(3, sceneID, "circle here", domain.TagAnnotation, nil),
	})
	ctrl.LoadScene(otherScene, []*domain.Comment{
		seedComment(4, otherScene, "elsewhere", domain.TagComment, nil),
	})

	require.Len(t, ctrl.FilteredComments(sceneID), 3)

	ctrl.SetFilter(FilterRevision)
	got := ctrl.FilteredComments(sceneID)
	require.Len(t, got, 1)
	require.Equal(t, int64(2), got[0].ID)

	ctrl.SetFilter(FilterAll)
	ids := []int64{}
	for _, comment := range ctrl.FilteredComments(sceneID) {
		ids = append(ids, comment.ID)
	}
	require.Equal(t, []int64{1, 2, 3}, ids, "insertion order is preserved")
}

func TestControllerApplyEventIdempotentAdd(t *testing.T) {
	ctrl := NewController(&fakeWriter{}, nil)
	sceneID := uuid.New()

	var added int
	ctrl.SetHooks(Hooks{OnCommentAdded: func(*domain.Comment) { added++ }})

	event := realtime.Event{
		Type:    realtime.EventCommentAdded,
		SceneID: sceneID,
		Comment: seedComment(1, sceneID, "hello", domain.TagComment, nil),
	}
	ctrl.ApplyEvent(event)
	ctrl.ApplyEvent(event)

	require.Len(t, ctrl.FilteredComments(sceneID), 1)
	require.Equal(t, 1, added, "duplicate delivery fires the hook once")
}

func TestControllerApplyEventUpdateMutableFieldsOnly(t *testing.T) {
	ctrl := NewController(&fakeWriter{}, nil)
	sceneID := uuid.New()
	ctrl.LoadScene(sceneID, []*domain.Comment{
		seedComment(1, sceneID, "original", domain.TagComment, nil),
	})

	update := seedComment(1, uuid.New(), "edited", domain.TagRevision, nil)
	update.Resolved = true
	ctrl.ApplyEvent(realtime.Event{Type: realtime.EventCommentUpdated, SceneID: sceneID, Comment: update})

	got := ctrl.FilteredComments(sceneID)
	require.Len(t, got, 1, "scene id never moves on update")
	require.Equal(t, "edited", got[0].Content)
	require.Equal(t, domain.TagRevision, got[0].Tag)
	require.True(t, got[0].Resolved)
}

func TestControllerApplyEventDeleteCascades(t *testing.T) {
	ctrl := NewController(&fakeWriter{}, nil)
	sceneID := uuid.New()
	parentID := int64(1)
	ctrl.LoadScene(sceneID, []*domain.Comment{
		seedComment(1, sceneID, "top", domain.TagComment, nil),
		seedComment(2, sceneID, "child", domain.TagComment, &parentID),
		seedComment(3, sceneID, "unrelated", domain.TagComment, nil),
	})

	ctrl.ApplyEvent(realtime.Event{Type: realtime.EventCommentDeleted, SceneID: sceneID, CommentID: 1})

	got := ctrl.FilteredComments(sceneID)
	require.Len(t, got, 1)
	require.Equal(t, int64(3), got[0].ID)
}

func TestControllerApplyEventUnknownIDDropped(t *testing.T) {
	ctrl := NewController(&fakeWriter{}, nil)
	sceneID := uuid.New()

	var resolved, deleted int
	ctrl.SetHooks(Hooks{
		OnCommentResolved: func(int64, bool, string) { resolved++ },
		OnCommentDeleted:  func(int64, string) { deleted++ },
	})

	ctrl.ApplyEvent(realtime.Event{Type: realtime.EventCommentResolved, SceneID: sceneID, CommentID: 404, Resolved: true})
	ctrl.ApplyEvent(realtime.Event{Type: realtime.EventCommentDeleted, SceneID: sceneID, CommentID: 404})

	require.Zero(t, resolved)
	require.Zero(t, deleted)
	require.Empty(t, ctrl.FilteredComments(sceneID), "partial payloads never become synthetic comments")
}

func TestControllerApplyEventTyping(t *testing.T) {
	ctrl := NewController(&fakeWriter{}, nil)

	var gotName string
	var gotTyping bool
	ctrl.SetHooks(Hooks{OnTyping: func(_ uuid.UUID, name string, isTyping bool) {
		gotName = name
		gotTyping = isTyping
	}})

	ctrl.ApplyEvent(realtime.Event{
		Type:     realtime.EventUserTyping,
		SceneID:  uuid.New(),
		UserName: "alice",
		IsTyping: true,
	})

	require.Equal(t, "alice", gotName)
	require.True(t, gotTyping)
}

func TestControllerLoadSceneReplaces(t *testing.T) {
	ctrl := NewController(&fakeWriter{}, nil)
	sceneID := uuid.New()
	ctrl.LoadScene(sceneID, []*domain.Comment{
		seedComment(1, sceneID, "stale", domain.TagComment, nil),
	})
	ctrl.LoadScene(sceneID, []*domain.Comment{
		seedComment(2, sceneID, "fresh", domain.TagComment, nil),
	})

	got := ctrl.FilteredComments(sceneID)
	require.Len(t, got, 1)
	require.Equal(t, "fresh", got[0].Content)
}
