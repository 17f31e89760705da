package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/immxrtalbeast/frameboard/internal/domain"
	"github.com/immxrtalbeast/frameboard/internal/repository"
)

type commentFixture struct {
	service  *CommentService
	scenes   *repository.InMemorySceneRepository
	activity *repository.InMemoryActivityRepository
	scene    *domain.Scene
	actor    Actor
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()

	comments := repository.NewInMemoryCommentRepository()
	scenes := repository.NewInMemorySceneRepository()
	activity := repository.NewInMemoryActivityRepository()

	scene := domain.NewScene(uuid.New(), "opening shot", 1)
	require.NoError(t, scenes.Create(context.Background(), scene))

	return &commentFixture{
		service:  NewCommentService(comments, scenes, activity, nil),
		scenes:   scenes,
		activity: activity,
		scene:    scene,
		actor:    Actor{UserID: uuid.New(), Name: "alice"},
	}
}

func TestCommentServiceCreate(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment, err := f.service.CreateComment(ctx, f.actor, CommentInput{
		SceneID: f.scene.ID,
		Content: "  needs more contrast  ",
	})
	require.NoError(t, err)
	require.Positive(t, comment.ID)
	require.Equal(t, "needs more contrast", comment.Content)
	require.Equal(t, domain.TagComment, comment.Tag, "empty tag defaults")
	require.Equal(t, f.actor.UserID, comment.AuthorID)
	require.Equal(t, "alice", comment.AuthorName)

	entries, err := f.activity.ListByProject(ctx, f.scene.ProjectID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, domain.ActivityCommentAdded, entries[0].Action)
}

func TestCommentServiceCreateValidation(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateComment(ctx, f.actor, CommentInput{SceneID: f.scene.ID, Content: "   "})
	require.ErrorIs(t, err, ErrInvalidComment)

	_, err = f.service.CreateComment(ctx, f.actor, CommentInput{
		SceneID: f.scene.ID,
		Content: strings.Repeat("x", maxCommentLength+1),
	})
	require.ErrorIs(t, err, ErrInvalidComment)

	_, err = f.service.CreateComment(ctx, f.actor, CommentInput{
		SceneID: f.scene.ID,
		Content: "hello",
		Tag:     "shoutout",
	})
	require.ErrorIs(t, err, ErrInvalidComment)

	_, err = f.service.CreateComment(ctx, f.actor, CommentInput{
		SceneID:   f.scene.ID,
		Content:   "hello",
		ImageType: "hologram",
	})
	require.ErrorIs(t, err, ErrInvalidComment)

	_, err = f.service.CreateComment(ctx, f.actor, CommentInput{
		SceneID: uuid.New(),
		Content: "hello",
	})
	require.ErrorIs(t, err, repository.ErrSceneNotFound)
}

func TestCommentServiceCreateSketchOnly(t *testing.T) {
	f := newCommentFixture(t)

	comment, err := f.service.CreateComment(context.Background(), f.actor, CommentInput{
		SceneID:    f.scene.ID,
		SketchData: "data:image/png;base64,AAAA",
		ImageType:  domain.ImageSketch,
	})
	require.NoError(t, err, "a sketch payload alone is a valid comment")
	require.Empty(t, comment.Content)
}

func TestCommentServiceReplyInheritsScene(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	parent, err := f.service.CreateComment(ctx, f.actor, CommentInput{SceneID: f.scene.ID, Content: "top"})
	require.NoError(t, err)

	reply, err := f.service.CreateComment(ctx, f.actor, CommentInput{
		SceneID:  uuid.New(), // deliberately wrong, parent wins
		Content:  "reply",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)
	require.Equal(t, f.scene.ID, reply.SceneID)
	require.NotNil(t, reply.ParentID)
	require.Equal(t, parent.ID, *reply.ParentID)
}

func TestCommentServiceReplyToReplyReattaches(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	parent, err := f.service.CreateComment(ctx, f.actor, CommentInput{SceneID: f.scene.ID, Content: "top"})
	require.NoError(t, err)
	reply, err := f.service.CreateComment(ctx, f.actor, CommentInput{
		SceneID: f.scene.ID, Content: "reply", ParentID: &parent.ID,
	})
	require.NoError(t, err)

	nested, err := f.service.CreateComment(ctx, f.actor, CommentInput{
		SceneID: f.scene.ID, Content: "nested", ParentID: &reply.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, nested.ParentID)
	require.Equal(t, parent.ID, *nested.ParentID, "threading stays two levels deep")
}

func TestCommentServiceUpdate(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment, err := f.service.CreateComment(ctx, f.actor, CommentInput{SceneID: f.scene.ID, Content: "draft"})
	require.NoError(t, err)

	updated, err := f.service.UpdateComment(ctx, f.actor, comment.ID, "final", domain.TagRevision)
	require.NoError(t, err)
	require.Equal(t, "final", updated.Content)
	require.Equal(t, domain.TagRevision, updated.Tag)

	_, err = f.service.UpdateComment(ctx, f.actor, comment.ID, "x", "shoutout")
	require.ErrorIs(t, err, ErrInvalidComment)

	_, err = f.service.UpdateComment(ctx, f.actor, 404, "x", "")
	require.ErrorIs(t, err, repository.ErrCommentNotFound)
}

func TestCommentServiceUpdateRejectedLeavesStateIntact(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment, err := f.service.CreateComment(ctx, f.actor, CommentInput{SceneID: f.scene.ID, Content: "original"})
	require.NoError(t, err)

	_, err = f.service.UpdateComment(ctx, f.actor, comment.ID, "mutated", "shoutout")
	require.ErrorIs(t, err, ErrInvalidComment)

	stored, err := f.service.ListComments(ctx, f.scene.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "original", stored[0].Content, "rejected update must not write through")
	require.Equal(t, domain.TagComment, stored[0].Tag)
}

func TestCommentServiceToggleResolve(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment, err := f.service.CreateComment(ctx, f.actor, CommentInput{SceneID: f.scene.ID, Content: "check"})
	require.NoError(t, err)

	resolved, err := f.service.ToggleResolve(ctx, f.actor, comment.ID)
	require.NoError(t, err)
	require.True(t, resolved.Resolved)

	unresolved, err := f.service.ToggleResolve(ctx, f.actor, comment.ID)
	require.NoError(t, err)
	require.False(t, unresolved.Resolved)
}

func TestCommentServiceDeleteCascades(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	parent, err := f.service.CreateComment(ctx, f.actor, CommentInput{SceneID: f.scene.ID, Content: "top"})
	require.NoError(t, err)
	_, err = f.service.CreateComment(ctx, f.actor, CommentInput{
		SceneID: f.scene.ID, Content: "reply", ParentID: &parent.ID,
	})
	require.NoError(t, err)
	other, err := f.service.CreateComment(ctx, f.actor, CommentInput{SceneID: f.scene.ID, Content: "keep"})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteComment(ctx, f.actor, parent.ID))

	remaining, err := f.service.ListComments(ctx, f.scene.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, other.ID, remaining[0].ID)
}

func TestCommentServiceUpdateAnnotation(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment, err := f.service.CreateComment(ctx, f.actor, CommentInput{SceneID: f.scene.ID, Content: "mark"})
	require.NoError(t, err)

	updated, err := f.service.UpdateAnnotation(ctx, f.actor, comment.ID, `{"strokes":[]}`)
	require.NoError(t, err)
	require.Equal(t, `{"strokes":[]}`, updated.AnnotationData)
}
