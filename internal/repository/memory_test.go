package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/immxrtalbeast/frameboard/internal/domain"
)

func TestInMemoryUserRepository(t *testing.T) {
	repo := NewInMemoryUserRepository()
	ctx := context.Background()

	user := domain.NewUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, user, []byte("hash")))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Name)

	byEmail, hash, err := repo.GetByEmail(ctx, "ALICE@EXAMPLE.COM")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)
	require.Equal(t, []byte("hash"), hash)

	dup := domain.NewUser("other", "Alice@Example.com")
	require.ErrorIs(t, repo.Create(ctx, dup, []byte("h")), ErrUserEmailExists)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestInMemoryStudioRepositoryMembership(t *testing.T) {
	repo := NewInMemoryStudioRepository()
	ctx := context.Background()

	owner := uuid.New()
	member := uuid.New()
	outsider := uuid.New()

	studio := domain.NewStudio("frames", owner)
	require.NoError(t, repo.Create(ctx, studio))
	require.NoError(t, repo.AddMember(ctx, studio.ID, member))
	// Adding twice is a no-op.
	require.NoError(t, repo.AddMember(ctx, studio.ID, member))

	forOwner, err := repo.ListForUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, forOwner, 1)

	forMember, err := repo.ListForUser(ctx, member)
	require.NoError(t, err)
	require.Len(t, forMember, 1)
	require.Len(t, forMember[0].MemberIDs, 2)

	forOutsider, err := repo.ListForUser(ctx, outsider)
	require.NoError(t, err)
	require.Empty(t, forOutsider)

	require.ErrorIs(t, repo.AddMember(ctx, uuid.New(), member), ErrStudioNotFound)
}

func TestInMemoryCommentRepository(t *testing.T) {
	repo := NewInMemoryCommentRepository()
	ctx := context.Background()
	sceneID := uuid.New()

	first := &domain.Comment{SceneID: sceneID, Content: "first"}
	second := &domain.Comment{SceneID: sceneID, Content: "second"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.Equal(t, int64(1), first.ID, "ids are assigned on create")
	require.Equal(t, int64(2), second.ID)

	list, err := repo.ListByScene(ctx, sceneID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "first", list[0].Content, "listing preserves creation order")

	resolved, err := repo.ToggleResolve(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, resolved.Resolved)

	_, err = repo.GetByID(ctx, 404)
	require.ErrorIs(t, err, ErrCommentNotFound)
}

func TestInMemoryCommentRepositoryDeleteCascades(t *testing.T) {
	repo := NewInMemoryCommentRepository()
	ctx := context.Background()
	sceneID := uuid.New()

	parent := &domain.Comment{SceneID: sceneID, Content: "top"}
	require.NoError(t, repo.Create(ctx, parent))
	reply := &domain.Comment{SceneID: sceneID, Content: "child", ParentID: &parent.ID}
	require.NoError(t, repo.Create(ctx, reply))
	other := &domain.Comment{SceneID: sceneID, Content: "keep"}
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.Delete(ctx, parent.ID))

	list, err := repo.ListByScene(ctx, sceneID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, other.ID, list[0].ID)

	require.ErrorIs(t, repo.Delete(ctx, parent.ID), ErrCommentNotFound)
}

func TestInMemoryActivityRepositoryLimit(t *testing.T) {
	repo := NewInMemoryActivityRepository()
	ctx := context.Background()
	projectID := uuid.New()

	for i := 0; i < 5; i++ {
		entry := domain.NewActivityEntry(projectID, uuid.New(), "alice", domain.ActivityCommentAdded, "")
		require.NoError(t, repo.Record(ctx, entry))
	}
	stray := domain.NewActivityEntry(uuid.New(), uuid.New(), "bob", domain.ActivitySceneCreated, "")
	require.NoError(t, repo.Record(ctx, stray))

	entries, err := repo.ListByProject(ctx, projectID, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, int64(5), entries[0].ID, "newest first")

	all, err := repo.ListByProject(ctx, projectID, 0)
	require.NoError(t, err)
	require.Len(t, all, 5, "non-positive limit falls back to the default")
}
