package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
	"github.com/immxrtalbeast/frameboard/internal/repository"
	"github.com/immxrtalbeast/frameboard/lib/logger/sl"
)

const maxCommentLength = 4000

// ErrInvalidComment marks validation failures the transport layer should
// answer with a client error rather than a server one.
var ErrInvalidComment = errors.New("invalid comment")

type CommentService struct {
	comments repository.CommentRepository
	scenes   repository.SceneRepository
	activity repository.ActivityRepository
	log      *slog.Logger
}

func NewCommentService(
	comments repository.CommentRepository,
	scenes repository.SceneRepository,
	activity repository.ActivityRepository,
	log *slog.Logger,
) *CommentService {
	if log == nil {
		log = slog.Default()
	}
	return &CommentService{
		comments: comments,
		scenes:   scenes,
		activity: activity,
		log:      log,
	}
}

// CreateComment validates and durably stores a comment. Author identity
// comes from the actor, never from the input. Threading is kept two levels
// deep: a reply addressed to another reply is reattached to that reply's
// top-level parent, and inherits the parent's scene.
func (s *CommentService) CreateComment(ctx context.Context, actor Actor, input CommentInput) (*domain.Comment, error) {
	const op = "service.comment.create"
	log := s.log.With(slog.String("op", op), slog.String("user_id", actor.UserID.String()))

	content := strings.TrimSpace(input.Content)
	if content == "" && input.SketchData == "" && input.AnnotationData == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidComment)
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, fmt.Errorf("%w: content is too long", ErrInvalidComment)
	}

	tag := input.Tag
	if tag == "" {
		tag = domain.TagComment
	}
	if !tag.Valid() {
		return nil, fmt.Errorf("%w: unknown tag %q", ErrInvalidComment, tag)
	}
	if input.ImageType != "" && !input.ImageType.Valid() {
		return nil, fmt.Errorf("%w: unknown image type %q", ErrInvalidComment, input.ImageType)
	}

	sceneID := input.SceneID
	parentID := input.ParentID
	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.ParentID != nil {
			// Reattach to the top-level parent rather than deepening the
			// thread.
			reattached := *parent.ParentID
			parentID = &reattached
			if top, err := s.comments.GetByID(ctx, reattached); err == nil {
				parent = top
			}
		}
		sceneID = parent.SceneID
	}

	if _, err := s.scenes.GetByID(ctx, sceneID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		SceneID:        sceneID,
		AuthorID:       actor.UserID,
		AuthorName:     actor.Name,
		Content:        content,
		Tag:            tag,
		ParentID:       parentID,
		SketchData:     input.SketchData,
		AnnotationData: input.AnnotationData,
		ImageType:      input.ImageType,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		log.Error("comment create failed", sl.Err(err))
		return nil, err
	}

	s.recordForScene(ctx, sceneID, actor, domain.ActivityCommentAdded, content)
	log.Info("comment created",
		slog.Int64("comment_id", comment.ID),
		slog.String("scene_id", sceneID.String()),
	)
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, sceneID uuid.UUID) ([]*domain.Comment, error) {
	return s.comments.ListByScene(ctx, sceneID)
}

func (s *CommentService) UpdateComment(ctx context.Context, actor Actor, id int64, content string, tag domain.CommentTag) (*domain.Comment, error) {
	// Validate before touching the entity. The in-memory repository hands
	// out live pointers, so a rejected update must not leave partial writes.
	if tag != "" && !tag.Valid() {
		return nil, fmt.Errorf("%w: unknown tag %q", ErrInvalidComment, tag)
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if content = strings.TrimSpace(content); content != "" {
		comment.Content = content
	}
	if tag != "" {
		comment.Tag = tag
	}

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.recordForScene(ctx, comment.SceneID, actor, domain.ActivityCommentUpdated, comment.Content)
	return comment, nil
}

func (s *CommentService) ToggleResolve(ctx context.Context, actor Actor, id int64) (*domain.Comment, error) {
	comment, err := s.comments.ToggleResolve(ctx, id)
	if err != nil {
		return nil, err
	}

	s.recordForScene(ctx, comment.SceneID, actor, domain.ActivityCommentResolved,
		fmt.Sprintf("resolved=%t", comment.Resolved))
	return comment, nil
}

func (s *CommentService) UpdateAnnotation(ctx context.Context, actor Actor, id int64, data string) (*domain.Comment, error) {
	comment, err := s.comments.UpdateAnnotation(ctx, id, data)
	if err != nil {
		return nil, err
	}

	s.recordForScene(ctx, comment.SceneID, actor, domain.ActivityAnnotationUpdated, "")
	return comment, nil
}

// DeleteComment removes the comment; the repository cascades to replies.
func (s *CommentService) DeleteComment(ctx context.Context, actor Actor, id int64) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.recordForScene(ctx, comment.SceneID, actor, domain.ActivityCommentDeleted, comment.Content)
	return nil
}

func (s *CommentService) recordForScene(ctx context.Context, sceneID uuid.UUID, actor Actor, action domain.ActivityAction, detail string) {
	scene, err := s.scenes.GetByID(ctx, sceneID)
	if err != nil {
		s.log.Warn("activity skipped, scene lookup failed", sl.Err(err))
		return
	}
	entry := domain.NewActivityEntry(scene.ProjectID, actor.UserID, actor.Name, action, detail)
	if err := s.activity.Record(ctx, entry); err != nil {
		s.log.Warn("failed to record activity", slog.String("action", string(action)), sl.Err(err))
	}
}
