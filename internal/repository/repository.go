package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserEmailExists = errors.New("user with email already exists")
	ErrStudioNotFound  = errors.New("studio not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrSceneNotFound   = errors.New("scene not found")
	ErrCommentNotFound = errors.New("comment not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User, passwordHash []byte) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, []byte, error)
	Update(ctx context.Context, user *domain.User) error
}

type StudioRepository interface {
	Create(ctx context.Context, studio *domain.Studio) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Studio, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Studio, error)
	Update(ctx context.Context, studio *domain.Studio) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, studioID, userID uuid.UUID) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	ListByStudio(ctx context.Context, studioID uuid.UUID) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SceneRepository interface {
	Create(ctx context.Context, scene *domain.Scene) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Scene, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Scene, error)
	Update(ctx context.Context, scene *domain.Scene) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository assigns ids on Create. Delete cascades to replies of
// the deleted comment.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByScene(ctx context.Context, sceneID uuid.UUID) ([]*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	ToggleResolve(ctx context.Context, id int64) (*domain.Comment, error)
	UpdateAnnotation(ctx context.Context, id int64, data string) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type ActivityRepository interface {
	Record(ctx context.Context, entry *domain.ActivityEntry) error
	ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.ActivityEntry, error)
}
