package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
)

type AuthInteractor interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type StudioInteractor interface {
	CreateStudio(ctx context.Context, name string, owner uuid.UUID) (*domain.Studio, error)
	GetStudio(ctx context.Context, id uuid.UUID) (*domain.Studio, error)
	ListStudios(ctx context.Context, userID uuid.UUID) ([]*domain.Studio, error)
	RenameStudio(ctx context.Context, id uuid.UUID, name string) (*domain.Studio, error)
	DeleteStudio(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, studioID, userID uuid.UUID) error
}

type ProjectInteractor interface {
	CreateProject(ctx context.Context, studioID uuid.UUID, name, description string) (*domain.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	ListProjects(ctx context.Context, studioID uuid.UUID) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, name, description string) (*domain.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type SceneInteractor interface {
	CreateScene(ctx context.Context, actor Actor, projectID uuid.UUID, title string, position int) (*domain.Scene, error)
	GetScene(ctx context.Context, id uuid.UUID) (*domain.Scene, error)
	ListScenes(ctx context.Context, projectID uuid.UUID) ([]*domain.Scene, error)
	UpdateScene(ctx context.Context, actor Actor, id uuid.UUID, title string, position *int) (*domain.Scene, error)
	DeleteScene(ctx context.Context, actor Actor, id uuid.UUID) error
	AttachImageDataURL(ctx context.Context, actor Actor, sceneID uuid.UUID, variant domain.ImageType, dataURL string) (*domain.Scene, error)
}

type CommentInteractor interface {
	CreateComment(ctx context.Context, actor Actor, input CommentInput) (*domain.Comment, error)
	ListComments(ctx context.Context, sceneID uuid.UUID) ([]*domain.Comment, error)
	UpdateComment(ctx context.Context, actor Actor, id int64, content string, tag domain.CommentTag) (*domain.Comment, error)
	ToggleResolve(ctx context.Context, actor Actor, id int64) (*domain.Comment, error)
	UpdateAnnotation(ctx context.Context, actor Actor, id int64, data string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, actor Actor, id int64) error
}

type ActivityInteractor interface {
	ListActivity(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.ActivityEntry, error)
}

// Actor identifies the authenticated user performing an operation, as bound
// by the auth middleware or the realtime handshake.
type Actor struct {
	UserID uuid.UUID
	Name   string
}

// CommentInput is the user-supplied part of a new comment; author fields
// always come from the Actor, never from the caller payload.
type CommentInput struct {
	SceneID        uuid.UUID
	Content        string
	Tag            domain.CommentTag
	ParentID       *int64
	SketchData     string
	AnnotationData string
	ImageType      domain.ImageType
}
