package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
	"github.com/immxrtalbeast/frameboard/internal/repository"
	"github.com/immxrtalbeast/frameboard/internal/storage/images"
	"github.com/immxrtalbeast/frameboard/lib/logger/sl"
)

type SceneService struct {
	scenes   repository.SceneRepository
	projects repository.ProjectRepository
	activity repository.ActivityRepository
	store    *images.Store
	log      *slog.Logger
}

func NewSceneService(
	scenes repository.SceneRepository,
	projects repository.ProjectRepository,
	activity repository.ActivityRepository,
	store *images.Store,
	log *slog.Logger,
) *SceneService {
	if log == nil {
		log = slog.Default()
	}
	return &SceneService{
		scenes:   scenes,
		projects: projects,
		activity: activity,
		store:    store,
		log:      log,
	}
}

func (s *SceneService) CreateScene(ctx context.Context, actor Actor, projectID uuid.UUID, title string, position int) (*domain.Scene, error) {
	const op = "service.scene.create"

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("scene title is required")
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	scene := domain.NewScene(projectID, title, position)
	if err := s.scenes.Create(ctx, scene); err != nil {
		return nil, err
	}

	s.record(ctx, projectID, actor, domain.ActivitySceneCreated, title)
	s.log.Info("scene created",
		slog.String("op", op),
		slog.String("scene_id", scene.ID.String()),
		slog.String("project_id", projectID.String()),
	)
	return scene, nil
}

func (s *SceneService) GetScene(ctx context.Context, id uuid.UUID) (*domain.Scene, error) {
	return s.scenes.GetByID(ctx, id)
}

func (s *SceneService) ListScenes(ctx context.Context, projectID uuid.UUID) ([]*domain.Scene, error) {
	return s.scenes.ListByProject(ctx, projectID)
}

func (s *SceneService) UpdateScene(ctx context.Context, actor Actor, id uuid.UUID, title string, position *int) (*domain.Scene, error) {
	scene, err := s.scenes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title = strings.TrimSpace(title); title != "" {
		scene.Title = title
	}
	// Position zero is a valid slot, so only a present field reorders.
	if position != nil {
		scene.Position = *position
	}

	if err := s.scenes.Update(ctx, scene); err != nil {
		return nil, err
	}

	s.record(ctx, scene.ProjectID, actor, domain.ActivitySceneUpdated, scene.Title)
	return scene, nil
}

func (s *SceneService) DeleteScene(ctx context.Context, actor Actor, id uuid.UUID) error {
	scene, err := s.scenes.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.scenes.Delete(ctx, id); err != nil {
		return err
	}

	for _, rel := range []string{scene.SketchPath, scene.ArtworkPath} {
		if rel == "" {
			continue
		}
		if err := s.store.Delete(rel); err != nil {
			s.log.Warn("failed to remove scene image", slog.String("path", rel), sl.Err(err))
		}
	}

	s.record(ctx, scene.ProjectID, actor, domain.ActivitySceneDeleted, scene.Title)
	return nil
}

// AttachImageDataURL stores a data-URL payload as the scene's sketch or
// artwork image and records the stored path on the scene.
func (s *SceneService) AttachImageDataURL(ctx context.Context, actor Actor, sceneID uuid.UUID, variant domain.ImageType, dataURL string) (*domain.Scene, error) {
	const op = "service.scene.attachImage"

	scene, err := s.scenes.GetByID(ctx, sceneID)
	if err != nil {
		return nil, err
	}

	rel, err := s.store.SaveDataURL(sceneID, variant, dataURL)
	if err != nil {
		s.log.Info("image save failed", slog.String("op", op), sl.Err(err))
		return nil, err
	}

	scene.SetImagePath(variant, rel)
	if err := s.scenes.Update(ctx, scene); err != nil {
		return nil, err
	}

	s.record(ctx, scene.ProjectID, actor, domain.ActivityImageAttached, fmt.Sprintf("%s: %s", scene.Title, variant))
	return scene, nil
}

// record appends an activity entry best-effort; audit failures never fail
// the operation itself.
func (s *SceneService) record(ctx context.Context, projectID uuid.UUID, actor Actor, action domain.ActivityAction, detail string) {
	entry := domain.NewActivityEntry(projectID, actor.UserID, actor.Name, action, detail)
	if err := s.activity.Record(ctx, entry); err != nil {
		s.log.Warn("failed to record activity", slog.String("action", string(action)), sl.Err(err))
	}
}
