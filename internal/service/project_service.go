package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
	"github.com/immxrtalbeast/frameboard/internal/repository"
)

type ProjectService struct {
	projects repository.ProjectRepository
	studios  repository.StudioRepository
	log      *slog.Logger
}

func NewProjectService(projects repository.ProjectRepository, studios repository.StudioRepository, log *slog.Logger) *ProjectService {
	if log == nil {
		log = slog.Default()
	}
	return &ProjectService{projects: projects, studios: studios, log: log}
}

func (s *ProjectService) CreateProject(ctx context.Context, studioID uuid.UUID, name, description string) (*domain.Project, error) {
	const op = "service.project.create"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("project name is required")
	}

	if _, err := s.studios.GetByID(ctx, studioID); err != nil {
		return nil, err
	}

	project := domain.NewProject(studioID, name, description)
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.log.Info("project created",
		slog.String("op", op),
		slog.String("project_id", project.ID.String()),
		slog.String("studio_id", studioID.String()),
	)
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *ProjectService) ListProjects(ctx context.Context, studioID uuid.UUID) ([]*domain.Project, error) {
	return s.projects.ListByStudio(ctx, studioID)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, name, description string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		project.Name = name
	}
	project.Description = description

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return s.projects.Delete(ctx, id)
}
