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

type StudioService struct {
	studios repository.StudioRepository
	log     *slog.Logger
}

func NewStudioService(studios repository.StudioRepository, log *slog.Logger) *StudioService {
	if log == nil {
		log = slog.Default()
	}
	return &StudioService{studios: studios, log: log}
}

func (s *StudioService) CreateStudio(ctx context.Context, name string, owner uuid.UUID) (*domain.Studio, error) {
	const op = "service.studio.create"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("studio name is required")
	}
	if owner == uuid.Nil {
		return nil, errors.New("owner is required")
	}

	studio := domain.NewStudio(name, owner)
	if err := s.studios.Create(ctx, studio); err != nil {
		return nil, err
	}

	s.log.Info("studio created",
		slog.String("op", op),
		slog.String("studio_id", studio.ID.String()),
		slog.String("owner", owner.String()),
	)
	return studio, nil
}

func (s *StudioService) GetStudio(ctx context.Context, id uuid.UUID) (*domain.Studio, error) {
	return s.studios.GetByID(ctx, id)
}

func (s *StudioService) ListStudios(ctx context.Context, userID uuid.UUID) ([]*domain.Studio, error) {
	return s.studios.ListForUser(ctx, userID)
}

func (s *StudioService) RenameStudio(ctx context.Context, id uuid.UUID, name string) (*domain.Studio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("studio name is required")
	}

	studio, err := s.studios.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	studio.Name = name
	if err := s.studios.Update(ctx, studio); err != nil {
		return nil, err
	}
	return studio, nil
}

func (s *StudioService) DeleteStudio(ctx context.Context, id uuid.UUID) error {
	return s.studios.Delete(ctx, id)
}

func (s *StudioService) AddMember(ctx context.Context, studioID, userID uuid.UUID) error {
	const op = "service.studio.addMember"

	if userID == uuid.Nil {
		return errors.New("user id is required")
	}
	if err := s.studios.AddMember(ctx, studioID, userID); err != nil {
		return err
	}

	s.log.Info("member added",
		slog.String("op", op),
		slog.String("studio_id", studioID.String()),
		slog.String("user_id", userID.String()),
	)
	return nil
}
