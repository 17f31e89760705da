package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
	"github.com/immxrtalbeast/frameboard/internal/repository"
)

type ActivityService struct {
	activity repository.ActivityRepository
	log      *slog.Logger
}

func NewActivityService(activity repository.ActivityRepository, log *slog.Logger) *ActivityService {
	if log == nil {
		log = slog.Default()
	}
	return &ActivityService{activity: activity, log: log}
}

func (s *ActivityService) ListActivity(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.ActivityEntry, error) {
	return s.activity.ListByProject(ctx, projectID, limit)
}
