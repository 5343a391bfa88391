package catalog

import (
	"context"

	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/models"
	"github.com/vytor/nahuatl/internal/repository"
)

// Provider is read-only access to the learning content.
type Provider interface {
	Units(ctx context.Context) ([]models.Unit, error)
	// Unit returns the fallback unit when id is unknown.
	Unit(ctx context.Context, id string) (*models.Unit, error)
	Lessons(ctx context.Context, unitID string) ([]models.Lesson, error)
	Lesson(ctx context.Context, lessonID string) (*models.Lesson, error)
	// Exercises returns the lesson's own exercises, or the default set.
	Exercises(ctx context.Context, lessonID string) ([]models.Exercise, error)
	Words(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	Stats(ctx context.Context) (*models.LearnerStats, error)
}

type service struct {
	repo repository.CatalogRepository
}

func NewService(repo repository.CatalogRepository) Provider {
	return &service{repo: repo}
}

func (s *service) Units(ctx context.Context) ([]models.Unit, error) {
	units, err := s.repo.ListUnits(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return units, nil
}

func (s *service) Unit(ctx context.Context, id string) (*models.Unit, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	unit, err := s.repo.GetUnit(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if unit != nil {
		return unit, nil
	}

	log.Debug("unknown unit %q, using fallback", id)
	unit, err = s.repo.FallbackUnit(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if unit == nil {
		return nil, errors.NewNotFoundError("unit", id)
	}
	return unit, nil
}

func (s *service) Lessons(ctx context.Context, unitID string) ([]models.Lesson, error) {
	unit, err := s.Unit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	return unit.Lessons, nil
}

func (s *service) Lesson(ctx context.Context, lessonID string) (*models.Lesson, error) {
	lesson, err := s.repo.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, errors.NewNotFoundError("lesson", lessonID)
	}
	return lesson, nil
}

func (s *service) Exercises(ctx context.Context, lessonID string) ([]models.Exercise, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	if _, err := s.Lesson(ctx, lessonID); err != nil {
		return nil, err
	}
	exercises, err := s.repo.Exercises(ctx, lessonID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if len(exercises) > 0 {
		return exercises, nil
	}

	log.Debug("lesson %s has no exercises, using default set", lessonID)
	exercises, err = s.repo.Exercises(ctx, "")
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return exercises, nil
}

func (s *service) Words(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	words, err := s.repo.Words(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return words, nil
}

func (s *service) Stats(ctx context.Context) (*models.LearnerStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if stats == nil {
		return &models.LearnerStats{}, nil
	}
	return stats, nil
}
