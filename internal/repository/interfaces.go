package repository

import (
	"context"

	"github.com/vytor/nahuatl/internal/models"
)

// FlagRepository persists per-device session flags. Get reports ok=false for
// an absent key.
type FlagRepository interface {
	Get(ctx context.Context, deviceID, key string) (string, bool, error)
	Set(ctx context.Context, deviceID, key, value string) error
	Delete(ctx context.Context, deviceID, key string) error
}

// CatalogRepository handles read access to learning content and its bulk
// replacement on import. Lookups of unknown ids return nil without error.
type CatalogRepository interface {
	ListUnits(ctx context.Context) ([]models.Unit, error)
	GetUnit(ctx context.Context, id string) (*models.Unit, error)
	FallbackUnit(ctx context.Context) (*models.Unit, error)
	GetLesson(ctx context.Context, id string) (*models.Lesson, error)
	// Exercises returns the exercises authored for lessonID; an empty
	// lessonID selects the shared default set.
	Exercises(ctx context.Context, lessonID string) ([]models.Exercise, error)
	Words(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	Stats(ctx context.Context) (*models.LearnerStats, error)
	ReplaceContent(ctx context.Context, content models.CatalogContent) error
}
