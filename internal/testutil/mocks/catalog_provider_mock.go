package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/nahuatl/internal/models"
)

// MockCatalogProvider is a mock implementation of catalog.Provider
type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) Units(ctx context.Context) ([]models.Unit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Unit), args.Error(1)
}

func (m *MockCatalogProvider) Unit(ctx context.Context, id string) (*models.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Unit), args.Error(1)
}

func (m *MockCatalogProvider) Lessons(ctx context.Context, unitID string) ([]models.Lesson, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lesson), args.Error(1)
}

func (m *MockCatalogProvider) Lesson(ctx context.Context, lessonID string) (*models.Lesson, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockCatalogProvider) Exercises(ctx context.Context, lessonID string) ([]models.Exercise, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exercise), args.Error(1)
}

func (m *MockCatalogProvider) Words(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Word), args.Error(1)
}

func (m *MockCatalogProvider) Stats(ctx context.Context) (*models.LearnerStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnerStats), args.Error(1)
}
