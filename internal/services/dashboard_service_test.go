package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nahuatl/internal/models"
	"github.com/vytor/nahuatl/internal/services"
	"github.com/vytor/nahuatl/internal/testutil/mocks"
)

func TestDashboardService_Home(t *testing.T) {
	f := newFixture(t)

	home, err := f.dashboard.Home(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1250, home.Stats.TotalXP)
	require.Len(t, home.WeakWords, services.HomeWeakWords)
	assert.Equal(t, "Nimitztlazohtla", home.WeakWords[0].Nahuatl)
	require.NotNil(t, home.Recommended)
	assert.Equal(t, "unit-1", home.Recommended.Unit.ID)
	assert.Equal(t, "Time of Day Greetings", home.Recommended.Lesson.Title)
}

func TestDashboardService_Review(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	weak, err := f.dashboard.Review(ctx, models.WordTabWeak)
	require.NoError(t, err)
	assert.Len(t, weak.Words, 5)
	assert.Equal(t, 48, weak.AverageMastery)

	recent, err := f.dashboard.Review(ctx, models.WordTabRecent)
	require.NoError(t, err)
	assert.Len(t, recent.Words, 3)
	assert.Equal(t, 85, recent.AverageMastery)
}

func TestDashboardService_HomeWithoutOpenLesson(t *testing.T) {
	provider := new(mocks.MockCatalogProvider)
	provider.On("Stats", mock.Anything).Return(&models.LearnerStats{Level: 1}, nil)
	provider.On("Units", mock.Anything).Return([]models.Unit{
		{ID: "u1", Lessons: []models.Lesson{{ID: "a", IsCompleted: true}}},
		{ID: "u2", IsLocked: true, Lessons: []models.Lesson{{ID: "b"}}},
	}, nil)
	provider.On("Words", mock.Anything, models.WordFilter{Tab: models.WordTabWeak, Limit: services.HomeWeakWords}).Return([]models.Word{}, nil)

	home, err := services.NewDashboardService(provider).Home(context.Background())
	require.NoError(t, err)
	assert.Nil(t, home.Recommended)
	provider.AssertExpectations(t)
}
