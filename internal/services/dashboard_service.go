package services

import (
	"context"

	"github.com/vytor/nahuatl/internal/catalog"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/models"
)

// HomeWeakWords is how many weak words the home screen lists.
const HomeWeakWords = 3

// Recommendation points at the next lesson to take.
type Recommendation struct {
	Unit   models.Unit
	Lesson models.Lesson
}

type HomeView struct {
	Stats       models.LearnerStats
	Recommended *Recommendation
	WeakWords   []models.Word
}

type ReviewView struct {
	Tab            models.WordTab
	Words          []models.Word
	AverageMastery int
}

// DashboardService assembles the read-only home and review screens
type DashboardService interface {
	Home(ctx context.Context) (*HomeView, error)
	Review(ctx context.Context, tab models.WordTab) (*ReviewView, error)
	Stats(ctx context.Context) (*models.LearnerStats, error)
}

type dashboardService struct {
	catalog catalog.Provider
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(provider catalog.Provider) DashboardService {
	return &dashboardService{catalog: provider}
}

func (s *dashboardService) Home(ctx context.Context) (*HomeView, error) {
	log := logger.FromContext(ctx)
	log.Debug("building home view")

	stats, err := s.catalog.Stats(ctx)
	if err != nil {
		return nil, err
	}
	units, err := s.catalog.Units(ctx)
	if err != nil {
		return nil, err
	}
	weak, err := s.catalog.Words(ctx, models.WordFilter{Tab: models.WordTabWeak, Limit: HomeWeakWords})
	if err != nil {
		return nil, err
	}

	view := &HomeView{Stats: *stats, WeakWords: weak}
	for _, u := range units {
		if u.IsLocked {
			continue
		}
		if l := u.CurrentLesson(); l != nil {
			view.Recommended = &Recommendation{Unit: u, Lesson: *l}
			break
		}
	}
	return view, nil
}

func (s *dashboardService) Review(ctx context.Context, tab models.WordTab) (*ReviewView, error) {
	logger.FromContext(ctx).Debug("building review view: tab=%s", tab)

	words, err := s.catalog.Words(ctx, models.WordFilter{Tab: tab})
	if err != nil {
		return nil, err
	}
	return &ReviewView{
		Tab:            tab,
		Words:          words,
		AverageMastery: models.AverageMastery(words),
	}, nil
}

func (s *dashboardService) Stats(ctx context.Context) (*models.LearnerStats, error) {
	return s.catalog.Stats(ctx)
}
