package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/nahuatl/internal/models"
	"github.com/vytor/nahuatl/internal/repository"
	"github.com/vytor/nahuatl/internal/repository/sqlite"
	"github.com/vytor/nahuatl/internal/testutil"
)

type CatalogRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CatalogRepository
}

func (s *CatalogRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCatalogRepository(s.db)
	s.Require().NoError(s.repo.ReplaceContent(context.Background(), sampleContent()))
}

func (s *CatalogRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func choice(prompt string, correct string, ids ...string) models.Exercise {
	e := models.Exercise{Kind: models.KindReadSelect, Prompt: prompt}
	for _, id := range ids {
		e.Options = append(e.Options, models.ExerciseOption{ID: id, Text: "text " + id, IsCorrect: id == correct})
	}
	return e
}

func sampleContent() models.CatalogContent {
	return models.CatalogContent{
		FallbackUnitID: "unit-1",
		Units: []models.Unit{
			{ID: "unit-1", Title: "Greetings", Progress: 100, Lessons: []models.Lesson{
				{ID: "l1", Title: "Hello", IsCompleted: true, ExerciseCount: 2},
				{ID: "l2", Title: "Goodbye", ExerciseCount: 1},
			}},
			{ID: "unit-2", Title: "Family", IsLocked: true, Lessons: []models.Lesson{
				{ID: "l3", Title: "Parents", IsLocked: true},
			}},
		},
		Exercises: map[string][]models.Exercise{
			"l1": {
				choice("What does niltze mean?", "b", "a", "b", "c"),
				{Kind: models.KindMatching, Prompt: "Match the pairs"},
			},
		},
		DefaultExercises: []models.Exercise{
			choice("Default one", "a", "a", "b"),
		},
		Words: []models.Word{
			{ID: "w1", Nahuatl: "atl", Translation: "water", Mastery: 60},
			{ID: "w2", Nahuatl: "tletl", Translation: "fire", Mastery: 30},
			{ID: "w3", Nahuatl: "calli", Translation: "house", Mastery: 45},
			{ID: "r1", Nahuatl: "niltze", Translation: "hello", Mastery: 70, Recent: true},
			{ID: "r2", Nahuatl: "tlazohcamati", Translation: "thank you", Mastery: 90, Recent: true},
		},
		Stats: models.LearnerStats{
			TotalXP: 1250, XPForNextLevel: 2000, Level: 3, Hearts: 4,
			Badges: []models.Badge{
				{ID: "b1", Name: "First Steps", Earned: true},
				{ID: "b2", Name: "Week Warrior"},
			},
		},
	}
}

func (s *CatalogRepositorySuite) TestListUnits() {
	units, err := s.repo.ListUnits(context.Background())
	s.Require().NoError(err)
	s.Require().Len(units, 2)

	s.Equal("unit-1", units[0].ID)
	s.Equal(0, units[0].Position)
	s.Require().Len(units[0].Lessons, 2)
	s.Equal("l1", units[0].Lessons[0].ID)
	s.True(units[0].Lessons[0].IsCompleted)
	s.Equal("unit-2", units[1].ID)
	s.True(units[1].IsLocked)
}

func (s *CatalogRepositorySuite) TestGetUnitUnknownReturnsNil() {
	unit, err := s.repo.GetUnit(context.Background(), "unit-99")
	s.Require().NoError(err)
	s.Nil(unit)
}

func (s *CatalogRepositorySuite) TestFallbackUnit() {
	unit, err := s.repo.FallbackUnit(context.Background())
	s.Require().NoError(err)
	s.Require().NotNil(unit)
	s.Equal("unit-1", unit.ID)
	s.Len(unit.Lessons, 2)
}

func (s *CatalogRepositorySuite) TestGetLesson() {
	lesson, err := s.repo.GetLesson(context.Background(), "l3")
	s.Require().NoError(err)
	s.Require().NotNil(lesson)
	s.Equal("unit-2", lesson.UnitID)
	s.True(lesson.IsLocked)

	missing, err := s.repo.GetLesson(context.Background(), "l99")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *CatalogRepositorySuite) TestExercisesKeepOrderAndOptions() {
	exercises, err := s.repo.Exercises(context.Background(), "l1")
	s.Require().NoError(err)
	s.Require().Len(exercises, 2)

	first := exercises[0]
	s.Equal("l1", first.LessonID)
	s.Equal(models.KindReadSelect, first.Kind)
	s.Require().Len(first.Options, 3)
	s.Equal([]string{"a", "b", "c"}, []string{first.Options[0].ID, first.Options[1].ID, first.Options[2].ID})
	correct, ok := first.CorrectOption()
	s.True(ok)
	s.Equal("b", correct.ID)

	s.Equal(models.KindMatching, exercises[1].Kind)
	s.Empty(exercises[1].Options)
}

func (s *CatalogRepositorySuite) TestDefaultExercises() {
	exercises, err := s.repo.Exercises(context.Background(), "")
	s.Require().NoError(err)
	s.Require().Len(exercises, 1)
	s.Equal("Default one", exercises[0].Prompt)
	s.Empty(exercises[0].LessonID)
}

func (s *CatalogRepositorySuite) TestExercisesForLessonWithoutContent() {
	exercises, err := s.repo.Exercises(context.Background(), "l2")
	s.Require().NoError(err)
	s.Empty(exercises)
}

func (s *CatalogRepositorySuite) TestWordsWeakOrderedByMastery() {
	words, err := s.repo.Words(context.Background(), models.WordFilter{Tab: models.WordTabWeak})
	s.Require().NoError(err)
	s.Require().Len(words, 3)
	s.Equal([]string{"w2", "w3", "w1"}, []string{words[0].ID, words[1].ID, words[2].ID})

	limited, err := s.repo.Words(context.Background(), models.WordFilter{Tab: models.WordTabWeak, Limit: 2})
	s.Require().NoError(err)
	s.Len(limited, 2)
}

func (s *CatalogRepositorySuite) TestWordsRecent() {
	words, err := s.repo.Words(context.Background(), models.WordFilter{Tab: models.WordTabRecent})
	s.Require().NoError(err)
	s.Require().Len(words, 2)
	s.Equal("r2", words[0].ID)
	s.True(words[0].Recent)
}

func (s *CatalogRepositorySuite) TestStats() {
	stats, err := s.repo.Stats(context.Background())
	s.Require().NoError(err)
	s.Require().NotNil(stats)
	s.Equal(1250, stats.TotalXP)
	s.Equal(4, stats.Hearts)
	s.Require().Len(stats.Badges, 2)
	s.Equal(1, stats.EarnedBadges())
}

func (s *CatalogRepositorySuite) TestReplaceContentIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(s.repo.ReplaceContent(ctx, sampleContent()))

	units, err := s.repo.ListUnits(ctx)
	s.Require().NoError(err)
	s.Len(units, 2)

	exercises, err := s.repo.Exercises(ctx, "l1")
	s.Require().NoError(err)
	s.Len(exercises, 2)
}

func (s *CatalogRepositorySuite) TestReplaceContentRollsBackOnFailure() {
	ctx := context.Background()
	broken := sampleContent()
	broken.Words = append(broken.Words, broken.Words[0])

	s.Error(s.repo.ReplaceContent(ctx, broken))

	units, err := s.repo.ListUnits(ctx)
	s.Require().NoError(err)
	s.Len(units, 2, "previous content must survive a failed import")
}

func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(CatalogRepositorySuite))
}
