package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/models"
	"github.com/vytor/nahuatl/internal/repository"
)

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository implementation
func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

var unitColumns = []string{"id", "position", "title", "description", "progress", "is_locked"}

var lessonColumns = []string{"id", "unit_id", "position", "title", "subtitle", "is_completed", "is_locked", "exercise_count"}

func scanUnit(row interface{ Scan(...any) error }) (models.Unit, error) {
	var u models.Unit
	err := row.Scan(&u.ID, &u.Position, &u.Title, &u.Description, &u.Progress, &u.IsLocked)
	return u, err
}

func scanLesson(row interface{ Scan(...any) error }) (models.Lesson, error) {
	var l models.Lesson
	err := row.Scan(&l.ID, &l.UnitID, &l.Position, &l.Title, &l.Subtitle, &l.IsCompleted, &l.IsLocked, &l.ExerciseCount)
	return l, err
}

func (r *catalogRepository) ListUnits(ctx context.Context) ([]models.Unit, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("listing units")

	query, args, err := sqlBuilder.Select(unitColumns...).From("units").OrderBy("position ASC").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list units: %v", err)
		return nil, err
	}
	defer rows.Close()

	var units []models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			log.Error("failed to scan unit row: %v", err)
			return nil, err
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lessons, err := r.lessons(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range units {
		units[i].Lessons = lessons[units[i].ID]
	}

	log.Debug("found %d units", len(units))
	return units, nil
}

func (r *catalogRepository) GetUnit(ctx context.Context, id string) (*models.Unit, error) {
	return r.getUnit(ctx, squirrel.Eq{"id": id})
}

func (r *catalogRepository) FallbackUnit(ctx context.Context) (*models.Unit, error) {
	return r.getUnit(ctx, squirrel.Eq{"is_fallback": 1})
}

func (r *catalogRepository) getUnit(ctx context.Context, where squirrel.Eq) (*models.Unit, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("getting unit: %v", where)

	query, args, err := sqlBuilder.Select(unitColumns...).From("units").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	u, err := scanUnit(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("unit not found: %v", where)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get unit: %v", err)
		return nil, err
	}

	lessons, err := r.lessons(ctx, squirrel.Eq{"unit_id": u.ID})
	if err != nil {
		return nil, err
	}
	u.Lessons = lessons[u.ID]
	return &u, nil
}

// lessons returns lessons grouped by unit id.
func (r *catalogRepository) lessons(ctx context.Context, where squirrel.Sqlizer) (map[string][]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")

	q := sqlBuilder.Select(lessonColumns...).From("lessons").OrderBy("unit_id ASC", "position ASC")
	if where != nil {
		q = q.Where(where)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := map[string][]models.Lesson{}
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			log.Error("failed to scan lesson row: %v", err)
			return nil, err
		}
		out[l.UnitID] = append(out[l.UnitID], l)
	}
	return out, rows.Err()
}

func (r *catalogRepository) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("getting lesson: id=%s", id)

	query, args, err := sqlBuilder.Select(lessonColumns...).From("lessons").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	l, err := scanLesson(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("lesson not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *catalogRepository) Exercises(ctx context.Context, lessonID string) ([]models.Exercise, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("loading exercises: lesson_id=%q", lessonID)

	q := sqlBuilder.Select("id", "COALESCE(lesson_id, '')", "position", "kind", "prompt", "audio_ref").
		From("exercises").
		OrderBy("position ASC")
	if lessonID == "" {
		q = q.Where(squirrel.Eq{"lesson_id": nil})
	} else {
		q = q.Where(squirrel.Eq{"lesson_id": lessonID})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query exercises: %v", err)
		return nil, err
	}
	var exercises []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.LessonID, &e.Position, &e.Kind, &e.Prompt, &e.AudioRef); err != nil {
			rows.Close()
			log.Error("failed to scan exercise row: %v", err)
			return nil, err
		}
		exercises = append(exercises, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(exercises))
	index := make(map[int64]int, len(exercises))
	for i, e := range exercises {
		ids[i] = e.ID
		index[e.ID] = i
	}

	query, args, err = sqlBuilder.Select("exercise_id", "option_id", "text", "is_correct").
		From("exercise_options").
		Where(squirrel.Eq{"exercise_id": ids}).
		OrderBy("exercise_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	optRows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query exercise options: %v", err)
		return nil, err
	}
	defer optRows.Close()
	for optRows.Next() {
		var exerciseID int64
		var o models.ExerciseOption
		if err := optRows.Scan(&exerciseID, &o.ID, &o.Text, &o.IsCorrect); err != nil {
			log.Error("failed to scan option row: %v", err)
			return nil, err
		}
		i := index[exerciseID]
		exercises[i].Options = append(exercises[i].Options, o)
	}

	log.Debug("loaded %d exercises", len(exercises))
	return exercises, optRows.Err()
}

func (r *catalogRepository) Words(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("listing words: tab=%s, limit=%d", filter.Tab, filter.Limit)

	q := sqlBuilder.Select("id", "nahuatl", "translation", "mastery", "last_reviewed", "times_seen", "times_missed", "is_recent", "audio_ref").
		From("words")
	switch filter.Tab {
	case models.WordTabRecent:
		q = q.Where(squirrel.Eq{"is_recent": 1}).OrderBy("mastery DESC", "id ASC")
	default:
		// Weakest first: lowest mastery is the most urgent to review.
		q = q.Where(squirrel.Eq{"is_recent": 0}).OrderBy("mastery ASC", "id ASC")
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.Nahuatl, &w.Translation, &w.Mastery, &w.LastReviewed, &w.TimesSeen, &w.TimesMissed, &w.Recent, &w.AudioRef); err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (r *catalogRepository) Stats(ctx context.Context) (*models.LearnerStats, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("loading learner stats")

	var s models.LearnerStats
	err := r.db.QueryRowContext(ctx, `
SELECT total_xp, xp_for_next_level, level, words_learned, lessons_completed, current_streak, longest_streak, hearts
FROM learner_stats
WHERE id = 1
`).Scan(&s.TotalXP, &s.XPForNextLevel, &s.Level, &s.WordsLearned, &s.LessonsCompleted, &s.CurrentStreak, &s.LongestStreak, &s.Hearts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load learner stats: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, earned FROM badges ORDER BY position ASC`)
	if err != nil {
		log.Error("failed to list badges: %v", err)
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Earned); err != nil {
			return nil, err
		}
		s.Badges = append(s.Badges, b)
	}
	return &s, rows.Err()
}

func (r *catalogRepository) ReplaceContent(ctx context.Context, content models.CatalogContent) error {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Info("replacing catalog content: units=%d, words=%d", len(content.Units), len(content.Words))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, table := range []string{"exercise_options", "exercises", "lessons", "units", "words", "badges", "learner_stats"} {
			if _, err := execBuilt(ctx, tx, sqlBuilder.Delete(table)); err != nil {
				log.Error("failed to clear %s: %v", table, err)
				return err
			}
		}

		for ui, u := range content.Units {
			_, err := execBuilt(ctx, tx, sqlBuilder.Insert("units").
				Columns("id", "position", "title", "description", "progress", "is_locked", "is_fallback").
				Values(u.ID, ui, u.Title, u.Description, u.Progress, boolInt(u.IsLocked), boolInt(u.ID == content.FallbackUnitID)))
			if err != nil {
				log.Error("failed to insert unit %s: %v", u.ID, err)
				return err
			}
			for li, l := range u.Lessons {
				_, err := execBuilt(ctx, tx, sqlBuilder.Insert("lessons").
					Columns(lessonColumns...).
					Values(l.ID, u.ID, li, l.Title, l.Subtitle, boolInt(l.IsCompleted), boolInt(l.IsLocked), l.ExerciseCount))
				if err != nil {
					log.Error("failed to insert lesson %s: %v", l.ID, err)
					return err
				}
			}
		}

		if err := insertExercises(ctx, tx, nil, content.DefaultExercises); err != nil {
			return err
		}
		for lessonID, exercises := range content.Exercises {
			id := lessonID
			if err := insertExercises(ctx, tx, &id, exercises); err != nil {
				return err
			}
		}

		for _, w := range content.Words {
			_, err := execBuilt(ctx, tx, sqlBuilder.Insert("words").
				Columns("id", "nahuatl", "translation", "mastery", "last_reviewed", "times_seen", "times_missed", "is_recent", "audio_ref").
				Values(w.ID, w.Nahuatl, w.Translation, w.Mastery, w.LastReviewed, w.TimesSeen, w.TimesMissed, boolInt(w.Recent), w.AudioRef))
			if err != nil {
				log.Error("failed to insert word %s: %v", w.ID, err)
				return err
			}
		}

		s := content.Stats
		_, err := execBuilt(ctx, tx, sqlBuilder.Insert("learner_stats").
			Columns("id", "total_xp", "xp_for_next_level", "level", "words_learned", "lessons_completed", "current_streak", "longest_streak", "hearts").
			Values(1, s.TotalXP, s.XPForNextLevel, s.Level, s.WordsLearned, s.LessonsCompleted, s.CurrentStreak, s.LongestStreak, s.Hearts))
		if err != nil {
			log.Error("failed to insert learner stats: %v", err)
			return err
		}
		for i, b := range s.Badges {
			_, err := execBuilt(ctx, tx, sqlBuilder.Insert("badges").
				Columns("id", "position", "name", "description", "earned").
				Values(b.ID, i, b.Name, b.Description, boolInt(b.Earned)))
			if err != nil {
				log.Error("failed to insert badge %s: %v", b.ID, err)
				return err
			}
		}
		return nil
	})
}

func insertExercises(ctx context.Context, tx *sql.Tx, lessonID *string, exercises []models.Exercise) error {
	for pos, e := range exercises {
		res, err := execBuilt(ctx, tx, sqlBuilder.Insert("exercises").
			Columns("lesson_id", "position", "kind", "prompt", "audio_ref").
			Values(lessonID, pos, string(e.Kind), e.Prompt, e.AudioRef))
		if err != nil {
			return err
		}
		exerciseID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for i, o := range e.Options {
			_, err := execBuilt(ctx, tx, sqlBuilder.Insert("exercise_options").
				Columns("exercise_id", "option_id", "position", "text", "is_correct").
				Values(exerciseID, o.ID, i, o.Text, boolInt(o.IsCorrect)))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
