package services

import (
	"context"

	"github.com/vytor/nahuatl/internal/audio"
	"github.com/vytor/nahuatl/internal/catalog"
	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/lesson"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/screens"
)

// RunView is the exercise screen of a lesson run.
type RunView struct {
	UnitID     string
	Snapshot   lesson.Snapshot
	AudioReady bool
}

// LessonService opens lesson runs and steps them through their exercises
type LessonService interface {
	Start(ctx context.Context, deviceID, unitID, lessonID string) (*RunView, error)
	Current(ctx context.Context, deviceID string) (*RunView, error)
	Answer(ctx context.Context, deviceID, optionID string) (*RunView, error)
	Skip(ctx context.Context, deviceID string) (*RunView, error)
	// Next advances the run. On completion the run is closed and the
	// summary returned with a nil view.
	Next(ctx context.Context, deviceID string) (*RunView, *lesson.Summary, error)
	Close(ctx context.Context, deviceID string)
}

type lessonService struct {
	catalog catalog.Provider
	audio   *audio.Library
	screens *screens.Registry
	reward  int
}

// NewLessonService creates a new LessonService
func NewLessonService(provider catalog.Provider, library *audio.Library, registry *screens.Registry, reward int) LessonService {
	return &lessonService{catalog: provider, audio: library, screens: registry, reward: reward}
}

func (s *lessonService) Start(ctx context.Context, deviceID, unitID, lessonID string) (*RunView, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting lesson: unit=%s, lesson=%s", unitID, lessonID)

	unit, err := s.catalog.Unit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	l, ok := unit.Lesson(lessonID)
	if !ok {
		return nil, errors.NewNotFoundError("lesson", lessonID)
	}
	if l.IsLocked || unit.IsLocked {
		log.Debug("lesson %s is locked", lessonID)
		return nil, errors.NewLockedError("lesson", lessonID)
	}

	exercises, err := s.catalog.Exercises(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	session, err := lesson.NewSession(lessonID, exercises,
		lesson.WithReward(s.reward),
		lesson.WithCompletionListener(func(sum lesson.Summary) {
			log.WithFields(map[string]any{
				"lesson_id": sum.LessonID,
				"score":     sum.FinalScore,
				"correct":   sum.Correct,
				"total":     sum.Total,
			}).Info("lesson completed")
		}),
	)
	if err != nil {
		return nil, err
	}

	s.screens.StartRun(deviceID, unit.ID, session)
	return s.view(ctx, unit.ID, session), nil
}

func (s *lessonService) run(deviceID string) (*screens.RunScreen, error) {
	run, ok := s.screens.Run(deviceID)
	if !ok {
		return nil, errors.NewNotFoundError("lesson run", "active run")
	}
	return run, nil
}

func (s *lessonService) view(ctx context.Context, unitID string, session *lesson.Session) *RunView {
	snap := session.Snapshot()
	v := &RunView{UnitID: unitID, Snapshot: snap}
	if ex := snap.Exercise; ex != nil && ex.Kind.Listening() && ex.AudioRef != "" {
		v.AudioReady = s.audio.Probe(ctx, ex.AudioRef) == audio.EventReady
	}
	return v
}

func (s *lessonService) Current(ctx context.Context, deviceID string) (*RunView, error) {
	run, err := s.run(deviceID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, run.UnitID, run.Session), nil
}

func (s *lessonService) Answer(ctx context.Context, deviceID, optionID string) (*RunView, error) {
	run, err := s.run(deviceID)
	if err != nil {
		return nil, err
	}
	res, err := run.Session.SubmitAnswer(optionID)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("answer recorded: option=%s, correct=%t", optionID, res.IsCorrect)
	return s.view(ctx, run.UnitID, run.Session), nil
}

func (s *lessonService) Skip(ctx context.Context, deviceID string) (*RunView, error) {
	run, err := s.run(deviceID)
	if err != nil {
		return nil, err
	}
	if _, err := run.Session.Skip(); err != nil {
		return nil, err
	}
	return s.view(ctx, run.UnitID, run.Session), nil
}

func (s *lessonService) Next(ctx context.Context, deviceID string) (*RunView, *lesson.Summary, error) {
	run, err := s.run(deviceID)
	if err != nil {
		return nil, nil, err
	}
	sum, err := run.Session.Advance()
	if err != nil {
		return nil, nil, err
	}
	if sum != nil {
		s.screens.EndRun(deviceID)
		return nil, sum, nil
	}
	return s.view(ctx, run.UnitID, run.Session), nil, nil
}

func (s *lessonService) Close(ctx context.Context, deviceID string) {
	logger.FromContext(ctx).Debug("closing lesson run")
	s.screens.EndRun(deviceID)
}
