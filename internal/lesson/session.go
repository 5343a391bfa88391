// Package lesson runs one pass through a lesson's exercises: present,
// answer, reveal, advance, and finally report the summary.
package lesson

import (
	"fmt"
	"sync"

	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/models"
)

// DefaultReward is the score added for each correct answer.
const DefaultReward = 10

type Phase string

const (
	PhasePresenting Phase = "presenting"
	PhaseAnswered   Phase = "answered"
	PhaseCompleted  Phase = "completed"
)

// Result is the outcome recorded for the current exercise. It is cleared
// when the session advances.
type Result struct {
	SelectedOptionID string `json:"selected_option_id,omitempty"`
	CorrectOptionID  string `json:"correct_option_id,omitempty"`
	IsCorrect        bool   `json:"is_correct"`
	Graded           bool   `json:"graded"`
	Revealed         bool   `json:"revealed"`
}

// Summary is emitted once when the last exercise is advanced past.
type Summary struct {
	LessonID   string `json:"lesson_id"`
	FinalScore int    `json:"final_score"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
}

// Snapshot is a copy of the session state for rendering.
type Snapshot struct {
	LessonID string           `json:"lesson_id"`
	Index    int              `json:"index"`
	Total    int              `json:"total"`
	Score    int              `json:"score"`
	Phase    Phase            `json:"phase"`
	Exercise *models.Exercise `json:"exercise,omitempty"`
	Result   *Result          `json:"result,omitempty"`
	Progress int              `json:"progress"`
}

// Session holds the exercise list for its whole lifetime; the list is
// copied on creation and never modified.
type Session struct {
	mu         sync.Mutex
	lessonID   string
	exercises  []models.Exercise
	reward     int
	onComplete func(Summary)

	index   int
	phase   Phase
	score   int
	correct int
	result  *Result
	summary *Summary
}

type Option func(*Session)

func WithReward(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.reward = n
		}
	}
}

// WithCompletionListener registers fn to receive the summary when the
// session completes. fn is called without the session lock held.
func WithCompletionListener(fn func(Summary)) Option {
	return func(s *Session) {
		s.onComplete = fn
	}
}

func NewSession(lessonID string, exercises []models.Exercise, opts ...Option) (*Session, error) {
	if len(exercises) == 0 {
		return nil, errors.NewValidationError("exercises", "lesson has no exercises")
	}
	s := &Session{
		lessonID:  lessonID,
		exercises: cloneExercises(exercises),
		reward:    DefaultReward,
		phase:     PhasePresenting,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func cloneExercises(in []models.Exercise) []models.Exercise {
	out := make([]models.Exercise, len(in))
	for i, e := range in {
		e.Options = append([]models.ExerciseOption(nil), e.Options...)
		out[i] = e
	}
	return out
}

func (s *Session) LessonID() string {
	return s.lessonID
}

// SubmitAnswer grades optionID against the current exercise. Repeating a
// submission after the answer is recorded returns the recorded result.
func (s *Session) SubmitAnswer(optionID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseCompleted:
		return Result{}, errors.NewInvalidTransitionError("answer", string(s.phase))
	case PhaseAnswered:
		return *s.result, nil
	}

	ex := s.exercises[s.index]
	if !ex.Kind.Choice() {
		return Result{}, errors.NewNotGradableError(string(ex.Kind))
	}
	opt, ok := ex.Option(optionID)
	if !ok {
		return Result{}, errors.NewValidationError("option", fmt.Sprintf("unknown option %q", optionID))
	}

	res := Result{
		SelectedOptionID: opt.ID,
		IsCorrect:        opt.IsCorrect,
		Graded:           true,
		Revealed:         true,
	}
	if c, ok := ex.CorrectOption(); ok {
		res.CorrectOptionID = c.ID
	}
	if res.IsCorrect {
		s.score += s.reward
		s.correct++
	}
	s.result = &res
	s.phase = PhaseAnswered
	return res, nil
}

// Skip moves past an exercise kind that cannot be graded yet, without
// scoring it.
func (s *Session) Skip() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePresenting {
		return Result{}, errors.NewInvalidTransitionError("skip", string(s.phase))
	}
	ex := s.exercises[s.index]
	if ex.Kind.Choice() {
		return Result{}, errors.NewInvalidTransitionError("skip", "an answer is expected")
	}
	res := Result{Graded: false, Revealed: true}
	s.result = &res
	s.phase = PhaseAnswered
	return res, nil
}

// Advance moves to the next exercise. Past the last one the session
// completes and the summary is returned and emitted.
func (s *Session) Advance() (*Summary, error) {
	s.mu.Lock()
	if s.phase != PhaseAnswered {
		phase := s.phase
		s.mu.Unlock()
		return nil, errors.NewInvalidTransitionError("advance", string(phase))
	}

	s.result = nil
	if s.index+1 < len(s.exercises) {
		s.index++
		s.phase = PhasePresenting
		s.mu.Unlock()
		return nil, nil
	}

	s.phase = PhaseCompleted
	sum := Summary{
		LessonID:   s.lessonID,
		FinalScore: s.score,
		Correct:    s.correct,
		Total:      len(s.exercises),
	}
	s.summary = &sum
	listener := s.onComplete
	s.mu.Unlock()

	if listener != nil {
		listener(sum)
	}
	return &sum, nil
}

// Summary returns the completion summary, nil until completed.
func (s *Session) Summary() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == nil {
		return nil
	}
	sum := *s.summary
	return &sum
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		LessonID: s.lessonID,
		Index:    s.index,
		Total:    len(s.exercises),
		Score:    s.score,
		Phase:    s.phase,
	}
	if s.phase == PhaseCompleted {
		snap.Progress = 100
		return snap
	}
	ex := s.exercises[s.index]
	ex.Options = append([]models.ExerciseOption(nil), ex.Options...)
	snap.Exercise = &ex
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	snap.Progress = (s.index + 1) * 100 / len(s.exercises)
	return snap
}
