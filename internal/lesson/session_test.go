package lesson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/lesson"
	"github.com/vytor/nahuatl/internal/models"
)

func readSelect(prompt, correct string) models.Exercise {
	return models.Exercise{
		Kind:   models.KindReadSelect,
		Prompt: prompt,
		Options: []models.ExerciseOption{
			{ID: "1", Text: "Hello", IsCorrect: correct == "1"},
			{ID: "2", Text: "Goodbye", IsCorrect: correct == "2"},
			{ID: "3", Text: "Thank you", IsCorrect: correct == "3"},
		},
	}
}

func threeExercises() []models.Exercise {
	return []models.Exercise{
		readSelect("Niltze", "1"),
		readSelect("Ximopanolti", "2"),
		readSelect("Tlazohcamati", "3"),
	}
}

func TestNewSession_EmptyList(t *testing.T) {
	_, err := lesson.NewSession("l1", nil)
	assert.True(t, errors.IsValidation(err))
}

func TestSession_TwoCorrectOneWrong(t *testing.T) {
	var emitted []lesson.Summary
	s, err := lesson.NewSession("l1", threeExercises(), lesson.WithCompletionListener(func(sum lesson.Summary) {
		emitted = append(emitted, sum)
	}))
	require.NoError(t, err)

	res, err := s.SubmitAnswer("1")
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.True(t, res.Revealed)
	sum, err := s.Advance()
	require.NoError(t, err)
	assert.Nil(t, sum)

	res, err = s.SubmitAnswer("1")
	require.NoError(t, err)
	assert.False(t, res.IsCorrect)
	assert.Equal(t, "2", res.CorrectOptionID)
	_, err = s.Advance()
	require.NoError(t, err)

	_, err = s.SubmitAnswer("3")
	require.NoError(t, err)
	sum, err = s.Advance()
	require.NoError(t, err)
	require.NotNil(t, sum)

	assert.Equal(t, lesson.Summary{LessonID: "l1", FinalScore: 20, Correct: 2, Total: 3}, *sum)
	assert.Equal(t, []lesson.Summary{*sum}, emitted)
	assert.Equal(t, lesson.PhaseCompleted, s.Snapshot().Phase)
	assert.Equal(t, sum, s.Summary())
}

func TestSession_SubmitIsIdempotentWhileAnswered(t *testing.T) {
	s, err := lesson.NewSession("l1", threeExercises())
	require.NoError(t, err)

	first, err := s.SubmitAnswer("1")
	require.NoError(t, err)
	second, err := s.SubmitAnswer("2")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 10, s.Snapshot().Score, "a repeated submission never scores twice")
}

func TestSession_AdvanceBeforeAnswer(t *testing.T) {
	s, err := lesson.NewSession("l1", threeExercises())
	require.NoError(t, err)

	_, err = s.Advance()
	assert.True(t, errors.IsInvalidTransition(err))
	assert.Equal(t, 0, s.Snapshot().Index)
}

func TestSession_UnknownOption(t *testing.T) {
	s, err := lesson.NewSession("l1", threeExercises())
	require.NoError(t, err)

	_, err = s.SubmitAnswer("9")
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, lesson.PhasePresenting, s.Snapshot().Phase)
}

func TestSession_SubmitAfterCompletion(t *testing.T) {
	s, err := lesson.NewSession("l1", threeExercises()[:1])
	require.NoError(t, err)

	_, err = s.SubmitAnswer("1")
	require.NoError(t, err)
	_, err = s.Advance()
	require.NoError(t, err)

	_, err = s.SubmitAnswer("1")
	assert.True(t, errors.IsInvalidTransition(err))
	_, err = s.Advance()
	assert.True(t, errors.IsInvalidTransition(err))
}

func TestSession_NonGradableKinds(t *testing.T) {
	exercises := []models.Exercise{
		{Kind: models.KindMatching, Prompt: "Match the pairs"},
		readSelect("Niltze", "1"),
	}
	s, err := lesson.NewSession("l1", exercises)
	require.NoError(t, err)

	_, err = s.SubmitAnswer("1")
	assert.True(t, errors.IsNotGradable(err))

	res, err := s.Skip()
	require.NoError(t, err)
	assert.False(t, res.Graded)

	_, err = s.Advance()
	require.NoError(t, err)

	_, err = s.Skip()
	assert.True(t, errors.IsInvalidTransition(err), "choice exercises cannot be skipped")
	assert.Equal(t, 0, s.Snapshot().Score)
}

func TestSession_SnapshotProgressAndResultReset(t *testing.T) {
	s, err := lesson.NewSession("l1", threeExercises(), lesson.WithReward(5))
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 33, snap.Progress)
	assert.Nil(t, snap.Result)
	require.NotNil(t, snap.Exercise)
	assert.Equal(t, "Niltze", snap.Exercise.Prompt)

	_, err = s.SubmitAnswer("1")
	require.NoError(t, err)
	snap = s.Snapshot()
	require.NotNil(t, snap.Result)
	assert.Equal(t, 5, snap.Score)

	_, err = s.Advance()
	require.NoError(t, err)
	snap = s.Snapshot()
	assert.Nil(t, snap.Result, "the result is cleared on advance")
	assert.Equal(t, 66, snap.Progress)
}

func TestSession_ExercisesAreCopied(t *testing.T) {
	exercises := threeExercises()
	s, err := lesson.NewSession("l1", exercises)
	require.NoError(t, err)

	exercises[0].Options[0].IsCorrect = false
	res, err := s.SubmitAnswer("1")
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
}
