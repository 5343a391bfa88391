package screens_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nahuatl/internal/lesson"
	"github.com/vytor/nahuatl/internal/models"
	"github.com/vytor/nahuatl/internal/pinpad"
	"github.com/vytor/nahuatl/internal/screens"
)

var rejectAll = pinpad.VerifierFunc(func(context.Context, string) error {
	return assert.AnError
})

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newSession(t *testing.T) *lesson.Session {
	t.Helper()
	s, err := lesson.NewSession("l1", []models.Exercise{{
		Kind:    models.KindReadSelect,
		Prompt:  "Niltze",
		Options: []models.ExerciseOption{{ID: "1", Text: "Hello", IsCorrect: true}, {ID: "2", Text: "Bye"}},
	}})
	require.NoError(t, err)
	return s
}

func TestRegistry_OpenPadReplacesAndClosesPrevious(t *testing.T) {
	r := screens.NewRegistry()
	first := pinpad.New(rejectAll, pinpad.WithShakeWindow(time.Hour))
	r.OpenPad("dev", screens.PadModeVerify, first)

	second := pinpad.New(rejectAll)
	r.OpenPad("dev", screens.PadModeSetup, second)

	screen, ok := r.Pad("dev")
	require.True(t, ok)
	assert.Same(t, second, screen.Pad)
	assert.Equal(t, screens.PadModeSetup, screen.Mode)

	// The replaced pad ignores input once closed.
	st, err := first.PressDigit(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Entered)
}

func TestRegistry_ClosePadAndEndRunDropEmptyEntries(t *testing.T) {
	r := screens.NewRegistry()
	r.OpenPad("dev", screens.PadModeVerify, pinpad.New(rejectAll))
	r.StartRun("dev", "unit-1", newSession(t))
	assert.Equal(t, 1, r.Len())

	r.ClosePad("dev")
	_, ok := r.Pad("dev")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())

	run, ok := r.Run("dev")
	require.True(t, ok)
	assert.Equal(t, "unit-1", run.UnitID)

	r.EndRun("dev")
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_DevicesAreIndependent(t *testing.T) {
	r := screens.NewRegistry()
	r.StartRun("a", "unit-1", newSession(t))

	_, ok := r.Run("b")
	assert.False(t, ok)

	r.Forget("a")
	_, ok = r.Run("a")
	assert.False(t, ok)
}

func TestRegistry_SweepRemovesIdleDevices(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	r := screens.NewRegistry().WithClock(clock.now)

	idlePad := pinpad.New(rejectAll)
	r.OpenPad("idle", screens.PadModeVerify, idlePad)
	clock.t = clock.t.Add(20 * time.Minute)
	r.StartRun("active", "unit-2", newSession(t))
	clock.t = clock.t.Add(15 * time.Minute)

	removed := r.Sweep(context.Background(), 30*time.Minute)
	assert.Equal(t, 1, removed)

	_, ok := r.Pad("idle")
	assert.False(t, ok)
	_, ok = r.Run("active")
	assert.True(t, ok)

	st, err := idlePad.PressDigit(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Entered, "swept pads are closed")
}
