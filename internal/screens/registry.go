// Package screens keeps the transient per-device screen state: the open
// PIN pad and the lesson being run. Nothing here is persisted.
package screens

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/nahuatl/internal/lesson"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/pinpad"
)

// PadMode is what a completed code is used for.
type PadMode string

const (
	PadModeVerify PadMode = "verify"
	PadModeSetup  PadMode = "setup"
)

// ParsePadMode maps a query value to a mode, defaulting to verify.
func ParsePadMode(s string) PadMode {
	if PadMode(s) == PadModeSetup {
		return PadModeSetup
	}
	return PadModeVerify
}

type PadScreen struct {
	Mode PadMode
	Pad  *pinpad.Pad
}

type RunScreen struct {
	UnitID  string
	Session *lesson.Session
}

type entry struct {
	pad      *PadScreen
	run      *RunScreen
	lastSeen time.Time
}

type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry), now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
	return r
}

func (r *Registry) touchLocked(deviceID string) *entry {
	e, ok := r.entries[deviceID]
	if !ok {
		e = &entry{}
		r.entries[deviceID] = e
	}
	e.lastSeen = r.now()
	return e
}

// OpenPad installs pad for the device, closing any pad it replaces.
func (r *Registry) OpenPad(deviceID string, mode PadMode, pad *pinpad.Pad) {
	r.mu.Lock()
	e := r.touchLocked(deviceID)
	old := e.pad
	e.pad = &PadScreen{Mode: mode, Pad: pad}
	r.mu.Unlock()

	if old != nil {
		old.Pad.Close()
	}
}

func (r *Registry) Pad(deviceID string) (*PadScreen, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[deviceID]
	if !ok || e.pad == nil {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.pad, true
}

// ClosePad closes and forgets the device's pad.
func (r *Registry) ClosePad(deviceID string) {
	r.mu.Lock()
	var pad *PadScreen
	if e, ok := r.entries[deviceID]; ok {
		pad = e.pad
		e.pad = nil
		r.dropIfEmptyLocked(deviceID, e)
	}
	r.mu.Unlock()

	if pad != nil {
		pad.Pad.Close()
	}
}

// StartRun installs a lesson run, replacing any previous one.
func (r *Registry) StartRun(deviceID, unitID string, session *lesson.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.touchLocked(deviceID)
	e.run = &RunScreen{UnitID: unitID, Session: session}
}

func (r *Registry) Run(deviceID string) (*RunScreen, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[deviceID]
	if !ok || e.run == nil {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.run, true
}

func (r *Registry) EndRun(deviceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[deviceID]; ok {
		e.run = nil
		r.dropIfEmptyLocked(deviceID, e)
	}
}

func (r *Registry) dropIfEmptyLocked(deviceID string, e *entry) {
	if e.pad == nil && e.run == nil {
		delete(r.entries, deviceID)
	}
}

// Forget drops all screen state of a device, e.g. on sign-out.
func (r *Registry) Forget(deviceID string) {
	r.mu.Lock()
	e, ok := r.entries[deviceID]
	delete(r.entries, deviceID)
	r.mu.Unlock()

	if ok && e.pad != nil {
		e.pad.Pad.Close()
	}
}

// Sweep drops devices idle for longer than maxIdle and closes their pads.
func (r *Registry) Sweep(ctx context.Context, maxIdle time.Duration) int {
	log := logger.FromContext(ctx).WithPrefix("screens")

	r.mu.Lock()
	cutoff := r.now().Add(-maxIdle)
	var pads []*pinpad.Pad
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.After(cutoff) {
			continue
		}
		if e.pad != nil {
			pads = append(pads, e.pad.Pad)
		}
		delete(r.entries, id)
		removed++
	}
	r.mu.Unlock()

	for _, p := range pads {
		p.Close()
	}
	log.Debug("sweep removed %d idle devices", removed)
	return removed
}

// Len is the number of devices with open screens.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
