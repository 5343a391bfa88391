// Package pinpad implements the fixed-length PIN entry pad: digits
// accumulate until the target length, the code is submitted exactly once,
// and a rejected code clears the pad and shakes it for a short window.
package pinpad

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/logger"
)

const (
	MinLength          = 4
	MaxLength          = 6
	DefaultLength      = 4
	DefaultShakeWindow = 500 * time.Millisecond

	msgVerifyFailed = "Something went wrong. Please try again."
)

type Phase string

const (
	PhaseEmpty        Phase = "empty"
	PhaseAccumulating Phase = "accumulating"
	PhaseComplete     Phase = "complete"
	PhaseAccepted     Phase = "accepted"
)

// Verifier decides whether a complete code is accepted. A nil error
// accepts; any other error rejects and its message is shown on the pad.
type Verifier interface {
	Verify(ctx context.Context, code string) error
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, code string) error

func (f VerifierFunc) Verify(ctx context.Context, code string) error {
	return f(ctx, code)
}

// State is a snapshot of the pad. The digits themselves are never exposed.
type State struct {
	Phase   Phase  `json:"phase"`
	Entered int    `json:"entered"`
	Length  int    `json:"length"`
	Error   string `json:"error,omitempty"`
	Shake   bool   `json:"shake"`
	Title   string `json:"title"`
}

// Filled returns one entry per position, true where a digit was entered.
func (s State) Filled() []bool {
	dots := make([]bool, s.Length)
	for i := 0; i < s.Entered && i < s.Length; i++ {
		dots[i] = true
	}
	return dots
}

// Accepted reports whether the pad reached its terminal success state.
func (s State) Accepted() bool {
	return s.Phase == PhaseAccepted
}

type Pad struct {
	mu          sync.Mutex
	verifier    Verifier
	length      int
	shakeWindow time.Duration
	title       string

	digits   []byte
	phase    Phase
	errMsg   string
	shake    bool
	timer    *time.Timer
	shakeGen uint64
	closed   bool
}

type Option func(*Pad)

// WithLength sets the target length. Values outside 4..6 are ignored.
func WithLength(n int) Option {
	return func(p *Pad) {
		if n >= MinLength && n <= MaxLength {
			p.length = n
		}
	}
}

func WithShakeWindow(d time.Duration) Option {
	return func(p *Pad) {
		if d > 0 {
			p.shakeWindow = d
		}
	}
}

func WithTitle(title string) Option {
	return func(p *Pad) {
		p.title = title
	}
}

func New(verifier Verifier, opts ...Option) *Pad {
	p := &Pad{
		verifier:    verifier,
		length:      DefaultLength,
		shakeWindow: DefaultShakeWindow,
		title:       "Enter your PIN",
		phase:       PhaseEmpty,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.digits = make([]byte, 0, p.length)
	return p
}

// PressDigit appends d. Reaching the target length submits the code to the
// verifier before returning.
func (p *Pad) PressDigit(ctx context.Context, d string) (State, error) {
	if len(d) != 1 || d[0] < '0' || d[0] > '9' {
		return p.State(), errors.NewValidationError("digit", "must be a single digit 0-9")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.phase == PhaseComplete || p.phase == PhaseAccepted || len(p.digits) >= p.length {
		return p.stateLocked(), nil
	}

	p.digits = append(p.digits, d[0])
	p.phase = PhaseAccumulating
	if len(p.digits) == p.length {
		p.submitLocked(ctx)
	}
	return p.stateLocked(), nil
}

// PressBackspace removes the last digit.
func (p *Pad) PressBackspace() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.phase == PhaseComplete || p.phase == PhaseAccepted || len(p.digits) == 0 {
		return p.stateLocked()
	}
	p.digits = p.digits[:len(p.digits)-1]
	if len(p.digits) == 0 {
		p.phase = PhaseEmpty
	}
	return p.stateLocked()
}

// submitLocked runs the single verification for the assembled code.
func (p *Pad) submitLocked(ctx context.Context) {
	log := logger.FromContext(ctx).WithPrefix("pinpad")
	p.phase = PhaseComplete
	code := string(p.digits)

	err := p.verifier.Verify(ctx, code)
	if err == nil {
		log.Debug("code accepted")
		p.phase = PhaseAccepted
		p.errMsg = ""
		p.stopShakeLocked()
		return
	}

	msg := msgVerifyFailed
	if appErr, ok := errors.As(err); ok && appErr.Code != errors.ErrCodeInternal {
		msg = appErr.Message
	} else {
		log.Error("verification failed: %v", err)
	}
	log.Debug("code rejected: %s", msg)

	p.errMsg = msg
	p.digits = p.digits[:0]
	p.phase = PhaseEmpty
	p.startShakeLocked()
}

func (p *Pad) startShakeLocked() {
	p.stopShakeLocked()
	p.shake = true
	gen := p.shakeGen
	p.timer = time.AfterFunc(p.shakeWindow, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed || gen != p.shakeGen {
			return
		}
		p.shake = false
		p.timer = nil
	})
}

func (p *Pad) stopShakeLocked() {
	p.shakeGen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.shake = false
}

// Close releases the shake timer. Input after Close is ignored.
func (p *Pad) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.shakeGen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Pad) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *Pad) stateLocked() State {
	return State{
		Phase:   p.phase,
		Entered: len(p.digits),
		Length:  p.length,
		Error:   p.errMsg,
		Shake:   p.shake,
		Title:   p.title,
	}
}
