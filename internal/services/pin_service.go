package services

import (
	"context"
	"time"

	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/pinpad"
	"github.com/vytor/nahuatl/internal/screens"
)

// PinService drives the PIN pad screen of a device
type PinService interface {
	Open(ctx context.Context, deviceID string, mode screens.PadMode, length int) (pinpad.State, error)
	PressDigit(ctx context.Context, deviceID, digit string) (pinpad.State, error)
	Backspace(ctx context.Context, deviceID string) (pinpad.State, error)
	State(ctx context.Context, deviceID string) (pinpad.State, error)
	Mode(ctx context.Context, deviceID string) (screens.PadMode, error)
	Close(ctx context.Context, deviceID string)
}

type pinService struct {
	auth          AuthService
	screens       *screens.Registry
	defaultLength int
	shakeWindow   time.Duration
}

// NewPinService creates a new PinService
func NewPinService(auth AuthService, registry *screens.Registry, defaultLength int, shakeWindow time.Duration) PinService {
	return &pinService{
		auth:          auth,
		screens:       registry,
		defaultLength: defaultLength,
		shakeWindow:   shakeWindow,
	}
}

// Open replaces the device's pad. Verify pads take the stored PIN's length;
// setup pads take length, or the configured default when length is 0.
func (s *pinService) Open(ctx context.Context, deviceID string, mode screens.PadMode, length int) (pinpad.State, error) {
	log := logger.FromContext(ctx)
	log.Debug("opening pin pad: mode=%s, length=%d", mode, length)

	session := s.auth.Session(deviceID)
	var (
		verifier pinpad.Verifier
		title    string
	)
	switch mode {
	case screens.PadModeSetup:
		signedIn, err := session.SignedIn(ctx)
		if err != nil {
			return pinpad.State{}, asInternal(err)
		}
		if !signedIn {
			return pinpad.State{}, errors.NewUnauthorizedError()
		}
		if length == 0 {
			length = s.defaultLength
		}
		if length < pinpad.MinLength || length > pinpad.MaxLength {
			return pinpad.State{}, errors.NewValidationError("length", "must be between 4 and 6")
		}
		verifier = pinpad.VerifierFunc(session.SetPIN)
		title = "Create a PIN"
	default:
		stored, err := session.PINLength(ctx)
		if err != nil {
			return pinpad.State{}, asInternal(err)
		}
		if stored == 0 {
			return pinpad.State{}, errors.NewBadRequestError("no PIN is set up on this device")
		}
		length = stored
		verifier = pinpad.VerifierFunc(session.VerifyPIN)
		title = "Enter your PIN"
	}

	pad := pinpad.New(verifier,
		pinpad.WithLength(length),
		pinpad.WithShakeWindow(s.shakeWindow),
		pinpad.WithTitle(title),
	)
	s.screens.OpenPad(deviceID, mode, pad)
	return pad.State(), nil
}

func (s *pinService) pad(deviceID string) (*pinpad.Pad, error) {
	screen, ok := s.screens.Pad(deviceID)
	if !ok {
		return nil, errors.NewNotFoundError("pin pad", "open pad")
	}
	return screen.Pad, nil
}

func (s *pinService) PressDigit(ctx context.Context, deviceID, digit string) (pinpad.State, error) {
	pad, err := s.pad(deviceID)
	if err != nil {
		return pinpad.State{}, err
	}
	st, err := pad.PressDigit(ctx, digit)
	if err != nil {
		return st, err
	}
	if st.Accepted() {
		logger.FromContext(ctx).Info("pin pad accepted")
	}
	return st, nil
}

func (s *pinService) Backspace(_ context.Context, deviceID string) (pinpad.State, error) {
	pad, err := s.pad(deviceID)
	if err != nil {
		return pinpad.State{}, err
	}
	return pad.PressBackspace(), nil
}

func (s *pinService) State(_ context.Context, deviceID string) (pinpad.State, error) {
	pad, err := s.pad(deviceID)
	if err != nil {
		return pinpad.State{}, err
	}
	return pad.State(), nil
}

func (s *pinService) Mode(_ context.Context, deviceID string) (screens.PadMode, error) {
	screen, ok := s.screens.Pad(deviceID)
	if !ok {
		return "", errors.NewNotFoundError("pin pad", "open pad")
	}
	return screen.Mode, nil
}

func (s *pinService) Close(ctx context.Context, deviceID string) {
	logger.FromContext(ctx).Debug("closing pin pad")
	s.screens.ClosePad(deviceID)
}
