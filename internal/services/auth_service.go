package services

import (
	"context"
	"strings"

	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/flags"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/models"
	"github.com/vytor/nahuatl/internal/repository"
	"github.com/vytor/nahuatl/internal/screens"
)

// AuthStatus is what the auth and profile screens need to know about a
// device.
type AuthStatus struct {
	SignedIn  bool
	Identity  *models.Identity
	HasPIN    bool
	PINLength int
}

// AuthService handles sign-in state and the PIN of a device
type AuthService interface {
	Session(deviceID string) *flags.Session
	Status(ctx context.Context, deviceID string) (*AuthStatus, error)
	SignIn(ctx context.Context, deviceID, email, password string) (*models.Identity, error)
	SignOut(ctx context.Context, deviceID string) error
	SavePIN(ctx context.Context, deviceID, pin string) error
}

type authService struct {
	flagRepo repository.FlagRepository
	screens  *screens.Registry
	opts     []flags.SessionOption
}

// NewAuthService creates a new AuthService
func NewAuthService(flagRepo repository.FlagRepository, registry *screens.Registry, opts ...flags.SessionOption) AuthService {
	return &authService{flagRepo: flagRepo, screens: registry, opts: opts}
}

func (s *authService) Session(deviceID string) *flags.Session {
	return flags.NewSession(flags.NewDeviceStore(s.flagRepo, deviceID), s.opts...)
}

func (s *authService) Status(ctx context.Context, deviceID string) (*AuthStatus, error) {
	log := logger.FromContext(ctx)
	session := s.Session(deviceID)

	id, err := session.Identity(ctx)
	if err != nil {
		log.Error("failed to load identity: %v", err)
		return nil, asInternal(err)
	}
	length, err := session.PINLength(ctx)
	if err != nil {
		log.Error("failed to load pin: %v", err)
		return nil, asInternal(err)
	}
	return &AuthStatus{
		SignedIn:  id != nil,
		Identity:  id,
		HasPIN:    length > 0,
		PINLength: length,
	}, nil
}

// SignIn accepts any non-empty credentials. There is no account backend.
func (s *authService) SignIn(ctx context.Context, deviceID, email, password string) (*models.Identity, error) {
	log := logger.FromContext(ctx)
	log.Debug("signing in device")

	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.NewValidationError("email", "enter a valid email address")
	}
	if password == "" {
		return nil, errors.NewValidationError("password", "cannot be empty")
	}

	id, err := s.Session(deviceID).SignIn(ctx, email)
	if err != nil {
		return nil, asInternal(err)
	}
	return id, nil
}

func (s *authService) SignOut(ctx context.Context, deviceID string) error {
	if err := s.Session(deviceID).SignOut(ctx); err != nil {
		logger.FromContext(ctx).Error("failed to sign out: %v", err)
		return asInternal(err)
	}
	s.screens.Forget(deviceID)
	return nil
}

func (s *authService) SavePIN(ctx context.Context, deviceID, pin string) error {
	return asInternal(s.Session(deviceID).SetPIN(ctx, strings.TrimSpace(pin)))
}

// asInternal wraps storage errors that are not already AppErrors.
func asInternal(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.NewInternalError(err)
}
