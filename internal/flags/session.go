package flags

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Message shown when a PIN does not match.
const MsgIncorrectPIN = "Incorrect PIN. Please try again."

// pinRecord is the value stored under KeyPIN. Owner lets a PIN quick login
// restore the identity that configured it after a sign-out.
type pinRecord struct {
	Hash   string `json:"hash"`
	Length int    `json:"length"`
	Owner  string `json:"owner"`
}

// Session answers the authentication questions of one device on top of a
// Store. It is built per request and passed explicitly.
type Session struct {
	store Store
	cost  int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) SessionOption {
	return func(s *Session) {
		s.cost = cost
	}
}

func NewSession(store Store, opts ...SessionOption) *Session {
	s := &Session{store: store, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignedIn reports whether an identity record is present.
func (s *Session) SignedIn(ctx context.Context) (bool, error) {
	_, ok, err := s.store.Get(ctx, KeyIdentity)
	return ok, err
}

// Identity returns the stored identity, or nil when signed out.
func (s *Session) Identity(ctx context.Context) (*models.Identity, error) {
	raw, ok, err := s.store.Get(ctx, KeyIdentity)
	if err != nil || !ok {
		return nil, err
	}
	var id models.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("decode identity: %w", err))
	}
	return &id, nil
}

// SignIn stores the identity for email. Credentials are not checked.
func (s *Session) SignIn(ctx context.Context, email string) (*models.Identity, error) {
	log := logger.FromContext(ctx).WithPrefix("session")

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.NewValidationError("email", "cannot be empty")
	}
	id := models.NewIdentity(email)
	raw, err := json.Marshal(id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if err := s.store.Set(ctx, KeyIdentity, string(raw)); err != nil {
		log.Error("failed to store identity: %v", err)
		return nil, err
	}
	log.Info("signed in: name=%s", id.Name)
	return &id, nil
}

// SignOut removes the identity. The PIN is kept.
func (s *Session) SignOut(ctx context.Context) error {
	logger.FromContext(ctx).WithPrefix("session").Info("signing out")
	return s.store.Remove(ctx, KeyIdentity)
}

func (s *Session) HasPIN(ctx context.Context) (bool, error) {
	_, ok, err := s.store.Get(ctx, KeyPIN)
	return ok, err
}

// PINLength returns the digit count of the stored PIN, 0 when none is set.
func (s *Session) PINLength(ctx context.Context) (int, error) {
	rec, ok, err := s.pinRecord(ctx)
	if err != nil || !ok {
		return 0, err
	}
	return rec.Length, nil
}

func (s *Session) pinRecord(ctx context.Context) (pinRecord, bool, error) {
	raw, ok, err := s.store.Get(ctx, KeyPIN)
	if err != nil || !ok {
		return pinRecord{}, false, err
	}
	var rec pinRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return pinRecord{}, false, errors.NewInternalError(fmt.Errorf("decode pin: %w", err))
	}
	return rec, true, nil
}

// ValidPIN reports whether pin is 4 to 6 ASCII digits.
func ValidPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

// SetPIN stores a bcrypt hash of pin for the signed-in identity.
func (s *Session) SetPIN(ctx context.Context, pin string) error {
	log := logger.FromContext(ctx).WithPrefix("session")

	if !ValidPIN(pin) {
		return errors.NewValidationError("pin", "must be 4 to 6 digits")
	}
	id, err := s.Identity(ctx)
	if err != nil {
		return err
	}
	if id == nil {
		return errors.NewUnauthorizedError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), s.cost)
	if err != nil {
		return errors.NewInternalError(err)
	}
	raw, err := json.Marshal(pinRecord{Hash: string(hash), Length: len(pin), Owner: id.Email})
	if err != nil {
		return errors.NewInternalError(err)
	}
	if err := s.store.Set(ctx, KeyPIN, string(raw)); err != nil {
		log.Error("failed to store pin: %v", err)
		return err
	}
	log.Info("pin configured: length=%d", len(pin))
	return nil
}

// VerifyPIN compares pin with the stored secret. On a match it restores the
// PIN owner's identity, which makes PIN entry a quick login.
func (s *Session) VerifyPIN(ctx context.Context, pin string) error {
	log := logger.FromContext(ctx).WithPrefix("session")

	rec, ok, err := s.pinRecord(ctx)
	if err != nil {
		return err
	}
	if !ok {
		log.Debug("pin verification without stored pin")
		return errors.NewAuthMismatchError(MsgIncorrectPIN)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.Hash), []byte(pin)); err != nil {
		log.Debug("pin mismatch")
		return errors.NewAuthMismatchError(MsgIncorrectPIN)
	}

	signedIn, err := s.SignedIn(ctx)
	if err != nil {
		return err
	}
	if !signedIn && rec.Owner != "" {
		if _, err := s.SignIn(ctx, rec.Owner); err != nil {
			return err
		}
	}
	log.Info("pin accepted")
	return nil
}
