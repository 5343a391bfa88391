package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/screens"
)

func TestAuthService_SignInAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	status, err := f.auth.Status(ctx, "dev")
	require.NoError(t, err)
	assert.False(t, status.SignedIn)
	assert.False(t, status.HasPIN)

	id, err := f.auth.SignIn(ctx, "dev", "xochitl@example.mx", "secret")
	require.NoError(t, err)
	assert.Equal(t, "xochitl", id.Name)

	status, err = f.auth.Status(ctx, "dev")
	require.NoError(t, err)
	assert.True(t, status.SignedIn)
	assert.Equal(t, "xochitl@example.mx", status.Identity.Email)
}

func TestAuthService_SignInValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.SignIn(ctx, "dev", "not-an-email", "secret")
	assert.True(t, errors.IsValidation(err))

	_, err = f.auth.SignIn(ctx, "dev", "a@b.mx", "")
	assert.True(t, errors.IsValidation(err))
}

func TestAuthService_SignOutKeepsPINAndDropsScreens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.SignIn(ctx, "dev", "a@b.mx", "pw")
	require.NoError(t, err)
	require.NoError(t, f.auth.SavePIN(ctx, "dev", "1234"))
	_, err = f.lessons.Start(ctx, "dev", "unit-1", "l4")
	require.NoError(t, err)

	require.NoError(t, f.auth.SignOut(ctx, "dev"))

	status, err := f.auth.Status(ctx, "dev")
	require.NoError(t, err)
	assert.False(t, status.SignedIn)
	assert.True(t, status.HasPIN)
	assert.Equal(t, 4, status.PINLength)
	assert.Equal(t, 0, f.registry.Len())
}

func TestAuthService_SavePINValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.SignIn(ctx, "dev", "a@b.mx", "pw")
	require.NoError(t, err)

	assert.True(t, errors.IsValidation(f.auth.SavePIN(ctx, "dev", "12")))
	assert.NoError(t, f.auth.SavePIN(ctx, "dev", " 123456 "))
}

func TestParsePadMode(t *testing.T) {
	assert.Equal(t, screens.PadModeSetup, screens.ParsePadMode("setup"))
	assert.Equal(t, screens.PadModeVerify, screens.ParsePadMode(""))
	assert.Equal(t, screens.PadModeVerify, screens.ParsePadMode("other"))
}
