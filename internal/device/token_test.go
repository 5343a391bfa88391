package device_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nahuatl/internal/device"
)

const secret = "0123456789abcdef0123"

func TestIssueAndParse(t *testing.T) {
	issuer := device.NewIssuer(secret, time.Hour)
	id := device.NewID()

	token, err := issuer.Issue(id)
	require.NoError(t, err)

	got, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Rejects(t *testing.T) {
	issuer := device.NewIssuer(secret, time.Hour)
	id := device.NewID()

	token, err := issuer.Issue(id)
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := device.NewIssuer("another-secret-value", time.Hour).Parse(token)
		assert.ErrorIs(t, err, device.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := issuer.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })
		_, err := later.Parse(token)
		assert.ErrorIs(t, err, device.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		assert.ErrorIs(t, err, device.ErrInvalidToken)
	})

	t.Run("subject not a device id", func(t *testing.T) {
		bad, err := issuer.Issue("admin")
		require.NoError(t, err)
		_, err = issuer.Parse(bad)
		assert.ErrorIs(t, err, device.ErrInvalidToken)
	})
}

func TestNewID_Unique(t *testing.T) {
	assert.NotEqual(t, device.NewID(), device.NewID())
}
