package audio_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nahuatl/internal/audio"
)

func newLibrary(t *testing.T) *audio.Library {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "niltze.mp3"), []byte("ID3"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.mp3"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "clips.mp3"), 0o755))
	return audio.NewLibrary(dir)
}

func TestProbe(t *testing.T) {
	lib := newLibrary(t)
	ctx := context.Background()

	tests := []struct {
		ref  string
		want audio.Event
	}{
		{"niltze.mp3", audio.EventReady},
		{"missing.mp3", audio.EventLoadError},
		{"empty.mp3", audio.EventLoadError},
		{"notes.txt", audio.EventLoadError},
		{"clips.mp3", audio.EventLoadError},
		{"../niltze.mp3", audio.EventLoadError},
		{"/etc/passwd", audio.EventLoadError},
		{"", audio.EventLoadError},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, lib.Probe(ctx, tt.ref))
		})
	}
}

func TestOpen(t *testing.T) {
	lib := newLibrary(t)

	f, info, err := lib.Open("niltze.mp3")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, int64(3), info.Size())

	_, _, err = lib.Open("..%2Fsecret.mp3")
	assert.Error(t, err)

	_, _, err = lib.Open(`..\niltze.mp3`)
	assert.ErrorIs(t, err, audio.ErrInvalidRef)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "audio/mpeg", audio.ContentType("a.MP3"))
	assert.Equal(t, "audio/ogg", audio.ContentType("b.ogg"))
	assert.Empty(t, audio.ContentType("c.exe"))
}
