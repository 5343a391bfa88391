// Package audio resolves pronunciation clips referenced by exercises and
// words. Playback itself happens in the browser.
package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/vytor/nahuatl/internal/logger"
)

// Event is the outcome of loading a clip.
type Event string

const (
	EventReady     Event = "ready"
	EventLoadError Event = "load-error"
)

var ErrInvalidRef = errors.New("invalid audio reference")

var allowedExt = map[string]string{
	".mp3": "audio/mpeg",
	".ogg": "audio/ogg",
	".wav": "audio/wav",
	".m4a": "audio/mp4",
}

type Library struct {
	dir string
}

func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// validRef accepts plain file names with a known audio extension.
func validRef(ref string) bool {
	if ref == "" || ref != filepath.Base(ref) || strings.ContainsAny(ref, `/\`) || strings.HasPrefix(ref, ".") {
		return false
	}
	_, ok := allowedExt[strings.ToLower(filepath.Ext(ref))]
	return ok
}

// ContentType returns the MIME type for ref's extension.
func ContentType(ref string) string {
	return allowedExt[strings.ToLower(filepath.Ext(ref))]
}

// Probe reports whether ref can be played. A failure is final; callers do
// not retry.
func (l *Library) Probe(ctx context.Context, ref string) Event {
	log := logger.FromContext(ctx).WithPrefix("audio")

	f, info, err := l.Open(ref)
	if err != nil {
		log.Debug("audio %q unavailable: %v", ref, err)
		return EventLoadError
	}
	_ = f.Close()
	if info.Size() == 0 {
		log.Debug("audio %q is empty", ref)
		return EventLoadError
	}
	return EventReady
}

// Open returns the clip for streaming. The caller closes the file.
func (l *Library) Open(ref string) (*os.File, os.FileInfo, error) {
	if !validRef(ref) {
		return nil, nil, ErrInvalidRef
	}
	f, err := os.OpenInRoot(l.dir, ref)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, ErrInvalidRef
	}
	return f, info, nil
}
