package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/nahuatl/internal/audio"
	"github.com/vytor/nahuatl/internal/logger"
)

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	f, info, err := s.Audio.Open(ref)
	if err != nil {
		logger.FromContext(r.Context()).Debug("audio %q not served: %v", ref, err)
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", audio.ContentType(ref))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
