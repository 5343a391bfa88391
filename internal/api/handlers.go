package api

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/vytor/nahuatl/internal/audio"
	"github.com/vytor/nahuatl/internal/catalog"
	"github.com/vytor/nahuatl/internal/device"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/services"
)

// Pinger reports storage connectivity for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	DB               Pinger
	AuthService      services.AuthService
	PinService       services.PinService
	LessonService    services.LessonService
	DashboardService services.DashboardService
	Catalog          catalog.Provider
	Audio            *audio.Library
	Devices          *device.Issuer
	Templates        *template.Template
	Static           fs.FS
	SecureCookies    bool
}

type pageData map[string]any

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	s.renderStatus(w, r, http.StatusOK, name, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if _, ok := data["flash"]; !ok {
		data["flash"] = takeFlash(w, r)
	}

	log := logger.FromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
