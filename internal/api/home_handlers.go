package api

import (
	"net/http"

	"github.com/vytor/nahuatl/internal/logger"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	log.Debug("rendering home page")

	status, err := s.AuthService.Status(ctx, deviceFromContext(ctx))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	home, err := s.DashboardService.Home(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, "pages/home.html", pageData{
		"title":    "Home",
		"nav":      "home",
		"identity": status.Identity,
		"home":     home,
	})
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	units, err := s.Catalog.Units(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, "pages/units.html", pageData{
		"title": "Learning Path",
		"nav":   "learn",
		"units": units,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Warn("404: no route for %s", r.URL.Path)
	if wantsJSON(r) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": map[string]any{"code": "NOT_FOUND", "message": "page not found"},
		})
		return
	}
	s.renderStatus(w, r, http.StatusNotFound, "pages/not_found.html", pageData{"title": "Not found"})
}
