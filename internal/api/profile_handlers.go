package api

import (
	"net/http"

	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/logger"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := s.AuthService.Status(ctx, deviceFromContext(ctx))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	stats, err := s.DashboardService.Stats(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, "pages/profile.html", pageData{
		"title":    "Profile",
		"nav":      "profile",
		"identity": status.Identity,
		"auth":     status,
		"stats":    stats,
	})
}

func (s *Server) handleSavePIN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := s.AuthService.SavePIN(ctx, deviceFromContext(ctx), r.FormValue("pin"))
	if errors.IsValidation(err) && !wantsJSON(r) {
		setFlash(w, flash{Title: "Invalid PIN", Description: "PIN must be 4-6 digits.", Error: true})
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(ctx).Info("pin saved")
	setFlash(w, flash{Title: "PIN saved!", Description: "You can now use it for quick login."})
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.AuthService.SignOut(ctx, deviceFromContext(ctx)); err != nil {
		handleError(w, r, err)
		return
	}
	setFlash(w, flash{Title: "Signed out", Description: "See you soon!"})
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}
