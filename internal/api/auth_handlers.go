package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/screens"
)

func authMode(r *http.Request) string {
	if r.FormValue("mode") == "signup" {
		return "signup"
	}
	return "login"
}

func (s *Server) handleAuthPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := s.AuthService.Status(ctx, deviceFromContext(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if status.SignedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.render(w, r, "pages/auth.html", pageData{
		"title":   "Sign in",
		"mode":    authMode(r),
		"email":   "",
		"has_pin": status.HasPIN,
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	if err := r.ParseForm(); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid form"))
		return
	}

	email := r.PostFormValue("email")
	id, err := s.AuthService.SignIn(ctx, deviceFromContext(ctx), email, r.PostFormValue("password"))
	if err != nil {
		if !errors.IsValidation(err) {
			handleError(w, r, err)
			return
		}
		appErr, _ := errors.As(err)
		status, serr := s.AuthService.Status(ctx, deviceFromContext(ctx))
		if serr != nil {
			handleError(w, r, serr)
			return
		}
		s.renderStatus(w, r, http.StatusBadRequest, "pages/auth.html", pageData{
			"title":   "Sign in",
			"mode":    authMode(r),
			"email":   email,
			"error":   appErr.Message,
			"has_pin": status.HasPIN,
		})
		return
	}

	log.Info("device signed in as %s", id.Email)
	setFlash(w, flash{Title: "Welcome back!", Description: "Niltze, " + id.Name + "!"})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handlePinPage renders the keypad. Verify pads need a stored PIN and setup
// pads need a signed-in device; otherwise the page bounces back.
func (s *Server) handlePinPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := s.AuthService.Status(ctx, deviceFromContext(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}

	mode := screens.ParsePadMode(r.URL.Query().Get("mode"))
	data := pageData{"title": "PIN", "mode": string(mode)}
	switch mode {
	case screens.PadModeSetup:
		if !status.SignedIn {
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
			return
		}
		length, _ := strconv.Atoi(r.URL.Query().Get("length"))
		if length < 4 || length > 6 {
			length = 4
		}
		data["length"] = length
		data["cancel"] = "/profile"
	default:
		if !status.HasPIN {
			setFlash(w, flash{Title: "No PIN set", Description: "Sign in with your email first.", Error: true})
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
			return
		}
		data["length"] = status.PINLength
		data["cancel"] = "/auth"
	}

	s.render(w, r, "pages/pin.html", data)
}
