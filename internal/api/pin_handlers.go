package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/pinpad"
	"github.com/vytor/nahuatl/internal/screens"
)

type pinResponse struct {
	State    pinpad.State `json:"state"`
	Filled   []bool       `json:"filled"`
	Redirect string       `json:"redirect,omitempty"`
}

func writePinState(w http.ResponseWriter, st pinpad.State, redirect string) {
	writeJSON(w, http.StatusOK, pinResponse{State: st, Filled: st.Filled(), Redirect: redirect})
}

func (s *Server) handlePinOpen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	length := 0
	if v := r.FormValue("length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("length must be a number"))
			return
		}
		length = n
	}

	st, err := s.PinService.Open(ctx, deviceFromContext(ctx), screens.ParsePadMode(r.FormValue("mode")), length)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writePinState(w, st, "")
}

// handlePinDigit feeds one digit. Once the pad accepts, it is closed and the
// response names the page to continue on.
func (s *Server) handlePinDigit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deviceID := deviceFromContext(ctx)

	mode, err := s.PinService.Mode(ctx, deviceID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	st, err := s.PinService.PressDigit(ctx, deviceID, r.FormValue("digit"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !st.Accepted() {
		writePinState(w, st, "")
		return
	}

	s.PinService.Close(ctx, deviceID)
	redirect := "/"
	if mode == screens.PadModeSetup {
		redirect = "/profile"
		setFlash(w, flash{Title: "PIN saved!", Description: "You can now use it for quick login."})
	} else {
		setFlash(w, flash{Title: "Welcome back!"})
	}
	writePinState(w, st, redirect)
}

func (s *Server) handlePinBackspace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := s.PinService.Backspace(ctx, deviceFromContext(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writePinState(w, st, "")
}

func (s *Server) handlePinState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := s.PinService.State(ctx, deviceFromContext(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writePinState(w, st, "")
}

func (s *Server) handlePinClose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.PinService.Close(ctx, deviceFromContext(ctx))
	w.WriteHeader(http.StatusNoContent)
}
