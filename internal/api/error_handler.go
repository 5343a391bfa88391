package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/logger"
)

// wantsJSON reports whether the caller expects a JSON body rather than a page.
func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	respondError(w, r, toAppError(r, err))
}

// fail is handleError for page handlers: a NOT_FOUND renders the not-found
// page instead of a plain text body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	appErr := toAppError(r, err)
	if appErr.Status == http.StatusNotFound && !wantsJSON(r) {
		s.renderStatus(w, r, http.StatusNotFound, "pages/not_found.html", pageData{"title": "Not found"})
		return
	}
	respondError(w, r, appErr)
}

func toAppError(r *http.Request, err error) *errors.AppError {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}
	return appErr
}

func respondError(w http.ResponseWriter, r *http.Request, appErr *errors.AppError) {
	if wantsJSON(r) {
		writeJSON(w, appErr.Status, map[string]interface{}{
			"error": map[string]interface{}{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}
	http.Error(w, appErr.Message, appErr.Status)
}
