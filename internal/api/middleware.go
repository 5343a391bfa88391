package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/vytor/nahuatl/internal/device"
	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/logger"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type contextKey string

const (
	deviceContextKey contextKey = "device"
	deviceCookieName            = "device"
)

// publicPrefixes are reachable without a signed-in identity.
var publicPrefixes = []string{"/auth", "/api/pin/", "/static/", "/audio/", "/healthz", "/readyz"}

func isPublic(path string) bool {
	for _, p := range publicPrefixes {
		if path == strings.TrimSuffix(p, "/") || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func deviceFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(deviceContextKey).(string); ok {
		return v
	}
	return ""
}

// deviceMiddleware resolves the signed device cookie, issuing a fresh device
// id when the cookie is missing or does not verify.
func (s *Server) deviceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var deviceID string
		if cookie, err := r.Cookie(deviceCookieName); err == nil && cookie.Value != "" {
			id, err := s.Devices.Parse(cookie.Value)
			if err != nil {
				log.Warn("invalid device cookie, issuing a new one: %v", err)
			} else {
				deviceID = id
			}
		}

		if deviceID == "" {
			deviceID = device.NewID()
			token, err := s.Devices.Issue(deviceID)
			if err != nil {
				handleError(w, r, errors.NewInternalError(err))
				return
			}
			s.setDeviceCookie(w, token)
			log.Debug("issued device %s", deviceID)
		}

		ctx := context.WithValue(r.Context(), deviceContextKey, deviceID)
		ctx = logger.NewContext(ctx, log.WithField("device", deviceID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authGuard sends devices without an identity to /auth. JSON clients get a
// 401 instead of the redirect.
func (s *Server) authGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContext(r.Context())
		signedIn, err := s.AuthService.Session(deviceFromContext(r.Context())).SignedIn(r.Context())
		if err != nil {
			handleError(w, r, errors.NewInternalError(err))
			return
		}
		if !signedIn {
			if wantsJSON(r) {
				handleError(w, r, errors.NewUnauthorizedError())
				return
			}
			log.Debug("no identity, redirecting to /auth")
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) setDeviceCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.Devices.TTL()),
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// generateRequestID creates a random request ID.
func generateRequestID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// loggingMiddleware logs HTTP requests with timing, status codes, and request IDs.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}

		log := logger.Default().WithFields(map[string]any{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		if r.RemoteAddr != "" {
			log = log.WithField("remote_addr", r.RemoteAddr)
		}

		r = r.WithContext(logger.NewContext(r.Context(), log))
		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		log.Debug("request started")
		next.ServeHTTP(wrapped, r)

		log = log.WithFields(map[string]any{
			"status":      wrapped.status,
			"size":        wrapped.size,
			"duration_ms": time.Since(start).Milliseconds(),
		})

		if wrapped.status >= 500 {
			log.Error("request completed with server error")
		} else if wrapped.status >= 400 {
			log.Warn("request completed with client error")
		} else {
			log.Info("request completed")
		}
	})
}

// recoveryMiddleware recovers from panics and logs them.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log := logger.FromContext(r.Context())
				log.Error("panic recovered: %v", rec)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
