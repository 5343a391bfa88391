package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.Static))))
	r.Get("/audio/{ref}", s.handleAudio)

	r.Group(func(r chi.Router) {
		r.Use(s.deviceMiddleware)
		r.Use(s.authGuard)

		r.Get("/auth", s.handleAuthPage)
		r.Post("/auth", s.handleSignIn)
		r.Get("/auth/pin", s.handlePinPage)

		r.Route("/api/pin", func(r chi.Router) {
			r.Post("/open", s.handlePinOpen)
			r.Post("/digit", s.handlePinDigit)
			r.Post("/backspace", s.handlePinBackspace)
			r.Post("/close", s.handlePinClose)
			r.Get("/state", s.handlePinState)
		})

		r.Get("/", s.handleHome)
		r.Get("/units", s.handleUnits)
		r.Get("/lessons/{unitID}", s.handleLessons)
		r.Post("/lessons/{unitID}/{lessonID}/start", s.handleStartLesson)
		r.Route("/lessons/{unitID}/run", func(r chi.Router) {
			r.Get("/", s.handleRun)
			r.Post("/answer", s.handleAnswer)
			r.Post("/skip", s.handleSkip)
			r.Post("/next", s.handleNext)
			r.Post("/close", s.handleCloseRun)
		})
		r.Get("/review", s.handleReview)
		r.Get("/profile", s.handleProfile)
		r.Post("/profile/pin", s.handleSavePIN)
		r.Post("/profile/signout", s.handleSignOut)
	})

	r.NotFound(s.handleNotFound)

	return r
}
