package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/nahuatl/internal/errors"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/services"
)

func lessonsPath(unitID string) string { return "/lessons/" + unitID }

func runPath(unitID string) string { return "/lessons/" + unitID + "/run" }

func (s *Server) handleLessons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	unit, err := s.Catalog.Unit(ctx, chi.URLParam(r, "unitID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	active := false
	if run, err := s.LessonService.Current(ctx, deviceFromContext(ctx)); err == nil {
		active = run.UnitID == unit.ID
	}

	s.render(w, r, "pages/lessons.html", pageData{
		"title":      unit.Title,
		"nav":        "learn",
		"unit":       unit,
		"active_run": active,
	})
}

func (s *Server) handleStartLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	run, err := s.LessonService.Start(ctx, deviceFromContext(ctx), chi.URLParam(r, "unitID"), chi.URLParam(r, "lessonID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.afterRunStep(w, r, run)
}

// afterRunStep answers a run mutation: JSON clients get the view, forms are
// redirected to the exercise page.
func (s *Server) afterRunStep(w http.ResponseWriter, r *http.Request, run *services.RunView) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, run)
		return
	}
	http.Redirect(w, r, runPath(run.UnitID), http.StatusSeeOther)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	unitID := chi.URLParam(r, "unitID")

	run, err := s.LessonService.Current(ctx, deviceFromContext(ctx))
	if errors.IsNotFound(err) && !wantsJSON(r) {
		http.Redirect(w, r, lessonsPath(unitID), http.StatusSeeOther)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, run)
		return
	}
	if run.UnitID != unitID {
		http.Redirect(w, r, runPath(run.UnitID), http.StatusSeeOther)
		return
	}

	s.render(w, r, "pages/exercise.html", pageData{
		"title": "Lesson",
		"run":   run,
	})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	run, err := s.LessonService.Answer(ctx, deviceFromContext(ctx), r.FormValue("option"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.afterRunStep(w, r, run)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	run, err := s.LessonService.Skip(ctx, deviceFromContext(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.afterRunStep(w, r, run)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	run, summary, err := s.LessonService.Next(ctx, deviceFromContext(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if summary == nil {
		s.afterRunStep(w, r, run)
		return
	}

	log.Info("lesson %s finished with %d XP", summary.LessonID, summary.FinalScore)
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
		return
	}
	setFlash(w, flash{
		Title:       "Lesson Complete!",
		Description: fmt.Sprintf("You earned %d XP!", summary.FinalScore),
	})
	http.Redirect(w, r, lessonsPath(chi.URLParam(r, "unitID")), http.StatusSeeOther)
}

func (s *Server) handleCloseRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.LessonService.Close(ctx, deviceFromContext(ctx))
	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, lessonsPath(chi.URLParam(r, "unitID")), http.StatusSeeOther)
}
