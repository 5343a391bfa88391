package api

import (
	"net/http"

	"github.com/vytor/nahuatl/internal/audio"
	"github.com/vytor/nahuatl/internal/models"
)

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	review, err := s.DashboardService.Review(ctx, models.ParseWordTab(r.URL.Query().Get("tab")))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	playable := make(map[string]bool, len(review.Words))
	for _, word := range review.Words {
		if word.AudioRef != "" && s.Audio != nil {
			playable[word.ID] = s.Audio.Probe(ctx, word.AudioRef) == audio.EventReady
		}
	}

	s.render(w, r, "pages/review.html", pageData{
		"title":  "Review",
		"nav":    "review",
		"review": review,
		"audio":  playable,
	})
}
