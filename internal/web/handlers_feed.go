package web

import (
	"net/http"

	"wagontrail/internal/errs"
)

// GET /feed and /trains/{id}/feed
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if s.Feed == nil {
		s.writeError(w, r, errs.New(errs.CodeNotFound, "live feed is disabled"))
		return
	}
	id := r.PathValue("id")
	if id != "" {
		if _, err := s.Engine.Train(r.Context(), id); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if err := s.Feed.Serve(w, r, id); err != nil {
		s.logf("feed %s: %v", r.URL.Path, err)
	}
}
