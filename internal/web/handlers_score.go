package web

import (
	"fmt"
	"net/http"

	"wagontrail/internal/errs"
	"wagontrail/internal/scoresheet"
	"wagontrail/internal/scoring"
)

func (s *Server) handleTrainScore(w http.ResponseWriter, r *http.Request) {
	b, err := s.Engine.Score(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

// GET /trains/{id}/scoresheet.pdf
func (s *Server) handleScoresheet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	t, err := s.Engine.Train(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.Engine.Score(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pdf, err := scoresheet.Generate(s.Engine.Catalog, t, b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="scoresheet-%s.pdf"`, id))
	if _, err := w.Write(pdf); err != nil {
		s.logf("write scoresheet %s: %v", id, err)
	}
}

// GET /prices?stop=
func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	stop := r.URL.Query().Get("stop")
	if stop == "" {
		s.writeError(w, r, errs.New(errs.CodeInvalidInput, "stop is required"))
		return
	}
	list, err := s.Engine.Prices(stop)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

// POST /score totals facts that were tallied by hand.
func (s *Server) handleScoreFacts(w http.ResponseWriter, r *http.Request) {
	var f scoring.Facts
	if err := decode(r, &f); err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.Engine.ScoreFacts(f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}
