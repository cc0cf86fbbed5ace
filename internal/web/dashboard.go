package web

import (
	"net/http"

	"wagontrail/internal/catalog"
	"wagontrail/internal/game"
)

// DashboardViewModel contains data for rendering the dashboard.
type DashboardViewModel struct {
	Trains []game.Summary
	Stops  []catalog.Stop
}

func cashFunc(n int) string { return game.FormatCash(n) }

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	list, err := s.Engine.Trains(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	vm := DashboardViewModel{Trains: list, Stops: s.Engine.Catalog.Stops}
	w.Header().Set("Cache-Control", "no-store")
	if err := s.Tmpl.ExecuteTemplate(w, "index.html", vm); err != nil {
		s.logf("render dashboard: %v", err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
	}
}

// StopName returns the display name of the stop at index i.
func (vm DashboardViewModel) StopName(i int) string {
	if i < 0 || i >= len(vm.Stops) {
		return "?"
	}
	return vm.Stops[i].Name
}
