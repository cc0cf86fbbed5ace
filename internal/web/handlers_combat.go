package web

import (
	"net/http"
	"path"

	"wagontrail/internal/trail"
)

type startCombatRequest struct {
	Enemy string `json:"enemy"`
	Count int    `json:"count"`
}

type adjustRequest struct {
	Enemy  int `json:"enemy"`
	Amount int `json:"amount"`
}

func (s *Server) handleGetCombat(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Engine.Combat(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleStartCombat(w http.ResponseWriter, r *http.Request) {
	req := startCombatRequest{Count: 1}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.Engine.StartCombat(r.Context(), r.PathValue("id"), req.Enemy, req.Count)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	var opts trail.AttackOptions
	if err := decode(r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.Engine.Attack(r.Context(), r.PathValue("id"), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

// POST /trains/{id}/combat/damage and /heal
func (s *Server) handleAdjustEnemy(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	adjust := s.Engine.DamageEnemy
	if path.Base(r.URL.Path) == "heal" {
		adjust = s.Engine.HealEnemy
	}
	out, err := adjust(r.Context(), r.PathValue("id"), req.Enemy, req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFlee(w http.ResponseWriter, r *http.Request) {
	out, err := s.Engine.Flee(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}
