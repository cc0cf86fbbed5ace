package web

import (
	"net/http"

	"wagontrail/internal/encounter"
	"wagontrail/internal/game"
)

type createTrainRequest struct {
	Name  string               `json:"name"`
	Party []game.CharacterSpec `json:"party"`
}

type rollRequest struct {
	Rolls []int `json:"rolls"`
}

type decideRequest struct {
	Option string `json:"option"`
}

type buyRequest struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

func (s *Server) handleListTrains(w http.ResponseWriter, r *http.Request) {
	list, err := s.Engine.Trains(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

// POST /trains
func (s *Server) handleCreateTrain(w http.ResponseWriter, r *http.Request) {
	var req createTrainRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.Engine.CreateTrain(r.Context(), req.Name, req.Party)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/trains/"+t.ID)
	s.writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTrain(w http.ResponseWriter, r *http.Request) {
	t, err := s.Engine.Train(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

// POST /trains/{id}/roll/{kind}
func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	kind, err := encounter.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req rollRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.Engine.Encounter(r.Context(), r.PathValue("id"), kind, req.Rolls...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var req decideRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.Engine.Decide(r.Context(), r.PathValue("id"), req.Option)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	receipt, err := s.Engine.Buy(r.Context(), r.PathValue("id"), req.Item, req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleTravel(w http.ResponseWriter, r *http.Request) {
	leg, err := s.Engine.Travel(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, leg)
}

func (s *Server) handleFail(w http.ResponseWriter, r *http.Request) {
	t, err := s.Engine.Fail(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}
