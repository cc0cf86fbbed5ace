// Package web serves the wagon trail engine over HTTP: a JSON API for
// running games at the table and a small HTML dashboard.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"

	"wagontrail/internal/errs"
	"wagontrail/internal/feed"
	"wagontrail/internal/trail"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded dashboard templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"cash": cashFunc,
	}).ParseFS(templateFS, "templates/*.html")
}

type Server struct {
	Engine *trail.Engine
	Tmpl   *template.Template
	Logger *log.Logger
	// Feed, when set, serves live commits over websockets.
	Feed   *feed.Hub
}

// maxBody caps request bodies.
const maxBody = 1 << 20

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)

	mux.HandleFunc("GET /trains", s.handleListTrains)
	mux.HandleFunc("POST /trains", s.handleCreateTrain)
	mux.HandleFunc("GET /trains/{id}", s.handleGetTrain)
	mux.HandleFunc("POST /trains/{id}/roll/{kind}", s.handleRoll)
	mux.HandleFunc("POST /trains/{id}/decide", s.handleDecide)
	mux.HandleFunc("POST /trains/{id}/buy", s.handleBuy)
	mux.HandleFunc("POST /trains/{id}/travel", s.handleTravel)
	mux.HandleFunc("POST /trains/{id}/fail", s.handleFail)

	mux.HandleFunc("GET /trains/{id}/combat", s.handleGetCombat)
	mux.HandleFunc("POST /trains/{id}/combat", s.handleStartCombat)
	mux.HandleFunc("POST /trains/{id}/combat/attack", s.handleAttack)
	mux.HandleFunc("POST /trains/{id}/combat/damage", s.handleAdjustEnemy)
	mux.HandleFunc("POST /trains/{id}/combat/heal", s.handleAdjustEnemy)
	mux.HandleFunc("POST /trains/{id}/combat/flee", s.handleFlee)

	mux.HandleFunc("GET /trains/{id}/score", s.handleTrainScore)
	mux.HandleFunc("GET /trains/{id}/scoresheet.pdf", s.handleScoresheet)
	mux.HandleFunc("GET /feed", s.handleFeed)
	mux.HandleFunc("GET /trains/{id}/feed", s.handleFeed)
	mux.HandleFunc("GET /prices", s.handlePrices)
	mux.HandleFunc("POST /score", s.handleScoreFacts)
	return mux
}

func (s *Server) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code     errs.Code         `json:"code"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logf("encode response: %v", err)
	}
}

// writeError answers with err's status and a JSON body carrying its code.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	detail := errorDetail{Code: errs.CodeOf(err), Message: err.Error()}
	var e *errs.Error
	if errors.As(err, &e) {
		detail.Metadata = e.Metadata
	}
	if status >= http.StatusInternalServerError {
		s.logf("%s %s: %v", r.Method, r.URL.Path, err)
		detail.Message = "internal error"
	}
	s.writeJSON(w, status, errorBody{Error: detail})
}

// decode reads a JSON body into v. An empty body leaves v at its zero value.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errs.Wrap(errs.CodeInvalidInput, "bad request body", err)
	}
	return nil
}
