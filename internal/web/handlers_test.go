package web

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wagontrail/internal/catalog"
	"wagontrail/internal/combat"
	"wagontrail/internal/dice"
	"wagontrail/internal/errs"
	"wagontrail/internal/game"
	"wagontrail/internal/scoring"
	"wagontrail/internal/session"
	"wagontrail/internal/trail"
)

const partyJSON = `{"name":"The Donners","party":[
	{"name":"George","job":"banker","nationality":"american","religion":"methodist","role":"leader"},
	{"name":"Tamsen","job":"doctor","nationality":"irish","religion":"catholic","role":"spouse"}
]}`

func testServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	var buf bytes.Buffer
	logger := log.New(&buf, "[TRAIL] ", 0)
	engine := trail.New(cat, session.NewMemoryStore[game.WagonTrain](), dice.NewSeeded(1), logger)
	return &Server{Engine: engine, Tmpl: tmpl, Logger: logger}, &buf
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func createTrain(t *testing.T, srv *Server) game.WagonTrain {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/trains", partyJSON)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return decodeBody[game.WagonTrain](t, rec)
}

func TestHandleIndex(t *testing.T) {
	srv, _ := testServer(t)
	rec := do(t, srv, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No wagon trains yet") {
		t.Error("Expected empty dashboard")
	}

	createTrain(t, srv)
	rec = do(t, srv, http.MethodGet, "/", "")
	body := rec.Body.String()
	if !strings.Contains(body, "The Donners") || !strings.Contains(body, "$1,600") {
		t.Errorf("Expected train row with cash, got %s", body)
	}
	if !strings.Contains(body, "Independence") {
		t.Error("Expected the trail stops to be listed")
	}
}

func TestCreateGetAndListTrains(t *testing.T) {
	srv, logs := testServer(t)
	tr := createTrain(t, srv)
	if tr.ID == "" || tr.Cash != 1600 || len(tr.Party) != 2 {
		t.Fatalf("unexpected train %+v", tr)
	}

	rec := do(t, srv, http.MethodGet, "/trains/"+tr.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got := decodeBody[game.WagonTrain](t, rec); got.Name != "The Donners" {
		t.Errorf("Expected The Donners, got %q", got.Name)
	}

	rec = do(t, srv, http.MethodGet, "/trains", "")
	list := decodeBody[[]game.Summary](t, rec)
	if len(list) != 1 || list[0].ID != tr.ID || list[0].Alive != 2 {
		t.Errorf("unexpected list %+v", list)
	}
	if !strings.Contains(logs.String(), "op=create") {
		t.Errorf("Expected create to be logged, got %q", logs.String())
	}
}

func TestErrorResponses(t *testing.T) {
	srv, _ := testServer(t)
	tests := []struct {
		name, method, path, body string
		status                   int
		code                     errs.Code
	}{
		{"unknown train", http.MethodGet, "/trains/nope", "", http.StatusNotFound, errs.CodeNotFound},
		{"bad body", http.MethodPost, "/trains", `{"name":`, http.StatusBadRequest, errs.CodeInvalidInput},
		{"unknown field", http.MethodPost, "/trains", `{"wagon":1}`, http.StatusBadRequest, errs.CodeInvalidInput},
		{"empty party", http.MethodPost, "/trains", `{"name":"x","party":[]}`, http.StatusBadRequest, errs.CodeInvalidInput},
		{"prices without stop", http.MethodGet, "/prices", "", http.StatusBadRequest, errs.CodeInvalidInput},
		{"unknown stop", http.MethodGet, "/prices?stop=atlantis", "", http.StatusBadRequest, errs.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			body := decodeBody[errorBody](t, rec)
			if body.Error.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, body.Error.Code)
			}
		})
	}
}

func TestRollAndDecide(t *testing.T) {
	srv, _ := testServer(t)
	tr := createTrain(t, srv)
	base := "/trains/" + tr.ID

	rec := do(t, srv, http.MethodPost, base+"/roll/hunting", `{"rolls":[7]}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409 without ammunition, got %d", rec.Code)
	}
	if body := decodeBody[errorBody](t, rec); body.Error.Metadata["item"] != "ammunition" {
		t.Errorf("Expected item metadata, got %+v", body.Error)
	}

	rec = do(t, srv, http.MethodPost, base+"/roll/random-event", `{"rolls":[57]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeBody[trail.Outcome](t, rec)
	if out.Pending == nil || out.Pending.Title != "Toll Bridge" {
		t.Fatalf("Expected pending Toll Bridge, got %+v", out.Pending)
	}

	rec = do(t, srv, http.MethodPost, base+"/decide", `{"option":"pay"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if out := decodeBody[trail.Outcome](t, rec); out.Pending != nil || out.Train.Cash != 1600-15 {
		t.Errorf("Expected toll paid, got cash %d", out.Train.Cash)
	}

	if rec := do(t, srv, http.MethodPost, base+"/roll/dancing", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown table, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, base+"/roll/fishing", `{"rolls":[99]}`); rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 without a fishing pole, got %d", rec.Code)
	}
}

func TestCombatRoutes(t *testing.T) {
	srv, _ := testServer(t)
	tr := createTrain(t, srv)
	base := "/trains/" + tr.ID

	if rec := do(t, srv, http.MethodGet, base+"/combat", ""); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 before any fight, got %d", rec.Code)
	}
	rec := do(t, srv, http.MethodPost, base+"/combat", `{"enemy":"bandits","count":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if out := decodeBody[trail.CombatOutcome](t, rec); len(out.Combat.Enemies) != 2 {
		t.Fatalf("Expected 2 bandits, got %+v", out.Combat)
	}

	rec = do(t, srv, http.MethodPost, base+"/combat/attack", `{"roll":4}`)
	out := decodeBody[trail.CombatOutcome](t, rec)
	if out.Attack == nil || !out.Attack.Hit || out.Combat.Enemies[0].HP != 1 {
		t.Fatalf("Expected a hit on the first bandit, got %+v", out)
	}

	rec = do(t, srv, http.MethodPost, base+"/combat/heal", `{"enemy":0,"amount":5}`)
	if out := decodeBody[trail.CombatOutcome](t, rec); out.Combat.Enemies[0].HP != 2 {
		t.Errorf("Expected heal capped at 2, got %d", out.Combat.Enemies[0].HP)
	}

	do(t, srv, http.MethodPost, base+"/combat/damage", `{"enemy":0,"amount":2}`)
	rec = do(t, srv, http.MethodPost, base+"/combat/damage", `{"enemy":1,"amount":2}`)
	out = decodeBody[trail.CombatOutcome](t, rec)
	if out.Combat.State != combat.Won || out.Train.Cash != 1600+50 {
		t.Errorf("Expected won with rewards, got %s cash %d", out.Combat.State, out.Train.Cash)
	}

	if rec := do(t, srv, http.MethodPost, base+"/combat/flee", ""); rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 fleeing a finished fight, got %d", rec.Code)
	}
	rec = do(t, srv, http.MethodGet, base+"/combat", "")
	if snap := decodeBody[combat.Snapshot](t, rec); snap.State != combat.Won || len(snap.Log) == 0 {
		t.Errorf("Expected won fight with a log, got %+v", snap)
	}
}

func TestBuyTravelAndFail(t *testing.T) {
	srv, _ := testServer(t)
	tr := createTrain(t, srv)
	base := "/trains/" + tr.ID

	rec := do(t, srv, http.MethodPost, base+"/buy", `{"item":"food","quantity":10}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if r := decodeBody[trail.Receipt](t, rec); r.Train.Quantity("food") != 10 || r.Discount == 0 {
		t.Errorf("Expected 10 food with the banker's discount, got %+v", r)
	}

	rec = do(t, srv, http.MethodPost, base+"/travel", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	leg := decodeBody[trail.Leg](t, rec)
	if leg.Train.StopIndex != 1 || leg.Eaten != 2 {
		t.Errorf("Expected one leg eating 2 rations, got stop %d eaten %d", leg.Train.StopIndex, leg.Eaten)
	}

	if rec := do(t, srv, http.MethodPost, base+"/fail", ""); rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, base+"/travel", ""); rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 traveling a failed train, got %d", rec.Code)
	}
}

func TestPrices(t *testing.T) {
	srv, _ := testServer(t)
	rec := do(t, srv, http.MethodGet, "/prices?stop=fort_boise", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	for _, p := range decodeBody[[]struct {
		Item  string `json:"item"`
		Base  int    `json:"base"`
		Price int    `json:"price"`
	}](t, rec) {
		if p.Price != p.Base*3 {
			t.Errorf("Expected %s at triple price, got %d from %d", p.Item, p.Price, p.Base)
		}
	}
}

func TestScoreRoutes(t *testing.T) {
	srv, _ := testServer(t)
	rec := do(t, srv, http.MethodPost, "/score", `{
		"reachedOregon": true, "survivingSpouses": 1, "survivingChildren": 2,
		"totalWealth": 237, "paintings": 3, "achievements": ["viking_rune"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if b := decodeBody[scoring.Breakdown](t, rec); b.Total != 938 {
		t.Errorf("Expected 938, got %d", b.Total)
	}
	if rec := do(t, srv, http.MethodPost, "/score", `{"paintings":-1}`); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative facts, got %d", rec.Code)
	}

	tr := createTrain(t, srv)
	rec = do(t, srv, http.MethodGet, "/trains/"+tr.ID+"/score", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if b := decodeBody[scoring.Breakdown](t, rec); len(b.Lines) == 0 {
		t.Error("Expected score lines")
	}
}

func TestScoresheet(t *testing.T) {
	srv, _ := testServer(t)
	tr := createTrain(t, srv)
	rec := do(t, srv, http.MethodGet, "/trains/"+tr.ID+"/scoresheet.pdf", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("Expected a PDF body")
	}
	if rec := do(t, srv, http.MethodGet, "/trains/nope/scoresheet.pdf", ""); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}
