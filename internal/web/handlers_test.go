package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Fbari2002/side-quest/internal/fallback"
	"github.com/Fbari2002/side-quest/internal/generator"
	"github.com/Fbari2002/side-quest/internal/model"
	"github.com/Fbari2002/side-quest/internal/quest"
	"github.com/Fbari2002/side-quest/internal/state"
)

const endToEndBody = `{"mood":"curious","time_available":"45 minutes","energy":"medium","social":"solo","chaos":4,"noSpend":false,"lowSensory":false}`

// countingGenerator records whether generation was reached.
type countingGenerator struct {
	calls  int
	result quest.Result
	err    error
}

func (g *countingGenerator) Generate(ctx context.Context, req model.QuestRequest) (quest.Result, error) {
	g.calls++
	return g.result, g.err
}

// fakeCompleter answers every completion with a fixed text or error.
type fakeCompleter struct {
	raw   string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.raw, f.err
}

func testServer(t *testing.T, att quest.Attempter, production bool) (*Server, *state.Memory, *quest.Service) {
	t.Helper()
	cat, err := fallback.LoadCatalog("")
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	mem := state.NewMemory(5)
	svc := quest.NewService(att, fallback.NewSelector(cat, mem, fallback.DefaultRerolls), mem, zap.NewNop(), production)
	return &Server{Quests: svc, State: mem, Logger: zap.NewNop(), Addr: "localhost:0", Online: att != nil}, mem, svc
}

func post(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decodeQuest(t *testing.T, w *httptest.ResponseRecorder) model.Quest {
	t.Helper()
	var q model.Quest
	if err := json.NewDecoder(w.Body).Decode(&q); err != nil {
		t.Fatalf("decoding quest: %v", err)
	}
	return q
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var e errorBody
	if err := json.NewDecoder(w.Body).Decode(&e); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return e.Error
}

func TestGenerateOfflineWithoutCredential(t *testing.T) {
	srv, _, _ := testServer(t, nil, false)

	w := post(t, srv, endToEndBody)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get(headerMode); got != "offline" {
		t.Errorf("expected X-Mode offline, got %q", got)
	}
	if got := w.Header().Get(headerPath); got != "missing-key" {
		t.Errorf("expected path missing-key, got %q", got)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected no-store, got %q", got)
	}
	if _, err := uuid.Parse(w.Header().Get(headerRequestID)); err != nil {
		t.Errorf("expected uuid request id, got %q", w.Header().Get(headerRequestID))
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	q := decodeQuest(t, w)
	if len(q.Steps) != 3 {
		t.Errorf("expected 3 steps, got %d", len(q.Steps))
	}
	if _, ok := q.Normalize(); !ok {
		t.Errorf("served quest is not well formed: %+v", q)
	}
}

func TestGenerateValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing mood", `{"time_available":"1h","energy":"low","social":"solo","chaos":1,"noSpend":true,"lowSensory":true}`, "mood is required."},
		{"chaos negative", strings.Replace(endToEndBody, `"chaos":4`, `"chaos":-1`, 1), "Invalid chaos."},
		{"chaos eleven", strings.Replace(endToEndBody, `"chaos":4`, `"chaos":11`, 1), "Invalid chaos."},
		{"energy extreme", strings.Replace(endToEndBody, `"medium"`, `"extreme"`, 1), "Invalid energy."},
		{"social group", strings.Replace(endToEndBody, `"solo"`, `"group"`, 1), "Invalid social value."},
		{"noSpend yes", strings.Replace(endToEndBody, `"noSpend":false`, `"noSpend":"yes"`, 1), "Invalid noSpend."},
		{"array payload", `[]`, "Invalid payload."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &countingGenerator{}
			srv := &Server{Quests: gen}

			w := post(t, srv, tc.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if got := decodeError(t, w); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
			if got := w.Header().Get(headerPath); got != "validation-error" {
				t.Errorf("expected validation-error path, got %q", got)
			}
			if gen.calls != 0 {
				t.Errorf("expected no generation, got %d calls", gen.calls)
			}
		})
	}
}

func TestGenerateMalformedJSON(t *testing.T) {
	gen := &countingGenerator{}
	srv := &Server{Quests: gen}

	w := post(t, srv, `{"mood": "curious",`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeError(t, w); got != "Invalid request." {
		t.Errorf("expected Invalid request., got %q", got)
	}
	if gen.calls != 0 {
		t.Error("expected no generation for malformed JSON")
	}
}

func TestGenerateMissingCredentialInProduction(t *testing.T) {
	srv, _, _ := testServer(t, nil, true)

	w := post(t, srv, endToEndBody)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := decodeError(t, w); got != quest.ErrMissingCredential.Error() {
		t.Errorf("unexpected error message %q", got)
	}
	if got := w.Header().Get(headerPath); got != "missing-key" {
		t.Errorf("expected missing-key path, got %q", got)
	}
}

func TestGenerateRejectsGet(t *testing.T) {
	srv := &Server{Quests: &countingGenerator{}}
	req := httptest.NewRequest(http.MethodGet, "/generate", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestGenerateOnlinePrimary(t *testing.T) {
	fc := &fakeCompleter{raw: `{"title":"Roof Stars","vibe":"v","steps":["a","b","c"],"twist":"t","completion":"c","soundtrack_query":"s"}`}
	srv, _, _ := testServer(t, &generator.Generator{Completer: fc}, false)

	w := post(t, srv, endToEndBody)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get(headerMode); got != "online" {
		t.Errorf("expected online mode, got %q", got)
	}
	if got := w.Header().Get(headerPath); got != "primary" {
		t.Errorf("expected primary path, got %q", got)
	}
	if q := decodeQuest(t, w); q.Title != "Roof Stars" {
		t.Errorf("expected online quest, got %q", q.Title)
	}
}

func TestGenerateUnparsableOutputFallsBack(t *testing.T) {
	fc := &fakeCompleter{raw: "I cannot produce JSON today."}
	srv, _, _ := testServer(t, &generator.Generator{Completer: fc}, false)

	w := post(t, srv, endToEndBody)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get(headerPath); got != "fallback" {
		t.Errorf("expected fallback path, got %q", got)
	}
	if fc.calls != 2 {
		t.Errorf("expected primary and repair calls, got %d", fc.calls)
	}
	if q := decodeQuest(t, w); len(q.Steps) != 3 {
		t.Errorf("expected 3 steps, got %d", len(q.Steps))
	}
}

func TestGenerateCircuitBreakerTripAndCooldown(t *testing.T) {
	fc := &fakeCompleter{err: &generator.APIError{StatusCode: http.StatusTooManyRequests}}
	srv, _, svc := testServer(t, &generator.Generator{Completer: fc}, false)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	w := post(t, srv, endToEndBody)
	if got := w.Header().Get(headerPath); got != "quota-or-rate-limit" {
		t.Fatalf("expected quota path, got %q", got)
	}

	now = now.Add(10 * time.Minute)
	w = post(t, srv, endToEndBody)
	if got := w.Header().Get(headerPath); got != "circuit-breaker-open" {
		t.Errorf("expected circuit-breaker-open, got %q", got)
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 while circuit open, got %d", w.Code)
	}
	if fc.calls != 1 {
		t.Errorf("expected upstream skipped while open, got %d calls", fc.calls)
	}

	now = now.Add(6 * time.Minute)
	fc.err = nil
	fc.raw = `{"title":"Back","vibe":"v","steps":["a"],"twist":"t","completion":"c","soundtrack_query":"s"}`
	w = post(t, srv, endToEndBody)
	if got := w.Header().Get(headerPath); got != "primary" {
		t.Errorf("expected primary after cooldown, got %q", got)
	}
	if fc.calls != 2 {
		t.Errorf("expected upstream retried after cooldown, got %d calls", fc.calls)
	}
}

func TestHealthReportsCircuit(t *testing.T) {
	srv, mem, _ := testServer(t, &generator.Generator{Completer: &fakeCompleter{}}, false)
	mem.RecordQuotaFailure(time.Now(), time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var h healthBody
	if err := json.NewDecoder(w.Body).Decode(&h); err != nil {
		t.Fatalf("decoding health: %v", err)
	}
	if !h.CircuitOpen || h.Mode != quest.ModeOffline {
		t.Errorf("expected open circuit and offline mode, got %+v", h)
	}
}

func TestWriteJSONSetsStatus(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusTeapot, errorBody{Error: "x"})

	if w.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
}
