package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/planforge/internal/models"
	"github.com/claude/planforge/internal/planner"
	"github.com/claude/planforge/internal/session"
)

type stubGenerator struct {
	calls int
	plan  *models.WorkoutPlan
	err   error
}

func (g *stubGenerator) Generate(ctx context.Context, requestText string) (*models.WorkoutPlan, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.plan, nil
}

func newTestServer(gen Generator) (*Server, *session.Store) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewStore(nil, log)
	return New(store, gen, 5*time.Second, log), store
}

func planFixture() *models.WorkoutPlan {
	return &models.WorkoutPlan{
		ProgramName:        "Shred",
		ProgramDescription: "desc",
		Weeks: []models.Week{
			{WeekNumber: 1, Days: []models.Day{
				{DayNumber: 1, DayName: "Push", Circuits: []models.Circuit{
					{CircuitLetter: "A", Exercise: "Bench Press", Sets: 4, Reps: "8"},
					{CircuitLetter: "B", Exercise: "Dips", Sets: 3, Reps: "12"},
				}},
			}},
		},
	}
}

// TestGeneratePlanSuccess verifies a successful generation returns the plan
// envelope and stores it in the session.
func TestGeneratePlanSuccess(t *testing.T) {
	gen := &stubGenerator{plan: planFixture()}
	srv, store := newTestServer(gen)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-plan", strings.NewReader(`{"prompt":"4 week shred"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Success bool               `json:"success"`
		Data    models.WorkoutPlan `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Data.ProgramName != "Shred" {
		t.Errorf("response = %+v", resp)
	}

	snap := store.Snapshot()
	if snap.CurrentPlan == nil || snap.CurrentPrompt != "4 week shred" {
		t.Errorf("session not updated: %+v", snap)
	}
	if snap.IsGenerating {
		t.Error("isGenerating should be false after completion")
	}
}

// TestGeneratePlanEmptyPrompt verifies missing/empty prompts return 400
// without invoking the generator.
func TestGeneratePlanEmptyPrompt(t *testing.T) {
	gen := &stubGenerator{plan: planFixture()}
	srv, _ := newTestServer(gen)

	for _, body := range []string{`{}`, `{"prompt":""}`, `{"prompt":"   "}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/generate-plan", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", gen.calls)
	}
}

// TestGeneratePlanFailure verifies generation failures collapse to the
// generic 500 envelope and reset the generating flag.
func TestGeneratePlanFailure(t *testing.T) {
	gen := &stubGenerator{err: planner.ErrGenerationFailed}
	srv, store := newTestServer(gen)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-plan", strings.NewReader(`{"prompt":"anything"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error != genericFailure {
		t.Errorf("response = %+v", resp)
	}
	if store.Snapshot().IsGenerating {
		t.Error("isGenerating stuck true after failure")
	}
}

// TestGeneratePlanTransportError verifies arbitrary generator errors also map
// to the generic failure message, not to their raw text.
func TestGeneratePlanTransportError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("dial tcp: connection refused")}
	srv, _ := newTestServer(gen)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-plan", strings.NewReader(`{"prompt":"x"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("raw error leaked to the client")
	}
}

// TestGetPlan verifies the session projection round-trips over the API.
func TestGetPlan(t *testing.T) {
	srv, store := newTestServer(&stubGenerator{})
	store.SetPlan(planFixture(), "my prompt")

	req := httptest.NewRequest(http.MethodGet, "/api/plan", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap session.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.CurrentPlan == nil || snap.CurrentPlan.ProgramName != "Shred" {
		t.Errorf("snapshot = %+v", snap)
	}
}

// TestClearPlan verifies DELETE /api/plan empties the session.
func TestClearPlan(t *testing.T) {
	srv, store := newTestServer(&stubGenerator{})
	store.SetPlan(planFixture(), "p")

	req := httptest.NewRequest(http.MethodDelete, "/api/plan", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if snap := store.Snapshot(); snap.CurrentPlan != nil || snap.CurrentPrompt != "" {
		t.Errorf("session not cleared: %+v", snap)
	}
}

// TestDeleteCircuitRoute verifies the edit route removes the entry and
// returns the updated session.
func TestDeleteCircuitRoute(t *testing.T) {
	srv, store := newTestServer(&stubGenerator{})
	store.SetPlan(planFixture(), "p")

	body := `{"weekNumber":1,"dayNumber":1,"index":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan/circuits/delete", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap session.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	circuits := snap.CurrentPlan.Weeks[0].Days[0].Circuits
	if len(circuits) != 1 || circuits[0].Exercise != "Dips" {
		t.Errorf("circuits = %+v", circuits)
	}
}

// TestReorderCircuitsRoute verifies the reorder route applies splice-move
// semantics.
func TestReorderCircuitsRoute(t *testing.T) {
	srv, store := newTestServer(&stubGenerator{})
	store.SetPlan(planFixture(), "p")

	body := `{"weekNumber":1,"dayNumber":1,"fromIndex":0,"toIndex":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan/circuits/reorder", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap session.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	circuits := snap.CurrentPlan.Weeks[0].Days[0].Circuits
	if circuits[0].Exercise != "Dips" || circuits[1].Exercise != "Bench Press" {
		t.Errorf("circuits = %+v", circuits)
	}
}

// TestEditRoutesNoopOnEmptySession verifies edit routes are tolerated with
// no plan loaded.
func TestEditRoutesNoopOnEmptySession(t *testing.T) {
	srv, _ := newTestServer(&stubGenerator{})

	for _, tc := range []struct{ path, body string }{
		{"/api/plan/circuits/delete", `{"weekNumber":1,"dayNumber":1,"index":0}`},
		{"/api/plan/circuits/reorder", `{"weekNumber":1,"dayNumber":1,"fromIndex":0,"toIndex":1}`},
	} {
		req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", tc.path, rec.Code)
		}
	}
}
