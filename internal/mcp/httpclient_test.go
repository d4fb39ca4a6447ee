package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/planforge/internal/models"
	"github.com/claude/planforge/internal/session"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client hits the right routes.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

func sessionFixture() session.Snapshot {
	return session.Snapshot{
		PlanID:        "abc-123",
		CurrentPrompt: "4 week plan",
		CurrentPlan: &models.WorkoutPlan{
			ProgramName:        "Shred",
			ProgramDescription: "desc",
			Weeks:              []models.Week{{WeekNumber: 1, Days: []models.Day{}}},
		},
	}
}

// TestSnapshot verifies the client fetches and decodes the session
// projection.
func TestSnapshot(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/plan": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("method = %s, want GET", r.Method)
			}
			writeTestJSON(t, w, sessionFixture())
		},
	})
	defer ts.Close()

	snap, err := NewHTTPClient(ts.URL).Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snap.PlanID != "abc-123" || snap.CurrentPlan.ProgramName != "Shred" {
		t.Errorf("snapshot = %+v", snap)
	}
}

// TestGenerate verifies the client posts the prompt, then refetches the
// session after a successful generation.
func TestGenerate(t *testing.T) {
	var gotPrompt string
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/generate-plan": func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Prompt string `json:"prompt"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			gotPrompt = body.Prompt
			writeTestJSON(t, w, map[string]any{"success": true, "data": sessionFixture().CurrentPlan})
		},
		"/api/plan": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, sessionFixture())
		},
	})
	defer ts.Close()

	snap, err := NewHTTPClient(ts.URL).Generate(context.Background(), "4 week plan")
	if err != nil {
		t.Fatal(err)
	}
	if gotPrompt != "4 week plan" {
		t.Errorf("prompt = %q", gotPrompt)
	}
	if snap.CurrentPlan == nil || snap.CurrentPlan.ProgramName != "Shred" {
		t.Errorf("snapshot = %+v", snap)
	}
}

// TestGenerateServerError verifies a 500 envelope becomes an error rather
// than an empty session.
func TestGenerateServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/generate-plan": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			writeTestJSON(t, w, map[string]any{"success": false, "error": "Failed to generate workout plan. Please try again."})
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL).Generate(context.Background(), "x"); err == nil {
		t.Error("expected error for 500 response")
	}
}

// TestDeleteCircuit verifies the edit payload shape.
func TestDeleteCircuit(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/plan/circuits/delete": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]int
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["weekNumber"] != 1 || body["dayNumber"] != 2 || body["index"] != 3 {
				t.Errorf("payload = %v", body)
			}
			writeTestJSON(t, w, sessionFixture())
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL).DeleteCircuit(context.Background(), 1, 2, 3); err != nil {
		t.Fatal(err)
	}
}

// TestReorderCircuits verifies the reorder payload shape.
func TestReorderCircuits(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/plan/circuits/reorder": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]int
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["fromIndex"] != 0 || body["toIndex"] != 2 {
				t.Errorf("payload = %v", body)
			}
			writeTestJSON(t, w, sessionFixture())
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL).ReorderCircuits(context.Background(), 1, 1, 0, 2); err != nil {
		t.Fatal(err)
	}
}
