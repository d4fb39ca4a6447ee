package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/claude/planforge/internal/planner"
)

// genericFailure is the single user-facing message for everything that goes
// wrong downstream of submission. Sub-causes are logged, not distinguished.
const genericFailure = "Failed to generate workout plan. Please try again."

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": planner.ErrInvalidInput.Error()})
		return
	}

	s.store.SetGenerating(true)

	ctx, cancel := context.WithTimeout(r.Context(), s.genTimeout)
	defer cancel()

	plan, err := s.generator.Generate(ctx, req.Prompt)
	if err != nil {
		s.store.SetGenerating(false)
		if errors.Is(err, planner.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.log.Error("generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   genericFailure,
		})
		return
	}

	// Replaces any prior plan atomically and clears the generating flag.
	s.store.SetPlan(plan, req.Prompt)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    plan,
	})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleClearPlan(w http.ResponseWriter, r *http.Request) {
	s.store.ClearPlan()
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

type deleteCircuitRequest struct {
	WeekNumber int `json:"weekNumber"`
	DayNumber  int `json:"dayNumber"`
	Index      int `json:"index"`
}

func (s *Server) handleDeleteCircuit(w http.ResponseWriter, r *http.Request) {
	var req deleteCircuitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	// Absent plan and out-of-range indices are absorbed as no-ops.
	s.store.DeleteCircuit(req.WeekNumber, req.DayNumber, req.Index)
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

type reorderCircuitsRequest struct {
	WeekNumber int `json:"weekNumber"`
	DayNumber  int `json:"dayNumber"`
	FromIndex  int `json:"fromIndex"`
	ToIndex    int `json:"toIndex"`
}

func (s *Server) handleReorderCircuits(w http.ResponseWriter, r *http.Request) {
	var req reorderCircuitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	s.store.ReorderCircuits(req.WeekNumber, req.DayNumber, req.FromIndex, req.ToIndex)
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
