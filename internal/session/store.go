// Package session holds the generation session: the current plan, the prompt
// that produced it, and whether a generation call is in flight. All state
// lives behind one mutex; every mutation reads the current snapshot and
// writes a new one, so readers never observe a partial edit.
package session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/claude/planforge/internal/models"
	"github.com/google/uuid"
)

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	PlanID        string              `json:"planId,omitempty"`
	CurrentPlan   *models.WorkoutPlan `json:"currentPlan,omitempty"`
	CurrentPrompt string              `json:"currentPrompt,omitempty"`
	IsGenerating  bool                `json:"isGenerating"`
}

// Store is the single-writer session state. The zero-value-adjacent
// NewStore form runs without persistence; with a StateDB every mutation is
// written through. Persistence failures are logged and absorbed — the store
// never raises toward the UI.
type Store struct {
	mu         sync.Mutex
	plan       *models.WorkoutPlan
	planID     string
	prompt     string
	generating bool

	db  *StateDB
	log *slog.Logger
}

// NewStore creates a session store. db may be nil for in-memory use. A
// persisted session is restored with the generating flag forced to false.
func NewStore(db *StateDB, log *slog.Logger) *Store {
	s := &Store{db: db, log: log}
	s.restore()
	return s
}

func (s *Store) restore() {
	if s.db == nil {
		return
	}
	planID, planJSON, prompt, ok, err := s.db.LoadSession()
	if err != nil {
		s.log.Error("loading persisted session", "error", err)
		return
	}
	if !ok {
		return
	}
	var plan models.WorkoutPlan
	if err := json.Unmarshal([]byte(planJSON), &plan); err != nil {
		s.log.Error("persisted plan is corrupt, discarding", "error", err)
		if err := s.db.ClearSession(); err != nil {
			s.log.Error("clearing corrupt session", "error", err)
		}
		return
	}
	s.plan = &plan
	s.planID = planID
	s.prompt = prompt
	s.log.Info("session restored", "plan_id", planID, "program", plan.ProgramName)
}

// Snapshot returns a copy of the session. The plan is deep-copied so callers
// cannot mutate store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		PlanID:        s.planID,
		CurrentPlan:   s.plan.Clone(),
		CurrentPrompt: s.prompt,
		IsGenerating:  s.generating,
	}
}

// SetPlan replaces the current plan and prompt wholesale and clears the
// generating flag. Each new plan gets a fresh ID.
func (s *Store) SetPlan(plan *models.WorkoutPlan, prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = plan.Clone()
	s.planID = uuid.NewString()
	s.prompt = prompt
	s.generating = false
	s.persist()
}

// ClearPlan resets the session to empty. Idempotent.
func (s *Store) ClearPlan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = nil
	s.planID = ""
	s.prompt = ""
	s.generating = false
	if s.db != nil {
		if err := s.db.ClearSession(); err != nil {
			s.log.Error("clearing persisted session", "error", err)
		}
	}
}

// SetGenerating flips the in-flight flag independently of the plan fields.
// The flag is transient and never persisted.
func (s *Store) SetGenerating(generating bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = generating
}

// DeleteCircuit removes the circuit at index from the day matching
// weekNumber/dayNumber, preserving the order of the remainder. A missing
// plan, unmatched week or day, or out-of-range index is a no-op.
func (s *Store) DeleteCircuit(weekNumber, dayNumber, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil {
		return
	}

	updated := s.plan.Clone()
	day := findDay(updated, weekNumber, dayNumber)
	if day == nil || index < 0 || index >= len(day.Circuits) {
		return
	}

	day.Circuits = append(day.Circuits[:index], day.Circuits[index+1:]...)
	s.plan = updated
	s.persist()
}

// ReorderCircuits moves the circuit at fromIndex to toIndex within the
// matching day, shifting intervening circuits and preserving every other
// element's relative order. Out-of-range indices are a no-op.
func (s *Store) ReorderCircuits(weekNumber, dayNumber, fromIndex, toIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil {
		return
	}

	updated := s.plan.Clone()
	day := findDay(updated, weekNumber, dayNumber)
	if day == nil {
		return
	}
	n := len(day.Circuits)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return
	}

	moved := day.Circuits[fromIndex]
	rest := append(day.Circuits[:fromIndex], day.Circuits[fromIndex+1:]...)
	day.Circuits = append(rest[:toIndex], append([]models.Circuit{moved}, rest[toIndex:]...)...)
	s.plan = updated
	s.persist()
}

func findDay(plan *models.WorkoutPlan, weekNumber, dayNumber int) *models.Day {
	for wi := range plan.Weeks {
		if plan.Weeks[wi].WeekNumber != weekNumber {
			continue
		}
		for di := range plan.Weeks[wi].Days {
			if plan.Weeks[wi].Days[di].DayNumber == dayNumber {
				return &plan.Weeks[wi].Days[di]
			}
		}
	}
	return nil
}

// persist writes the current plan and prompt through to sqlite. Callers hold
// the mutex.
func (s *Store) persist() {
	if s.db == nil || s.plan == nil {
		return
	}
	planJSON, err := json.Marshal(s.plan)
	if err != nil {
		s.log.Error("encoding session plan", "error", err)
		return
	}
	if err := s.db.SaveSession(s.planID, string(planJSON), s.prompt); err != nil {
		s.log.Error("persisting session", "error", err)
	}
}
