package mcp

import (
	"context"

	"github.com/claude/planforge/internal/planner"
	"github.com/claude/planforge/internal/session"
)

// PlanSource abstracts the plan layer for MCP tools. LocalSource (store +
// generation service in-process) and HTTPClient (remote via REST API) both
// satisfy it.
type PlanSource interface {
	Snapshot(ctx context.Context) (session.Snapshot, error)
	Generate(ctx context.Context, prompt string) (session.Snapshot, error)
	Clear(ctx context.Context) (session.Snapshot, error)
	DeleteCircuit(ctx context.Context, weekNumber, dayNumber, index int) (session.Snapshot, error)
	ReorderCircuits(ctx context.Context, weekNumber, dayNumber, fromIndex, toIndex int) (session.Snapshot, error)
}

// LocalSource serves MCP tools directly from the in-process session store
// and generation service.
type LocalSource struct {
	store *session.Store
	svc   *planner.Service
}

// Compile-time check: *LocalSource satisfies PlanSource.
var _ PlanSource = (*LocalSource)(nil)

// NewLocalSource creates a PlanSource over the in-process store and service.
func NewLocalSource(store *session.Store, svc *planner.Service) *LocalSource {
	return &LocalSource{store: store, svc: svc}
}

func (s *LocalSource) Snapshot(ctx context.Context) (session.Snapshot, error) {
	return s.store.Snapshot(), nil
}

func (s *LocalSource) Generate(ctx context.Context, prompt string) (session.Snapshot, error) {
	s.store.SetGenerating(true)
	plan, err := s.svc.Generate(ctx, prompt)
	if err != nil {
		s.store.SetGenerating(false)
		return session.Snapshot{}, err
	}
	s.store.SetPlan(plan, prompt)
	return s.store.Snapshot(), nil
}

func (s *LocalSource) Clear(ctx context.Context) (session.Snapshot, error) {
	s.store.ClearPlan()
	return s.store.Snapshot(), nil
}

func (s *LocalSource) DeleteCircuit(ctx context.Context, weekNumber, dayNumber, index int) (session.Snapshot, error) {
	s.store.DeleteCircuit(weekNumber, dayNumber, index)
	return s.store.Snapshot(), nil
}

func (s *LocalSource) ReorderCircuits(ctx context.Context, weekNumber, dayNumber, fromIndex, toIndex int) (session.Snapshot, error) {
	s.store.ReorderCircuits(weekNumber, dayNumber, fromIndex, toIndex)
	return s.store.Snapshot(), nil
}
