package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/claude/planforge/internal/models"
)

// Sentinel errors returned by Generate. Callers branch on these; everything
// downstream of submission collapses into ErrGenerationFailed.
var (
	ErrInvalidInput     = errors.New("prompt is required and must be a non-empty string")
	ErrGenerationFailed = errors.New("failed to generate workout plan")
)

// ChatModel is the outbound model call. *llm.Client satisfies it; tests use
// a stub.
type ChatModel interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

const systemPrompt = "You are an experienced strength and conditioning coach. You design structured multi-week workout programs and always respond in the exact JSON format requested."

// Service turns a free-text request into a validated workout plan via one
// model call.
type Service struct {
	model ChatModel
	log   *slog.Logger
}

// New creates a generation service.
func New(model ChatModel, log *slog.Logger) *Service {
	return &Service{model: model, log: log}
}

// Generate composes the instruction, invokes the model once, and parses the
// output against the plan schema. There is no retry: any failure after
// submission is terminal for the call and reported as ErrGenerationFailed.
func (s *Service) Generate(ctx context.Context, requestText string) (*models.WorkoutPlan, error) {
	if strings.TrimSpace(requestText) == "" {
		return nil, ErrInvalidInput
	}

	weekCount := WeekCount(requestText)
	prompt := buildPrompt(requestText, weekCount)

	s.log.Info("generating plan", "weeks", weekCount, "request_len", len(requestText))

	out, err := s.model.Chat(ctx, systemPrompt, prompt)
	if err != nil {
		s.log.Error("model call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	plan, err := models.ParsePlan(out)
	if err != nil {
		s.log.Error("model output rejected", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	s.log.Info("plan generated", "program", plan.ProgramName, "weeks", len(plan.Weeks))
	return plan, nil
}
