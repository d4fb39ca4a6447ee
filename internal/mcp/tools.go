package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetWorkoutPlan = mcp.NewTool("get_workout_plan",
	mcp.WithDescription("Get the current workout plan session, including the plan document, the prompt that produced it, and whether a generation is in flight."),
)

var toolGenerateWorkoutPlan = mcp.NewTool("generate_workout_plan",
	mcp.WithDescription("Generate a new multi-week workout plan from a free-text request, replacing any current plan. Week counts in the request (e.g. '4-week') are honored up to 12; otherwise 2 weeks are generated."),
	mcp.WithString("prompt", mcp.Required(), mcp.Description("Free-text training request, e.g. 'a 4-week kettlebell program for fat loss'")),
)

var toolClearWorkoutPlan = mcp.NewTool("clear_workout_plan",
	mcp.WithDescription("Clear the current workout plan and prompt."),
)

var toolDeleteCircuit = mcp.NewTool("delete_circuit",
	mcp.WithDescription("Delete one circuit entry from a day. Out-of-range targets are ignored."),
	mcp.WithNumber("weekNumber", mcp.Required(), mcp.Description("Week number (1-based)")),
	mcp.WithNumber("dayNumber", mcp.Required(), mcp.Description("Day number within the week (1-based)")),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based index of the circuit entry to remove")),
)

var toolReorderCircuits = mcp.NewTool("reorder_circuits",
	mcp.WithDescription("Move a circuit entry within a day from one position to another, shifting the entries in between. Out-of-range targets are ignored."),
	mcp.WithNumber("weekNumber", mcp.Required(), mcp.Description("Week number (1-based)")),
	mcp.WithNumber("dayNumber", mcp.Required(), mcp.Description("Day number within the week (1-based)")),
	mcp.WithNumber("fromIndex", mcp.Required(), mcp.Description("Zero-based index to move from")),
	mcp.WithNumber("toIndex", mcp.Required(), mcp.Description("Zero-based index to move to")),
)

// --- Tool handlers ---

func (h *handlers) getWorkoutPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.src.Snapshot(ctx)
	if err != nil {
		h.log.Error("mcp get_workout_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(snap)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) generateWorkoutPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := req.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("prompt parameter is required"), nil
	}

	snap, err := h.src.Generate(ctx, prompt)
	if err != nil {
		h.log.Error("mcp generate_workout_plan", "error", err)
		return mcp.NewToolResultError("generation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(snap)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) clearWorkoutPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.src.Clear(ctx)
	if err != nil {
		h.log.Error("mcp clear_workout_plan", "error", err)
		return mcp.NewToolResultError("clear failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(snap)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) deleteCircuit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := req.RequireInt("weekNumber")
	if err != nil {
		return mcp.NewToolResultError("weekNumber parameter is required"), nil
	}
	day, err := req.RequireInt("dayNumber")
	if err != nil {
		return mcp.NewToolResultError("dayNumber parameter is required"), nil
	}
	index, err := req.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError("index parameter is required"), nil
	}

	snap, err := h.src.DeleteCircuit(ctx, week, day, index)
	if err != nil {
		h.log.Error("mcp delete_circuit", "error", err)
		return mcp.NewToolResultError("delete failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(snap)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) reorderCircuits(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := req.RequireInt("weekNumber")
	if err != nil {
		return mcp.NewToolResultError("weekNumber parameter is required"), nil
	}
	day, err := req.RequireInt("dayNumber")
	if err != nil {
		return mcp.NewToolResultError("dayNumber parameter is required"), nil
	}
	from, err := req.RequireInt("fromIndex")
	if err != nil {
		return mcp.NewToolResultError("fromIndex parameter is required"), nil
	}
	to, err := req.RequireInt("toIndex")
	if err != nil {
		return mcp.NewToolResultError("toIndex parameter is required"), nil
	}

	snap, err := h.src.ReorderCircuits(ctx, week, day, from, to)
	if err != nil {
		h.log.Error("mcp reorder_circuits", "error", err)
		return mcp.NewToolResultError("reorder failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(snap)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
