// Package mcp exposes the workout plan session to MCP clients: the current
// plan as a resource, and generation plus the light edit operations as tools.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(src PlanSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("PlanForge", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("PlanForge workout program server. Generate a multi-week workout plan from a free-text request, inspect the current plan, and edit it by deleting or reordering circuit entries."),
	)

	h := &handlers{src: src, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetWorkoutPlan, Handler: h.getWorkoutPlan},
		server.ServerTool{Tool: toolGenerateWorkoutPlan, Handler: h.generateWorkoutPlan},
		server.ServerTool{Tool: toolClearWorkoutPlan, Handler: h.clearWorkoutPlan},
		server.ServerTool{Tool: toolDeleteCircuit, Handler: h.deleteCircuit},
		server.ServerTool{Tool: toolReorderCircuits, Handler: h.reorderCircuits},
	)

	s.AddResources(
		server.ServerResource{Resource: resCurrentPlan, Handler: h.currentPlan},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	src PlanSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCurrentPlan = mcp.NewResource(
	"planforge://current_plan",
	"Current Workout Plan",
	mcp.WithResourceDescription("The current generation session: workout plan, originating prompt, and in-flight flag"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) currentPlan(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap, err := h.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
