package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/planforge/internal/session"
)

// HTTPClient implements PlanSource by calling the PlanForge REST API. Used
// for remote MCP mode where the binary runs locally (stdio) but the session
// lives on a running server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: *HTTPClient satisfies PlanSource.
var _ PlanSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The
// timeout is generous because generate_workout_plan rides through to the
// model call.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, respBody)
	}

	return respBody, nil
}

func (c *HTTPClient) snapshot(ctx context.Context, method, path string, payload any) (session.Snapshot, error) {
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return session.Snapshot{}, err
	}
	var snap session.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return session.Snapshot{}, fmt.Errorf("httpclient: decode session: %w", err)
	}
	return snap, nil
}

func (c *HTTPClient) Snapshot(ctx context.Context) (session.Snapshot, error) {
	return c.snapshot(ctx, http.MethodGet, "/api/plan", nil)
}

func (c *HTTPClient) Generate(ctx context.Context, prompt string) (session.Snapshot, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/generate-plan", map[string]string{"prompt": prompt})
	if err != nil {
		return session.Snapshot{}, err
	}

	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return session.Snapshot{}, fmt.Errorf("httpclient: decode generate response: %w", err)
	}
	if !envelope.Success {
		return session.Snapshot{}, fmt.Errorf("httpclient: generation failed: %s", envelope.Error)
	}

	// The generate route returns the plan envelope; fetch the full session
	// so the tool result matches local mode.
	return c.Snapshot(ctx)
}

func (c *HTTPClient) Clear(ctx context.Context) (session.Snapshot, error) {
	return c.snapshot(ctx, http.MethodDelete, "/api/plan", nil)
}

func (c *HTTPClient) DeleteCircuit(ctx context.Context, weekNumber, dayNumber, index int) (session.Snapshot, error) {
	return c.snapshot(ctx, http.MethodPost, "/api/plan/circuits/delete", map[string]int{
		"weekNumber": weekNumber,
		"dayNumber":  dayNumber,
		"index":      index,
	})
}

func (c *HTTPClient) ReorderCircuits(ctx context.Context, weekNumber, dayNumber, fromIndex, toIndex int) (session.Snapshot, error) {
	return c.snapshot(ctx, http.MethodPost, "/api/plan/circuits/reorder", map[string]int{
		"weekNumber": weekNumber,
		"dayNumber":  dayNumber,
		"fromIndex":  fromIndex,
		"toIndex":    toIndex,
	})
}
