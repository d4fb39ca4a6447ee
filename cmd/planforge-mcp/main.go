// planforge-mcp serves the PlanForge MCP interface over stdio.
//
// With -url it proxies a running PlanForge server's REST API, so the plan
// session stays wherever the server keeps it. Without -url it runs fully
// local: it loads the server config, opens the session database, and calls
// the model directly.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/claude/planforge/internal/config"
	"github.com/claude/planforge/internal/llm"
	planmcp "github.com/claude/planforge/internal/mcp"
	"github.com/claude/planforge/internal/planner"
	"github.com/claude/planforge/internal/session"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	baseURL := flag.String("url", "", "base URL of a running PlanForge server (remote mode)")
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	flag.Parse()

	// Log to stderr: stdout is the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var src planmcp.PlanSource

	if *baseURL != "" {
		src = planmcp.NewHTTPClient(*baseURL)
		log.Info("planforge-mcp starting", "mode", "remote", "url", *baseURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		stateDB, err := session.OpenStateDB(cfg.Storage.Dir)
		if err != nil {
			log.Error("failed to open session state", "error", err)
			os.Exit(1)
		}
		defer stateDB.Close()

		store := session.NewStore(stateDB, log)
		model := llm.NewClient(llm.Opts{
			Endpoint:    cfg.LLM.Endpoint,
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		})
		src = planmcp.NewLocalSource(store, planner.New(model, log))
		log.Info("planforge-mcp starting", "mode", "local", "state_dir", cfg.Storage.Dir)
	}

	s := planmcp.New(src, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}
