// Command repcycle-mcp serves the workout tracker over MCP on stdio, for use
// as a local assistant integration. It opens the same database as the HTTP
// server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/repcycle/internal/catalog"
	"github.com/claude/repcycle/internal/config"
	"github.com/claude/repcycle/internal/mcp"
	"github.com/claude/repcycle/internal/session"
	"github.com/claude/repcycle/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Path, log)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	cat := catalog.New(store.LoadCatalog(ctx)...)
	engine := session.New(store, cat, cfg.Workout.WeeklyGoal, cfg.Workout.WeekStartDay(), nil, log)

	s := mcp.New(engine, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
