// Package mcp exposes workout state over the Model Context Protocol so
// assistants can answer questions about training without going through the
// HTTP API.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/repcycle/internal/session"
)

// New creates an MCP server with all tools and resources registered.
func New(engine *session.Engine, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepCycle", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepCycle workout tracker. Query the active guided workout session, daily completion history, aggregate progress stats, and the workout template catalog."),
	)

	h := &handlers{engine: engine, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetSession, Handler: h.getSession},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolGetHistory, Handler: h.getHistory},
		server.ServerTool{Tool: toolListTemplates, Handler: h.listTemplates},
	)

	s.AddResources(
		server.ServerResource{Resource: resWeeklyReport, Handler: h.weeklyReport},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	engine *session.Engine
	log    *slog.Logger
}

// --- Resource definitions ---

var resWeeklyReport = mcp.NewResource(
	"repcycle://weekly_report",
	"Weekly Report",
	mcp.WithResourceDescription("Current stats plus the last seven days of workout history"),
	mcp.WithMIMEType("application/json"),
)
