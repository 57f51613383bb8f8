package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/repcycle/internal/models"
)

// --- Tool definitions ---

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("Get the active workout session: template, section/exercise structure, per-exercise completion, the active position, and progress percentage. Returns active=false when no session is in flight."),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Get aggregate workout stats: current daily streak, weekly goal and this week's completions, lifetime workout count, and total minutes trained."),
)

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("Get the full workout history ledger: one entry per trained day with completion flag and progress percentage, oldest first."),
	mcp.WithNumber("limit", mcp.Description("Return only the most recent N entries. Defaults to all.")),
)

var toolListTemplates = mcp.NewTool("list_templates",
	mcp.WithDescription("List all workout templates in the catalog with their sections and exercises."),
)

// --- Tool handlers ---

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, active := h.engine.Session(ctx)
	if !active {
		result, err := mcp.NewToolResultJSON(map[string]any{"active": false})
		if err != nil {
			return mcp.NewToolResultError("serialization failed"), nil
		}
		return result, nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"active": true, "session": sess})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.engine.Stats(ctx)
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := h.engine.History(ctx)
	if err != nil {
		h.log.Error("mcp get_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	limit := req.GetInt("limit", 0)
	if limit > 0 && limit < len(entries) {
		entries = entries[len(entries)-limit:]
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	result, err := mcp.NewToolResultJSON(entries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.engine.Templates())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
