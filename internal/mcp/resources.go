package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/repcycle/internal/models"
)

func (h *handlers) weeklyReport(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats, err := h.engine.Stats(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := h.engine.History(ctx)
	if err != nil {
		h.log.Warn("weekly_report: history query failed", "error", err)
	}
	if len(entries) > 7 {
		entries = entries[len(entries)-7:]
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	report := map[string]any{
		"stats":       stats,
		"recent_days": entries,
	}

	data, err := json.Marshal(report)
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
