package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/core/insight"
	"github.com/vanshpreet5618/Helios/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	src   core.ReportSource
	synth *insight.Synthesizer
}

func (h *toolHandler) handleSalesInsight(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(core.SalesInsight(ctx, h.src, h.synth)), nil
}

func (h *toolHandler) handleChurnInsight(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(core.ChurnInsight(ctx, h.src, h.synth)), nil
}

func (h *toolHandler) handleGenerateInsight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary := strings.TrimSpace(request.GetString("summary", ""))
	query := strings.TrimSpace(request.GetString("query", ""))
	if summary == "" || query == "" {
		return mcp.NewToolResultError("summary and query are required"), nil
	}

	result := h.synth.Run(ctx, schema.InsightContext{Summary: summary, Query: query})
	structured := struct {
		Tier schema.InsightTier `json:"tier"`
		Text string             `json:"text"`
	}{result.Tier, result.String()}
	jsonData, _ := json.MarshalIndent(structured, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}
