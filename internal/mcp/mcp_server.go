// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/core/insight"
)

// Tool names.
const (
	SalesInsightTool    = "get_sales_insight"
	ChurnInsightTool    = "get_churn_insight"
	GenerateInsightTool = "generate_insight"
)

// NewMCPServer initializes and configures the Helios MCP server without starting it.
// A nil source degrades the report tools and a nil synthesizer always uses templates.
func NewMCPServer(src core.ReportSource, synth *insight.Synthesizer, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Helios Insight Server",
		version,
		server.WithLogging(),
	)

	if synth == nil {
		synth = insight.NewSynthesizer(nil, nil)
	}
	h := &toolHandler{src: src, synth: synth}

	s.AddTool(mcp.NewTool(SalesInsightTool,
		mcp.WithDescription("Summarize the latest stored sales forecast as a short business recommendation."),
	), h.handleSalesInsight)

	s.AddTool(mcp.NewTool(ChurnInsightTool,
		mcp.WithDescription("Summarize the stored customer churn rate as a short business recommendation."),
	), h.handleChurnInsight)

	s.AddTool(mcp.NewTool(GenerateInsightTool,
		mcp.WithDescription("Turn a free-form data summary and a business question into a two-sentence recommendation."),
		mcp.WithString("summary", mcp.Description("Compact summary of the data, e.g. 'Overall churn rate: 26.5%'."), mcp.Required()),
		mcp.WithString("query", mcp.Description("The business question to answer."), mcp.Required()),
	), h.handleGenerateInsight)

	return s
}

// StartMCPServer serves the insight tools over stdio until the client disconnects.
func StartMCPServer(_ context.Context, src core.ReportSource, synth *insight.Synthesizer, version string) error {
	s := NewMCPServer(src, synth, version)
	return server.ServeStdio(s)
}
