// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the trendplot MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Trendplot Time Series Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: normalize_series ---
	s.AddTool(mcp.NewTool("normalize_series",
		mcp.WithDescription("Parse a date-keyed JSON document into a time-sorted table with numeric values."),
		mcp.WithString("path", mcp.Description("Path to the JSON document."), mcp.Required()),
		mcp.WithString("date_format", mcp.Description("Date format tried first: auto, rfc2822, iso8601 or a Go time layout.")),
	), h.handleNormalizeSeries)

	// --- 2. Tool: smooth_series ---
	s.AddTool(mcp.NewTool("smooth_series",
		mcp.WithDescription("Compute the centered rolling mean of one metric. Missing values are null."),
		mcp.WithString("path", mcp.Description("Path to the JSON document."), mcp.Required()),
		mcp.WithString("metric", mcp.Description("Metric column to smooth, such as total or size."), mcp.Required()),
		mcp.WithNumber("window", mcp.Description("Rolling window size. Defaults to the configured window.")),
	), h.handleSmoothSeries)

	// --- 3. Tool: list_binaries ---
	s.AddTool(mcp.NewTool("list_binaries",
		mcp.WithDescription("List the members of a nested group with their point counts. Members without data are flagged empty."),
		mcp.WithString("path", mcp.Description("Path to the JSON document."), mcp.Required()),
		mcp.WithString("group", mcp.Description("Nested group name. Defaults to 'sizes'.")),
	), h.handleListBinaries)

	// --- 4. Tool: render_chart ---
	s.AddTool(mcp.NewTool("render_chart",
		mcp.WithDescription("Draw a chart image and return the files written."),
		mcp.WithString("chart", mcp.Description("Chart to draw."), mcp.Required(),
			mcp.Enum(string(schema.ResultsChart), string(schema.SizeChart), string(schema.IndividualSizeChart))),
		mcp.WithString("path", mcp.Description("Path to the JSON document."), mcp.Required()),
		mcp.WithString("title", mcp.Description("Test suite name, required for the results chart.")),
		mcp.WithString("output_dir", mcp.Description("Directory for the images.")),
		mcp.WithNumber("window", mcp.Description("Rolling window size.")),
	), h.handleRenderChart)

	return s
}

// StartMCPServer starts the trendplot MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
