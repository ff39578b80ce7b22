package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/trendplot/core"
	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/internal/loader"
	"github.com/huangsam/trendplot/internal/outwriter"
	"github.com/huangsam/trendplot/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// normalizedOutput is the JSON answer of normalize_series.
type normalizedOutput struct {
	Columns []string            `json:"columns"`
	Groups  map[string][]string `json:"groups"`
	Rows    int                 `json:"rows"`
	Dropped []string            `json:"dropped"`
	Table   json.RawMessage     `json:"table"`
}

// loadTable reads and normalizes the document at path.
func loadTable(path string, hint schema.DateHint) (schema.Table, error) {
	raw, err := loader.LoadFile(path)
	if err != nil {
		return schema.Table{}, err
	}
	return core.Normalize(raw, core.NormalizeOptions{Hint: hint}), nil
}

// requireString returns a non-empty string argument.
func requireString(request mcp.CallToolRequest, key string) (string, error) {
	v := request.GetString(key, "")
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleNormalizeSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requireString(request, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hint := h.baseCfg.DateHint
	if d := request.GetString("date_format", ""); d != "" {
		hint = schema.DateHint(d)
	}

	table, err := loadTable(path, hint)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("normalization failed: %v", err)), nil
	}

	var buf bytes.Buffer
	if err := outwriter.WriteJSONTable(&buf, table); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("normalization failed: %v", err)), nil
	}
	out := normalizedOutput{
		Columns: table.Columns,
		Groups:  table.Groups,
		Rows:    table.Len(),
		Dropped: table.Dropped,
		Table:   buf.Bytes(),
	}
	if out.Columns == nil {
		out.Columns = []string{}
	}
	if out.Dropped == nil {
		out.Dropped = []string{}
	}
	return jsonResult(out)
}

func (h *toolHandler) handleSmoothSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requireString(request, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	metric, err := requireString(request, "metric")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	window := request.GetInt("window", h.baseCfg.SmoothWindow)

	table, err := loadTable(path, h.baseCfg.DateHint)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("smoothing failed: %v", err)), nil
	}
	series, err := core.Smooth(table, metric, window)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("smoothing failed: %v", err)), nil
	}
	return jsonResult(schema.ToSeriesOutput(series))
}

func (h *toolHandler) handleListBinaries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requireString(request, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	group := request.GetString("group", schema.SizesGroup)

	table, err := loadTable(path, h.baseCfg.DateHint)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}
	fanned, err := core.FanOut(table, group, h.baseCfg.SmoothWindow)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	binaries := make([]schema.BinaryInfo, 0, len(fanned.Series)+len(fanned.Empty))
	for _, s := range fanned.Series {
		binaries = append(binaries, schema.BinaryInfo{Name: s.Name, Points: len(s.Smoothed.RawPoints())})
	}
	for _, name := range fanned.Empty {
		binaries = append(binaries, schema.BinaryInfo{Name: name, Empty: true})
	}
	return jsonResult(binaries)
}

func (h *toolHandler) handleRenderChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	chart, err := requireString(request, "chart")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := requireString(request, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.Chart = schema.ChartKind(chart)
	cfg.InputPath = path
	cfg.Title = request.GetString("title", "")
	if d := request.GetString("output_dir", ""); d != "" {
		cfg.OutputDir = d
	}
	cfg.SmoothWindow = request.GetInt("window", h.baseCfg.SmoothWindow)
	if cfg.SmoothWindow < 1 {
		err := fmt.Errorf("%w: %d", core.ErrInvalidWindow, cfg.SmoothWindow)
		return mcp.NewToolResultError(fmt.Sprintf("rendering failed: %v", err)), nil
	}

	results, err := core.GetChartResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering failed: %v", err)), nil
	}
	return jsonResult(results)
}
