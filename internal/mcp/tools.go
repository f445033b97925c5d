package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/alphapie/pieview/internal/config"
	"github.com/alphapie/pieview/internal/loader"
	"github.com/alphapie/pieview/internal/perf"
)

// defaultTopCount is used when get_top_performers is called without a count.
const defaultTopCount = 5

// RegisterTools registers the portfolio tools on the MCP server and returns
// the number registered.
func RegisterTools(s *server.MCPServer, l *loader.Loader) int {
	tools := []struct {
		tool    mcp.Tool
		handler server.ToolHandlerFunc
	}{
		{performanceTool(), performanceToolHandler(l)},
		{topPerformersTool(), topPerformersToolHandler(l)},
		{holdingsTool(), holdingsToolHandler(l)},
		{versionTool(), versionToolHandler()},
	}

	for _, t := range tools {
		s.AddTool(t.tool, t.handler)
	}
	return len(tools)
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{mcp.NewTextContent(message)},
	}
}

// jsonResult marshals v into a text content result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal result"), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}, nil
}

func performanceTool() mcp.Tool {
	return mcp.NewTool("get_performance",
		mcp.WithDescription("Get the full portfolio performance view: holdings with live returns, weighted portfolio metrics per timeframe, and top performers."),
	)
}

func performanceToolHandler(l *loader.Loader) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := l.Load(ctx)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(p)
	}
}

func topPerformersTool() mcp.Tool {
	return mcp.NewTool("get_top_performers",
		mcp.WithDescription("Get the best-performing stocks by 12-month return."),
		mcp.WithNumber("count",
			mcp.Description("Number of stocks to return (default 5)"),
		),
	)
}

func topPerformersToolHandler(l *loader.Loader) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		count := r.GetInt("count", defaultTopCount)
		if count <= 0 {
			return errorResult("Error: count must be positive"), nil
		}

		snap, err := l.Snapshot(ctx)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(perf.TopPerformers(snap, count))
	}
}

func holdingsTool() mcp.Tool {
	return mcp.NewTool("get_holdings",
		mcp.WithDescription("Get the portfolio holdings with target allocations and live returns where available."),
	)
}

func holdingsToolHandler(l *loader.Loader) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := l.Load(ctx)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(p.Holdings)
	}
}

func versionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Pieview server version. Use this to verify connectivity."),
	)
}

func versionToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(map[string]string{
			"version": config.GetVersion(),
			"build":   config.GetBuild(),
			"commit":  config.GetGitCommit(),
		})
	}
}
