package app

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the MCP server exposing the three tool operations.
// The host dispatcher supplies inputs and consumes the structured
// results; everything stateful stays inside App.
func (a *App) NewServer(name, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name: "execute_request",
		Description: "Execute one HTTP request, or an ordered chain of requests with per-step " +
			"validation and variable extraction. Results are logged to the session.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ExecuteRequestInput) (*mcp.CallToolResult, *ExecuteRequestOutput, error) {
		out, err := a.ExecuteRequest(ctx, in)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_session",
		Description: "Return the full log of a session: every request, its validation outcome, and timestamps.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in GetSessionInput) (*mcp.CallToolResult, *GetSessionOutput, error) {
		return nil, a.GetSession(in), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_session_report",
		Description: "Render a session's HTML report to disk and return its location.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in GetSessionReportInput) (*mcp.CallToolResult, *GetSessionReportOutput, error) {
		out, err := a.GetSessionReport(in)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})

	return server
}
