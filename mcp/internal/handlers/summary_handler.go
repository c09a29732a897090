package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/newsdesk/newsdesk/client"
)

// SummaryHandler exposes the fetch_summary tool.
type SummaryHandler struct {
	client *client.Client
}

func NewSummaryHandler(c *client.Client) *SummaryHandler {
	return &SummaryHandler{client: c}
}

// RegisterTools registers the fetch_summary tool.
func (sh *SummaryHandler) RegisterTools(s *server.MCPServer) error {
	tool := mcp.NewTool("fetch_summary",
		mcp.WithDescription("Generate an AI summary of recent news. All parameters are forwarded to the backend unchanged; generation can take up to the summary timeout (2 minutes by default)."),
		mcp.WithObject("params", mcp.Description("Summary-generation parameters, e.g. {\"startTime\": \"2024-01-01\", \"endTime\": \"2024-01-02\"}")),
	)
	s.AddTool(tool, sh.handleFetchSummary)
	return nil
}

func (sh *SummaryHandler) handleFetchSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params, err := objectArg(req.GetArguments(), "params")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if params == nil {
		params = map[string]any{}
	}

	log.Debug().Int("param_count", len(params)).Msg("fetch_summary invoked")

	start := time.Now()
	resp, err := sh.client.FetchSummary(ctx, client.SummaryRequest(params))
	logOutcome("fetch_summary", time.Since(start), err)
	return toolResult("fetch_summary", resp, err)
}
