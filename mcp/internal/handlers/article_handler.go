package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/newsdesk/newsdesk/client"
)

// ArticleHandler exposes query_articles, update_article, delete_articles and
// check_and_backfill.
type ArticleHandler struct {
	client *client.Client
}

// NewArticleHandler returns a new handler.
func NewArticleHandler(c *client.Client) *ArticleHandler {
	return &ArticleHandler{client: c}
}

// RegisterTools registers the article tools.
func (ah *ArticleHandler) RegisterTools(s *server.MCPServer) error {
	query := mcp.NewTool("query_articles",
		mcp.WithDescription("List the articles published inside a time range. Returns the backend's article list as JSON."),
		mcp.WithString("start_time", mcp.Required(), mcp.Description("Range start, e.g. 2024-01-01")),
		mcp.WithString("end_time", mcp.Required(), mcp.Description("Range end, e.g. 2024-01-31")),
	)
	s.AddTool(query, ah.handleQuery)

	update := mcp.NewTool("update_article",
		mcp.WithDescription("Overwrite fields of one article, e.g. {\"title\": \"New Title\"}."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Article ID")),
		mcp.WithObject("fields", mcp.Required(), mcp.Description("Map of field name to new value")),
	)
	s.AddTool(update, ah.handleUpdate)

	del := mcp.NewTool("delete_articles",
		mcp.WithDescription("Delete every article inside a time range. Irreversible."),
		mcp.WithString("start_time", mcp.Required(), mcp.Description("Range start")),
		mcp.WithString("end_time", mcp.Required(), mcp.Description("Range end")),
	)
	s.AddTool(del, ah.handleDelete)

	backfill := mcp.NewTool("check_and_backfill",
		mcp.WithDescription("Ask the backend to check for missing article data and start a backfill job."),
	)
	s.AddTool(backfill, ah.handleCheckAndBackfill)

	return nil
}

func (ah *ArticleHandler) handleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startTime, err := req.RequireString("start_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endTime, err := req.RequireString("end_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("start_time", startTime).Str("end_time", endTime).Msg("query_articles invoked")

	start := time.Now()
	resp, err := ah.client.QueryArticles(ctx, client.QueryArticlesRequest{StartTime: startTime, EndTime: endTime})
	logOutcome("query_articles", time.Since(start), err)
	return toolResult("query_articles", resp, err)
}

func (ah *ArticleHandler) handleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := int64Arg(args, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fields, err := objectArg(args, "fields")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(fields) == 0 {
		return mcp.NewToolResultError("fields must name at least one field"), nil
	}

	log.Debug().Int64("id", id).Int("field_count", len(fields)).Msg("update_article invoked")

	start := time.Now()
	resp, err := ah.client.UpdateArticle(ctx, client.UpdateArticleRequest{ID: id, Fields: fields})
	logOutcome("update_article", time.Since(start), err)
	return toolResult("update_article", resp, err)
}

func (ah *ArticleHandler) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startTime, err := req.RequireString("start_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endTime, err := req.RequireString("end_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("start_time", startTime).Str("end_time", endTime).Msg("delete_articles invoked")

	start := time.Now()
	resp, err := ah.client.DeleteArticles(ctx, client.DeleteArticlesRequest{StartTime: startTime, EndTime: endTime})
	logOutcome("delete_articles", time.Since(start), err)
	return toolResult("delete_articles", resp, err)
}

func (ah *ArticleHandler) handleCheckAndBackfill(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	resp, err := ah.client.CheckAndBackfill(ctx)
	logOutcome("check_and_backfill", time.Since(start), err)
	return toolResult("check_and_backfill", resp, err)
}

func logOutcome(tool string, elapsed time.Duration, err error) {
	if err != nil {
		log.Error().Err(err).Str("tool", tool).Dur("elapsed", elapsed).Msg("tool call failed")
		return
	}
	log.Debug().Str("tool", tool).Dur("elapsed", elapsed).Msg("tool call completed")
}
