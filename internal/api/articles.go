package api

import (
	"context"

	"github.com/newsdesk/newsdesk/client/internal/types"
)

// QueryArticles posts the time range to /api/articles/query.
func QueryArticles(ctx context.Context, p Poster, req types.QueryArticlesRequest) (*types.Response, error) {
	return p.Post(ctx, OpQueryArticles, "/query", req)
}

// UpdateArticle posts {id, fields} to /api/articles/update.
func UpdateArticle(ctx context.Context, p Poster, req types.UpdateArticleRequest) (*types.Response, error) {
	return p.Post(ctx, OpUpdateArticle, "/update", req)
}

// DeleteArticles posts the time range to /api/articles/delete.
func DeleteArticles(ctx context.Context, p Poster, req types.DeleteArticlesRequest) (*types.Response, error) {
	return p.Post(ctx, OpDeleteArticles, "/delete", req)
}

// CheckAndBackfill triggers the backend's data check and backfill job.
// The request has no body and goes to /api/check-data.
func CheckAndBackfill(ctx context.Context, p Poster) (*types.Response, error) {
	return p.PostRoot(ctx, OpCheckData, CheckDataPath, nil)
}
