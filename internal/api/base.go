package api

import (
	"context"

	"github.com/newsdesk/newsdesk/client/internal/types"
)

// Path prefixes and routes of the backend REST surface.
const (
	ArticlesPrefix = "/api/articles"
	SummaryPrefix  = "/api"

	// CheckDataPath is rooted at /api, not under ArticlesPrefix.
	CheckDataPath = "/api/check-data"
)

// Operation names, used in errors and metric labels.
const (
	OpQueryArticles  = "query_articles"
	OpUpdateArticle  = "update_article"
	OpDeleteArticles = "delete_articles"
	OpCheckData      = "check_data"
	OpFetchSummary   = "fetch_summary"
)

// Poster issues POST requests for one backend surface.
// Post resolves subPath under the surface prefix; PostRoot takes an
// absolute path relative to the base URL.
type Poster interface {
	Post(ctx context.Context, operation, subPath string, body any) (*types.Response, error)
	PostRoot(ctx context.Context, operation, path string, body any) (*types.Response, error)
}
