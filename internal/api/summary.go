package api

import (
	"context"

	"github.com/newsdesk/newsdesk/client/internal/types"
)

// FetchSummary posts the summary parameters to /api/summary. The backend
// runs model inference inline, so callers should use the long timeout tier.
func FetchSummary(ctx context.Context, p Poster, req types.SummaryRequest) (*types.Response, error) {
	return p.Post(ctx, OpFetchSummary, "/summary", req)
}
