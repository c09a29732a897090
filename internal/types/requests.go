package types

// ------------------------------
// Request Types
// ------------------------------

// QueryArticlesRequest selects articles published inside a time range.
// Times are passed through exactly as given (e.g. "2024-01-01").
type QueryArticlesRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// UpdateArticleRequest overwrites the listed fields of one article.
type UpdateArticleRequest struct {
	ID     int64          `json:"id"`
	Fields map[string]any `json:"fields"`
}

// DeleteArticlesRequest removes every article inside a time range.
type DeleteArticlesRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SummaryRequest carries arbitrary summary-generation parameters.
type SummaryRequest map[string]any
