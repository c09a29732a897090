package client

import "github.com/newsdesk/newsdesk/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	QueryArticlesRequest  = types.QueryArticlesRequest
	UpdateArticleRequest  = types.UpdateArticleRequest
	DeleteArticlesRequest = types.DeleteArticlesRequest
	SummaryRequest        = types.SummaryRequest

	// Responses
	Response = types.Response
)

// DecodeAs decodes the body of resp into a fresh T.
func DecodeAs[T any](resp *Response) (T, error) { return types.DecodeAs[T](resp) }
