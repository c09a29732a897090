package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/newsdesk/newsdesk/client"
)

// toolPayload is the text returned to the host for every completed call.
type toolPayload struct {
	Status    int             `json:"status"`
	RequestID string          `json:"requestId,omitempty"`
	Body      json.RawMessage `json:"body,omitempty"`
	Text      string          `json:"text,omitempty"` // set instead of Body when the backend did not return JSON
}

// toolResult converts a client result into an MCP tool result. Backend
// failures become tool errors so the host model can read them.
func toolResult(tool string, resp *client.Response, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		var se *client.StatusError
		switch {
		case errors.As(err, &se):
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: HTTP %d: %s", tool, se.StatusCode, se.Body)), nil
		case client.IsTimeout(err):
			return mcp.NewToolResultError(fmt.Sprintf("%s timed out: %v", tool, err)), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err)), nil
		}
	}

	p := toolPayload{Status: resp.StatusCode, RequestID: resp.RequestID}
	if len(resp.Body) > 0 {
		if json.Valid(resp.Body) {
			p.Body = resp.Body
		} else {
			p.Text = string(resp.Body)
		}
	}
	b, _ := json.MarshalIndent(p, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

// int64Arg reads an integer argument; JSON numbers arrive as float64.
func int64Arg(args map[string]any, key string) (int64, error) {
	switch v := args[key].(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(v, 10, 64)
	case nil:
		return 0, fmt.Errorf("missing required argument %s", key)
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, v)
	}
}

// objectArg reads an optional JSON object argument.
func objectArg(args map[string]any, key string) (map[string]any, error) {
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, fmt.Errorf("%s must be a JSON object: %w", key, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%s must be an object, got %T", key, v)
	}
}
