package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"

	"github.com/newsdesk/newsdesk/client"
)

type captured struct {
	Path string
	Body string
}

// newStubClient returns a client whose backend answers every call with
// status and body and records what it received.
func newStubClient(t *testing.T, status int, body string) (*client.Client, func() []captured) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []captured
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, captured{Path: r.URL.Path, Body: string(b)})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	cfg := client.DefaultConfig()
	cfg.BaseURL = srv.URL
	c, err := client.New(cfg, client.WithoutMetrics())
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c, func() []captured {
		mu.Lock()
		defer mu.Unlock()
		return append([]captured(nil), reqs...)
	}
}

func callReq(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", res.Content[0])
	}
	return tc.Text
}

func TestQueryArticlesTool(t *testing.T) {
	c, requests := newStubClient(t, http.StatusOK, `[{"id":1,"title":"A"}]`)
	h := NewArticleHandler(c)

	res, err := h.handleQuery(context.Background(), callReq(map[string]any{
		"start_time": "2024-01-01",
		"end_time":   "2024-01-31",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	got := requests()
	if len(got) != 1 || got[0].Path != "/api/articles/query" {
		t.Fatalf("requests = %+v", got)
	}
	assert.JSONEq(t, `{"startTime":"2024-01-01","endTime":"2024-01-31"}`, got[0].Body)

	var payload toolPayload
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Status != http.StatusOK {
		t.Fatalf("payload = %+v", payload)
	}
	assert.JSONEq(t, `[{"id":1,"title":"A"}]`, string(payload.Body))
	if payload.RequestID == "" {
		t.Fatalf("expected request id in payload")
	}
}

func TestQueryArticlesToolMissingArgument(t *testing.T) {
	c, requests := newStubClient(t, http.StatusOK, `[]`)
	h := NewArticleHandler(c)

	res, err := h.handleQuery(context.Background(), callReq(map[string]any{"start_time": "2024-01-01"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error")
	}
	if n := len(requests()); n != 0 {
		t.Fatalf("backend called %d times", n)
	}
}

func TestUpdateArticleTool(t *testing.T) {
	c, requests := newStubClient(t, http.StatusOK, `{"ok":true}`)
	h := NewArticleHandler(c)

	res, err := h.handleUpdate(context.Background(), callReq(map[string]any{
		"id":     float64(42),
		"fields": map[string]any{"title": "New Title"},
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	got := requests()
	if len(got) != 1 || got[0].Path != "/api/articles/update" {
		t.Fatalf("requests = %+v", got)
	}
	assert.JSONEq(t, `{"id":42,"fields":{"title":"New Title"}}`, got[0].Body)
}

func TestUpdateArticleToolRejectsBadArguments(t *testing.T) {
	c, requests := newStubClient(t, http.StatusOK, `{}`)
	h := NewArticleHandler(c)

	cases := map[string]map[string]any{
		"missing id":     {"fields": map[string]any{"title": "x"}},
		"fractional id":  {"id": 1.5, "fields": map[string]any{"title": "x"}},
		"empty fields":   {"id": float64(1), "fields": map[string]any{}},
		"fields not obj": {"id": float64(1), "fields": []any{"title"}},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := h.handleUpdate(context.Background(), callReq(args))
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !res.IsError {
				t.Fatalf("expected tool error")
			}
		})
	}
	if n := len(requests()); n != 0 {
		t.Fatalf("backend called %d times", n)
	}
}

func TestDeleteArticlesTool(t *testing.T) {
	c, requests := newStubClient(t, http.StatusOK, `{"deleted":3}`)
	h := NewArticleHandler(c)

	res, err := h.handleDelete(context.Background(), callReq(map[string]any{
		"start_time": "2024-01-01",
		"end_time":   "2024-01-02",
	}))
	if err != nil || res.IsError {
		t.Fatalf("err=%v res=%+v", err, res)
	}
	got := requests()
	if len(got) != 1 || got[0].Path != "/api/articles/delete" {
		t.Fatalf("requests = %+v", got)
	}
}

func TestCheckAndBackfillTool(t *testing.T) {
	c, requests := newStubClient(t, http.StatusOK, `{"started":true}`)
	h := NewArticleHandler(c)

	res, err := h.handleCheckAndBackfill(context.Background(), callReq(nil))
	if err != nil || res.IsError {
		t.Fatalf("err=%v res=%+v", err, res)
	}
	got := requests()
	if len(got) != 1 || got[0].Path != "/api/check-data" {
		t.Fatalf("requests = %+v", got)
	}
	if got[0].Body != "" {
		t.Fatalf("expected empty body, got %q", got[0].Body)
	}
}

func TestFetchSummaryTool(t *testing.T) {
	c, requests := newStubClient(t, http.StatusOK, `{"summary":"..."}`)
	h := NewSummaryHandler(c)

	res, err := h.handleFetchSummary(context.Background(), callReq(map[string]any{
		"params": map[string]any{"startTime": "2024-01-01", "endTime": "2024-01-02"},
	}))
	if err != nil || res.IsError {
		t.Fatalf("err=%v res=%+v", err, res)
	}
	got := requests()
	if len(got) != 1 || got[0].Path != "/api/summary" {
		t.Fatalf("requests = %+v", got)
	}
	assert.JSONEq(t, `{"endTime":"2024-01-02","startTime":"2024-01-01"}`, got[0].Body)
}

func TestFetchSummaryToolAcceptsJSONStringParams(t *testing.T) {
	c, requests := newStubClient(t, http.StatusOK, `{}`)
	h := NewSummaryHandler(c)

	res, err := h.handleFetchSummary(context.Background(), callReq(map[string]any{
		"params": `{"topic":"tech"}`,
	}))
	if err != nil || res.IsError {
		t.Fatalf("err=%v res=%+v", err, res)
	}
	got := requests()
	if len(got) != 1 {
		t.Fatalf("requests = %+v", got)
	}
	assert.JSONEq(t, `{"topic":"tech"}`, got[0].Body)
}

func TestToolReportsStatusError(t *testing.T) {
	c, _ := newStubClient(t, http.StatusInternalServerError, `{"error":"boom"}`)
	h := NewArticleHandler(c)

	res, err := h.handleCheckAndBackfill(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error")
	}
	text := resultText(t, res)
	if !strings.Contains(text, "HTTP 500") || !strings.Contains(text, "boom") {
		t.Fatalf("text = %q", text)
	}
}

func TestInt64Arg(t *testing.T) {
	args := map[string]any{
		"f":   float64(7),
		"i":   9,
		"s":   "11",
		"n":   json.Number("13"),
		"bad": true,
	}
	for key, want := range map[string]int64{"f": 7, "i": 9, "s": 11, "n": 13} {
		got, err := int64Arg(args, key)
		if err != nil || got != want {
			t.Errorf("int64Arg(%s) = %d, %v; want %d", key, got, err, want)
		}
	}
	if _, err := int64Arg(args, "bad"); err == nil {
		t.Errorf("expected error for bool")
	}
	if _, err := int64Arg(args, "missing"); err == nil {
		t.Errorf("expected error for missing key")
	}
}

func TestToolResultNonJSONBody(t *testing.T) {
	res, err := toolResult("x", &client.Response{StatusCode: 200, Body: json.RawMessage("plain text")}, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	var payload toolPayload
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Text != "plain text" || payload.Body != nil {
		t.Fatalf("payload = %+v", payload)
	}
}
