package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/newsdesk/newsdesk/client/internal/types"
)

func TestFetchSummary_ForwardsArbitraryParams(t *testing.T) {
	t.Parallel()
	srv, rec := newRecorder(t, http.StatusOK, `{"summary":"three stories today"}`)
	f := newTestFacade(srv.URL, SummaryPrefix, FacadeOptions{})

	params := types.SummaryRequest{
		"startTime": "2024-01-01",
		"endTime":   "2024-01-02",
		"model":     "gpt-4o-mini",
		"maxWords":  120,
		"sources":   []string{"bbc", "cna"},
	}
	resp, err := FetchSummary(context.Background(), f, params)
	if err != nil {
		t.Fatalf("FetchSummary: %v", err)
	}
	calls := rec.Calls()
	if len(calls) != 1 || calls[0].Method != http.MethodPost || calls[0].Path != "/api/summary" {
		t.Fatalf("unexpected calls %+v", calls)
	}
	assertJSONEqual(t, `{"startTime":"2024-01-01","endTime":"2024-01-02","model":"gpt-4o-mini","maxWords":120,"sources":["bbc","cna"]}`, calls[0].Body)

	got, err := types.DecodeAs[map[string]string](resp)
	if err != nil || got["summary"] != "three stories today" {
		t.Fatalf("decode: got=%v err=%v", got, err)
	}
}

func TestFetchSummary_NonOK(t *testing.T) {
	t.Parallel()
	srv, _ := newRecorder(t, http.StatusBadGateway, `upstream model unavailable`)
	f := newTestFacade(srv.URL, SummaryPrefix, FacadeOptions{})

	resp, err := FetchSummary(context.Background(), f, types.SummaryRequest{})
	if err == nil {
		t.Fatal("expected error for 502")
	}
	if resp == nil || string(resp.Body) != "upstream model unavailable" {
		t.Fatalf("expected raw body to be preserved, got %+v", resp)
	}
}
