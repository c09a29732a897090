package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

type captured struct {
	Method string
	Path   string
	Body   []byte
	Header http.Header
}

// recorder is a stub backend that records every request it receives.
type recorder struct {
	mu     sync.Mutex
	calls  []captured
	status int
	body   string
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	rec.mu.Lock()
	rec.calls = append(rec.calls, captured{Method: r.Method, Path: r.URL.Path, Body: b, Header: r.Header.Clone()})
	status, body := rec.status, rec.body
	rec.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (rec *recorder) Calls() []captured {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]captured(nil), rec.calls...)
}

func newRecorder(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{status: status, body: body}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return srv, rec
}

func newTestFacade(baseURL, prefix string, opts FacadeOptions) *Facade {
	return NewFacade(baseURL, 5*time.Second, prefix, opts)
}

func assertJSONEqual(t *testing.T, want string, got []byte) {
	t.Helper()
	var w, g any
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("bad want JSON %q: %v", want, err)
	}
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("bad body JSON %q: %v", got, err)
	}
	if !reflect.DeepEqual(w, g) {
		t.Fatalf("body mismatch:\n want %s\n  got %s", want, got)
	}
}

// obsRecorder collects observations.
type obsRecorder struct {
	mu  sync.Mutex
	got []Observation
}

func (o *obsRecorder) Observe(ob Observation) {
	o.mu.Lock()
	o.got = append(o.got, ob)
	o.mu.Unlock()
}

func (o *obsRecorder) All() []Observation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Observation(nil), o.got...)
}
