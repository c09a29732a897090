package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

type seenRequest struct {
	Method string
	Path   string
	Body   string
}

// stubBackend answers every route with a fixed status and body, recording
// what it was sent. delay holds the response back (cut short when the
// client gives up).
type stubBackend struct {
	mu     sync.Mutex
	seen   []seenRequest
	status map[string]int
	body   map[string]string
	delay  map[string]time.Duration
}

func newStubBackend(t *testing.T) (*httptest.Server, *stubBackend) {
	t.Helper()
	sb := &stubBackend{status: map[string]int{}, body: map[string]string{}, delay: map[string]time.Duration{}}
	srv := httptest.NewServer(sb)
	t.Cleanup(srv.Close)
	return srv, sb
}

func (sb *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	sb.mu.Lock()
	sb.seen = append(sb.seen, seenRequest{Method: r.Method, Path: r.URL.Path, Body: string(b)})
	status, ok := sb.status[r.URL.Path]
	if !ok {
		status = http.StatusOK
	}
	body, ok := sb.body[r.URL.Path]
	if !ok {
		body = `{}`
	}
	delay := sb.delay[r.URL.Path]
	sb.mu.Unlock()

	if delay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(delay):
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (sb *stubBackend) respond(path string, status int, body string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.status[path] = status
	sb.body[path] = body
}

func (sb *stubBackend) hold(path string, d time.Duration) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.delay[path] = d
}

func (sb *stubBackend) requests() []seenRequest {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return append([]seenRequest(nil), sb.seen...)
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL}, append([]Option{WithoutMetrics()}, opts...)...)
	require.NoError(t, err)
	return c
}
