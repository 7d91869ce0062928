package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdraw/internal/config"
	"github.com/matzehuels/graphdraw/pkg/cache"
	gio "github.com/matzehuels/graphdraw/pkg/io"
	"github.com/matzehuels/graphdraw/pkg/observability"
)

const square = "a\nb\nc\nd\na b\nb c\nc d 2\nd a\n"

func newTestServer(t *testing.T, cfg config.ServerConfig) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	srv := New(NewRunner(fc, logger), cfg, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealthAndVersion(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})

	for _, path := range []string{"/healthz", "/version"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d", path, resp.StatusCode)
		}
		if resp.Header.Get("Content-Type") != "application/json" {
			t.Errorf("GET %s content type = %q", path, resp.Header.Get("Content-Type"))
		}
	}
}

func TestLayoutJSON(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})

	resp := post(t, ts.URL+"/v1/layout?seed=9&repeats=1", square)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	res, err := gio.ReadLayout(resp.Body)
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}
	if len(res.Nodes) != 4 || len(res.Edges) != 4 {
		t.Errorf("layout has %d nodes and %d edges", len(res.Nodes), len(res.Edges))
	}
	if res.Seed != 9 || res.Runs != 2 {
		t.Errorf("seed/runs = %d/%d, want 9/2", res.Seed, res.Runs)
	}
	if got := resp.Header.Get("X-Layout-Cache"); got != "miss" {
		t.Errorf("first request cache = %q, want miss", got)
	}
	if resp.Header.Get("X-Request-Id") != "" {
		t.Error("request id should not leak into the response by default")
	}

	again := post(t, ts.URL+"/v1/layout?seed=9&repeats=1", square)
	if got := again.Header.Get("X-Layout-Cache"); got != "hit" {
		t.Errorf("second request cache = %q, want hit", got)
	}
}

func TestLayoutDOTDirected(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})

	resp := post(t, ts.URL+"/v1/layout?format=dot&directed=true&weights=1", square)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "digraph G {") {
		t.Errorf("expected digraph:\n%s", body)
	}
	if !strings.Contains(string(body), `taillabel="2"`) {
		t.Errorf("expected weight label on c->d:\n%s", body)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/vnd.graphviz") {
		t.Errorf("content type = %q", resp.Header.Get("Content-Type"))
	}
}

func TestLayoutBadRequests(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})

	tests := []struct {
		name  string
		query string
		body  string
		code  string
		line  int
	}{
		{"duplicate node", "", "a\na\n", "DUPLICATE_NODE", 2},
		{"unknown endpoint", "", "a\na b\n", "UNKNOWN_ENDPOINT", 2},
		{"bad weight", "", "a\nb\na b x\n", "INVALID_WEIGHT", 3},
		{"bad line", "", "a b c d\n", "INVALID_LINE", 1},
		{"nan weight", "?seed=1", "a\nb\na b nan\n", "INVALID_WEIGHT", 3},
		{"infinite weight", "?seed=1", "a\nb\na b inf\n", "INVALID_WEIGHT", 3},
		{"bad format", "?format=png", square, "INVALID_FORMAT", 0},
		{"bad seed", "?seed=-1", square, "INVALID_OPTION", 0},
		{"bad bool", "?directed=maybe", square, "INVALID_OPTION", 0},
		{"too many repeats", "?repeats=1000", square, "INVALID_OPTION", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/layout"+tt.query, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			e := decodeError(t, resp)
			if e.Code != tt.code || e.Line != tt.line {
				t.Errorf("error = %+v, want code %s line %d", e, tt.code, tt.line)
			}
			if e.Message == "" {
				t.Error("error message should be set")
			}
		})
	}
}

func TestLayoutBodyLimit(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{MaxBodyBytes: 16})

	var body strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&body, "node%02d\n", i)
	}
	resp := post(t, ts.URL+"/v1/layout", body.String())
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Code != "INVALID_INPUT" {
		t.Errorf("code = %s, want INVALID_INPUT", e.Code)
	}
}

type headerCounter struct {
	*httptest.ResponseRecorder
	writes int
}

func (h *headerCounter) WriteHeader(code int) {
	h.writes++
	h.ResponseRecorder.WriteHeader(code)
}

func TestLayoutTimeout(t *testing.T) {
	logger := log.New(io.Discard)
	srv := New(NewRunner(cache.NewNullCache(), logger), config.ServerConfig{RequestTimeout: time.Nanosecond}, logger)

	rec := &headerCounter{ResponseRecorder: httptest.NewRecorder()}
	req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(square))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", rec.Code)
	}
	if rec.writes != 1 {
		t.Errorf("WriteHeader called %d times, want 1", rec.writes)
	}
	var e ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Code != "TIMEOUT" {
		t.Errorf("code = %s, want TIMEOUT", e.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})
	resp, err := http.Get(ts.URL + "/v1/layout")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/layout = %d, want 405", resp.StatusCode)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetHTTPHooks(h)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, config.ServerConfig{})
	post(t, ts.URL+"/v1/layout", "a\na\n")
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.statuses) != 2 || h.statuses[0] != http.StatusBadRequest || h.statuses[1] != http.StatusOK {
		t.Errorf("hook statuses = %v, want [400 200]", h.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	srv := New(NewRunner(cache.NewNullCache(), nil), config.ServerConfig{Addr: "127.0.0.1:0"}, log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
