package api

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestService() *Service {
	return NewService(&fakeSearch{}, &fakePlaylists{}, &fakeMedia{}, NewMessages("ja"))
}

func getStream(t *testing.T, ctx context.Context, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func TestNewMux_MCPStreamIsFlushed(t *testing.T) {
	release := make(chan struct{})
	stream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: hello\n\n")
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	srv := httptest.NewServer(NewMux(newTestService(), Options{MCP: stream}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp := getStream(t, ctx, srv.URL+"/mcp")
	defer resp.Body.Close()

	if ce := resp.Header.Get("Content-Encoding"); ce != "" {
		t.Errorf("Content-Encoding = %q on /mcp, want none", ce)
	}
	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	if err != nil {
		t.Fatalf("read first event before handler returned: %v", err)
	}
	if line != "data: hello\n" {
		t.Errorf("first line = %q", line)
	}
}

func TestNewMux_MCPOutlivesWriteTimeout(t *testing.T) {
	stream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: one\n\n")
		w.(http.Flusher).Flush()
		time.Sleep(300 * time.Millisecond)
		_, _ = io.WriteString(w, "data: two\n\n")
	})

	srv := httptest.NewUnstartedServer(NewMux(newTestService(), Options{MCP: stream}))
	srv.Config.WriteTimeout = 100 * time.Millisecond
	srv.Start()
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp := getStream(t, ctx, srv.URL+"/mcp")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("stream cut short: %v", err)
	}
	if !strings.Contains(string(body), "data: two") {
		t.Errorf("body = %q, want both events", body)
	}
}

func TestNewMux_APIStillCompressed(t *testing.T) {
	f := newFixture("ja")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Vary"); !strings.Contains(got, "Accept-Encoding") {
		t.Errorf("Vary = %q, want gzip handler in chain", got)
	}
}

func TestNewMux_NoMCPRoute(t *testing.T) {
	f := newFixture("ja")
	if rec := f.get(t, "/mcp"); rec.Code != http.StatusNotFound {
		t.Errorf("/mcp status = %d without MCP handler, want 404", rec.Code)
	}
}
