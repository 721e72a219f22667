package engine

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestChromeHeaders(t *testing.T) {
	h := ChromeHeaders()

	required := []string{"accept", "accept-language", "user-agent"}
	for _, key := range required {
		if _, ok := h[key]; !ok {
			t.Errorf("ChromeHeaders() missing key %q", key)
		}
	}
	if len(h["user-agent"]) < 20 {
		t.Errorf("user-agent too short: %q", h["user-agent"])
	}
}

func TestFetchPage(t *testing.T) {
	var gotUA, gotLang, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		gotCookie = r.Header.Get("Cookie")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := FetchPage(context.Background(), NewHTTPClient(5*time.Second), srv.URL, "ja,en;q=0.8")
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q", body)
	}
	if gotUA == "" {
		t.Error("User-Agent not sent")
	}
	if gotLang != "ja,en;q=0.8" {
		t.Errorf("Accept-Language = %q", gotLang)
	}
	if gotCookie != "" {
		t.Errorf("consent cookie sent to non-YouTube host: %q", gotCookie)
	}
}

func TestFetchPage_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, strings.Repeat("x", 1000), http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := FetchPage(context.Background(), NewHTTPClient(5*time.Second), srv.URL, "")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("FetchPage() error = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", se.StatusCode)
	}
	if len(se.Body) > 210 {
		t.Errorf("Body not truncated: %d bytes", len(se.Body))
	}
}

func TestIsYouTubeHost(t *testing.T) {
	for _, h := range []string{"www.youtube.com", "youtube.com", "m.youtube.com"} {
		if !isYouTubeHost(h) {
			t.Errorf("isYouTubeHost(%q) = false", h)
		}
	}
	if isYouTubeHost("youtube.com.evil.test") {
		t.Error("isYouTubeHost matched a lookalike host")
	}
}

func TestConfigAcceptLanguage(t *testing.T) {
	if got := (Config{HL: "ja"}).AcceptLanguage(); got != "ja,en;q=0.8" {
		t.Errorf("AcceptLanguage() = %q", got)
	}
	if got := (Config{}).AcceptLanguage(); got != "en-US,en;q=0.9" {
		t.Errorf("AcceptLanguage() = %q", got)
	}
}

func TestApplyBrowserHeaders(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://www.youtube.com/results?search_query=x", nil)
	req.Header.Set("Accept", "application/json")
	applyBrowserHeaders(req, "ja,en;q=0.8")

	if got := req.Header.Get("Cookie"); got != consentCookie {
		t.Errorf("Cookie = %q, want consent cookie", got)
	}
	if got := req.Header.Get("Accept"); got != "application/json" {
		t.Errorf("Accept overwritten: %q", got)
	}
	if req.Header.Get("Accept-Encoding") != "" {
		t.Error("Accept-Encoding should be left to net/http")
	}
	if req.Header.Get("User-Agent") == "" {
		t.Error("User-Agent not set")
	}
}

func TestFetchPage_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, MaxBodyBytes+1))
	}))
	defer srv.Close()

	_, err := FetchPage(context.Background(), NewHTTPClient(5*time.Second), srv.URL, "")
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("FetchPage() error = %v, want ErrBodyTooLarge", err)
	}
}

func TestFetchPage_BodyAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, MaxBodyBytes))
	}))
	defer srv.Close()

	body, err := FetchPage(context.Background(), NewHTTPClient(5*time.Second), srv.URL, "")
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if len(body) != MaxBodyBytes {
		t.Errorf("len(body) = %d, want %d", len(body), MaxBodyBytes)
	}
}
