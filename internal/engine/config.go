package engine

import (
	"net/http"
	"time"
)

// Video info backends.
const (
	BackendYtDlp     = "ytdlp"
	BackendInnertube = "innertube"
	BackendInvidious = "invidious"
)

// DefaultYtDlpFormat prefers mp4 video with m4a audio, then any mp4, then anything.
const DefaultYtDlpFormat = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"

// Config holds all engine configuration, built once in main and passed down.
type Config struct {
	Locale           string
	HL               string // YouTube interface language
	GL               string // YouTube region
	HTTPTimeout      time.Duration
	YouTubeAPIKey    string
	SearchLimit      int
	VideoInfoBackend string
	YtDlpPath        string
	YtDlpFormat      string
	InvidiousURL     string
	CORSOrigins      []string
	StaticDir        string
	MCPEnabled       bool
	MCPPort          string // standalone MCP listener; empty disables it
	HTTPClient       *http.Client
}

// AcceptLanguage returns the Accept-Language header value for upstream requests.
func (c Config) AcceptLanguage() string {
	if c.HL == "" {
		return "en-US,en;q=0.9"
	}
	return c.HL + "," + "en;q=0.8"
}

// Client returns the configured HTTP client, falling back to a client with HTTPTimeout.
func (c Config) Client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return NewHTTPClient(c.HTTPTimeout)
}
