package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go_ytapi/internal/engine"
)

// Options configures the optional surfaces of the mux.
type Options struct {
	MCP         http.Handler // mounted at /mcp when non-nil
	StaticDir   string       // served at / when non-empty
	CORSOrigins []string
}

// NewMux routes the three API endpoints plus health, metrics, MCP and static files,
// wrapped in request id, access log and CORS middleware. Everything but /mcp is
// gzip-compressed; /mcp streams SSE and must reach the client unbuffered.
func NewMux(svc *Service, opts Options) http.Handler {
	h := NewHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", h.Search)
	mux.HandleFunc("/api/video_info", h.VideoInfo)
	mux.HandleFunc("/api/playlist_info", h.PlaylistInfo)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, engine.FormatMetrics())
	})
	if opts.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(opts.StaticDir)))
	}

	root := http.NewServeMux()
	root.Handle("/", WithGzip(mux))
	if opts.MCP != nil {
		stream := withoutWriteDeadline(opts.MCP)
		root.Handle("/mcp", stream)
		root.Handle("/mcp/", stream)
	}

	var handler http.Handler = root
	handler = WithCORS(opts.CORSOrigins)(handler)
	handler = WithAccessLog(handler)
	return WithRequestID(handler)
}

// withoutWriteDeadline lifts the server WriteTimeout for long-lived streams.
func withoutWriteDeadline(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
			slog.Debug("clear write deadline", slog.Any("error", err))
		}
		next.ServeHTTP(w, r)
	})
}
