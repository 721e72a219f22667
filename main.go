// go_ytapi: YouTube search, video info and playlist info over a small JSON HTTP API.
//
// Serves /api/search, /api/video_info and /api/playlist_info, the same lookups as
// MCP tools at /mcp (and on MCP_PORT when set), and one-shot CLI subcommands for each lookup.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_ytapi/internal/api"
	"github.com/anatolykoptev/go_ytapi/internal/engine"
	"github.com/anatolykoptev/go_ytapi/internal/engine/sources"
	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("load .env failed", slog.Any("error", err))
	}
	initLogger(env.Str("LOG_LEVEL", "info"), env.Str("LOG_FORMAT", "text"))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(level, format string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

func loadConfig() engine.Config {
	mcpEnabled, err := strconv.ParseBool(env.Str("MCP_ENABLED", "true"))
	if err != nil {
		mcpEnabled = true
	}
	timeout := env.Duration("HTTP_TIMEOUT", 15*time.Second)
	return engine.Config{
		Locale:           env.Str("LOCALE", "ja"),
		HL:               env.Str("HL", "ja"),
		GL:               env.Str("GL", "JP"),
		HTTPTimeout:      timeout,
		YouTubeAPIKey:    env.Str("YOUTUBE_API_KEY", ""),
		SearchLimit:      env.Int("SEARCH_LIMIT", 20),
		VideoInfoBackend: env.Str("VIDEO_INFO_BACKEND", engine.BackendYtDlp),
		YtDlpPath:        env.Str("YTDLP_PATH", "yt-dlp"),
		YtDlpFormat:      env.Str("YTDLP_FORMAT", engine.DefaultYtDlpFormat),
		InvidiousURL:     strings.TrimRight(env.Str("INVIDIOUS_URL", ""), "/"),
		CORSOrigins:      env.List("CORS_ORIGINS", "*"),
		StaticDir:        env.Str("STATIC_DIR", ""),
		MCPEnabled:       mcpEnabled,
		MCPPort:          env.Str("MCP_PORT", ""),
		HTTPClient:       engine.NewHTTPClient(timeout),
	}
}

// newService builds the providers selected by cfg.
func newService(cfg engine.Config) (*api.Service, error) {
	media, err := sources.NewMediaInfoProvider(cfg)
	if err != nil {
		return nil, err
	}
	search := sources.NewSearchProvider(cfg)
	svc := api.NewService(search, sources.NewPlaylistScraper(cfg), media, api.NewMessages(cfg.Locale))

	slog.Info("providers ready",
		slog.Bool("data_api", cfg.YouTubeAPIKey != ""),
		slog.String("video_info_backend", cfg.VideoInfoBackend),
		slog.String("locale", svc.Messages().Tag().String()),
	)
	return svc, nil
}

func newHTTPServer(addr string, handler http.Handler, cfg engine.Config) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.HTTPTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
