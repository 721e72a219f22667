package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the service.
var metrics struct {
	SearchRequests       atomic.Int64
	VideoInfoRequests    atomic.Int64
	PlaylistInfoRequests atomic.Int64
	MissingParameter     atomic.Int64
	UpstreamFailures     atomic.Int64
	YouTubeScrapeCalls   atomic.Int64
	YouTubeDataAPICalls  atomic.Int64
	InnertubeCalls       atomic.Int64
	InvidiousCalls       atomic.Int64
	YtDlpCalls           atomic.Int64
}

var metricKeys = []string{
	"search_requests", "video_info_requests", "playlist_info_requests",
	"missing_parameter", "upstream_failures",
	"youtube_scrape_calls", "youtube_data_api_calls",
	"innertube_calls", "invidious_calls", "ytdlp_calls",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"search_requests":        metrics.SearchRequests.Load(),
		"video_info_requests":    metrics.VideoInfoRequests.Load(),
		"playlist_info_requests": metrics.PlaylistInfoRequests.Load(),
		"missing_parameter":      metrics.MissingParameter.Load(),
		"upstream_failures":      metrics.UpstreamFailures.Load(),
		"youtube_scrape_calls":   metrics.YouTubeScrapeCalls.Load(),
		"youtube_data_api_calls": metrics.YouTubeDataAPICalls.Load(),
		"innertube_calls":        metrics.InnertubeCalls.Load(),
		"invidious_calls":        metrics.InvidiousCalls.Load(),
		"ytdlp_calls":            metrics.YtDlpCalls.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the api package.
func IncrSearchRequests()       { metrics.SearchRequests.Add(1) }
func IncrVideoInfoRequests()    { metrics.VideoInfoRequests.Add(1) }
func IncrPlaylistInfoRequests() { metrics.PlaylistInfoRequests.Add(1) }
func IncrMissingParameter()     { metrics.MissingParameter.Add(1) }
func IncrUpstreamFailures()     { metrics.UpstreamFailures.Add(1) }

// Incrementors for sources/ sub-package.
func IncrYouTubeScrape()  { metrics.YouTubeScrapeCalls.Add(1) }
func IncrYouTubeDataAPI() { metrics.YouTubeDataAPICalls.Add(1) }
func IncrInnertube()      { metrics.InnertubeCalls.Add(1) }
func IncrInvidious()      { metrics.InvidiousCalls.Add(1) }
func IncrYtDlp()          { metrics.YtDlpCalls.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
