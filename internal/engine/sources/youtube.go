// Package sources holds the upstream providers behind the three endpoints.
//
// Providers are split across files by upstream:
//
//	youtube_search.go     search (ytInitialData scraping, Data API v3)
//	youtube_playlist.go   playlist page scraping
//	youtube_innertube.go  Innertube /player media info
//	invidious.go          Invidious /api/v1/videos media info
//	ytdlp.go              yt-dlp media info
package sources

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_ytapi/internal/engine"
	"github.com/samber/mo"
)

// SearchProvider returns ranked search items for a raw query.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]engine.SearchItem, error)
}

// PlaylistProvider parses a playlist given its canonical URL.
type PlaylistProvider interface {
	Playlist(ctx context.Context, playlistURL string) (engine.Playlist, error)
}

// MediaInfoProvider extracts flat metadata for a video given its canonical URL.
type MediaInfoProvider interface {
	MediaInfo(ctx context.Context, videoURL string) (engine.MediaInfo, error)
}

// NewSearchProvider picks the Data API when a key is configured, scraping otherwise.
func NewSearchProvider(cfg engine.Config) SearchProvider {
	if cfg.YouTubeAPIKey != "" {
		return NewDataAPISearch(cfg)
	}
	return NewScrapeSearch(cfg)
}

// NewMediaInfoProvider builds the media-info backend named by cfg.VideoInfoBackend.
func NewMediaInfoProvider(cfg engine.Config) (MediaInfoProvider, error) {
	switch cfg.VideoInfoBackend {
	case "", engine.BackendYtDlp:
		return NewYtDlp(cfg), nil
	case engine.BackendInnertube:
		return NewInnertube(cfg), nil
	case engine.BackendInvidious:
		if cfg.InvidiousURL == "" {
			return nil, fmt.Errorf("video info backend %q requires INVIDIOUS_URL", cfg.VideoInfoBackend)
		}
		return NewInvidious(cfg), nil
	}
	return nil, fmt.Errorf("unknown video info backend %q", cfg.VideoInfoBackend)
}

func positive(n int) mo.Option[int] {
	if n <= 0 {
		return mo.None[int]()
	}
	return mo.Some(n)
}
