package api

import (
	"github.com/anatolykoptev/go_ytapi/internal/engine"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// SearchResultItem is one video in a search response.
type SearchResultItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// VideoInfo is the video_info response. Every field but ID serializes as null when absent.
type VideoInfo struct {
	ID           string             `json:"id"`
	Title        mo.Option[string]  `json:"title"`
	Description  mo.Option[string]  `json:"description"`
	ThumbnailURL mo.Option[string]  `json:"thumbnailUrl"`
	Uploader     mo.Option[string]  `json:"uploader"`
	Duration     mo.Option[float64] `json:"duration"`
	ViewCount    mo.Option[int64]   `json:"viewCount"`
	UploadDate   mo.Option[string]  `json:"uploadDate"`
}

// PlaylistVideoItem is one video of a playlist_info response.
type PlaylistVideoItem struct {
	ID           mo.Option[string] `json:"id"`
	Title        mo.Option[string] `json:"title"`
	ThumbnailURL mo.Option[string] `json:"thumbnailUrl"`
}

// PlaylistInfo is the playlist_info response.
type PlaylistInfo struct {
	ID         mo.Option[string]   `json:"id"`
	Title      mo.Option[string]   `json:"title"`
	Author     mo.Option[string]   `json:"author"`
	VideoCount mo.Option[int]      `json:"videoCount"`
	Videos     []PlaylistVideoItem `json:"videos"`
}

// NormalizeSearch keeps video items that have an id, a title and a first
// thumbnail URL, in upstream order. The result is never nil.
func NormalizeSearch(items []engine.SearchItem) []SearchResultItem {
	out := lo.FilterMap(items, func(item engine.SearchItem, _ int) (SearchResultItem, bool) {
		if item.Type != engine.ItemVideo {
			return SearchResultItem{}, false
		}
		id, title := item.ID.OrEmpty(), item.Title.OrEmpty()
		thumb := firstThumbnail(item.Thumbnails).OrEmpty()
		if id == "" || title == "" || thumb == "" {
			return SearchResultItem{}, false
		}
		return SearchResultItem{ID: id, Title: title, ThumbnailURL: thumb}, true
	})
	if out == nil {
		out = []SearchResultItem{}
	}
	return out
}

// NormalizeVideo maps media info field by field. requestedID stands in for a missing upstream id.
func NormalizeVideo(info engine.MediaInfo, requestedID string) VideoInfo {
	id := info.ID.OrEmpty()
	if id == "" {
		id = requestedID
	}
	return VideoInfo{
		ID:           id,
		Title:        info.Title,
		Description:  info.Description,
		ThumbnailURL: info.Thumbnail,
		Uploader:     info.Uploader,
		Duration:     info.Duration,
		ViewCount:    info.ViewCount,
		UploadDate:   info.UploadDate,
	}
}

// NormalizePlaylist maps videos 1:1; each takes the last (highest resolution) thumbnail.
func NormalizePlaylist(pl engine.Playlist) PlaylistInfo {
	videos := lo.Map(pl.Items, func(item engine.PlaylistItem, _ int) PlaylistVideoItem {
		return PlaylistVideoItem{
			ID:           item.ID,
			Title:        item.Title,
			ThumbnailURL: lastThumbnail(item.Thumbnails),
		}
	})
	if videos == nil {
		videos = []PlaylistVideoItem{}
	}
	return PlaylistInfo{
		ID:         pl.ID,
		Title:      pl.Title,
		Author:     pl.Author,
		VideoCount: pl.VideoCount,
		Videos:     videos,
	}
}

func firstThumbnail(thumbs []engine.Thumbnail) mo.Option[string] {
	if len(thumbs) == 0 {
		return mo.None[string]()
	}
	return thumbs[0].URL
}

func lastThumbnail(thumbs []engine.Thumbnail) mo.Option[string] {
	if len(thumbs) == 0 {
		return mo.None[string]()
	}
	return thumbs[len(thumbs)-1].URL
}
