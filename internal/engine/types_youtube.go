package engine

import "github.com/samber/mo"

// Upstream records returned by providers. Every field a provider may fail to
// supply is a mo.Option so an absent value stays distinguishable from a zero one.

// Search item types.
const (
	ItemVideo    = "video"
	ItemPlaylist = "playlist"
	ItemChannel  = "channel"
)

// Thumbnail is one entry of an upstream thumbnail list.
type Thumbnail struct {
	URL    mo.Option[string] `json:"url"`
	Width  mo.Option[int]    `json:"width"`
	Height mo.Option[int]    `json:"height"`
}

// SearchItem is a ranked search result of any type.
// A nil Thumbnails slice means the upstream omitted the list.
type SearchItem struct {
	Type       string            `json:"type"`
	ID         mo.Option[string] `json:"id"`
	Title      mo.Option[string] `json:"title"`
	Thumbnails []Thumbnail       `json:"thumbnails"`
}

// PlaylistItem is one video of a playlist, thumbnails in ascending resolution.
type PlaylistItem struct {
	ID         mo.Option[string] `json:"id"`
	Title      mo.Option[string] `json:"title"`
	Thumbnails []Thumbnail       `json:"thumbnails"`
}

// Playlist is a playlist's metadata plus its first page of items.
type Playlist struct {
	ID         mo.Option[string] `json:"id"`
	Title      mo.Option[string] `json:"title"`
	Author     mo.Option[string] `json:"author"`
	VideoCount mo.Option[int]    `json:"video_count"`
	Items      []PlaylistItem    `json:"items"`
}

// MediaInfo is the flat metadata object of a single video.
// JSON names follow yt-dlp's info dict.
type MediaInfo struct {
	ID          mo.Option[string]  `json:"id"`
	Title       mo.Option[string]  `json:"title"`
	Description mo.Option[string]  `json:"description"`
	Thumbnail   mo.Option[string]  `json:"thumbnail"`
	Uploader    mo.Option[string]  `json:"uploader"`
	Duration    mo.Option[float64] `json:"duration"`
	ViewCount   mo.Option[int64]   `json:"view_count"`
	UploadDate  mo.Option[string]  `json:"upload_date"`
}

// Text wraps a scraped string, treating "" as absent.
func Text(s string) mo.Option[string] {
	return mo.EmptyableToOption(s)
}
