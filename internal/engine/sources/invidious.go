package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/anatolykoptev/go_ytapi/internal/engine"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type invidiousVideo struct {
	VideoID         *string          `json:"videoId"`
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	DescriptionHTML *string          `json:"descriptionHtml"`
	Author          *string          `json:"author"`
	LengthSeconds   *int64           `json:"lengthSeconds"`
	ViewCount       *int64           `json:"viewCount"`
	Published       *int64           `json:"published"`
	VideoThumbnails []invidiousThumb `json:"videoThumbnails"`
}

type invidiousThumb struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Invidious extracts media info from an Invidious instance's /api/v1/videos.
type Invidious struct {
	Client         *http.Client
	BaseURL        string
	AcceptLanguage string
}

// NewInvidious builds an Invidious media-info provider from the engine config.
func NewInvidious(cfg engine.Config) *Invidious {
	return &Invidious{
		Client:         cfg.Client(),
		BaseURL:        strings.TrimRight(cfg.InvidiousURL, "/"),
		AcceptLanguage: cfg.AcceptLanguage(),
	}
}

// MediaInfo fetches /api/v1/videos/<id> for the video in videoURL.
func (iv *Invidious) MediaInfo(ctx context.Context, videoURL string) (engine.MediaInfo, error) {
	engine.IncrInvidious()

	videoID := engine.ExtractVideoID(videoURL)
	if videoID == "" {
		return engine.MediaInfo{}, fmt.Errorf("invidious: no video id in %q", videoURL)
	}
	apiURL := iv.BaseURL + "/api/v1/videos/" + url.PathEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return engine.MediaInfo{}, err
	}
	req.Header.Set("Accept", "application/json")
	body, err := engine.Fetch(iv.Client, req, iv.AcceptLanguage)
	if err != nil {
		return engine.MediaInfo{}, fmt.Errorf("invidious: %w", err)
	}
	return parseInvidiousVideo(body, iv.BaseURL)
}

func parseInvidiousVideo(body []byte, baseURL string) (engine.MediaInfo, error) {
	var v invidiousVideo
	if err := json.Unmarshal(body, &v); err != nil {
		return engine.MediaInfo{}, fmt.Errorf("decode invidious video: %w", err)
	}

	info := engine.MediaInfo{
		ID:          mo.PointerToOption(v.VideoID),
		Title:       mo.PointerToOption(v.Title),
		Description: mo.PointerToOption(v.Description),
		Uploader:    mo.PointerToOption(v.Author),
		ViewCount:   mo.PointerToOption(v.ViewCount),
	}
	if info.Description.IsAbsent() && v.DescriptionHTML != nil {
		info.Description = mo.Some(descriptionText(*v.DescriptionHTML))
	}
	if v.LengthSeconds != nil {
		info.Duration = mo.Some(float64(*v.LengthSeconds))
	}
	if v.Published != nil && *v.Published > 0 {
		info.UploadDate = mo.Some(time.Unix(*v.Published, 0).UTC().Format("20060102"))
	}
	if len(v.VideoThumbnails) > 0 {
		best := lo.MaxBy(v.VideoThumbnails, func(a, b invidiousThumb) bool {
			return a.Width > b.Width
		})
		thumb := best.URL
		if strings.HasPrefix(thumb, "/") && !strings.HasPrefix(thumb, "//") {
			thumb = baseURL + thumb
		}
		info.Thumbnail = engine.Text(absoluteURL(thumb))
	}
	return info, nil
}

// descriptionText converts Invidious descriptionHtml to plain markdown text.
func descriptionText(descHTML string) string {
	md, err := htmltomarkdown.ConvertString(descHTML)
	if err != nil {
		return engine.CleanHTML(descHTML)
	}
	return strings.TrimSpace(md)
}
