package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anatolykoptev/go_ytapi/internal/engine"
)

// YouTube search: ytInitialData scraping by default, Data API v3 when a key is configured.

const (
	ytResultsURL  = "https://www.youtube.com/results"
	ytDataAPIBase = "https://www.googleapis.com/youtube/v3"
)

// --- ytInitialData scraping types ---

type ytText struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

// String returns simpleText or the concatenated runs.
func (t ytText) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	s := ""
	for _, r := range t.Runs {
		s += r.Text
	}
	return s
}

type ytThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ytThumbnailList struct {
	Thumbnails []ytThumbnail `json:"thumbnails"`
}

type ytVideoRenderer struct {
	VideoID   string          `json:"videoId"`
	Title     ytText          `json:"title"`
	Thumbnail ytThumbnailList `json:"thumbnail"`
}

type ytPlaylistRenderer struct {
	PlaylistID string            `json:"playlistId"`
	Title      ytText            `json:"title"`
	Thumbnails []ytThumbnailList `json:"thumbnails"`
}

type ytChannelRenderer struct {
	ChannelID string          `json:"channelId"`
	Title     ytText          `json:"title"`
	Thumbnail ytThumbnailList `json:"thumbnail"`
}

type ytSearchEntry struct {
	VideoRenderer    *ytVideoRenderer    `json:"videoRenderer"`
	PlaylistRenderer *ytPlaylistRenderer `json:"playlistRenderer"`
	ChannelRenderer  *ytChannelRenderer  `json:"channelRenderer"`
}

type ytSearchPage struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer *struct {
							Contents []ytSearchEntry `json:"contents"`
						} `json:"itemSectionRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

// ScrapeSearch searches by parsing ytInitialData from the results page.
type ScrapeSearch struct {
	Client         *http.Client
	BaseURL        string // defaults to the youtube.com results page
	AcceptLanguage string
	HL, GL         string
}

// NewScrapeSearch builds a scraping search provider from the engine config.
func NewScrapeSearch(cfg engine.Config) *ScrapeSearch {
	return &ScrapeSearch{
		Client:         cfg.Client(),
		AcceptLanguage: cfg.AcceptLanguage(),
		HL:             cfg.HL,
		GL:             cfg.GL,
	}
}

// Search returns the first page of results in ranked order.
func (s *ScrapeSearch) Search(ctx context.Context, query string) ([]engine.SearchItem, error) {
	engine.IncrYouTubeScrape()

	base := s.BaseURL
	if base == "" {
		base = ytResultsURL
	}
	params := url.Values{}
	params.Set("search_query", query)
	if s.HL != "" {
		params.Set("hl", s.HL)
	}
	if s.GL != "" {
		params.Set("gl", s.GL)
	}

	body, err := engine.FetchPage(ctx, s.Client, base+"?"+params.Encode(), s.AcceptLanguage)
	if err != nil {
		return nil, fmt.Errorf("youtube search page: %w", err)
	}
	data, err := engine.ExtractInitialData(body)
	if err != nil {
		return nil, fmt.Errorf("youtube search page: %w", err)
	}
	return parseSearchInitialData(data)
}

// parseSearchInitialData maps renderer entries to search items, keeping page order.
// Entries of other kinds (shelves, ads, continuations) are skipped.
func parseSearchInitialData(data []byte) ([]engine.SearchItem, error) {
	var page ytSearchPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode ytInitialData: %w", err)
	}

	items := []engine.SearchItem{}
	for _, section := range page.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents {
		if section.ItemSectionRenderer == nil {
			continue
		}
		for _, entry := range section.ItemSectionRenderer.Contents {
			switch {
			case entry.VideoRenderer != nil:
				vr := entry.VideoRenderer
				items = append(items, engine.SearchItem{
					Type:       engine.ItemVideo,
					ID:         engine.Text(vr.VideoID),
					Title:      engine.Text(vr.Title.String()),
					Thumbnails: toThumbnails(vr.Thumbnail.Thumbnails),
				})
			case entry.PlaylistRenderer != nil:
				pr := entry.PlaylistRenderer
				var thumbs []ytThumbnail
				if len(pr.Thumbnails) > 0 {
					thumbs = pr.Thumbnails[0].Thumbnails
				}
				items = append(items, engine.SearchItem{
					Type:       engine.ItemPlaylist,
					ID:         engine.Text(pr.PlaylistID),
					Title:      engine.Text(pr.Title.String()),
					Thumbnails: toThumbnails(thumbs),
				})
			case entry.ChannelRenderer != nil:
				cr := entry.ChannelRenderer
				items = append(items, engine.SearchItem{
					Type:       engine.ItemChannel,
					ID:         engine.Text(cr.ChannelID),
					Title:      engine.Text(cr.Title.String()),
					Thumbnails: toThumbnails(cr.Thumbnail.Thumbnails),
				})
			}
		}
	}
	return items, nil
}

// toThumbnails converts scraped thumbnails; an empty list stays nil (absent).
func toThumbnails(in []ytThumbnail) []engine.Thumbnail {
	if len(in) == 0 {
		return nil
	}
	out := make([]engine.Thumbnail, 0, len(in))
	for _, t := range in {
		out = append(out, engine.Thumbnail{
			URL:    engine.Text(absoluteURL(t.URL)),
			Width:  positive(t.Width),
			Height: positive(t.Height),
		})
	}
	return out
}

// absoluteURL fixes protocol-relative thumbnail URLs ("//yt3.ggpht.com/...").
func absoluteURL(u string) string {
	if len(u) > 2 && u[0] == '/' && u[1] == '/' {
		return "https:" + u
	}
	return u
}

// --- YouTube Data API v3 types ---

type ytDataSearchResp struct {
	Items []ytDataItem `json:"items"`
}

type ytDataItem struct {
	ID      ytDataItemID      `json:"id"`
	Snippet ytDataItemSnippet `json:"snippet"`
}

type ytDataItemID struct {
	Kind       string `json:"kind"`
	VideoID    string `json:"videoId"`
	PlaylistID string `json:"playlistId"`
	ChannelID  string `json:"channelId"`
}

type ytDataItemSnippet struct {
	Title      string                 `json:"title"`
	Thumbnails map[string]ytDataThumb `json:"thumbnails"`
}

type ytDataThumb struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ytDataThumbOrder lists Data API thumbnail keys from lowest to highest resolution.
var ytDataThumbOrder = []string{"default", "medium", "high", "standard", "maxres"}

// DataAPISearch searches via YouTube Data API v3 search.list.
type DataAPISearch struct {
	Client  *http.Client
	BaseURL string // defaults to the googleapis v3 base
	APIKey  string
	Limit   int
	HL      string
	GL      string
}

// NewDataAPISearch builds a Data API search provider from the engine config.
func NewDataAPISearch(cfg engine.Config) *DataAPISearch {
	return &DataAPISearch{
		Client: cfg.Client(),
		APIKey: cfg.YouTubeAPIKey,
		Limit:  cfg.SearchLimit,
		HL:     cfg.HL,
		GL:     cfg.GL,
	}
}

// Search runs a single search.list call.
func (s *DataAPISearch) Search(ctx context.Context, query string) ([]engine.SearchItem, error) {
	engine.IncrYouTubeDataAPI()

	limit := s.Limit
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("key", s.APIKey)
	if s.HL != "" {
		params.Set("relevanceLanguage", s.HL)
	}
	if s.GL != "" {
		params.Set("regionCode", s.GL)
	}

	base := s.BaseURL
	if base == "" {
		base = ytDataAPIBase
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	body, err := engine.Fetch(s.Client, req, "")
	if err != nil {
		return nil, fmt.Errorf("youtube data API: %w", err)
	}

	var result ytDataSearchResp
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode youtube data API: %w", err)
	}

	items := make([]engine.SearchItem, 0, len(result.Items))
	for _, it := range result.Items {
		item := engine.SearchItem{Title: engine.Text(it.Snippet.Title)}
		switch it.ID.Kind {
		case "youtube#video":
			item.Type, item.ID = engine.ItemVideo, engine.Text(it.ID.VideoID)
		case "youtube#playlist":
			item.Type, item.ID = engine.ItemPlaylist, engine.Text(it.ID.PlaylistID)
		case "youtube#channel":
			item.Type, item.ID = engine.ItemChannel, engine.Text(it.ID.ChannelID)
		default:
			item.Type = it.ID.Kind
		}
		for _, key := range ytDataThumbOrder {
			t, ok := it.Snippet.Thumbnails[key]
			if !ok {
				continue
			}
			item.Thumbnails = append(item.Thumbnails, engine.Thumbnail{
				URL:    engine.Text(t.URL),
				Width:  positive(t.Width),
				Height: positive(t.Height),
			})
		}
		items = append(items, item)
	}
	return items, nil
}
