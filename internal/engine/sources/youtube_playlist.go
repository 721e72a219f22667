package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/anatolykoptev/go_ytapi/internal/engine"
)

// Playlist page scraping. Only the first page of items is read; YouTube
// serves the rest through continuations, which are not followed.

type ytPlaylistVideoRenderer struct {
	VideoID   string          `json:"videoId"`
	Title     ytText          `json:"title"`
	Thumbnail ytThumbnailList `json:"thumbnail"`
}

type ytPlaylistPage struct {
	Contents struct {
		TwoColumnBrowseResultsRenderer struct {
			Tabs []struct {
				TabRenderer struct {
					Content struct {
						SectionListRenderer struct {
							Contents []struct {
								ItemSectionRenderer *struct {
									Contents []struct {
										PlaylistVideoListRenderer *struct {
											PlaylistID string `json:"playlistId"`
											Contents   []struct {
												PlaylistVideoRenderer *ytPlaylistVideoRenderer `json:"playlistVideoRenderer"`
											} `json:"contents"`
										} `json:"playlistVideoListRenderer"`
									} `json:"contents"`
								} `json:"itemSectionRenderer"`
							} `json:"contents"`
						} `json:"sectionListRenderer"`
					} `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"twoColumnBrowseResultsRenderer"`
	} `json:"contents"`
	Header struct {
		PlaylistHeaderRenderer *struct {
			PlaylistID    string `json:"playlistId"`
			Title         ytText `json:"title"`
			NumVideosText ytText `json:"numVideosText"`
			OwnerText     ytText `json:"ownerText"`
		} `json:"playlistHeaderRenderer"`
		PageHeaderRenderer *struct {
			PageTitle string `json:"pageTitle"`
		} `json:"pageHeaderRenderer"`
	} `json:"header"`
	Metadata struct {
		PlaylistMetadataRenderer *struct {
			Title string `json:"title"`
		} `json:"playlistMetadataRenderer"`
	} `json:"metadata"`
	Sidebar struct {
		PlaylistSidebarRenderer *struct {
			Items []struct {
				PrimaryInfo *struct {
					Stats []ytText `json:"stats"`
				} `json:"playlistSidebarPrimaryInfoRenderer"`
				SecondaryInfo *struct {
					VideoOwner struct {
						VideoOwnerRenderer struct {
							Title ytText `json:"title"`
						} `json:"videoOwnerRenderer"`
					} `json:"videoOwner"`
				} `json:"playlistSidebarSecondaryInfoRenderer"`
			} `json:"items"`
		} `json:"playlistSidebarRenderer"`
	} `json:"sidebar"`
}

// PlaylistScraper parses playlist pages from youtube.com.
type PlaylistScraper struct {
	Client         *http.Client
	AcceptLanguage string
	HL, GL         string
}

// NewPlaylistScraper builds a playlist provider from the engine config.
func NewPlaylistScraper(cfg engine.Config) *PlaylistScraper {
	return &PlaylistScraper{
		Client:         cfg.Client(),
		AcceptLanguage: cfg.AcceptLanguage(),
		HL:             cfg.HL,
		GL:             cfg.GL,
	}
}

// Playlist fetches playlistURL and parses its ytInitialData.
func (p *PlaylistScraper) Playlist(ctx context.Context, playlistURL string) (engine.Playlist, error) {
	engine.IncrYouTubeScrape()

	if engine.ExtractPlaylistID(playlistURL) == "" {
		return engine.Playlist{}, fmt.Errorf("youtube playlist: no list id in %q", playlistURL)
	}
	u, err := url.Parse(playlistURL)
	if err != nil {
		return engine.Playlist{}, fmt.Errorf("playlist url: %w", err)
	}
	q := u.Query()
	if p.HL != "" {
		q.Set("hl", p.HL)
	}
	if p.GL != "" {
		q.Set("gl", p.GL)
	}
	u.RawQuery = q.Encode()

	body, err := engine.FetchPage(ctx, p.Client, u.String(), p.AcceptLanguage)
	if err != nil {
		return engine.Playlist{}, fmt.Errorf("youtube playlist page: %w", err)
	}
	data, err := engine.ExtractInitialData(body)
	if err != nil {
		return engine.Playlist{}, fmt.Errorf("youtube playlist page: %w", err)
	}
	return parsePlaylistInitialData(data)
}

func parsePlaylistInitialData(data []byte) (engine.Playlist, error) {
	var page ytPlaylistPage
	if err := json.Unmarshal(data, &page); err != nil {
		return engine.Playlist{}, fmt.Errorf("decode ytInitialData: %w", err)
	}

	var pl engine.Playlist
	found := false
	for _, tab := range page.Contents.TwoColumnBrowseResultsRenderer.Tabs {
		for _, section := range tab.TabRenderer.Content.SectionListRenderer.Contents {
			if section.ItemSectionRenderer == nil {
				continue
			}
			for _, c := range section.ItemSectionRenderer.Contents {
				list := c.PlaylistVideoListRenderer
				if list == nil {
					continue
				}
				found = true
				pl.ID = engine.Text(list.PlaylistID)
				for _, entry := range list.Contents {
					vr := entry.PlaylistVideoRenderer
					if vr == nil {
						continue
					}
					pl.Items = append(pl.Items, engine.PlaylistItem{
						ID:         engine.Text(vr.VideoID),
						Title:      engine.Text(vr.Title.String()),
						Thumbnails: toThumbnails(vr.Thumbnail.Thumbnails),
					})
				}
			}
		}
	}

	if h := page.Header.PlaylistHeaderRenderer; h != nil {
		found = true
		if h.PlaylistID != "" {
			pl.ID = engine.Text(h.PlaylistID)
		}
		pl.Title = engine.Text(h.Title.String())
		pl.Author = engine.Text(h.OwnerText.String())
		pl.VideoCount = engine.ParseCount(h.NumVideosText.String())
	}
	if pl.Title.IsAbsent() {
		if m := page.Metadata.PlaylistMetadataRenderer; m != nil {
			found = true
			pl.Title = engine.Text(m.Title)
		} else if ph := page.Header.PageHeaderRenderer; ph != nil {
			pl.Title = engine.Text(ph.PageTitle)
		}
	}
	if sb := page.Sidebar.PlaylistSidebarRenderer; sb != nil {
		for _, it := range sb.Items {
			if it.PrimaryInfo != nil && pl.VideoCount.IsAbsent() && len(it.PrimaryInfo.Stats) > 0 {
				pl.VideoCount = engine.ParseCount(it.PrimaryInfo.Stats[0].String())
			}
			if it.SecondaryInfo != nil && pl.Author.IsAbsent() {
				pl.Author = engine.Text(it.SecondaryInfo.VideoOwner.VideoOwnerRenderer.Title.String())
			}
		}
	}

	if !found {
		// An unknown or private playlist renders an alert page without any of the above.
		return engine.Playlist{}, fmt.Errorf("playlist not found in ytInitialData")
	}
	return pl, nil
}
