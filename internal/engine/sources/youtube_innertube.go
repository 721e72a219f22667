package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anatolykoptev/go_ytapi/internal/engine"
	"github.com/samber/mo"
)

// YouTube Innertube /player: media info without yt-dlp.

const (
	ytInnertubeURL = "https://www.youtube.com/youtubei/v1/player"
	ytWebVersion   = "2.20250222.10.00"
)

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	Hl            string `json:"hl,omitempty"`
	Gl            string `json:"gl,omitempty"`
}

type innertubePlayerResp struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails *struct {
		VideoID          string          `json:"videoId"`
		Title            string          `json:"title"`
		LengthSeconds    string          `json:"lengthSeconds"`
		ShortDescription *string         `json:"shortDescription"`
		Thumbnail        ytThumbnailList `json:"thumbnail"`
		ViewCount        string          `json:"viewCount"`
		Author           string          `json:"author"`
	} `json:"videoDetails"`
	Microformat *struct {
		PlayerMicroformatRenderer struct {
			UploadDate  string `json:"uploadDate"`
			PublishDate string `json:"publishDate"`
		} `json:"playerMicroformatRenderer"`
	} `json:"microformat"`
}

// Innertube extracts media info from the WEB client /player endpoint.
type Innertube struct {
	Client         *http.Client
	Endpoint       string // defaults to the youtubei/v1/player URL
	AcceptLanguage string
	HL, GL         string
}

// NewInnertube builds an Innertube media-info provider from the engine config.
func NewInnertube(cfg engine.Config) *Innertube {
	return &Innertube{
		Client:         cfg.Client(),
		AcceptLanguage: cfg.AcceptLanguage(),
		HL:             cfg.HL,
		GL:             cfg.GL,
	}
}

// MediaInfo posts a /player request for the video in videoURL.
func (it *Innertube) MediaInfo(ctx context.Context, videoURL string) (engine.MediaInfo, error) {
	engine.IncrInnertube()

	videoID := engine.ExtractVideoID(videoURL)
	if videoID == "" {
		return engine.MediaInfo{}, fmt.Errorf("innertube: no video id in %q", videoURL)
	}
	payload, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{Client: innertubeClient{
			ClientName:    "WEB",
			ClientVersion: ytWebVersion,
			Hl:            it.HL,
			Gl:            it.GL,
		}},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return engine.MediaInfo{}, err
	}

	endpoint := it.Endpoint
	if endpoint == "" {
		endpoint = ytInnertubeURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?prettyPrint=false", bytes.NewReader(payload))
	if err != nil {
		return engine.MediaInfo{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("X-Youtube-Client-Name", "1")
	req.Header.Set("X-Youtube-Client-Version", ytWebVersion)
	req.Header.Set("Origin", "https://www.youtube.com")
	req.Header.Set("Referer", "https://www.youtube.com/")

	body, err := engine.Fetch(it.Client, req, it.AcceptLanguage)
	if err != nil {
		return engine.MediaInfo{}, fmt.Errorf("innertube player: %w", err)
	}
	return parseInnertubePlayer(body)
}

func parseInnertubePlayer(body []byte) (engine.MediaInfo, error) {
	var resp innertubePlayerResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return engine.MediaInfo{}, fmt.Errorf("decode innertube player: %w", err)
	}
	vd := resp.VideoDetails
	if vd == nil {
		reason := "no videoDetails"
		if ps := resp.PlayabilityStatus; ps != nil {
			reason = ps.Status + ": " + ps.Reason
		}
		return engine.MediaInfo{}, fmt.Errorf("innertube player: %s", reason)
	}

	info := engine.MediaInfo{
		ID:          engine.Text(vd.VideoID),
		Title:       engine.Text(vd.Title),
		Description: mo.PointerToOption(vd.ShortDescription),
		Uploader:    engine.Text(vd.Author),
		ViewCount:   engine.ParseInt64(vd.ViewCount),
	}
	if n := len(vd.Thumbnail.Thumbnails); n > 0 {
		info.Thumbnail = engine.Text(vd.Thumbnail.Thumbnails[n-1].URL)
	}
	if secs, err := strconv.ParseFloat(vd.LengthSeconds, 64); err == nil {
		info.Duration = mo.Some(secs)
	}
	if mf := resp.Microformat; mf != nil {
		date := mf.PlayerMicroformatRenderer.UploadDate
		if date == "" {
			date = mf.PlayerMicroformatRenderer.PublishDate
		}
		info.UploadDate = engine.CompactDate(date)
	}
	return info, nil
}
