package sources

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anatolykoptev/go_ytapi/internal/engine"
)

const sampleInnertubePlayer = `{
	"playabilityStatus": {"status": "OK"},
	"videoDetails": {
		"videoId": "dQw4w9WgXcQ",
		"title": "Never Gonna Give You Up",
		"lengthSeconds": "212",
		"shortDescription": "The official video",
		"thumbnail": {"thumbnails": [
			{"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg", "width": 120},
			{"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", "width": 1920}
		]},
		"viewCount": "1500000000",
		"author": "Rick Astley"
	},
	"microformat": {"playerMicroformatRenderer": {"publishDate": "2009-10-24T23:57:33-07:00", "uploadDate": "2009-10-24T23:57:33-07:00"}}
}`

func TestParseInnertubePlayer(t *testing.T) {
	info, err := parseInnertubePlayer([]byte(sampleInnertubePlayer))
	if err != nil {
		t.Fatalf("parseInnertubePlayer() error = %v", err)
	}
	if info.ID.OrEmpty() != "dQw4w9WgXcQ" || info.Title.OrEmpty() != "Never Gonna Give You Up" {
		t.Errorf("info = %+v", info)
	}
	if info.Description.OrEmpty() != "The official video" || info.Uploader.OrEmpty() != "Rick Astley" {
		t.Errorf("description/uploader = %q/%q", info.Description.OrEmpty(), info.Uploader.OrEmpty())
	}
	if info.Thumbnail.OrEmpty() != "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" {
		t.Errorf("Thumbnail = %q", info.Thumbnail.OrEmpty())
	}
	if d, _ := info.Duration.Get(); d != 212 {
		t.Errorf("Duration = %v", d)
	}
	if v, _ := info.ViewCount.Get(); v != 1500000000 {
		t.Errorf("ViewCount = %d", v)
	}
	if info.UploadDate.OrEmpty() != "20091024" {
		t.Errorf("UploadDate = %q", info.UploadDate.OrEmpty())
	}
}

func TestParseInnertubePlayer_Unplayable(t *testing.T) {
	_, err := parseInnertubePlayer([]byte(`{"playabilityStatus": {"status": "ERROR", "reason": "Video unavailable"}}`))
	if err == nil {
		t.Fatal("expected error without videoDetails")
	}
	if got := err.Error(); got != "innertube player: ERROR: Video unavailable" {
		t.Errorf("error = %q", got)
	}
}

func TestParseInnertubePlayer_MissingFields(t *testing.T) {
	info, err := parseInnertubePlayer([]byte(`{"videoDetails": {"videoId": "x"}}`))
	if err != nil {
		t.Fatalf("parseInnertubePlayer() error = %v", err)
	}
	if info.Description.IsPresent() || info.Thumbnail.IsPresent() || info.Duration.IsPresent() ||
		info.ViewCount.IsPresent() || info.UploadDate.IsPresent() {
		t.Errorf("expected absent fields, got %+v", info)
	}
}

func TestInnertube_MediaInfo(t *testing.T) {
	var got innertubeReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Query().Get("prettyPrint") != "false" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(sampleInnertubePlayer))
	}))
	defer srv.Close()

	it := &Innertube{Client: srv.Client(), Endpoint: srv.URL, HL: "ja", GL: "JP"}
	info, err := it.MediaInfo(context.Background(), engine.WatchURL("dQw4w9WgXcQ"))
	if err != nil {
		t.Fatalf("MediaInfo() error = %v", err)
	}
	if got.VideoID != "dQw4w9WgXcQ" || got.Context.Client.ClientName != "WEB" || got.Context.Client.Hl != "ja" {
		t.Errorf("request = %+v", got)
	}
	if info.Title.OrEmpty() == "" {
		t.Error("empty title")
	}
}

func TestInnertube_NoVideoID(t *testing.T) {
	it := &Innertube{}
	if _, err := it.MediaInfo(context.Background(), "https://example.com/"); err == nil {
		t.Error("expected error for URL without video id")
	}
}
