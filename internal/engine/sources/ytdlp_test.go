package sources

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_ytapi/internal/engine"
)

const sampleYtDlpInfo = `{"id": "dQw4w9WgXcQ", "title": "Never Gonna Give You Up", "description": null, "thumbnail": "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", "uploader": "Rick Astley", "duration": 212.0, "view_count": 1500000000, "upload_date": "20091025", "formats": []}`

func TestYtDlp_Args(t *testing.T) {
	y := &YtDlp{}
	args := y.Args("https://www.youtube.com/watch?v=x")

	for _, flag := range []string{"--dump-single-json", "--no-playlist", "--skip-download"} {
		if !slices.Contains(args, flag) {
			t.Errorf("args missing %s: %v", flag, args)
		}
	}
	i := slices.Index(args, "--format")
	if i < 0 || args[i+1] != engine.DefaultYtDlpFormat {
		t.Errorf("format not set to default: %v", args)
	}
	if args[len(args)-2] != "--" || args[len(args)-1] != "https://www.youtube.com/watch?v=x" {
		t.Errorf("URL must follow --: %v", args)
	}
}

func TestYtDlp_MediaInfo(t *testing.T) {
	var gotName string
	var gotArgs []string
	y := &YtDlp{
		Path: "/opt/yt-dlp",
		Run: func(_ context.Context, name string, args ...string) ([]byte, error) {
			gotName, gotArgs = name, args
			return []byte(sampleYtDlpInfo), nil
		},
	}
	info, err := y.MediaInfo(context.Background(), engine.WatchURL("dQw4w9WgXcQ"))
	if err != nil {
		t.Fatalf("MediaInfo() error = %v", err)
	}
	if gotName != "/opt/yt-dlp" || gotArgs[len(gotArgs)-1] != engine.WatchURL("dQw4w9WgXcQ") {
		t.Errorf("ran %s %v", gotName, gotArgs)
	}
	if info.Title.OrEmpty() != "Never Gonna Give You Up" || info.UploadDate.OrEmpty() != "20091025" {
		t.Errorf("info = %+v", info)
	}
	if info.Description.IsPresent() {
		t.Error("null description should be absent")
	}
	if v, _ := info.ViewCount.Get(); v != 1500000000 {
		t.Errorf("ViewCount = %d", v)
	}
}

func TestYtDlp_RunError(t *testing.T) {
	y := &YtDlp{Run: func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1: ERROR: Video unavailable")
	}}
	_, err := y.MediaInfo(context.Background(), engine.WatchURL("x"))
	if err == nil || !strings.Contains(err.Error(), "Video unavailable") {
		t.Errorf("error = %v", err)
	}
}

func TestParseYtDlpInfo(t *testing.T) {
	info, err := parseYtDlpInfo([]byte("WARNING: something\n" + sampleYtDlpInfo + "\n"))
	if err != nil {
		t.Fatalf("parseYtDlpInfo() error = %v", err)
	}
	if info.ID.OrEmpty() != "dQw4w9WgXcQ" {
		t.Errorf("ID = %q", info.ID.OrEmpty())
	}

	for _, bad := range []string{"", "   \n", "not json"} {
		if _, err := parseYtDlpInfo([]byte(bad)); err == nil {
			t.Errorf("parseYtDlpInfo(%q) expected error", bad)
		}
	}
}

func TestNewMediaInfoProvider(t *testing.T) {
	tests := []struct {
		backend   string
		invidious string
		want      string
		wantErr   bool
	}{
		{"", "", "*sources.YtDlp", false},
		{engine.BackendYtDlp, "", "*sources.YtDlp", false},
		{engine.BackendInnertube, "", "*sources.Innertube", false},
		{engine.BackendInvidious, "https://inv.example", "*sources.Invidious", false},
		{engine.BackendInvidious, "", "", true},
		{"bogus", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			p, err := NewMediaInfoProvider(engine.Config{VideoInfoBackend: tt.backend, InvidiousURL: tt.invidious})
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %T", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewMediaInfoProvider() error = %v", err)
			}
			var got string
			switch p.(type) {
			case *YtDlp:
				got = "*sources.YtDlp"
			case *Innertube:
				got = "*sources.Innertube"
			case *Invidious:
				got = "*sources.Invidious"
			}
			if got != tt.want {
				t.Errorf("provider = %s, want %s", got, tt.want)
			}
		})
	}
}
