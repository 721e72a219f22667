package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/anatolykoptev/go_ytapi/internal/engine"
	"github.com/samber/mo"
)

// CmdRunner runs an external command and returns its stdout.
type CmdRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec, folding stderr into the error.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return out, err
		}
		return out, fmt.Errorf("%w: %s", err, engine.TruncateRunes(msg, 300, "..."))
	}
	return out, nil
}

// YtDlp extracts media info by running yt-dlp without downloading anything.
type YtDlp struct {
	Path   string
	Format string
	Run    CmdRunner
}

// NewYtDlp builds a yt-dlp media-info provider from the engine config.
func NewYtDlp(cfg engine.Config) *YtDlp {
	return &YtDlp{
		Path:   cfg.YtDlpPath,
		Format: cfg.YtDlpFormat,
		Run:    ExecRunner,
	}
}

// Args returns the yt-dlp arguments for a single-video metadata dump.
func (y *YtDlp) Args(videoURL string) []string {
	format := y.Format
	if format == "" {
		format = engine.DefaultYtDlpFormat
	}
	return []string{
		"--dump-single-json",
		"--no-playlist",
		"--skip-download",
		"--flat-playlist",
		"--format", format,
		"--quiet",
		"--no-warnings",
		"--", videoURL,
	}
}

// MediaInfo runs yt-dlp and decodes its info dict.
func (y *YtDlp) MediaInfo(ctx context.Context, videoURL string) (engine.MediaInfo, error) {
	engine.IncrYtDlp()

	path := y.Path
	if path == "" {
		path = "yt-dlp"
	}
	run := y.Run
	if run == nil {
		run = ExecRunner
	}

	out, err := run(ctx, path, y.Args(videoURL)...)
	if err != nil {
		return engine.MediaInfo{}, fmt.Errorf("yt-dlp: %w", err)
	}
	return parseYtDlpInfo(out)
}

// ytDlpInfo is the subset of yt-dlp's info dict that is read. Any key may be
// missing or null.
type ytDlpInfo struct {
	ID          *string  `json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Uploader    *string  `json:"uploader"`
	Duration    *float64 `json:"duration"`
	ViewCount   *int64   `json:"view_count"`
	UploadDate  *string  `json:"upload_date"`
}

func (d ytDlpInfo) mediaInfo() engine.MediaInfo {
	return engine.MediaInfo{
		ID:          mo.PointerToOption(d.ID),
		Title:       mo.PointerToOption(d.Title),
		Description: mo.PointerToOption(d.Description),
		Thumbnail:   mo.PointerToOption(d.Thumbnail),
		Uploader:    mo.PointerToOption(d.Uploader),
		Duration:    mo.PointerToOption(d.Duration),
		ViewCount:   mo.PointerToOption(d.ViewCount),
		UploadDate:  mo.PointerToOption(d.UploadDate),
	}
}

// parseYtDlpInfo decodes the info dict. yt-dlp can print stray lines before
// the JSON, so the last line that decodes is used when the whole output does not.
func parseYtDlpInfo(out []byte) (engine.MediaInfo, error) {
	data := bytes.TrimSpace(out)
	if len(data) == 0 {
		return engine.MediaInfo{}, errors.New("yt-dlp: empty output")
	}
	var info ytDlpInfo
	err := json.Unmarshal(data, &info)
	if err == nil {
		return info.mediaInfo(), nil
	}
	lines := bytes.Split(data, []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var tmp ytDlpInfo
		if json.Unmarshal(line, &tmp) == nil {
			return tmp.mediaInfo(), nil
		}
	}
	return engine.MediaInfo{}, fmt.Errorf("yt-dlp: parse info JSON: %w", err)
}
