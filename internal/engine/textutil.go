package engine

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
	"github.com/samber/mo"
)

const (
	watchURLPrefix    = "https://www.youtube.com/watch?v="
	playlistURLPrefix = "https://www.youtube.com/playlist?list="
)

// WatchURL builds the canonical watch URL for a video id.
func WatchURL(id string) string {
	return watchURLPrefix + url.QueryEscape(id)
}

// PlaylistURL builds the canonical playlist URL for a playlist id.
func PlaylistURL(id string) string {
	return playlistURLPrefix + url.QueryEscape(id)
}

// ExtractVideoID returns the full v= parameter of a watch URL, or the path of a
// youtu.be short link. The id is never trimmed to a fixed length.
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if u.Host == "youtu.be" || u.Host == "www.youtu.be" {
		return strings.Trim(u.Path, "/")
	}
	return ""
}

// ExtractPlaylistID pulls the list= parameter from a playlist URL.
func ExtractPlaylistID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("list")
}

// ParseCount reads the digits out of a display count like "1,234 videos".
func ParseCount(s string) mo.Option[int] {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return mo.None[int]()
	}
	return mo.Some(n)
}

// ParseInt64 parses a decimal string such as Innertube's viewCount.
func ParseInt64(s string) mo.Option[int64] {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return mo.None[int64]()
	}
	return mo.Some(n)
}

// CompactDate turns "2009-10-24" or "2009-10-24T23:57:33-07:00" into "20091024".
func CompactDate(s string) mo.Option[string] {
	if len(s) < 10 || s[4] != '-' || s[7] != '-' {
		return mo.None[string]()
	}
	return mo.Some(s[0:4] + s[5:7] + s[8:10])
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips HTML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}
