package api

import (
	"fmt"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kind classifies the two ways a request can fail.
type Kind int

const (
	MissingParameter Kind = iota + 1
	UpstreamFailure
)

func (k Kind) String() string {
	switch k {
	case MissingParameter:
		return "missing_parameter"
	case UpstreamFailure:
		return "upstream_failure"
	}
	return "unknown"
}

// Status returns the HTTP status for the kind.
func (k Kind) Status() int {
	if k == MissingParameter {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Error is the only error that crosses the handler boundary.
// Message is client-facing; Err is the cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Endpoint names one of the three operations.
type Endpoint string

const (
	EndpointSearch       Endpoint = "search"
	EndpointVideoInfo    Endpoint = "video_info"
	EndpointPlaylistInfo Endpoint = "playlist_info"
)

// Message catalog keys; the English text doubles as the key.
const (
	msgSearchMissing   = "search query is required"
	msgSearchFailed    = "failed to fetch search results"
	msgVideoMissing    = "video id is required"
	msgVideoFailed     = "failed to fetch video info"
	msgPlaylistMissing = "playlist id is required"
	msgPlaylistFailed  = "failed to fetch playlist info"
)

var catalog = map[language.Tag]map[string]string{
	language.Japanese: {
		msgSearchMissing:   "検索クエリが必要です",
		msgSearchFailed:    "検索結果の取得に失敗しました。",
		msgVideoMissing:    "動画IDが必要です",
		msgVideoFailed:     "動画情報の取得に失敗しました。",
		msgPlaylistMissing: "プレイリストIDが必要です",
		msgPlaylistFailed:  "プレイリスト情報の取得に失敗しました。",
	},
	language.English: {
		msgSearchMissing:   msgSearchMissing,
		msgSearchFailed:    msgSearchFailed,
		msgVideoMissing:    msgVideoMissing,
		msgVideoFailed:     msgVideoFailed,
		msgPlaylistMissing: msgPlaylistMissing,
		msgPlaylistFailed:  msgPlaylistFailed,
	},
}

var supported = []language.Tag{language.Japanese, language.English}

func init() {
	for tag, msgs := range catalog {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("message catalog %s %q: %v", tag, key, err))
			}
		}
	}
}

// Messages renders the fixed error messages in one locale.
type Messages struct {
	tag     language.Tag
	printer *message.Printer
}

// NewMessages returns messages for locale (a BCP 47 tag such as "ja" or "en-US").
// Unknown or unsupported locales fall back to Japanese.
func NewMessages(locale string) Messages {
	tag := language.Japanese
	if parsed, err := language.Parse(locale); err == nil {
		matcher := language.NewMatcher(supported)
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return Messages{tag: tag, printer: message.NewPrinter(tag)}
}

// Tag returns the resolved locale.
func (m Messages) Tag() language.Tag { return m.tag }

// Missing returns the message for an absent required parameter.
func (m Messages) Missing(ep Endpoint) string {
	switch ep {
	case EndpointSearch:
		return m.printer.Sprintf(msgSearchMissing)
	case EndpointVideoInfo:
		return m.printer.Sprintf(msgVideoMissing)
	default:
		return m.printer.Sprintf(msgPlaylistMissing)
	}
}

// Failed returns the generic message for an upstream failure.
func (m Messages) Failed(ep Endpoint) string {
	switch ep {
	case EndpointSearch:
		return m.printer.Sprintf(msgSearchFailed)
	case EndpointVideoInfo:
		return m.printer.Sprintf(msgVideoFailed)
	default:
		return m.printer.Sprintf(msgPlaylistFailed)
	}
}
