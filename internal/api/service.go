package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_ytapi/internal/engine"
	"github.com/anatolykoptev/go_ytapi/internal/engine/sources"
	"github.com/samber/mo"
)

// Service runs the validate → invoke → normalize → map-error pipeline for each operation.
// It is built once at startup and holds no request-scoped state.
type Service struct {
	search    sources.SearchProvider
	playlists sources.PlaylistProvider
	media     sources.MediaInfoProvider
	msgs      Messages
}

// NewService wires the three upstream providers.
func NewService(search sources.SearchProvider, playlists sources.PlaylistProvider, media sources.MediaInfoProvider, msgs Messages) *Service {
	return &Service{search: search, playlists: playlists, media: media, msgs: msgs}
}

// Messages returns the service's locale messages.
func (s *Service) Messages() Messages { return s.msgs }

// Search returns the video results for query. Errors are always *Error.
func (s *Service) Search(ctx context.Context, query string) ([]SearchResultItem, error) {
	engine.IncrSearchRequests()
	if query == "" {
		return nil, s.missing(EndpointSearch)
	}
	res := invoke(ctx, "search", func(ctx context.Context) ([]SearchResultItem, error) {
		items, err := s.search.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		return NormalizeSearch(items), nil
	})
	out, err := res.Get()
	if err != nil {
		return nil, s.failed(ctx, EndpointSearch, err, slog.String("q", query))
	}
	return out, nil
}

// VideoInfo returns normalized metadata for the video id.
func (s *Service) VideoInfo(ctx context.Context, id string) (VideoInfo, error) {
	engine.IncrVideoInfoRequests()
	if id == "" {
		return VideoInfo{}, s.missing(EndpointVideoInfo)
	}
	res := invoke(ctx, "video_info", func(ctx context.Context) (VideoInfo, error) {
		info, err := s.media.MediaInfo(ctx, engine.WatchURL(id))
		if err != nil {
			return VideoInfo{}, err
		}
		return NormalizeVideo(info, id), nil
	})
	out, err := res.Get()
	if err != nil {
		return VideoInfo{}, s.failed(ctx, EndpointVideoInfo, err, slog.String("id", id))
	}
	return out, nil
}

// PlaylistInfo returns normalized metadata for the playlist id.
func (s *Service) PlaylistInfo(ctx context.Context, id string) (PlaylistInfo, error) {
	engine.IncrPlaylistInfoRequests()
	if id == "" {
		return PlaylistInfo{}, s.missing(EndpointPlaylistInfo)
	}
	res := invoke(ctx, "playlist_info", func(ctx context.Context) (PlaylistInfo, error) {
		pl, err := s.playlists.Playlist(ctx, engine.PlaylistURL(id))
		if err != nil {
			return PlaylistInfo{}, err
		}
		return NormalizePlaylist(pl), nil
	})
	out, err := res.Get()
	if err != nil {
		return PlaylistInfo{}, s.failed(ctx, EndpointPlaylistInfo, err, slog.String("id", id))
	}
	return out, nil
}

func (s *Service) missing(ep Endpoint) *Error {
	engine.IncrMissingParameter()
	return &Error{Kind: MissingParameter, Message: s.msgs.Missing(ep)}
}

// failed logs the cause and returns the generic upstream error for ep.
func (s *Service) failed(ctx context.Context, ep Endpoint, cause error, attrs ...any) *Error {
	engine.IncrUpstreamFailures()
	args := append([]any{
		slog.String("endpoint", string(ep)),
		slog.String("request_id", RequestIDFrom(ctx)),
		slog.Any("error", cause),
	}, attrs...)
	slog.Error("upstream call failed", args...)
	return &Error{Kind: UpstreamFailure, Message: s.msgs.Failed(ep), Err: cause}
}

// invoke runs one upstream call plus normalization as a single fallible result.
// A panic anywhere inside fn becomes the error variant.
func invoke[T any](ctx context.Context, op string, fn func(context.Context) (T, error)) (res mo.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = mo.Err[T](fmt.Errorf("%s: panic: %v", op, r))
		}
	}()
	var out T
	err := engine.TrackOperation(ctx, op, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return mo.TupleToResult(out, err)
}
