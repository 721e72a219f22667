package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Handler exposes the Service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler returns HTTP handlers backed by svc.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Search handles GET /api/search?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	out, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	h.respond(w, EndpointSearch, out, err)
}

// VideoInfo handles GET /api/video_info?id=.
func (h *Handler) VideoInfo(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	out, err := h.svc.VideoInfo(r.Context(), r.URL.Query().Get("id"))
	h.respond(w, EndpointVideoInfo, out, err)
}

// PlaylistInfo handles GET /api/playlist_info?id=.
func (h *Handler) PlaylistInfo(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	out, err := h.svc.PlaylistInfo(r.Context(), r.URL.Query().Get("id"))
	h.respond(w, EndpointPlaylistInfo, out, err)
}

func (h *Handler) respond(w http.ResponseWriter, ep Endpoint, out any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, out)
		return
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = &Error{Kind: UpstreamFailure, Message: h.svc.Messages().Failed(ep), Err: err}
	}
	writeJSON(w, apiErr.Kind.Status(), ErrorBody{Error: apiErr.Message})
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeJSON(w, http.StatusMethodNotAllowed, ErrorBody{Error: http.StatusText(http.StatusMethodNotAllowed)})
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response failed", slog.Any("error", err))
	}
}
