// Package ytserver exposes the YouTube lookups as MCP tools.
package ytserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/anatolykoptev/go_ytapi/internal/api"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the youtube_search tool input.
type SearchInput struct {
	Query string `json:"query" jsonschema:"search keywords"`
}

// VideoInfoInput is the youtube_video_info tool input.
type VideoInfoInput struct {
	ID string `json:"id" jsonschema:"YouTube video id, e.g. dQw4w9WgXcQ"`
}

// PlaylistInfoInput is the youtube_playlist_info tool input.
type PlaylistInfoInput struct {
	ID string `json:"id" jsonschema:"YouTube playlist id, e.g. PL..."`
}

// NewServer returns an MCP server with all tools registered against svc.
func NewServer(svc *api.Service, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_ytapi",
		Version: version,
	}, nil)
	RegisterTools(server, svc)
	return server
}

// Handler serves the MCP streamable HTTP transport.
func Handler(svc *api.Service, version string) http.Handler {
	server := NewServer(svc, version)
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

// RegisterTools registers youtube_search, youtube_video_info and youtube_playlist_info.
func RegisterTools(server *mcp.Server, svc *api.Service) {
	registerSearch(server, svc)
	registerVideoInfo(server, svc)
	registerPlaylistInfo(server, svc)
}

func registerSearch(server *mcp.Server, svc *api.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_search",
		Description: "Search YouTube videos by keyword. Returns a JSON array of {id, title, thumbnailUrl} in result order; channels and playlists are omitted.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, any, error) {
		out, err := svc.Search(ctx, input.Query)
		return jsonResult(out, err)
	})
}

func registerVideoInfo(server *mcp.Server, svc *api.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_video_info",
		Description: "Get metadata for one YouTube video: title, description, thumbnail, uploader, duration (seconds), view count and upload date (YYYYMMDD). Missing fields are null.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoInfoInput) (*mcp.CallToolResult, any, error) {
		out, err := svc.VideoInfo(ctx, input.ID)
		return jsonResult(out, err)
	})
}

func registerPlaylistInfo(server *mcp.Server, svc *api.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_playlist_info",
		Description: "Get a YouTube playlist: title, author, video count and its videos as {id, title, thumbnailUrl}.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input PlaylistInfoInput) (*mcp.CallToolResult, any, error) {
		out, err := svc.PlaylistInfo(ctx, input.ID)
		return jsonResult(out, err)
	})
}

// jsonResult renders v as a single text block. Service errors become tool
// errors carrying only the client-facing message.
func jsonResult(v any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: errorText(err)}},
		}, nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
