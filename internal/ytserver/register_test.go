package ytserver

import (
	"context"
	"errors"
	"testing"

	"github.com/anatolykoptev/go_ytapi/internal/api"
	"github.com/anatolykoptev/go_ytapi/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearch struct{ items []engine.SearchItem }

func (s stubSearch) Search(context.Context, string) ([]engine.SearchItem, error) { return s.items, nil }

type stubPlaylists struct{}

func (stubPlaylists) Playlist(context.Context, string) (engine.Playlist, error) {
	return engine.Playlist{}, errors.New("private playlist")
}

type stubMedia struct{}

func (stubMedia) MediaInfo(_ context.Context, videoURL string) (engine.MediaInfo, error) {
	return engine.MediaInfo{ID: mo.Some(engine.ExtractVideoID(videoURL)), Title: mo.Some("Title")}, nil
}

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	svc := api.NewService(stubSearch{items: []engine.SearchItem{
		{Type: engine.ItemVideo, ID: mo.Some("a"), Title: mo.Some("T"), Thumbnails: []engine.Thumbnail{{URL: mo.Some("u1")}}},
	}}, stubPlaylists{}, stubMedia{}, api.NewMessages("en"))

	clientT, serverT := mcp.NewInMemoryTransports()
	_, err := NewServer(svc, "test").Connect(ctx, serverT, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func callText(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text, res.IsError
}

func TestRegisterTools_List(t *testing.T) {
	cs := connect(t)
	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"youtube_search", "youtube_video_info", "youtube_playlist_info"}, names)
}

func TestSearchTool(t *testing.T) {
	cs := connect(t)
	text, isErr := callText(t, cs, "youtube_search", map[string]any{"query": "go"})
	assert.False(t, isErr)
	assert.JSONEq(t, `[{"id":"a","title":"T","thumbnailUrl":"u1"}]`, text)

	text, isErr = callText(t, cs, "youtube_search", map[string]any{"query": ""})
	assert.True(t, isErr)
	assert.Equal(t, "search query is required", text)
}

func TestVideoInfoTool(t *testing.T) {
	cs := connect(t)
	text, isErr := callText(t, cs, "youtube_video_info", map[string]any{"id": "dQw4w9WgXcQ"})
	assert.False(t, isErr)
	assert.JSONEq(t, `{
		"id": "dQw4w9WgXcQ",
		"title": "Title",
		"description": null,
		"thumbnailUrl": null,
		"uploader": null,
		"duration": null,
		"viewCount": null,
		"uploadDate": null
	}`, text)
}

func TestPlaylistInfoTool_UpstreamFailure(t *testing.T) {
	cs := connect(t)
	text, isErr := callText(t, cs, "youtube_playlist_info", map[string]any{"id": "PLx"})
	assert.True(t, isErr)
	assert.Equal(t, "failed to fetch playlist info", text)
}
