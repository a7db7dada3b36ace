package jellyfin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"bassline/internal/testsupport"
)

// fakeDoer answers requests from a canned response table keyed by URL path
// and records every request it sees.
type fakeDoer struct {
	responses map[string]fakeResponse
	requests  []*http.Request
}

type fakeResponse struct {
	status int
	body   string
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	resp, ok := f.responses[req.URL.Path]
	if !ok {
		resp = fakeResponse{status: http.StatusNotFound, body: "{}"}
	}
	return &http.Response{
		StatusCode: resp.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(resp.body))),
	}, nil
}

func newTestClient(responses map[string]fakeResponse) (*Client, *fakeDoer) {
	doer := &fakeDoer{responses: responses}
	return NewClientWith("http://media.local:8096", "test-key", doer, nil), doer
}

func TestNewClientDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if _, err := NewClient(cfg, nil); !errors.Is(err, ErrDisabled) {
		t.Errorf("disabled config: err = %v, want ErrDisabled", err)
	}

	cfg.Jellyfin.Enabled = true
	if _, err := NewClient(cfg, nil); !errors.Is(err, ErrDisabled) {
		t.Errorf("missing credentials: err = %v, want ErrDisabled", err)
	}

	configured := testsupport.NewConfig(t, testsupport.WithJellyfin("http://media.local:8096", "k"))
	if _, err := NewClient(configured, nil); err != nil {
		t.Errorf("configured client: err = %v", err)
	}
}

func TestFirstUserID(t *testing.T) {
	client, doer := newTestClient(map[string]fakeResponse{
		"/Users": {status: http.StatusOK, body: `[{"Id": "user-1"}, {"Id": "user-2"}]`},
	})

	userID, err := client.FirstUserID(context.Background())
	if err != nil {
		t.Fatalf("FirstUserID failed: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q", userID)
	}
	if got := doer.requests[0].Header.Get("X-Emby-Token"); got != "test-key" {
		t.Errorf("token header = %q", got)
	}
}

func TestFirstUserIDNoUsers(t *testing.T) {
	client, _ := newTestClient(map[string]fakeResponse{
		"/Users": {status: http.StatusOK, body: `[]`},
	})
	if _, err := client.FirstUserID(context.Background()); err == nil {
		t.Error("empty user list should error")
	}
}

func TestSearchSongPrefersArtistTitleMatch(t *testing.T) {
	client, doer := newTestClient(map[string]fakeResponse{
		"/Users/user-1/Items": {status: http.StatusOK, body: `{
			"Items": [
				{"Id": "wrong", "Name": "Some Cover", "AlbumArtist": "Tribute Band"},
				{"Id": "right", "Name": "Hysteria", "AlbumArtist": "Muse"}
			]
		}`},
	})

	itemID, found, err := client.SearchSong(context.Background(), "user-1", "Muse", "Hysteria")
	if err != nil {
		t.Fatalf("SearchSong failed: %v", err)
	}
	if !found || itemID != "right" {
		t.Errorf("itemID = %q found = %v, want the artist+title match", itemID, found)
	}

	query := doer.requests[0].URL.Query()
	if query.Get("searchTerm") != "Muse Hysteria" {
		t.Errorf("searchTerm = %q", query.Get("searchTerm"))
	}
	if query.Get("IncludeItemTypes") != "Audio" {
		t.Errorf("IncludeItemTypes = %q", query.Get("IncludeItemTypes"))
	}
}

func TestSearchSongFallsBackToFirstHit(t *testing.T) {
	client, _ := newTestClient(map[string]fakeResponse{
		"/Users/user-1/Items": {status: http.StatusOK, body: `{
			"Items": [{"Id": "first", "Name": "Other", "AlbumArtist": "Other"}]
		}`},
	})
	itemID, found, err := client.SearchSong(context.Background(), "user-1", "Muse", "Hysteria")
	if err != nil {
		t.Fatalf("SearchSong failed: %v", err)
	}
	if !found || itemID != "first" {
		t.Errorf("itemID = %q found = %v", itemID, found)
	}
}

func TestSearchSongNoHits(t *testing.T) {
	client, _ := newTestClient(map[string]fakeResponse{
		"/Users/user-1/Items": {status: http.StatusOK, body: `{"Items": []}`},
	})
	_, found, err := client.SearchSong(context.Background(), "user-1", "Muse", "Hysteria")
	if err != nil {
		t.Fatalf("SearchSong failed: %v", err)
	}
	if found {
		t.Error("found = true with no items")
	}
}

func TestCreatePlaylist(t *testing.T) {
	client, doer := newTestClient(map[string]fakeResponse{
		"/Playlists": {status: http.StatusOK, body: `{"Id": "pl-9"}`},
	})

	playlistID, err := client.CreatePlaylist(context.Background(), "user-1", "Practice", []string{"a", "b"})
	if err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}
	if playlistID != "pl-9" {
		t.Errorf("playlistID = %q", playlistID)
	}

	req := doer.requests[0]
	if req.Method != http.MethodPost {
		t.Errorf("method = %s", req.Method)
	}
	query := req.URL.Query()
	if query.Get("Name") != "Practice" || query.Get("Ids") != "a,b" || query.Get("userId") != "user-1" {
		t.Errorf("query = %v", query)
	}
}

func TestCreatePlaylistRejectsEmpty(t *testing.T) {
	client, _ := newTestClient(nil)
	if _, err := client.CreatePlaylist(context.Background(), "user-1", "Practice", nil); err == nil {
		t.Error("empty playlist should error")
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	client, _ := newTestClient(map[string]fakeResponse{
		"/Users": {status: http.StatusInternalServerError, body: `{}`},
	})
	if _, err := client.FirstUserID(context.Background()); err == nil {
		t.Error("5xx response should error")
	}
}
