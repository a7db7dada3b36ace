package jellyfin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bassline/internal/config"
	"bassline/internal/logging"
)

// HTTPDoer describes the HTTP client used by the Jellyfin service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrDisabled indicates Jellyfin integration is not configured.
var ErrDisabled = errors.New("jellyfin integration is disabled")

// Client talks to one Jellyfin server.
type Client struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
	logger  *slog.Logger
}

// NewClient builds a client from configuration. It fails with ErrDisabled
// when the integration is off or missing credentials.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil || !cfg.Jellyfin.Enabled {
		return nil, ErrDisabled
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.Jellyfin.URL), "/")
	apiKey := strings.TrimSpace(cfg.Jellyfin.APIKey)
	if baseURL == "" || apiKey == "" {
		return nil, ErrDisabled
	}
	return NewClientWith(baseURL, apiKey, &http.Client{
		Timeout: time.Duration(cfg.Jellyfin.TimeoutSeconds) * time.Second,
	}, logger), nil
}

// NewClientWith constructs a client with an explicit HTTP doer.
func NewClientWith(baseURL, apiKey string, client HTTPDoer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
		logger:  logging.NewComponentLogger(logger, "jellyfin"),
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build jellyfin request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build jellyfin request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("X-Emby-Token", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call jellyfin: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("jellyfin returned %d for %s", resp.StatusCode, req.URL.Path)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode jellyfin response: %w", err)
	}
	return nil
}

// FirstUserID returns the id of the first server user, which owns created
// playlists.
func (c *Client) FirstUserID(ctx context.Context) (string, error) {
	var users []struct {
		ID string `json:"Id"`
	}
	if err := c.get(ctx, "/Users", nil, &users); err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "", errors.New("jellyfin has no users")
	}
	return users[0].ID, nil
}

type searchResult struct {
	Items []struct {
		ID          string `json:"Id"`
		Name        string `json:"Name"`
		AlbumArtist string `json:"AlbumArtist"`
	} `json:"Items"`
}

// SearchSong looks up an audio item by artist and title. Exact-ish matches
// are preferred; otherwise the first hit is returned. The boolean reports
// whether anything was found.
func (c *Client) SearchSong(ctx context.Context, userID, artist, title string) (string, bool, error) {
	query := url.Values{}
	query.Set("searchTerm", strings.TrimSpace(artist+" "+title))
	query.Set("IncludeItemTypes", "Audio")
	query.Set("Recursive", "true")
	query.Set("Limit", "5")

	var result searchResult
	if err := c.get(ctx, "/Users/"+url.PathEscape(userID)+"/Items", query, &result); err != nil {
		return "", false, err
	}

	artistNeedle := strings.ToLower(artist)
	titleNeedle := strings.ToLower(title)
	for _, item := range result.Items {
		if strings.Contains(strings.ToLower(item.AlbumArtist), artistNeedle) &&
			strings.Contains(strings.ToLower(item.Name), titleNeedle) {
			return item.ID, true, nil
		}
	}
	if len(result.Items) > 0 {
		return result.Items[0].ID, true, nil
	}
	return "", false, nil
}

// CreatePlaylist creates a playlist owned by userID from the given item ids
// and returns the playlist id.
func (c *Client) CreatePlaylist(ctx context.Context, userID, name string, itemIDs []string) (string, error) {
	if len(itemIDs) == 0 {
		return "", errors.New("playlist needs at least one item")
	}
	query := url.Values{}
	query.Set("Name", name)
	query.Set("Ids", strings.Join(itemIDs, ","))
	query.Set("userId", userID)

	var created struct {
		ID string `json:"Id"`
	}
	if err := c.post(ctx, "/Playlists", query, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", errors.New("jellyfin did not return a playlist id")
	}

	c.logger.Debug("created playlist",
		logging.String("playlist_id", created.ID),
		logging.Int("items", len(itemIDs)))
	return created.ID, nil
}
