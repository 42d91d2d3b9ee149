package spotifysearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"redaccion/config"
	"redaccion/providers"
)

// Fetcher searches the Spotify Web API for disc links using the
// client-credentials flow. The oauth2 token source caches the access token
// in memory with its expiry and refreshes it lazily, so no token handling
// leaks into the callers.
type Fetcher struct {
	Config *config.Config
	Logger *zap.Logger

	client *http.Client
	base   string
}

// NewFetcher creates a Spotify search fetcher.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	cc := &clientcredentials.Config{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		TokenURL:     cfg.SpotifyTokenURL,
	}
	client := cc.Client(context.Background())
	client.Timeout = 30 * time.Second
	return &Fetcher{
		Config: cfg,
		Logger: logger,
		client: client,
		base:   cfg.SpotifyAPIBaseURL,
	}
}

// Name returns the source name.
func (f *Fetcher) Name() string {
	return "spotify"
}

// SearchDisc queries the album search endpoint and returns the best match:
// the first album whose title matches exactly (case-insensitive), or the
// first hit when none does.
func (f *Fetcher) SearchDisc(ctx context.Context, artist, title string) (*providers.Result, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("album:%s artist:%s", title, artist))
	params.Set("type", "album")
	params.Set("limit", "5")
	searchURL := f.base + "/search?" + params.Encode()

	log := f.Logger.With(zap.String("artist", artist), zap.String("title", title))
	log.Debug("calling Spotify album search", zap.String("url", searchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify search failed: status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode spotify search response: %w", err)
	}
	if len(sr.Albums.Items) == 0 {
		log.Debug("no albums in Spotify search response")
		return nil, nil
	}

	chosenRaw := sr.Albums.Items[0]
	var chosen album
	if err := json.Unmarshal(chosenRaw, &chosen); err != nil {
		return nil, fmt.Errorf("decode spotify album: %w", err)
	}
	for _, raw := range sr.Albums.Items {
		var a album
		if err := json.Unmarshal(raw, &a); err != nil {
			continue
		}
		if strings.EqualFold(a.Name, title) {
			chosen, chosenRaw = a, raw
			break
		}
	}

	if chosen.ExternalURLs.Spotify == "" {
		return nil, nil
	}
	result := &providers.Result{
		Link: chosen.ExternalURLs.Spotify,
		Raw:  chosenRaw,
	}
	if len(chosen.Images) > 0 {
		result.Image = chosen.Images[0].URL
	}
	log.Info("found disc link on Spotify", zap.String("link", result.Link))
	return result, nil
}
