package bandcamp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"redaccion/config"
	"redaccion/providers"
)

var (
	httpClient = &http.Client{Timeout: 30 * time.Second}

	// The search result page carries album URLs and art thumbnails; no API
	// exists, so the links are pulled straight out of the markup.
	albumLinkRegex = regexp.MustCompile(`href="(https://[a-z0-9\-]+\.bandcamp\.com/album/[^"?]+)`)
	artImageRegex  = regexp.MustCompile(`class="art"[^>]*>\s*<img src="([^"]+)"`)
)

// Fetcher is the fallback search source: it scrapes the Bandcamp search
// results page.
type Fetcher struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewFetcher creates a Bandcamp search fetcher.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{Config: cfg, Logger: logger}
}

// Name returns the source name.
func (f *Fetcher) Name() string {
	return "bandcamp"
}

// SearchDisc fetches the album search page for "artist title" and returns
// the first album hit.
func (f *Fetcher) SearchDisc(ctx context.Context, artist, title string) (*providers.Result, error) {
	query := strings.TrimSpace(artist + " " + title)
	searchURL := fmt.Sprintf("%s/search?q=%s&item_type=a", f.Config.BandcampBaseURL, url.QueryEscape(query))

	log := f.Logger.With(zap.String("artist", artist), zap.String("title", title))
	log.Debug("calling Bandcamp search", zap.String("url", searchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bandcamp search failed: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	link, image := ParsePage(string(body))
	if link == "" {
		log.Debug("no album hit on Bandcamp search page")
		return nil, nil
	}

	evidence, _ := json.Marshal(map[string]string{"source": "bandcamp", "link": link, "image": image})
	log.Info("found disc link on Bandcamp", zap.String("link", link))
	return &providers.Result{Link: link, Image: image, Raw: evidence}, nil
}

// ParsePage extracts the first album link and its art image from a search
// results page. Either return value may be empty.
func ParsePage(page string) (link, image string) {
	if m := albumLinkRegex.FindStringSubmatch(page); m != nil {
		link = m[1]
	}
	if m := artImageRegex.FindStringSubmatch(page); m != nil {
		image = m[1]
	}
	return link, image
}
