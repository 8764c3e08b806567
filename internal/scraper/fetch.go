package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Fetcher retrieves pages, preferring the cache over the network.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	Cache     *Cache
}

func NewFetcher(cache *Cache, timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
		Cache:     cache,
	}
}

// Fetch returns the parsed page and whether it came from the cache.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*html.Node, bool, error) {
	if body, ok := f.Cache.Get(url); ok {
		doc, err := html.Parse(strings.NewReader(body))
		if err != nil {
			return nil, true, fmt.Errorf("parse cached %s: %w", url, err)
		}
		return doc, true, nil
	}

	body, err := f.get(ctx, url)
	if err != nil {
		return nil, false, err
	}
	f.Cache.Put(url, body)

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, false, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(b), nil
}
