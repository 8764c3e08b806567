package scraper

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Cache maps page URLs to raw bodies. On disk it is a JSON array of
// [url, body] pairs in insertion order.
type Cache struct {
	path string

	mu      sync.Mutex
	entries map[string]string
	order   []string
	dirty   bool
}

// LoadCache reads the cache at path. A missing file yields an empty cache.
func LoadCache(path string) (*Cache, error) {
	c := &Cache{path: path, entries: map[string]string{}}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var pairs [][2]string
	if err := json.Unmarshal(b, &pairs); err != nil {
		return nil, fmt.Errorf("decode cache %s: %w", path, err)
	}
	for _, p := range pairs {
		if _, ok := c.entries[p[0]]; !ok {
			c.order = append(c.order, p[0])
		}
		c.entries[p[0]] = p[1]
	}
	return c, nil
}

func (c *Cache) Get(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	body, ok := c.entries[url]
	return body, ok
}

func (c *Cache) Put(url, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[url]; !ok {
		c.order = append(c.order, url)
	}
	c.entries[url] = body
	c.dirty = true
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Flush writes the cache to disk if it changed since the last flush.
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	pairs := make([][2]string, 0, len(c.order))
	for _, url := range c.order {
		pairs = append(pairs, [2]string{url, c.entries[url]})
	}
	b, err := json.Marshal(pairs)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.path, b, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	c.dirty = false
	return nil
}
