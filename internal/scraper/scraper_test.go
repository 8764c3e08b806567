package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evodex/internal/dataset"
)

func newWiki(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	pages := map[string]string{
		"/wiki/List_of_Pokémon_by_evolution_family": indexHTML,
		"/wiki/Bulbasaur_(Pokémon)":                 monPage(1, "Bulbasaur", "Bulbasaur"),
		"/wiki/Ivysaur_(Pokémon)":                   monPage(2, "Ivysaur", "Ivysaur", "Mega Ivysaur"),
		"/wiki/Chikorita_(Pokémon)":                 monPage(152, "Chikorita", "Chikorita"),
	}
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestScraper(t *testing.T, baseURL, dir string) *Scraper {
	t.Helper()
	cache, err := LoadCache(filepath.Join(dir, "cache", "html-cache.json"))
	require.NoError(t, err)
	return &Scraper{
		Fetcher:    NewFetcher(cache, 5*time.Second, "evodex-test"),
		Cache:      cache,
		Rules:      &Rules{IgnoreWords: []string{"mega "}},
		BaseURL:    baseURL,
		DataDir:    dir,
		FlushEvery: 2,
	}
}

func TestScraperRunUsesCacheOnSecondRun(t *testing.T) {
	srv, hits := newWiki(t)
	dir := t.TempDir()

	res, err := newTestScraper(t, srv.URL, dir).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Families: 2, Pokemon: 3, Fetched: 4}, res)

	ds, err := dataset.Load(dir)
	require.NoError(t, err)
	require.Len(t, ds.Pokemon, 3)
	assert.Equal(t, []string{"Bulbasaur", "Ivysaur", "Chikorita"},
		[]string{ds.Pokemon[0].Name, ds.Pokemon[1].Name, ds.Pokemon[2].Name})
	assert.Equal(t, "Johto", ds.Pokemon[2].RegionName)
	assert.Equal(t, 152, ds.Pokemon[2].NationalID)

	before := hits.Load()
	res, err = newTestScraper(t, srv.URL, dir).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Cached)
	assert.Zero(t, res.Fetched)
	assert.Equal(t, before, hits.Load())
}

func TestScraperRunRespectsLimit(t *testing.T) {
	srv, _ := newWiki(t)
	dir := t.TempDir()

	s := newTestScraper(t, srv.URL, dir)
	s.Limit = 1
	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Families)
	assert.Equal(t, 2, res.Pokemon)
}

func TestScraperRunFailsOnMissingIndex(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestScraper(t, srv.URL, t.TempDir()).Run(context.Background())
	assert.Error(t, err)
}

func TestCleanup(t *testing.T) {
	srv, _ := newWiki(t)
	dir := t.TempDir()
	_, err := newTestScraper(t, srv.URL, dir).Run(context.Background())
	require.NoError(t, err)

	before, after, err := Cleanup(dir, &Rules{
		Exclusions: []string{"Ivysaur"},
		Renames:    map[string]string{"Chikorita": "Leaf Chikorita"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, before)
	assert.Equal(t, 2, after)

	ds, err := dataset.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Leaf Chikorita", ds.Pokemon[1].Name)
}
