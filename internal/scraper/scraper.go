package scraper

import (
	"context"
	"fmt"

	"evodex/internal/dataset"
	"evodex/pkg/logger"
	"evodex/pkg/models"
)

const (
	DefaultLimit      = 10000
	DefaultFlushEvery = 5
)

// Scraper builds the static dataset from the wiki.
type Scraper struct {
	Fetcher *Fetcher
	Cache   *Cache
	Rules   *Rules
	Log     *logger.Logger

	BaseURL    string
	DataDir    string
	Limit      int
	FlushEvery int
}

// Result summarises a run.
type Result struct {
	Families int
	Pokemon  int
	Cached   int
	Fetched  int
}

// Run scrapes the family index, writes families.json, then scrapes up to
// Limit families and writes pokemon.json. The cache is flushed every
// FlushEvery families and once more when Run returns.
func (s *Scraper) Run(ctx context.Context) (res Result, err error) {
	log := s.Log
	if log == nil {
		log = logger.Nop()
	}
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	flushEvery := s.FlushEvery
	if flushEvery <= 0 {
		flushEvery = DefaultFlushEvery
	}

	defer func() {
		if ferr := s.Cache.Flush(); ferr != nil {
			log.Warn("flush cache failed", "error", ferr)
			if err == nil {
				err = ferr
			}
		}
	}()

	log.Info("scrape starting", "cache_entries", s.Cache.Len())

	doc, cached, err := s.Fetcher.Fetch(ctx, s.BaseURL+FamilyIndexPath)
	if err != nil {
		return res, fmt.Errorf("fetch family index: %w", err)
	}
	s.count(&res, cached)

	families := ParseFamilyIndex(doc, s.BaseURL)
	res.Families = len(families)
	log.Info("found families", "count", len(families), "cached", cached)

	if err := dataset.WriteFamilies(s.DataDir, families); err != nil {
		return res, err
	}

	mons := []models.Mon{}
	for i, family := range families {
		if i >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if (i+1)%flushEvery == 0 {
			if err := s.Cache.Flush(); err != nil {
				log.Warn("flush cache failed", "error", err)
			}
		}

		found, err := s.scrapeFamily(ctx, &res, family)
		if err != nil {
			return res, err
		}
		mons = append(mons, found...)
	}

	res.Pokemon = len(mons)
	if err := dataset.WritePokemon(s.DataDir, mons); err != nil {
		return res, err
	}
	log.Info("scrape finished",
		"families", res.Families, "pokemon", res.Pokemon,
		"cached", res.Cached, "fetched", res.Fetched)
	return res, nil
}

func (s *Scraper) scrapeFamily(ctx context.Context, res *Result, family models.Family) ([]models.Mon, error) {
	log := s.Log
	if log == nil {
		log = logger.Nop()
	}

	var mons []models.Mon
	for _, url := range family.BulbapediaURLs {
		doc, cached, err := s.Fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("scrape family %s: %w", family.FamilyName, err)
		}
		s.count(res, cached)

		found, err := ParseFamilyPage(doc, url, family, s.Rules)
		if err != nil {
			log.Warn("skipping page", "family", family.FamilyName, "url", url, "error", err)
			continue
		}
		for _, m := range found {
			log.Debug("found form", "national_id", m.NationalID, "name", m.Name, "cached", cached)
		}
		mons = append(mons, found...)
	}
	return mons, nil
}

func (s *Scraper) count(res *Result, cached bool) {
	if cached {
		res.Cached++
	} else {
		res.Fetched++
	}
}

// Cleanup rewrites pokemon.json in dir with the curation rules applied.
func Cleanup(dir string, rules *Rules) (before, after int, err error) {
	ds, err := dataset.Load(dir)
	if err != nil {
		return 0, 0, err
	}
	cleaned := rules.Cleanup(ds.Pokemon)
	if err := dataset.WritePokemon(dir, cleaned); err != nil {
		return 0, 0, err
	}
	return len(ds.Pokemon), len(cleaned), nil
}
