package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"evodex/internal/config"
	"evodex/internal/scraper"
	"evodex/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger

	limitFlag int
)

var rootCmd = &cobra.Command{
	Use:   "scraper",
	Short: "Build the static evolution dex dataset",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		log, err = logger.New(cfg.Log.Mode, cfg.Log.Level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
	SilenceUsage: true,
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the family index and creature pages into families.json and pokemon.json",
	Long: `Fetch the evolution family index and every family member's page, writing
families.json and pokemon.json into the data directory.

Pages are served from the on-disk HTML cache when present, so an interrupted
run resumes without refetching.`,
	RunE: runScrape,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Apply curation exclusions and renames to pokemon.json",
	RunE:  runCleanup,
}

func init() {
	scrapeCmd.Flags().IntVar(&limitFlag, "limit", 0, "maximum families to scrape (default from config)")
	rootCmd.AddCommand(scrapeCmd, cleanupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sc := cfg.Scraper
	rules, err := scraper.LoadRules(sc.RulesPath)
	if err != nil {
		return err
	}
	cache, err := scraper.LoadCache(sc.CachePath)
	if err != nil {
		return err
	}

	limit := sc.Limit
	if limitFlag > 0 {
		limit = limitFlag
	}

	s := &scraper.Scraper{
		Fetcher:    scraper.NewFetcher(cache, sc.Timeout, sc.UserAgent),
		Cache:      cache,
		Rules:      rules,
		Log:        log.With("component", "scraper"),
		BaseURL:    sc.BaseURL,
		DataDir:    cfg.Data.Dir,
		Limit:      limit,
		FlushEvery: sc.FlushEvery,
	}

	res, err := s.Run(ctx)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}
	fmt.Printf("families: %d\npokemon:  %d\ncached:   %d\nfetched:  %d\n",
		res.Families, res.Pokemon, res.Cached, res.Fetched)
	return nil
}

func runCleanup(cmd *cobra.Command, args []string) error {
	rules, err := scraper.LoadRules(cfg.Scraper.RulesPath)
	if err != nil {
		return err
	}
	before, after, err := scraper.Cleanup(cfg.Data.Dir, rules)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	log.Info("cleanup finished", "before", before, "after", after, "dir", cfg.Data.Dir)
	return nil
}
