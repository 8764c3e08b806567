package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"evodex/internal/config"
	"evodex/internal/dataset"
	"evodex/internal/dex"
	"evodex/pkg/database"
	"evodex/pkg/logger"
)

func main() {
	var (
		dexOut     = flag.String("dex", "data/dex.csv", "output CSV path for the dex box layout")
		recordsOut = flag.String("records", "", "output CSV path for saved records (sqlite store only; empty skips)")
		boxSize    = flag.Int("box-size", dex.DefaultBoxSize, "entries per box")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ds, err := dataset.Load(cfg.Data.Dir)
	if err != nil {
		log.Fatal("dataset load failed", "dir", cfg.Data.Dir, "error", err)
	}

	n, err := exportDex(dex.New(ds.Families, ds.Pokemon), *dexOut, *boxSize)
	if err != nil {
		log.Fatal("export dex failed", "error", err)
	}
	log.Info("exported dex", "rows", n, "path", *dexOut)

	if *recordsOut == "" {
		return
	}
	if cfg.Store.Driver != config.DriverSQLite {
		log.Fatal("records export needs the sqlite store", "driver", cfg.Store.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(database.Config{Path: cfg.Store.SQLitePath})
	if err != nil {
		log.Fatal("open db failed", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("db migrate failed", "error", err)
	}
	rows, err := exportRecords(ctx, db, *recordsOut)
	if err != nil {
		log.Fatal("export records failed", "error", err)
	}
	log.Info("exported records", "rows", rows, "path", *recordsOut)
}

func exportDex(ix *dex.Index, outPath string, boxSize int) (int, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return dex.WriteCSV(f, ix, boxSize)
}

func exportRecords(ctx context.Context, db *sql.DB, outPath string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name_slug", "version", "caught_family_ids", "updated_at"}); err != nil {
		return 0, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT name_slug, version, caught_family_ids, updated_at
		FROM dex_caught
		ORDER BY name_slug
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var (
			name      string
			version   int
			caught    string
			updatedAt sql.NullString
		)
		if err := rows.Scan(&name, &version, &caught, &updatedAt); err != nil {
			return n, err
		}
		if err := w.Write([]string{name, strconv.Itoa(version), strings.TrimSpace(caught), updatedAt.String}); err != nil {
			return n, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, err
	}

	w.Flush()
	return n, w.Error()
}
