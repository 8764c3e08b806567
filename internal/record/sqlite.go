package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"evodex/pkg/models"
)

// SQLiteStore keeps records in the dex_caught table.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT name_slug, version, caught_family_ids
		FROM dex_caught
		WHERE name_slug = ?
	`, name)

	var (
		u          models.User
		caughtJSON string
	)
	if err := row.Scan(&u.NameSlug, &u.Version, &caughtJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	if err := json.Unmarshal([]byte(caughtJSON), &u.CaughtFamilyIDs); err != nil {
		return nil, fmt.Errorf("decode caught ids for %s: %w", name, err)
	}
	if u.CaughtFamilyIDs == nil {
		u.CaughtFamilyIDs = []string{}
	}
	return &u, nil
}

func (s *SQLiteStore) Put(ctx context.Context, u models.User) error {
	caughtJSON, err := json.Marshal(models.UniqueIDs(u.CaughtFamilyIDs))
	if err != nil {
		return fmt.Errorf("marshal caught ids for %s: %w", u.NameSlug, err)
	}

	if _, err := s.DB.ExecContext(ctx, `
		INSERT INTO dex_caught (name_slug, version, caught_family_ids, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name_slug) DO UPDATE SET
		  version = excluded.version,
		  caught_family_ids = excluded.caught_family_ids,
		  updated_at = excluded.updated_at
	`, u.NameSlug, u.Version, string(caughtJSON)); err != nil {
		return fmt.Errorf("upsert record %s: %w", u.NameSlug, err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}
