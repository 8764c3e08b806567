package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"evodex/pkg/models"
)

const (
	FamiliesFile = "families.json"
	PokemonFile  = "pokemon.json"
)

// Dataset is the scraped content the dex serves. It is read once at startup
// and never mutated afterwards.
type Dataset struct {
	Families []models.Family
	Pokemon  []models.Mon
}

// Load reads both collections from dir.
func Load(dir string) (*Dataset, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads both collections from the root of fsys. A missing or malformed
// file is an error; callers treat it as fatal.
func LoadFS(fsys fs.FS) (*Dataset, error) {
	var ds Dataset
	if err := readJSON(fsys, FamiliesFile, &ds.Families); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, PokemonFile, &ds.Pokemon); err != nil {
		return nil, err
	}
	return &ds, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("dataset: %s not found: %w", name, err)
		}
		return fmt.Errorf("dataset: read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("dataset: decode %s: %w", name, err)
	}
	return nil
}

// WriteFamilies writes families.json into dir, creating it when needed.
func WriteFamilies(dir string, families []models.Family) error {
	return writeJSON(filepath.Join(dir, FamiliesFile), nonNil(families))
}

// WritePokemon writes pokemon.json into dir, creating it when needed.
func WritePokemon(dir string, mons []models.Mon) error {
	return writeJSON(filepath.Join(dir, PokemonFile), nonNil(mons))
}

// Write writes both collections.
func Write(dir string, ds *Dataset) error {
	if err := WriteFamilies(dir, ds.Families); err != nil {
		return err
	}
	return WritePokemon(dir, ds.Pokemon)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("dataset: mkdir: %w", err)
	}
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("dataset: marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("dataset: write %s: %w", path, err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
