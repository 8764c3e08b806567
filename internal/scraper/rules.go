package scraper

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"evodex/pkg/models"
)

// Rules is the hand-curated data that trims forms out of the dataset.
type Rules struct {
	// IgnoreWords drop a form at scrape time when its lowercased name
	// contains any of them.
	IgnoreWords []string `yaml:"ignoreWords"`
	// Exclusions drop exact names during cleanup.
	Exclusions []string `yaml:"exclusions"`
	// Renames map exact names to their canonical form during cleanup.
	Renames map[string]string `yaml:"renames"`
}

func LoadRules(path string) (*Rules, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return ParseRules(b)
}

func ParseRules(b []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return &r, nil
}

func (r *Rules) ShouldIgnore(name string) bool {
	if r == nil {
		return false
	}
	lower := strings.ToLower(name)
	for _, w := range r.IgnoreWords {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// Exclude reports whether cleanup drops name.
func (r *Rules) Exclude(name string) bool {
	if r == nil {
		return false
	}
	for _, x := range r.Exclusions {
		if x == name {
			return true
		}
	}
	return false
}

func (r *Rules) Rename(name string) string {
	if r == nil {
		return name
	}
	if to, ok := r.Renames[name]; ok {
		return to
	}
	return name
}

// Cleanup drops excluded entries and applies renames, keeping order.
func (r *Rules) Cleanup(mons []models.Mon) []models.Mon {
	out := make([]models.Mon, 0, len(mons))
	for _, m := range mons {
		if r.Exclude(m.Name) {
			continue
		}
		m.Name = r.Rename(m.Name)
		out = append(out, m)
	}
	return out
}
