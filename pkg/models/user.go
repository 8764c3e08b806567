package models

// User is the caught-tracking record a visitor keeps locally and can back up
// remotely under a chosen name.
type User struct {
	NameSlug        string   `json:"nameSlug"`
	Version         int      `json:"version"`
	CaughtFamilyIDs []string `json:"caughtFamilyIDs"`
}

// CurrentUserVersion is the only record schema version written so far.
const CurrentUserVersion = 1

// UniqueIDs returns ids with duplicates and empty values removed, keeping the
// first occurrence of each. The result is never nil.
func UniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
