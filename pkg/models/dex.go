package models

// Family is one evolution line as scraped from the family index page.
type Family struct {
	Color          string   `json:"color"`
	FamilyName     string   `json:"familyName"`
	RegionName     string   `json:"regionName"`
	BulbapediaURLs []string `json:"bulbapediaUrls"`
}

// Mon is a single displayable entry. Regional variants share a NationalID.
type Mon struct {
	BulbapediaURL string `json:"bulbapediaUrl"`
	Name          string `json:"name"`
	NationalID    int    `json:"nationalID"`
	RegionName    string `json:"regionName"`
	FamilyName    string `json:"familyName"`
	Color         string `json:"color"`
	ImageURL      string `json:"imageUrl"`
}

// DexMon is a Mon with the fields derived from its position in a region listing.
type DexMon struct {
	Mon
	FamilyID string `json:"familyID"` // e.g. "K 001"
	Slug     string `json:"slug"`     // scroll/search anchor
}
