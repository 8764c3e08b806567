package dex

import (
	"fmt"
	"strings"

	"evodex/pkg/models"
)

// DefaultBoxSize matches the number of slots in one storage box.
const DefaultBoxSize = 30

// FallbackRegionCode is returned for regions without a dedicated code.
const FallbackRegionCode = "O"

var regionCodes = map[string]string{
	"kanto":  "K",
	"johto":  "J",
	"hoenn":  "H",
	"sinnoh": "S",
	"unova":  "U",
	"kalos":  "KS",
	"alola":  "A",
	"galar":  "G",
	"other":  FallbackRegionCode,
}

// Index answers region and search queries over an immutable dataset.
// All methods are safe for concurrent use.
type Index struct {
	familiesByName map[string]models.Family
	byRegion       map[string][]models.Mon
	regions        []string
	all            []models.Mon
}

// New indexes the given collections. The slices are copied.
func New(families []models.Family, mons []models.Mon) *Index {
	ix := &Index{
		familiesByName: make(map[string]models.Family, len(families)),
		byRegion:       make(map[string][]models.Mon),
		all:            append([]models.Mon(nil), mons...),
	}

	for _, f := range families {
		ix.familiesByName[f.FamilyName] = f
	}

	for _, m := range ix.all {
		if _, ok := ix.byRegion[m.RegionName]; !ok {
			ix.regions = append(ix.regions, m.RegionName)
		}
		ix.byRegion[m.RegionName] = append(ix.byRegion[m.RegionName], m)
	}
	return ix
}

// Len is the number of entries in the dataset.
func (ix *Index) Len() int { return len(ix.all) }

// RegionNames returns every region in first-seen order.
func (ix *Index) RegionNames() []string {
	return append([]string(nil), ix.regions...)
}

// ResolveRegion finds the dataset spelling of a region name, ignoring case.
func (ix *Index) ResolveRegion(name string) (string, bool) {
	for _, r := range ix.regions {
		if strings.EqualFold(r, name) {
			return r, true
		}
	}
	return "", false
}

// InRegion returns the region's entries in dataset order with slug and family
// ID computed. The family ID ordinal is the entry's 1-based position here, so
// reordering the source data renumbers the whole region.
func (ix *Index) InRegion(region string) []models.DexMon {
	return ix.applyFamilyIDs(ix.byRegion[region])
}

// Boxes splits a region listing into consecutive boxes of size entries.
func (ix *Index) Boxes(region string, size int) [][]models.DexMon {
	if size <= 0 {
		size = DefaultBoxSize
	}
	mons := ix.InRegion(region)
	boxes := make([][]models.DexMon, 0, (len(mons)+size-1)/size)
	for start := 0; start < len(mons); start += size {
		end := min(start+size, len(mons))
		boxes = append(boxes, mons[start:end])
	}
	return boxes
}

// Search returns the slug of every entry whose name contains term, ignoring
// case, in dataset order. Callers filter short terms; an empty term matches
// everything.
func (ix *Index) Search(term string) []string {
	needle := strings.ToLower(term)
	slugs := make([]string, 0)
	for _, m := range ix.all {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			slugs = append(slugs, Slugify(m.Name))
		}
	}
	return slugs
}

// Family looks up a family by its exact name.
func (ix *Index) Family(name string) (models.Family, bool) {
	f, ok := ix.familiesByName[name]
	return f, ok
}

// RegionCode returns the short code for a region, ignoring case.
func (ix *Index) RegionCode(region string) string {
	return RegionCode(region)
}

// RegionCode returns the short code for a region, ignoring case. Unknown
// regions get FallbackRegionCode.
func RegionCode(region string) string {
	if code, ok := regionCodes[strings.ToLower(region)]; ok {
		return code
	}
	return FallbackRegionCode
}

func (ix *Index) applyFamilyIDs(mons []models.Mon) []models.DexMon {
	out := make([]models.DexMon, 0, len(mons))
	for i, m := range mons {
		if strings.HasPrefix(m.ImageURL, "//") {
			m.ImageURL = "https:" + m.ImageURL
		}
		out = append(out, models.DexMon{
			Mon:      m,
			FamilyID: fmt.Sprintf("%s %03d", RegionCode(m.RegionName), i+1),
			Slug:     Slugify(m.Name),
		})
	}
	return out
}
