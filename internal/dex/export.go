package dex

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"region", "box", "familyID", "name", "nationalID", "slug", "bulbapediaUrl"}

// WriteCSV writes every entry, region by region in box layout. Box numbers
// are 1-based.
func WriteCSV(w io.Writer, ix *Index, boxSize int) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}

	n := 0
	for _, region := range ix.RegionNames() {
		for b, box := range ix.Boxes(region, boxSize) {
			for _, m := range box {
				if err := cw.Write([]string{
					region,
					strconv.Itoa(b + 1),
					m.FamilyID,
					m.Name,
					strconv.Itoa(m.NationalID),
					m.Slug,
					m.BulbapediaURL,
				}); err != nil {
					return n, err
				}
				n++
			}
		}
	}
	cw.Flush()
	return n, cw.Error()
}
