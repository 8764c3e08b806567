package scraper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"evodex/pkg/models"
)

const dexNumberTitle = "List of Pokémon by National Pokédex number"

var ErrNoDexNumber = errors.New("national dex number not found")

// ParseFamilyPage extracts every form shown in a creature page's infobox.
// The second element titled with the national dex list carries the number
// (the first when only one exists); its enclosing table is the infobox.
// Forms whose name matches rules' ignore words are skipped.
func ParseFamilyPage(doc *html.Node, url string, family models.Family, rules *Rules) ([]models.Mon, error) {
	numbers := findAll(doc, func(n *html.Node) bool { return getAttr(n, "title") == dexNumberTitle })
	if len(numbers) == 0 {
		return nil, fmt.Errorf("%s: %w", url, ErrNoDexNumber)
	}
	numberEl := numbers[0]
	if len(numbers) > 1 {
		numberEl = numbers[1]
	}
	nationalID := leadingInt(strings.ReplaceAll(normalizeName(textContent(numberEl)), "#", ""))

	panel := closest(numberEl, "table")
	if panel == nil {
		return nil, fmt.Errorf("%s: infobox table not found", url)
	}

	baseName := normalizeName(textContent(findFirst(panel, func(n *html.Node) bool {
		return n.Data == "b" && hasAncestorChain(n, "big", "big")
	})))

	mons := []models.Mon{}
	for _, img := range findAll(panel, isInfoboxImage) {
		name := normalizeName(getAttr(img, "alt"))
		if rules.ShouldIgnore(name) {
			continue
		}
		if !strings.Contains(name, baseName) {
			name = fmt.Sprintf("%s (%s)", baseName, name)
		}
		mons = append(mons, models.Mon{
			BulbapediaURL: url,
			Name:          name,
			NationalID:    nationalID,
			RegionName:    family.RegionName,
			FamilyName:    family.FamilyName,
			Color:         family.Color,
			ImageURL:      getAttr(img, "src"),
		})
	}
	return mons, nil
}

func isInfoboxImage(n *html.Node) bool {
	if n.Data != "img" {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && hasClass(p, "image") {
			return true
		}
	}
	return false
}

// leadingInt parses the leading decimal digits of s, or 0 when none.
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}
