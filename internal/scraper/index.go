package scraper

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"evodex/pkg/models"
)

// FamilyIndexPath is the wiki page listing every evolution family.
const FamilyIndexPath = "/wiki/List_of_Pok%C3%A9mon_by_evolution_family"

const monLinkMarker = "(Pok%C3%A9mon)"

var colorRe = regexp.MustCompile(`background:(#......);`)

// ParseFamilyIndex extracts families from the evolution family index.
// Each region's table follows an h3 heading; header rows name a family and
// carry its colour, data rows link to the family members. Relative links
// are resolved against baseURL.
func ParseFamilyIndex(doc *html.Node, baseURL string) []models.Family {
	families := []models.Family{}

	for _, table := range findAll(doc, isRegionTable) {
		region := regionName(prevElementSibling(table))

		var familyName, color string
		seen := map[string]bool{}

		for _, row := range findAll(table, func(n *html.Node) bool { return n.Data == "tr" }) {
			if th := findFirst(row, func(n *html.Node) bool { return n.Data == "th" }); th != nil {
				familyName = normalizeName(textContent(th))
				m := colorRe.FindStringSubmatch(getAttr(th, "style"))
				if m == nil {
					continue
				}
				color = m[1]
				continue
			}

			var urls []string
			for _, a := range findAll(row, isCellLink) {
				if findFirst(a, func(n *html.Node) bool { return n.Data == "span" }) == nil {
					continue
				}
				href := getAttr(a, "href")
				if href == "" || !strings.Contains(href, monLinkMarker) || seen[href] {
					continue
				}
				seen[href] = true
				urls = append(urls, baseURL+href)
			}
			if len(urls) == 0 {
				continue
			}

			families = append(families, models.Family{
				Color:          color,
				FamilyName:     familyName,
				RegionName:     region,
				BulbapediaURLs: urls,
			})
		}
	}
	return families
}

// isRegionTable matches a table preceded somewhere by a sibling h3.
func isRegionTable(n *html.Node) bool {
	if n.Data != "table" {
		return false
	}
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if isElement(s, "h3") {
			return true
		}
	}
	return false
}

func isCellLink(n *html.Node) bool {
	return n.Data == "a" && hasAncestorChain(n, "td")
}

func regionName(heading *html.Node) string {
	name := normalizeName(textContent(heading))
	name = strings.Replace(name, "-based evolution families", "", 1)
	return strings.Replace(name, " evolution families", "", 1)
}
