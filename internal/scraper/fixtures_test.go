package scraper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const indexHTML = `<html><body><div class="mw-parser-output">
<h2>Contents</h2>
<table><tr><td><a href="/wiki/Mew_(Pok%C3%A9mon)"><span>Mew</span></a></td></tr></table>
<h3>Kanto-based evolution families</h3>
<table>
<tr><th>Family</th></tr>
<tr><th colspan="4" style="background:#78C850; color:#fff;">Bulbasaur family</th></tr>
<tr>
<td><a href="/wiki/Bulbasaur_(Pok%C3%A9mon)"><img src="//img/b.png"></a></td>
<td><a href="/wiki/Bulbasaur_(Pok%C3%A9mon)"><span>Bulbasaur</span></a></td>
<td><a href="/wiki/Level"><span>Level 16</span></a></td>
<td><a href="/wiki/Ivysaur_(Pok%C3%A9mon)"><span>Ivysaur</span></a></td>
<td><a href="/wiki/Bulbasaur_(Pok%C3%A9mon)"><span>Bulbasaur</span></a></td>
</tr>
</table>
<h3>Johto&nbsp;evolution families</h3>
<table>
<tr><th style="background:#A8B820;">Chikorita family</th></tr>
<tr><td><a href="/wiki/Chikorita_(Pok%C3%A9mon)"><span>Chikorita</span></a></td></tr>
</table>
</div></body></html>`

// monPage renders a minimal creature page: a navigation table holding the
// first dex-number link, then the infobox with the real one.
func monPage(number int, base string, alts ...string) string {
	var imgs strings.Builder
	for _, alt := range alts {
		fmt.Fprintf(&imgs, `<tr><td><a class="image" href="/wiki/File:x.png"><img alt="%s" src="//archives.example/%04d%s.png"></a></td></tr>`, alt, number, alt)
	}
	return fmt.Sprintf(`<html><body>
<table class="nav"><tr><td><a title="List of Pokémon by National Pokédex number">#0999</a></td></tr></table>
<table class="roundy infobox">
<tr><td><big><big><b>%s</b></big></big></td>
<td><a href="/wiki/List" title="List of Pokémon by National Pokédex number"><span>#%04d</span></a></td></tr>
%s
</table>
</body></html>`, base, number, imgs.String())
}

func parseHTML(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}
