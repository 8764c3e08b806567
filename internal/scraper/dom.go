package scraper

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findAll returns every descendant of n (n excluded) matching pred, in
// document order.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && pred(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && pred(c) {
			return c
		}
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// closest returns n or its nearest ancestor with the given tag.
func closest(n *html.Node, tag string) *html.Node {
	for p := n; p != nil; p = p.Parent {
		if isElement(p, tag) {
			return p
		}
	}
	return nil
}

// hasAncestorChain reports whether n's ancestors contain tags in order from
// nearest to farthest, not necessarily adjacent.
func hasAncestorChain(n *html.Node, tags ...string) bool {
	p := n.Parent
	for _, tag := range tags {
		for p != nil && !isElement(p, tag) {
			p = p.Parent
		}
		if p == nil {
			return false
		}
		p = p.Parent
	}
	return true
}

func prevElementSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		if p.Type == html.TextNode {
			sb.WriteString(p.Data)
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// normalizeName trims, composes to NFC and turns non-breaking spaces into
// plain ones.
func normalizeName(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "\u00a0", " ")
}
