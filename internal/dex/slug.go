package dex

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// slugPunct is the punctuation kept in slugs besides ASCII letters and digits.
const slugPunct = `_$*+~.()'"!:@-`

// Slugify turns a display name into a lowercase, hyphenated anchor.
//
//	Slugify("Mr. Mime")  // "mr.-mime"
//	Slugify("Flabébé")   // "flabebe"
//	Slugify("Nidoran♀")  // "nidoran"
//
// Accented letters are folded to their base letter by decomposing and then
// dropping everything outside the URL-safe set. Distinct names may collide.
func Slugify(name string) string {
	var kept strings.Builder
	kept.Grow(len(name))
	for _, r := range norm.NFD.String(name) {
		if IsSlugRune(r) || unicode.IsSpace(r) {
			kept.WriteRune(r)
		}
	}

	trimmed := strings.TrimSpace(kept.String())
	var b strings.Builder
	b.Grow(len(trimmed))
	inSep := false
	for _, r := range trimmed {
		if r == '-' || unicode.IsSpace(r) {
			if !inSep {
				b.WriteByte('-')
				inSep = true
			}
			continue
		}
		inSep = false
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// IsSlugRune reports whether r may appear in a slug.
func IsSlugRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune(slugPunct, r)
}
