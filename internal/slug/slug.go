// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var germanReplacer = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// NameToSlug lowercases name, transliterates German umlauts, strips other
// diacritics and collapses every run of non-alphanumerics into one hyphen.
func NameToSlug(name string) string {
	s := Normalize(name)

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// Normalize lowercases and transliterates s the way NameToSlug does but keeps
// spaces and punctuation. Used for accent-insensitive matching. Input is
// composed first so that "a" followed by U+0308 transliterates like "ä".
func Normalize(s string) string {
	return Fold(germanReplacer.Replace(strings.ToLower(norm.NFC.String(s))))
}

// Fold removes combining marks, e.g. "é" -> "e". Letters without a
// decomposition are returned unchanged.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
