package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lowers the name, strips diacritics and apostrophes and
// collapses whitespace. Idempotent: NormalizeName(NormalizeName(x)) ==
// NormalizeName(x).
func NormalizeName(name string) string {
	stripped, _, err := transform.String(diacriticStripper, name)
	if err != nil {
		stripped = name
	}
	stripped = strings.ToLower(stripped)
	stripped = strings.ReplaceAll(stripped, "'", "")
	stripped = strings.ReplaceAll(stripped, "’", "")
	return strings.Join(strings.Fields(stripped), " ")
}

// stripMarkdown removes emphasis and escaping artifacts a retrieval answer
// may carry around names (e.g. **Alex Thompson**, \_Jordan\_).
func stripMarkdown(answer string) string {
	replacer := strings.NewReplacer(
		"**", "", "__", "", "*", "", "_", "",
		"\\", "", "`", "", "#", "",
	)
	return replacer.Replace(answer)
}

// titleCase normalizes a candidate name's casing for comparison.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
