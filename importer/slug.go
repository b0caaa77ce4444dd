package importer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify folds a contest name into a lowercase ASCII slug for problem
// codes: diacritics are stripped via NFKD decomposition, everything outside
// [a-z0-9] collapses into single dashes. Names with no ASCII representation
// at all fall back to the given default.
func Slugify(value string, fallback string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	decomposed, _, err := transform.String(t, value)
	if err != nil {
		decomposed = value
	}

	var ascii strings.Builder
	for _, r := range decomposed {
		if r < 128 {
			ascii.WriteRune(r)
		}
	}

	slug := strings.ToLower(ascii.String())
	slug = nonAlnumRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return fallback
	}
	return slug
}
