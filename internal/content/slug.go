package content

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugSeps    = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a display name into a URL slug: accents are folded to ASCII,
// anything other than letters, digits, underscores and hyphens is dropped, and
// runs of whitespace or hyphens become a single hyphen.
func Slugify(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	ascii, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}

	out := slugInvalid.ReplaceAllString(strings.ToLower(ascii), "")
	out = slugSeps.ReplaceAllString(out, "-")
	return strings.Trim(out, "-_")
}
