package allocine

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ratingClassRe = regexp.MustCompile(`n(\d)(\d)`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// NormalizeTitle folds a title into its join key: decomposed, combining
// marks removed, lowercased. It is idempotent.
func NormalizeTitle(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}
	return strings.ToLower(folded)
}

// NormalizeWhitespace strips newlines, collapses whitespace runs to one
// space and trims.
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ParseRatingClass decodes the n<D1><D2> class of a rating element into
// "D1.D2". No code yields "".
func ParseRatingClass(class string) string {
	m := ratingClassRe.FindStringSubmatch(class)
	if m == nil {
		return ""
	}
	return m[1] + "." + m[2]
}
