package allocine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidProfileURL is returned for input that is not a member films page.
var ErrInvalidProfileURL = errors.New("invalid AlloCiné profile URL")

var filmsSuffixRe = regexp.MustCompile(`/films/?$`)

// ValidateProfileURL checks raw against <host>/membre-<id>/films with an
// optional trailing slash, ignoring case.
func ValidateProfileURL(host, raw string) error {
	re, err := regexp.Compile(`(?i)^` + regexp.QuoteMeta(strings.TrimRight(host, "/")) + `/membre-\w+/films/?$`)
	if err != nil {
		return fmt.Errorf("build profile pattern: %w", err)
	}
	if !re.MatchString(raw) {
		return fmt.Errorf("%w: %q (expected %s/membre-.../films/)", ErrInvalidProfileURL, raw, host)
	}
	return nil
}

// ListingPageURL returns the numbered page of the rated films listing.
func ListingPageURL(profileURL string, page int) string {
	return profileURL + "?page=" + strconv.Itoa(page)
}

// ReviewsURL rewrites a profile films URL to its review tab.
func ReviewsURL(profileURL string) string {
	return filmsSuffixRe.ReplaceAllString(profileURL, "/critiques/films/")
}

// WishlistURL rewrites a profile films URL to its wishlist.
func WishlistURL(profileURL string) string {
	return filmsSuffixRe.ReplaceAllString(profileURL, "/wishlist/films/")
}

// AbsoluteURL prefixes host to relative links. Anything already starting
// with "http" is returned unchanged.
func AbsoluteURL(host, raw string) string {
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return strings.TrimRight(host, "/") + raw
}
