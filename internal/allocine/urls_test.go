package allocine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const host = "https://www.allocine.fr"

func TestValidateProfileURL(t *testing.T) {
	valid := []string{
		"https://www.allocine.fr/membre-foo/films",
		"https://www.allocine.fr/membre-foo/films/",
		"HTTPS://WWW.ALLOCINE.FR/membre-Z12_3/FILMS/",
	}
	for _, u := range valid {
		assert.NoError(t, ValidateProfileURL(host, u), u)
	}

	invalid := []string{
		"",
		"http://www.allocine.fr/membre-foo/films/",
		"https://www.allocine.fr/membre-/films/",
		"https://www.allocine.fr/membre-foo/critiques/films/",
		"https://www.allocine.fr/membre-foo/films/?page=2",
		"https://wwwXallocine.fr/membre-foo/films/",
		"https://www.allocine.fr/membre-foo-bar/films/",
		" https://www.allocine.fr/membre-foo/films/",
	}
	for _, u := range invalid {
		assert.ErrorIs(t, ValidateProfileURL(host, u), ErrInvalidProfileURL, u)
	}
}

func TestProfileURLRewrites(t *testing.T) {
	for _, profile := range []string{
		"https://www.allocine.fr/membre-foo/films",
		"https://www.allocine.fr/membre-foo/films/",
	} {
		assert.Equal(t, "https://www.allocine.fr/membre-foo/critiques/films/", ReviewsURL(profile))
		assert.Equal(t, "https://www.allocine.fr/membre-foo/wishlist/films/", WishlistURL(profile))
	}
	assert.Equal(t, "https://www.allocine.fr/membre-foo/films/?page=3", ListingPageURL(testProfile, 3))
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://www.allocine.fr/a", AbsoluteURL(host, "/a"))
	assert.Equal(t, "https://www.allocine.fr/a", AbsoluteURL(host+"/", "/a"))
	assert.Equal(t, "https://other.test/b", AbsoluteURL(host, "https://other.test/b"))
}
