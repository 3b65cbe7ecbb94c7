package allocine

// FilmRecord is one rated film card of the profile listing. URL is the href
// as found on the card and may be relative.
type FilmRecord struct {
	Title  string
	Rating string // "" or "D.D"
	URL    string
}

// FilmDetail holds the fields read from a film's own page.
type FilmDetail struct {
	Duration  string
	Directors string
}

// ReviewRecord is one review of the review tab, whitespace-normalized.
type ReviewRecord struct {
	FilmTitle string
	Text      string
}

// WishlistRecord is one film of the wishlist.
type WishlistRecord struct {
	Title string
	URL   string
}

// MergedRecord is a film joined with its review, if any.
type MergedRecord struct {
	Title  string
	Rating string
	Review string
	URL    string
}

// DetailedFilm is a film enriched with its detail page.
type DetailedFilm struct {
	Title     string
	Rating    string
	Duration  string
	Directors string
	URL       string
}

// reviewBlock is a review as rendered on the tab, before any expansion.
type reviewBlock struct {
	FilmTitle string
	Text      string
	HasMore   bool
	MoreURL   string
}
