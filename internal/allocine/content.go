package allocine

import (
	"cineprofile/internal/scraper"
)

// ProfileContent is the result of a profile run: films merged with reviews,
// and the wishlist.
type ProfileContent struct {
	Merged   []MergedRecord
	Wishlist []WishlistRecord
	host     string
}

func (p *ProfileContent) Tables() []scraper.Table {
	merged := scraper.Table{
		Name:    "allocine-url-info",
		Columns: []string{"Title", "Rating", "Review", "Url"},
	}
	for _, r := range p.Merged {
		merged.Rows = append(merged.Rows, []string{r.Title, r.Rating, r.Review, r.URL})
	}

	wishlist := scraper.Table{
		Name:    "allocine-wishlist",
		Columns: []string{"Title", "Url"},
	}
	for _, w := range p.Wishlist {
		wishlist.Rows = append(wishlist.Rows, []string{w.Title, AbsoluteURL(p.host, w.URL)})
	}

	return []scraper.Table{wishlist, merged}
}

// DetailsContent is the result of a details run.
type DetailsContent struct {
	Films []DetailedFilm
}

func (d *DetailsContent) Tables() []scraper.Table {
	t := scraper.Table{
		Name:    "allocine-films-details",
		Columns: []string{"Title", "Rating", "Duration", "Directors", "Url"},
	}
	for _, f := range d.Films {
		t.Rows = append(t.Rows, []string{f.Title, f.Rating, f.Duration, f.Directors, f.URL})
	}
	return []scraper.Table{t}
}
