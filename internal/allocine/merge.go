package allocine

import (
	"github.com/antzucaro/matchr"
)

// Merger joins films with reviews on the normalized title.
type Merger struct {
	// Host prefixes relative film URLs.
	Host string
	// FuzzyThreshold enables a Jaro-Winkler fallback for films without an
	// exact key match when above zero. Zero keeps the join exact.
	FuzzyThreshold float64
}

// Merge is a left outer join of films with reviews: every film yields one
// record in film order, with an empty review when none matches. Reviews
// without a film are dropped. When two reviews share a key the later wins.
func (m Merger) Merge(films []FilmRecord, reviews []ReviewRecord) []MergedRecord {
	byTitle := make(map[string]string, len(reviews))
	for _, r := range reviews {
		byTitle[NormalizeTitle(r.FilmTitle)] = r.Text
	}

	merged := make([]MergedRecord, 0, len(films))
	for _, f := range films {
		key := NormalizeTitle(f.Title)
		review, ok := byTitle[key]
		if !ok && m.FuzzyThreshold > 0 {
			review = m.closest(key, byTitle)
		}
		merged = append(merged, MergedRecord{
			Title:  f.Title,
			Rating: f.Rating,
			Review: review,
			URL:    AbsoluteURL(m.Host, f.URL),
		})
	}
	return merged
}

func (m Merger) closest(key string, byTitle map[string]string) string {
	var best float64
	var bestTitle string
	for title := range byTitle {
		score := matchr.JaroWinkler(key, title, false)
		// ties go to the smaller key so map order cannot change the result
		if score > best || (score == best && score > 0 && title < bestTitle) {
			best = score
			bestTitle = title
		}
	}
	if best == 0 || best < m.FuzzyThreshold {
		return ""
	}
	return byTitle[bestTitle]
}
