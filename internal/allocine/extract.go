package allocine

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var durationRe = regexp.MustCompile(`^\d+h`)

// tryText returns the trimmed text of the first match of selector under s,
// or fallback when nothing matches. An empty selector reads s itself.
func tryText(s *goquery.Selection, selector, fallback string) string {
	target := s
	if selector != "" {
		target = s.Find(selector).First()
	}
	if target.Length() == 0 {
		return fallback
	}
	return strings.TrimSpace(target.Text())
}

// tryAttr returns attribute attr of the first match of selector under s, or
// fallback when the element or the attribute is missing.
func tryAttr(s *goquery.Selection, selector, attr, fallback string) string {
	target := s
	if selector != "" {
		target = s.Find(selector).First()
	}
	v, ok := target.Attr(attr)
	if !ok {
		return fallback
	}
	return v
}

func extractFilmCards(doc *goquery.Document, sel Selectors) []FilmRecord {
	var films []FilmRecord
	doc.Find(sel.FilmCard).Each(func(_ int, card *goquery.Selection) {
		films = append(films, FilmRecord{
			Title:  strings.TrimSpace(tryAttr(card, sel.FilmTitle, "title", "")),
			Rating: ParseRatingClass(tryAttr(card, sel.FilmRating, "class", "")),
			URL:    tryAttr(card, sel.FilmTitle, "href", ""),
		})
	})
	return films
}

func extractWishlistCards(doc *goquery.Document, sel Selectors) []WishlistRecord {
	var films []WishlistRecord
	doc.Find(sel.FilmCard).Each(func(_ int, card *goquery.Selection) {
		films = append(films, WishlistRecord{
			Title: strings.TrimSpace(tryAttr(card, sel.FilmTitle, "title", "")),
			URL:   tryAttr(card, sel.FilmTitle, "href", ""),
		})
	})
	return films
}

func extractReviewBlocks(doc *goquery.Document, sel Selectors) []reviewBlock {
	var blocks []reviewBlock
	doc.Find(sel.ReviewBlock).Each(func(_ int, block *goquery.Selection) {
		rb := reviewBlock{
			FilmTitle: tryText(block, sel.ReviewTitle, ""),
			Text:      tryText(block, sel.ReviewText, ""),
		}
		if more := block.Find(sel.ReviewMore).First(); more.Length() > 0 {
			rb.HasMore = true
			rb.MoreURL = resolveHref(doc.Url, tryAttr(more, "", "href", ""))
		}
		blocks = append(blocks, rb)
	})
	return blocks
}

// extractDuration returns the first direct text node of the metadata block
// that starts with "<n>h".
func extractDuration(doc *goquery.Document, sel Selectors) string {
	var duration string
	doc.Find(sel.DetailMeta).First().Contents().EachWithBreak(func(_ int, n *goquery.Selection) bool {
		if goquery.NodeName(n) != "#text" {
			return true
		}
		if text := strings.TrimSpace(n.Text()); durationRe.MatchString(text) {
			duration = text
			return false
		}
		return true
	})
	return duration
}

func extractDirectors(doc *goquery.Document, sel Selectors) string {
	names := doc.Find(sel.DirectorLink).Map(func(_ int, a *goquery.Selection) string {
		return strings.TrimSpace(a.Text())
	})
	return strings.Join(names, ", ")
}

// resolveHref resolves href against the page URL the way an anchor's href
// property does. Unparseable input is returned as is.
func resolveHref(base *url.URL, href string) string {
	if href == "" || base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
