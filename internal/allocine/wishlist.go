package allocine

import (
	"context"
	"strings"

	"cineprofile/internal/browser"
)

const wishlistCrawler = "wishlist"

// CrawlWishlist follows the wishlist's "next" anchor from the first page.
// It stops when the anchor is missing, its href is not absolute, or the
// href was already visited, so a pagination cycle cannot loop forever.
func (c *Crawler) CrawlWishlist(ctx context.Context, profileURL string) ([]WishlistRecord, error) {
	log := c.log.WithField("crawler", wishlistCrawler)
	visited := make(map[string]struct{})

	var films []WishlistRecord
	url := WishlistURL(profileURL)
	for {
		visited[url] = struct{}{}

		if err := ctx.Err(); err != nil {
			return films, err
		}

		log.Info().Str("url", url).Msg("scraping wishlist page")
		if err := c.load(ctx, wishlistCrawler, url, browser.WaitDOMContentLoaded, c.timeouts.Navigation); err != nil {
			if ctx.Err() != nil {
				return films, ctx.Err()
			}
			log.Warn().Err(err).Str("url", url).Msg("wishlist page failed to load")
			c.stop(wishlistCrawler, stopNavigation)
			break
		}

		doc := c.snapshot(ctx)
		page := extractWishlistCards(doc, c.sel)
		c.metrics.AddRecords(wishlistCrawler, len(page))
		films = append(films, page...)

		next := tryAttr(doc.Selection, c.sel.NextPage, "href", "")
		if next == "" {
			c.stop(wishlistCrawler, stopNoNext)
			break
		}
		if !strings.HasPrefix(next, "http") {
			c.stop(wishlistCrawler, stopNotAbsolute)
			break
		}
		if _, seen := visited[next]; seen {
			c.stop(wishlistCrawler, stopCycle)
			break
		}
		url = next
	}

	log.Info().Int("films", len(films)).Msg("wishlist extracted")
	return films, nil
}
