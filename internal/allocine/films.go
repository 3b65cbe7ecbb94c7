package allocine

import (
	"context"

	"cineprofile/internal/browser"
)

const filmsCrawler = "films"

// CrawlFilms walks profileURL?page=1..maxPages and returns every rated film
// in page order. The first page without cards ends the crawl; maxPages is
// only a ceiling. A non-positive maxPages uses the configured ceiling.
func (c *Crawler) CrawlFilms(ctx context.Context, profileURL string, maxPages int) ([]FilmRecord, error) {
	if maxPages <= 0 {
		maxPages = c.maxPages
	}
	log := c.log.WithField("crawler", filmsCrawler)

	var films []FilmRecord
	for i := 1; ; i++ {
		if i > maxPages {
			c.stop(filmsCrawler, stopMaxPages)
			break
		}
		if err := ctx.Err(); err != nil {
			return films, err
		}

		url := ListingPageURL(profileURL, i)
		log.Info().Str("url", url).Msg("scraping listing page")
		if err := c.load(ctx, filmsCrawler, url, browser.WaitDOMContentLoaded, c.timeouts.Navigation); err != nil {
			if ctx.Err() != nil {
				return films, ctx.Err()
			}
			log.Warn().Err(err).Str("url", url).Msg("listing page failed to load")
			c.stop(filmsCrawler, stopNavigation)
			break
		}

		page := extractFilmCards(c.snapshot(ctx), c.sel)
		if len(page) == 0 {
			c.stop(filmsCrawler, stopEmptyPage)
			break
		}
		c.metrics.AddRecords(filmsCrawler, len(page))
		films = append(films, page...)
	}

	log.Info().Int("films", len(films)).Msg("films extracted")
	return films, nil
}
