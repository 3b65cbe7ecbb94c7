package allocine

import (
	"context"

	"cineprofile/internal/browser"
)

const detailsCrawler = "details"

// FetchDetail reads duration and directors from a film page. Navigation and
// the DOM read share one detail timeout. Failures are logged with the URL and yield empty fields;
// they never abort the run. Successful results are cached by URL.
func (c *Crawler) FetchDetail(ctx context.Context, filmURL string) FilmDetail {
	if c.details != nil {
		if d, ok := c.details.Get(filmURL); ok {
			return d
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Detail)
	defer cancel()

	c.metrics.IncPage(detailsCrawler)
	if err := c.page.Navigate(ctx, filmURL, browser.WaitDOMContentLoaded, c.timeouts.Detail); err != nil {
		c.metrics.IncDetailFailure()
		c.log.Error().Err(err).Str("url", filmURL).Msg("film detail fetch failed")
		return FilmDetail{}
	}

	doc, err := c.page.Document(ctx)
	if err != nil {
		c.metrics.IncDetailFailure()
		c.log.Error().Err(err).Str("url", filmURL).Msg("film detail fetch failed")
		return FilmDetail{}
	}

	d := FilmDetail{
		Duration:  extractDuration(doc, c.sel),
		Directors: extractDirectors(doc, c.sel),
	}
	if c.details != nil {
		c.details.Add(filmURL, d)
	}
	return d
}

// EnrichFilms fetches the detail page of every film, in order, and logs a
// progress line per film.
func (c *Crawler) EnrichFilms(ctx context.Context, films []FilmRecord) ([]DetailedFilm, error) {
	rows := make([]DetailedFilm, 0, len(films))
	for i, f := range films {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		fullURL := AbsoluteURL(c.host, f.URL)
		d := c.FetchDetail(ctx, fullURL)
		rows = append(rows, DetailedFilm{
			Title:     f.Title,
			Rating:    f.Rating,
			Duration:  d.Duration,
			Directors: d.Directors,
			URL:       fullURL,
		})
		c.metrics.AddRecords(detailsCrawler, 1)
		c.log.Info().
			Str("duration", d.Duration).
			Str("directors", d.Directors).
			Msgf("[%d/%d] %s", i+1, len(films), f.Title)
	}
	return rows, nil
}
