package allocine

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cineprofile/internal/logger"
	"cineprofile/internal/metrics"
)

const (
	duneURL = "https://www.allocine.fr/film/fichefilm_gen_cfilm=1.html"
	heatURL = "https://www.allocine.fr/film/fichefilm_gen_cfilm=2.html"
)

func filmPage(meta string, directors ...string) string {
	body := `<div class="meta-body-info">` + meta + `</div>`
	for _, d := range directors {
		body += `<a class="xXx dark-grey-link" href="/personne/fichepersonne_gen_cpersonne=9.html">` + d + `</a>`
	}
	return html(body)
}

func TestFetchDetailExtractsDurationAndDirectors(t *testing.T) {
	page := newFakePage().serve(duneURL, filmPage(
		`15 septembre 2021 <span class="spacer">/</span> 2h 35min <span class="spacer">/</span> <a>Science fiction</a>`,
		"Denis Villeneuve", " Jon Spaihts "))
	c, _ := newTestCrawler(page)

	d := c.FetchDetail(context.Background(), duneURL)
	assert.Equal(t, FilmDetail{Duration: "2h 35min", Directors: "Denis Villeneuve, Jon Spaihts"}, d)
}

func TestFetchDetailIgnoresUnrelatedLinks(t *testing.T) {
	page := newFakePage().serve(duneURL, html(
		`<div class="meta-body-info">Date inconnue</div>`,
		`<a class="xXx dark-grey-link" href="/film/genre-13025/">Drame</a>`))
	c, _ := newTestCrawler(page)

	assert.Equal(t, FilmDetail{}, c.FetchDetail(context.Background(), duneURL))
}

func TestFetchDetailFailureYieldsEmptyFieldsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	page := newFakePage()
	page.fail[duneURL] = errors.New("context deadline exceeded")
	m := metrics.New()
	c := NewCrawler(page, testConfig(), m, logger.New(&buf, "info"))

	d := c.FetchDetail(context.Background(), duneURL)

	assert.Equal(t, FilmDetail{}, d)
	assert.Contains(t, buf.String(), duneURL)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DetailFailures))
}

func TestFetchDetailBoundsDOMRead(t *testing.T) {
	page := newFakePage().serve(duneURL, filmPage("2h 35min", "Denis Villeneuve"))
	page.readDelay = time.Second
	cfg := testConfig()
	cfg.Timeouts.Detail = 20 * time.Millisecond
	m := metrics.New()
	c := NewCrawler(page, cfg, m, logger.Nop())

	start := time.Now()
	d := c.FetchDetail(context.Background(), duneURL)

	assert.Equal(t, FilmDetail{}, d)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DetailFailures))
}

func TestFetchDetailCachesByURL(t *testing.T) {
	page := newFakePage().serve(duneURL, filmPage("2h 35min", "Denis Villeneuve"))
	c, _ := newTestCrawler(page)

	first := c.FetchDetail(context.Background(), duneURL)
	second := c.FetchDetail(context.Background(), duneURL)

	assert.Equal(t, first, second)
	assert.Len(t, page.visits, 1)
}

func TestEnrichFilmsKeepsOrderAndFailedRows(t *testing.T) {
	page := newFakePage().serve(duneURL, filmPage("2h 35min", "Denis Villeneuve"))
	page.fail[heatURL] = errors.New("net::ERR_TIMED_OUT")
	c, m := newTestCrawler(page)

	rows, err := c.EnrichFilms(context.Background(), []FilmRecord{
		{Title: "Dune", Rating: "4.0", URL: "/film/fichefilm_gen_cfilm=1.html"},
		{Title: "Heat", Rating: "4.5", URL: heatURL},
	})
	require.NoError(t, err)

	assert.Equal(t, []DetailedFilm{
		{Title: "Dune", Rating: "4.0", Duration: "2h 35min", Directors: "Denis Villeneuve", URL: duneURL},
		{Title: "Heat", Rating: "4.5", URL: heatURL},
	}, rows)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsExtracted.WithLabelValues(detailsCrawler)))
}

func TestEnrichFilmsReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := newTestCrawler(newFakePage())

	rows, err := c.EnrichFilms(ctx, []FilmRecord{{Title: "Dune"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rows)
}
