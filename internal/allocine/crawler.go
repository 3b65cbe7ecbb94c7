package allocine

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru/v2"

	"cineprofile/internal/browser"
	"cineprofile/internal/config"
	"cineprofile/internal/logger"
	"cineprofile/internal/metrics"
)

// PageClient is the single browser tab every crawler drives.
type PageClient interface {
	Navigate(ctx context.Context, url string, wait browser.WaitStrategy, timeout time.Duration) error
	Has(selector string) bool
	Click(selector string) error
	WaitFor(ctx context.Context, selector string, timeout time.Duration) bool
	Document(ctx context.Context) (*goquery.Document, error)
}

// Stop reasons recorded when a pagination loop ends.
const (
	stopEmptyPage   = "empty_page"
	stopMaxPages    = "max_pages"
	stopNavigation  = "navigation_failed"
	stopNoNext      = "no_next"
	stopNotAbsolute = "next_not_absolute"
	stopCycle       = "cycle"
	stopDuplicate   = "duplicate_page"
	stopNotRendered = "next_not_rendered"
)

// Crawler runs the AlloCiné crawls sequentially on one tab.
type Crawler struct {
	page      PageClient
	sel       Selectors
	host      string
	timeouts  config.Timeouts
	maxPages  int
	threshold float64
	metrics   *metrics.Metrics
	log       *logger.Logger
	details   *lru.Cache[string, FilmDetail]
}

// NewCrawler wires a crawler to page using cfg for host, limits and timeouts.
func NewCrawler(page PageClient, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) *Crawler {
	if log == nil {
		log = logger.For("allocine")
	}
	cache, err := lru.New[string, FilmDetail](cfg.DetailCacheSize)
	if err != nil {
		log.Warn().Err(err).Msg("detail cache disabled")
		cache = nil
	}
	return &Crawler{
		page:      page,
		sel:       DefaultSelectors,
		host:      cfg.Host,
		timeouts:  cfg.Timeouts,
		maxPages:  cfg.MaxPages,
		threshold: cfg.FuzzyThreshold,
		metrics:   m,
		log:       log,
		details:   cache,
	}
}

// WithSelectors replaces the DOM queries, e.g. after a markup change.
func (c *Crawler) WithSelectors(sel Selectors) *Crawler {
	c.sel = sel
	return c
}

// load navigates, counts the page and dismisses the cookie modal if shown.
func (c *Crawler) load(ctx context.Context, crawler, url string, wait browser.WaitStrategy, timeout time.Duration) error {
	c.metrics.IncPage(crawler)
	if err := c.page.Navigate(ctx, url, wait, timeout); err != nil {
		return err
	}
	c.dismissCookies(ctx)
	return nil
}

func (c *Crawler) dismissCookies(ctx context.Context) {
	if !c.page.Has(c.sel.CookieAccept) {
		return
	}
	if err := c.page.Click(c.sel.CookieAccept); err != nil {
		c.log.Debug().Err(err).Msg("cookie modal click failed")
		return
	}
	settle(ctx, c.timeouts.CookieSettle)
}

// snapshot returns the current DOM, or an empty document when it cannot be
// read so extraction degrades to empty results.
func (c *Crawler) snapshot(ctx context.Context) *goquery.Document {
	doc, err := c.page.Document(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("dom snapshot failed")
		return emptyDocument()
	}
	return doc
}

func emptyDocument() *goquery.Document {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(""))
	return doc
}

func (c *Crawler) stop(crawler, reason string) {
	c.metrics.Stop(crawler, reason)
	c.log.Debug().Str("crawler", crawler).Str("reason", reason).Msg("pagination stopped")
}

func settle(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
