package allocine

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"cineprofile/internal/browser"
	"cineprofile/internal/config"
	"cineprofile/internal/logger"
	"cineprofile/internal/metrics"
)

const (
	testProfile = "https://www.allocine.fr/membre-foo/films/"
	testReviews = "https://www.allocine.fr/membre-foo/critiques/films/"
)

// fakePage serves scripted HTML. Each URL maps to the pages reached from it
// by clicking the next button; navigating resets to the first one.
type fakePage struct {
	sites   map[string][]string
	fail    map[string]error
	next    string
	current string
	idx     int
	visits  []string
	clicks  []string

	// failAfter makes a URL fail once it was loaded that many times.
	failAfter map[string]int
	loads     map[string]int
	// staleReads is how many Document calls after a next click still see
	// the previous page.
	staleReads int
	stale      int
	// readDelay blocks every Document call, honouring the context.
	readDelay time.Duration
}

func newFakePage() *fakePage {
	return &fakePage{
		sites:     make(map[string][]string),
		fail:      make(map[string]error),
		failAfter: make(map[string]int),
		loads:     make(map[string]int),
		next:      DefaultSelectors.NextPage,
	}
}

func (f *fakePage) serve(u string, pages ...string) *fakePage {
	f.sites[u] = pages
	return f
}

func (f *fakePage) Navigate(_ context.Context, u string, _ browser.WaitStrategy, _ time.Duration) error {
	f.visits = append(f.visits, u)
	if err := f.fail[u]; err != nil {
		return err
	}
	if n, ok := f.failAfter[u]; ok && f.loads[u] >= n {
		return fmt.Errorf("net::ERR_CONNECTION_RESET loading %s", u)
	}
	f.loads[u]++
	f.current = u
	f.idx = 0
	f.stale = 0
	return nil
}

func (f *fakePage) Has(selector string) bool {
	return f.doc().Find(selector).Length() > 0
}

func (f *fakePage) Click(selector string) error {
	if !f.Has(selector) {
		return fmt.Errorf("%s: %w", selector, browser.ErrNotFound)
	}
	f.clicks = append(f.clicks, selector)
	if selector == f.next {
		f.idx++
		f.stale = f.staleReads
	}
	return nil
}

func (f *fakePage) WaitFor(_ context.Context, selector string, _ time.Duration) bool {
	return f.Has(selector)
}

func (f *fakePage) Document(ctx context.Context) (*goquery.Document, error) {
	if f.readDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.readDelay):
		}
	}
	if f.stale > 0 {
		f.stale--
		return f.docAt(f.idx - 1), nil
	}
	return f.doc(), nil
}

func (f *fakePage) doc() *goquery.Document {
	return f.docAt(f.idx)
}

func (f *fakePage) docAt(idx int) *goquery.Document {
	html := ""
	if pages := f.sites[f.current]; idx >= 0 && idx < len(pages) {
		html = pages[idx]
	}
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(html))
	doc.Url, _ = url.Parse(f.current)
	return doc
}

func (f *fakePage) nextClicks() int {
	n := 0
	for _, c := range f.clicks {
		if c == f.next {
			n++
		}
	}
	return n
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Timeouts.CookieSettle = 0
	cfg.Timeouts.NextPage = 50 * time.Millisecond
	cfg.Timeouts.PagePoll = time.Millisecond
	return cfg
}

func newTestCrawler(page PageClient) (*Crawler, *metrics.Metrics) {
	m := metrics.New()
	return NewCrawler(page, testConfig(), m, logger.Nop()), m
}

func html(body ...string) string {
	return "<html><body>" + strings.Join(body, "\n") + "</body></html>"
}

func filmCard(title, href, ratingClass string) string {
	rating := ""
	if ratingClass != "" {
		rating = fmt.Sprintf(`<div class="rating-mdl %s stareval-stars"></div>`, ratingClass)
	}
	return fmt.Sprintf(`<div class="card entity-card-simple userprofile-entity-card-simple">
  <a class="meta-title meta-title-link" title=" %s " href="%s">%s</a>
  %s
</div>`, title, href, title, rating)
}

func nextLink(href string) string {
	return fmt.Sprintf(`<a class="button button-md button-primary-full button-right" href="%s">Suivante</a>`, href)
}

func nextButton() string {
	return `<button class="button button-md button-primary-full button-right">Suivante</button>`
}

func reviewCard(title, text, moreHref string) string {
	more := ""
	if moreHref != "" {
		more = fmt.Sprintf(`<a class="blue-link link-more" href="%s">Lire plus</a>`, moreHref)
	}
	return fmt.Sprintf(`<div class="review-card">
  <div class="review-card-title"><a class="xXx" href="/film/x">%s</a></div>
  <div class="content-txt review-card-content">%s</div>
  %s
</div>`, title, text, more)
}

func cookieBanner() string {
	return `<div class="jad_cmp_paywall_button">Accepter</div>`
}
