package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// WaitStrategy selects the lifecycle event a navigation waits for.
type WaitStrategy string

const (
	WaitDOMContentLoaded WaitStrategy = "domcontentloaded" // DOM parsed, subresources may still load
	WaitNetworkIdle      WaitStrategy = "networkidle"      // at most two requests in flight
)

// ErrNotFound is returned by Click when the selector matches nothing.
var ErrNotFound = errors.New("element not found")

// Tab is a single browser page reused for every navigation of a run.
type Tab struct {
	page *rod.Page
}

// Navigate loads target and waits for the lifecycle event of the strategy,
// bounded by timeout.
func (t *Tab) Navigate(ctx context.Context, target string, wait WaitStrategy, timeout time.Duration) error {
	p := t.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	event := proto.PageLifecycleEventNameDOMContentLoaded
	if wait == WaitNetworkIdle {
		event = proto.PageLifecycleEventNameNetworkAlmostIdle
	}

	waitNav := p.WaitNavigation(event)
	if err := p.Navigate(target); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", target, err)
	}
	waitNav()

	if err := p.GetContext().Err(); err != nil {
		return fmt.Errorf("timed out loading %s: %w", target, err)
	}
	return nil
}

// Has reports whether selector currently matches an element, without waiting.
func (t *Tab) Has(selector string) bool {
	has, _, err := t.page.Has(selector)
	return err == nil && has
}

// Click clicks the first element matching selector. Elements hidden behind
// overlays are clicked through the DOM instead of the mouse.
func (t *Tab) Click(selector string) error {
	has, el, err := t.page.Has(selector)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", selector, err)
	}
	if !has {
		return fmt.Errorf("%s: %w", selector, ErrNotFound)
	}

	if err := el.Timeout(5*time.Second).Click(proto.InputMouseButtonLeft, 1); err != nil {
		if _, err := el.Eval(`() => this.click()`); err != nil {
			return fmt.Errorf("failed to click %s: %w", selector, err)
		}
	}
	return nil
}

// WaitFor waits up to timeout for selector to appear. A timeout is reported
// as false, never as an error.
func (t *Tab) WaitFor(ctx context.Context, selector string, timeout time.Duration) bool {
	p := t.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()
	_, err := p.Element(selector)
	return err == nil
}

// Document snapshots the current DOM, bounded by ctx. The returned
// document's Url is the page URL so relative links can be resolved.
func (t *Tab) Document(ctx context.Context) (*goquery.Document, error) {
	p := t.page.Context(ctx)
	html, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read page HTML: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	if info, err := p.Info(); err == nil {
		if u, err := url.Parse(info.URL); err == nil {
			doc.Url = u
		}
	}
	return doc, nil
}

// Close closes the page.
func (t *Tab) Close() {
	if t.page != nil {
		t.page.Close()
	}
}
