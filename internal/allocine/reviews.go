package allocine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cineprofile/internal/browser"
)

const reviewsCrawler = "reviews"

var errPageUnchanged = errors.New("review page did not change after next")

// reviewCursor is a position in the review tab: its root URL and the
// 1-based page reached by clicking "next".
type reviewCursor struct {
	root string
	page int
}

// CrawlReviews walks the review tab of profileURL. Reviews with a "read
// more" link are replaced by their full text from the permalink page, after
// which the tab is reopened and "next" replayed to get back to the page. A
// page whose first review text was already seen ends the crawl.
func (c *Crawler) CrawlReviews(ctx context.Context, profileURL string) ([]ReviewRecord, error) {
	log := c.log.WithField("crawler", reviewsCrawler)
	cur := reviewCursor{root: ReviewsURL(profileURL), page: 1}

	if err := c.openReviewTab(ctx, cur.root, c.timeouts.ReviewTab); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn().Err(err).Str("url", cur.root).Msg("review tab failed to load")
		c.stop(reviewsCrawler, stopNavigation)
		return nil, nil
	}

	seen := make(map[string]struct{})
	var reviews []ReviewRecord
	for {
		if err := ctx.Err(); err != nil {
			return reviews, err
		}

		c.page.WaitFor(ctx, c.sel.ReviewBlock, c.timeouts.ReviewBlock)
		batch := extractReviewBlocks(c.snapshot(ctx), c.sel)
		if len(batch) == 0 {
			c.stop(reviewsCrawler, stopEmptyPage)
			break
		}

		// The first review's text stands in for the page.
		fingerprint := batch[0].Text
		if fingerprint != "" {
			if _, dup := seen[fingerprint]; dup {
				c.stop(reviewsCrawler, stopDuplicate)
				break
			}
			seen[fingerprint] = struct{}{}
		}

		log.Info().Int("page", cur.page).Int("reviews", len(batch)).Msg("scraping review page")
		lost := false
		for _, rb := range batch {
			text := rb.Text
			if !lost && rb.HasMore && rb.MoreURL != "" {
				text = c.expandReview(ctx, rb)
				if err := c.restore(ctx, cur); err != nil {
					if ctx.Err() != nil {
						return reviews, ctx.Err()
					}
					log.Warn().Err(err).Int("page", cur.page).Msg("review position lost after full text detour")
					lost = true
				}
			}
			reviews = append(reviews, ReviewRecord{
				FilmTitle: rb.FilmTitle,
				Text:      NormalizeWhitespace(text),
			})
		}
		c.metrics.AddRecords(reviewsCrawler, len(batch))
		if lost {
			c.stop(reviewsCrawler, stopNavigation)
			break
		}

		if !c.page.Has(c.sel.NextPage) {
			c.stop(reviewsCrawler, stopNoNext)
			break
		}
		if err := c.next(ctx, fingerprint); err != nil {
			log.Debug().Err(err).Int("page", cur.page).Msg("next page not rendered")
			c.stop(reviewsCrawler, stopNotRendered)
			break
		}
		cur.page++
	}

	log.Info().Int("reviews", len(reviews)).Msg("reviews extracted")
	return reviews, nil
}

// openReviewTab loads the tab root and waits up to wait for a review block.
// A timeout only means the tab has no reviews.
func (c *Crawler) openReviewTab(ctx context.Context, root string, wait time.Duration) error {
	if err := c.load(ctx, reviewsCrawler, root, browser.WaitNetworkIdle, c.timeouts.Navigation); err != nil {
		return err
	}
	if !c.page.WaitFor(ctx, c.sel.ReviewBlock, wait) {
		c.log.Debug().Str("url", root).Msg("no review block rendered")
	}
	return nil
}

// expandReview visits the permalink of rb and returns its full text, or the
// truncated text when the page fails or the full text never renders.
func (c *Crawler) expandReview(ctx context.Context, rb reviewBlock) string {
	c.metrics.IncDetour()
	if err := c.page.Navigate(ctx, rb.MoreURL, browser.WaitDOMContentLoaded, c.timeouts.Navigation); err != nil {
		c.log.Debug().Err(err).Str("url", rb.MoreURL).Msg("full review failed to load")
		return rb.Text
	}
	if !c.page.WaitFor(ctx, c.sel.FullReview, c.timeouts.FullText) {
		return rb.Text
	}
	return tryText(c.snapshot(ctx).Selection, c.sel.FullReview, rb.Text)
}

// restore reopens the tab root and replays page-1 "next" clicks.
func (c *Crawler) restore(ctx context.Context, cur reviewCursor) error {
	if err := c.openReviewTab(ctx, cur.root, c.timeouts.ReviewTab); err != nil {
		return fmt.Errorf("reload %s: %w", cur.root, err)
	}
	for i := 1; i < cur.page; i++ {
		if !c.page.Has(c.sel.NextPage) {
			return fmt.Errorf("replay to page %d: next missing on page %d", cur.page, i)
		}
		if err := c.next(ctx, c.firstReviewText(ctx)); err != nil {
			return fmt.Errorf("replay to page %d: %w", cur.page, err)
		}
	}
	return nil
}

// next clicks "next" and waits until the first review differs from before.
// The old blocks stay in the DOM until the new batch renders, so waiting for
// a review block alone would accept the previous page.
func (c *Crawler) next(ctx context.Context, before string) error {
	if err := c.page.Click(c.sel.NextPage); err != nil {
		return err
	}
	if !c.waitForPageChange(ctx, before, c.timeouts.NextPage) {
		return errPageUnchanged
	}
	return nil
}

func (c *Crawler) waitForPageChange(ctx context.Context, before string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if first, ok := c.firstReview(ctx); ok && first != before {
			return true
		}
		if ctx.Err() != nil || !time.Now().Before(deadline) {
			return false
		}
		settle(ctx, c.timeouts.PagePoll)
	}
}

func (c *Crawler) firstReviewText(ctx context.Context) string {
	text, _ := c.firstReview(ctx)
	return text
}

// firstReview reports the first review's text and whether any review block
// is rendered at all.
func (c *Crawler) firstReview(ctx context.Context) (string, bool) {
	block := c.snapshot(ctx).Find(c.sel.ReviewBlock).First()
	if block.Length() == 0 {
		return "", false
	}
	return tryText(block, c.sel.ReviewText, ""), true
}
