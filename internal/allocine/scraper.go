package allocine

import (
	"context"
	"fmt"

	"cineprofile/internal/browser"
	"cineprofile/internal/logger"
	"cineprofile/internal/scraper"
)

func init() {
	scraper.Register(&ProfileScraper{})
	scraper.Register(&DetailsScraper{})
}

// ProfileScraper exports rated films merged with reviews, plus the wishlist.
type ProfileScraper struct{}

func (s *ProfileScraper) Name() string { return "profile" }

func (s *ProfileScraper) Scrape(ctx context.Context, target string, opts scraper.Options) (scraper.Content, error) {
	var content *ProfileContent
	err := withCrawler(opts, func(c *Crawler) error {
		var err error
		content, err = RunProfile(ctx, c, target)
		return err
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}

// DetailsScraper exports rated films enriched with duration and directors.
type DetailsScraper struct{}

func (s *DetailsScraper) Name() string { return "details" }

func (s *DetailsScraper) Scrape(ctx context.Context, target string, opts scraper.Options) (scraper.Content, error) {
	var content *DetailsContent
	err := withCrawler(opts, func(c *Crawler) error {
		var err error
		content, err = RunDetails(ctx, c, target)
		return err
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}

// withCrawler launches a browser with one tab, runs fn on it and always
// closes both.
func withCrawler(opts scraper.Options, fn func(*Crawler) error) error {
	cfg := opts.Config
	b, err := browser.New(browser.Config{
		ProxyURL: cfg.ProxyURL,
		Headless: cfg.Headless,
	})
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	defer b.Close()

	tab, err := b.NewTab()
	if err != nil {
		return err
	}
	defer tab.Close()

	return fn(NewCrawler(tab, cfg, opts.Metrics, logger.For("allocine")))
}

// RunProfile crawls films, reviews and the wishlist one after the other on
// the crawler's tab and merges films with reviews.
func RunProfile(ctx context.Context, c *Crawler, profileURL string) (*ProfileContent, error) {
	films, err := c.CrawlFilms(ctx, profileURL, c.maxPages)
	if err != nil {
		return nil, fmt.Errorf("failed to crawl films: %w", err)
	}

	reviews, err := c.CrawlReviews(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to crawl reviews: %w", err)
	}

	wishlist, err := c.CrawlWishlist(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to crawl wishlist: %w", err)
	}

	merger := Merger{Host: c.host, FuzzyThreshold: c.threshold}
	return &ProfileContent{
		Merged:   merger.Merge(films, reviews),
		Wishlist: wishlist,
		host:     c.host,
	}, nil
}

// RunDetails crawls films and fetches each film's detail page.
func RunDetails(ctx context.Context, c *Crawler, profileURL string) (*DetailsContent, error) {
	films, err := c.CrawlFilms(ctx, profileURL, c.maxPages)
	if err != nil {
		return nil, fmt.Errorf("failed to crawl films: %w", err)
	}

	rows, err := c.EnrichFilms(ctx, films)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch film details: %w", err)
	}
	return &DetailsContent{Films: rows}, nil
}
