package scraper

import (
	"context"

	"cineprofile/internal/config"
	"cineprofile/internal/metrics"
)

// Scraper is one run mode, e.g. the full profile or the detail-enriched listing.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context, target string, opts Options) (Content, error)
}

// Content is the result of a run: one or more tables to export.
type Content interface {
	Tables() []Table
}

// Table is a named, ordered set of columns with string rows. Name is the
// output file name without extension.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

type Options struct {
	Config  *config.Config
	Metrics *metrics.Metrics
}
