package formatter

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"cineprofile/internal/metrics"
	"cineprofile/internal/scraper"
)

// RenderSummary prints the exported tables and the crawl counters.
func RenderSummary(w io.Writer, tables []scraper.Table, samples []metrics.Sample) {
	out := table.NewWriter()
	out.SetOutputMirror(w)
	out.SetTitle("Exports")
	out.AppendHeader(table.Row{"Table", "Columns", "Rows"})
	for _, t := range tables {
		out.AppendRow(table.Row{t.Name, len(t.Columns), len(t.Rows)})
	}
	out.SetStyle(table.StyleRounded)
	out.Render()

	if len(samples) == 0 {
		return
	}

	counters := table.NewWriter()
	counters.SetOutputMirror(w)
	counters.SetTitle("Crawl")
	counters.AppendHeader(table.Row{"Counter", "Labels", "Value"})
	for _, s := range samples {
		counters.AppendRow(table.Row{s.Name, s.Labels, fmt.Sprintf("%g", s.Value)})
	}
	counters.SetStyle(table.StyleRounded)
	counters.Render()
}
