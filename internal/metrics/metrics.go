package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Metrics bundles Prometheus collectors for one crawl run.
type Metrics struct {
	Registry         *prometheus.Registry
	PagesVisited     *prometheus.CounterVec
	RecordsExtracted *prometheus.CounterVec
	Detours          prometheus.Counter
	DetailFailures   prometheus.Counter
	Stops            *prometheus.CounterVec
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cineprofile_pages_visited_total",
			Help: "Page loads issued per crawler.",
		},
		[]string{"crawler"},
	)
	records := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cineprofile_records_extracted_total",
			Help: "Records extracted per crawler.",
		},
		[]string{"crawler"},
	)
	detours := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cineprofile_review_detours_total",
			Help: "Full-text review permalinks visited.",
		},
	)
	detailFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cineprofile_detail_failures_total",
			Help: "Film detail fetches that returned empty fields.",
		},
	)
	stops := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cineprofile_crawl_stops_total",
			Help: "Pagination terminations by crawler and reason.",
		},
		[]string{"crawler", "reason"},
	)

	registry.MustRegister(pages, records, detours, detailFailures, stops)

	return &Metrics{
		Registry:         registry,
		PagesVisited:     pages,
		RecordsExtracted: records,
		Detours:          detours,
		DetailFailures:   detailFailures,
		Stops:            stops,
	}
}

// IncPage counts one page load for a crawler.
func (m *Metrics) IncPage(crawler string) {
	if m == nil {
		return
	}
	m.PagesVisited.WithLabelValues(crawler).Inc()
}

// AddRecords counts extracted records for a crawler.
func (m *Metrics) AddRecords(crawler string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RecordsExtracted.WithLabelValues(crawler).Add(float64(n))
}

// IncDetour counts one full-text detour.
func (m *Metrics) IncDetour() {
	if m == nil {
		return
	}
	m.Detours.Inc()
}

// IncDetailFailure counts one failed detail fetch.
func (m *Metrics) IncDetailFailure() {
	if m == nil {
		return
	}
	m.DetailFailures.Inc()
}

// Stop records why a crawler's pagination ended.
func (m *Metrics) Stop(crawler, reason string) {
	if m == nil {
		return
	}
	m.Stops.WithLabelValues(crawler, reason).Inc()
}

// Sample is one flattened counter value.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Snapshot gathers every counter on the registry, sorted by name then labels.
func (m *Metrics) Snapshot() ([]Sample, error) {
	if m == nil {
		return nil, nil
	}
	families, err := m.Registry.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, metric := range mf.GetMetric() {
			samples = append(samples, Sample{
				Name:   strings.TrimPrefix(mf.GetName(), "cineprofile_"),
				Labels: formatLabels(metric.GetLabel()),
				Value:  metric.GetCounter().GetValue(),
			})
		}
	}

	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return samples[i].Labels < samples[j].Labels
	})
	return samples, nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	return strings.Join(parts, ",")
}
