// Package prometheus instruments scrape services with Prometheus metrics.
package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/scrape"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes recorded in FetchTotal.
const (
	OutcomeHTML    = "html"
	OutcomeNonHTML = "non_html"
	OutcomeError   = "error"
)

// Metrics holds the collectors for one registry.
type Metrics struct {
	FetchDuration  *prometheus.HistogramVec
	FetchTotal     *prometheus.CounterVec
	DocumentsTotal *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scrape_fetch_duration_seconds",
				Help:    "Duration of page fetches in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		FetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrape_fetch_total",
				Help: "Total number of page fetches, labeled by outcome.",
			},
			[]string{"outcome"},
		),
		DocumentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrape_documents_total",
				Help: "Total number of extracted documents stored, labeled by status.",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(m.FetchDuration, m.FetchTotal, m.DocumentsTotal)
	return m
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Ensure Fetcher implements scrape.Fetcher.
var _ scrape.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a Fetcher and records duration and outcome of each call.
type Fetcher struct {
	next    scrape.Fetcher
	metrics *Metrics
}

// NewFetcher creates a new instrumented Fetcher.
func NewFetcher(next scrape.Fetcher, m *Metrics) *Fetcher {
	return &Fetcher{next: next, metrics: m}
}

// Fetch delegates to the wrapped fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (result *scrape.FetchResult, err error) {
	defer func(begin time.Time) {
		outcome := OutcomeHTML
		switch {
		case err != nil:
			outcome = OutcomeError
		case !result.IsHTML():
			outcome = OutcomeNonHTML
		}
		f.metrics.FetchDuration.WithLabelValues(outcome).Observe(time.Since(begin).Seconds())
		f.metrics.FetchTotal.WithLabelValues(outcome).Inc()
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Ensure DocumentWriter implements scrape.DocumentWriter.
var _ scrape.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter wraps a DocumentWriter and counts stored records by status.
type DocumentWriter struct {
	next    scrape.DocumentWriter
	metrics *Metrics
}

// NewDocumentWriter creates a new instrumented DocumentWriter.
func NewDocumentWriter(next scrape.DocumentWriter, m *Metrics) *DocumentWriter {
	return &DocumentWriter{next: next, metrics: m}
}

// CreateDocument delegates to the wrapped writer and counts successful writes.
func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *scrape.Document) error {
	if err := w.next.CreateDocument(ctx, doc); err != nil {
		return err
	}
	w.metrics.DocumentsTotal.WithLabelValues(string(doc.Status)).Inc()
	return nil
}
