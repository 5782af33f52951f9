// Package metrics bundles Prometheus collectors for the catalog service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors on a dedicated registry.
type Metrics struct {
	Registry         *prometheus.Registry
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
	SnapshotLoads    *prometheus.CounterVec
	RankingsComputed prometheus.Counter
	FilterResults    *prometheus.CounterVec
	CartMutations    *prometheus.CounterVec
	ShowcaseAdvances prometheus.Counter
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	upstreamRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_upstream_requests_total",
			Help: "Total requests issued to the upstream library API.",
		},
		[]string{"operation", "outcome"},
	)
	upstreamDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_upstream_request_duration_seconds",
			Help:    "Latency of upstream library API requests.",
			Buckets: prometheus.DefBuckets,
		},
	)
	snapshotLoads := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_snapshot_loads_total",
			Help: "Catalog snapshot loads by source (cache or upstream).",
		},
		[]string{"source"},
	)
	rankings := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rankings_computed_total",
			Help: "Related-book rankings computed (cache misses).",
		},
	)
	filterResults := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_filter_queries_total",
			Help: "Filter queries served by result kind.",
		},
		[]string{"kind"},
	)
	cartMutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cart_mutations_total",
			Help: "Cart mutations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	showcaseAdvances := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_showcase_advances_total",
			Help: "Showcase carousel slide advances.",
		},
	)

	registry.MustRegister(upstreamRequests, upstreamDuration, snapshotLoads,
		rankings, filterResults, cartMutations, showcaseAdvances)

	return &Metrics{
		Registry:         registry,
		UpstreamRequests: upstreamRequests,
		UpstreamDuration: upstreamDuration,
		SnapshotLoads:    snapshotLoads,
		RankingsComputed: rankings,
		FilterResults:    filterResults,
		CartMutations:    cartMutations,
		ShowcaseAdvances: showcaseAdvances,
	}
}

// IncUpstream increments the upstream request counter.
func (m *Metrics) IncUpstream(operation, outcome string) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(operation, outcome).Inc()
}

// ObserveUpstream records the latency of one upstream request.
func (m *Metrics) ObserveUpstream(d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamDuration.Observe(d.Seconds())
}

// IncSnapshotLoad increments the snapshot load counter for a source label.
func (m *Metrics) IncSnapshotLoad(source string) {
	if m == nil {
		return
	}
	m.SnapshotLoads.WithLabelValues(source).Inc()
}

// IncRanking increments the computed rankings counter.
func (m *Metrics) IncRanking() {
	if m == nil {
		return
	}
	m.RankingsComputed.Inc()
}

// IncFilter increments the filter query counter for a result kind.
func (m *Metrics) IncFilter(kind string) {
	if m == nil {
		return
	}
	m.FilterResults.WithLabelValues(kind).Inc()
}

// IncCart increments the cart mutation counter.
func (m *Metrics) IncCart(operation, outcome string) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(operation, outcome).Inc()
}

// IncShowcaseAdvance increments the showcase advance counter.
func (m *Metrics) IncShowcaseAdvance() {
	if m == nil {
		return
	}
	m.ShowcaseAdvances.Inc()
}
