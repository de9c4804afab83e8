package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/novaforge/sitekit/internal/content"
)

// serverMetrics holds the prometheus instruments. Each server owns its own
// registry so tests can spin up servers side by side.
type serverMetrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	contentRecords *prometheus.GaugeVec
	contactResults *prometheus.CounterVec
}

func newServerMetrics() *serverMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &serverMetrics{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sitekit_http_requests_total",
			Help: "HTTP requests by method, path pattern, and status code.",
		}, []string{"method", "path", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sitekit_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		contentRecords: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sitekit_content_records",
			Help: "Records per content collection in the current snapshot.",
		}, []string{"collection"}),
		contactResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sitekit_contact_submissions_total",
			Help: "Contact form submissions by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
	}
}

// observeStore refreshes the per-collection record gauges after a load or
// reload.
func (m *serverMetrics) observeStore(store *content.Store) {
	m.contentRecords.WithLabelValues(content.CollectionServices).Set(float64(len(store.Services)))
	m.contentRecords.WithLabelValues(content.CollectionCaseStudies).Set(float64(len(store.CaseStudies)))
	m.contentRecords.WithLabelValues(content.CollectionBlogPosts).Set(float64(len(store.BlogPosts)))
	m.contentRecords.WithLabelValues(content.CollectionTestimonials).Set(float64(len(store.Testimonials)))
	m.contentRecords.WithLabelValues(content.CollectionTeam).Set(float64(len(store.Team)))
}

// handler serves the metrics endpoint for this server's registry.
func (m *serverMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// middleware records request counts and latency. The path label uses the
// route pattern, not the raw URL, to keep cardinality bounded.
func (m *serverMetrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		pattern := routePattern(r.URL.Path)
		timer := prometheus.NewTimer(m.duration.WithLabelValues(r.Method, pattern))
		next.ServeHTTP(rec, r)
		timer.ObserveDuration()
		m.requests.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
	})
}

// routePattern collapses slugged paths to their route shape so metric
// cardinality stays bounded by the route table, not the content set. The
// placeholders mirror the patterns registered in routes.
func routePattern(path string) string {
	for prefix, placeholder := range map[string]string{
		"/api/services/":     "{slug}",
		"/api/case-studies/": "{slug}",
		"/api/blog/":         "{slug}",
		"/api/team/":         "{id}",
	} {
		if strings.HasPrefix(path, prefix) && len(path) > len(prefix) {
			return prefix + placeholder
		}
	}
	return path
}
