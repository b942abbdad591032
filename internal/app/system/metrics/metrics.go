// Package metrics exposes Prometheus counters for HTTP traffic and record
// mutations, plus a gauge of in-memory collection sizes.
//
// Metrics live on a package registry rather than the global default so tests
// can build handlers repeatedly without duplicate-registration panics.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds every metric this process exports.
	Registry = prometheus.NewRegistry()

	// HTTPRequestsTotal is labelled by chi route pattern, never the raw URL.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests processed, by method, route pattern and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route pattern.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// MutationsTotal counts successful create/update/delete actions per collection.
	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churchadmin_mutations_total",
			Help: "Record mutations applied to the in-memory store, by collection and action.",
		},
		[]string{"collection", "action"},
	)
)

func init() {
	Registry.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		MutationsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency. Requests that matched no
// route are labelled "<no-route>" to bound label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := "<no-route>"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				path = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// Mutation records one successful action ("create", "update", "delete", ...)
// on collection.
func Mutation(collection, action string) {
	MutationsTotal.WithLabelValues(collection, action).Inc()
}

// sizeCollector reports collection sizes at scrape time.
type sizeCollector struct {
	desc  *prometheus.Desc
	sizes func() map[string]int
}

func (c sizeCollector) Describe(ch chan<- *prometheus.Desc) { ch <- c.desc }

func (c sizeCollector) Collect(ch chan<- prometheus.Metric) {
	for name, n := range c.sizes() {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(n), name)
	}
}

var sizesOnce sync.Once

// RegisterStoreSizes exports churchadmin_records{collection} backed by sizes.
// Only the first call registers.
func RegisterStoreSizes(sizes func() map[string]int) {
	sizesOnce.Do(func() {
		Registry.MustRegister(sizeCollector{
			desc: prometheus.NewDesc("churchadmin_records",
				"Records currently held in each in-memory collection.",
				[]string{"collection"}, nil),
			sizes: sizes,
		})
	})
}
