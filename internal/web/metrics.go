package web

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/evcraddock/rentdesk/internal/logging"
	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/store"
)

// metrics holds the API's Prometheus collectors.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer, st *store.Store) *metrics {
	m := &metrics{
		// Labels: method, route, status
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rentdesk",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rentdesk",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Duration of API requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	reg.MustRegister(m.requests, m.duration, &recordCollector{store: st})
	return m
}

// instrument is mux middleware recording request counts and latency per
// route template.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		start := time.Now()
		rw := logging.NewResponseWriter(w)
		next.ServeHTTP(rw, r)

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(rw.Status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

var recordsDesc = prometheus.NewDesc(
	"rentdesk_records",
	"Number of stored records per resource",
	[]string{"resource"}, nil,
)

// recordCollector reports record counts at scrape time.
type recordCollector struct {
	store *store.Store
}

func (c *recordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- recordsDesc
}

func (c *recordCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, name := range resource.Names() {
		if name == resource.Settings {
			continue
		}
		n, err := c.store.Count(ctx, name)
		if err != nil {
			slog.Warn("failed to count records", "resource", name, "error", err)
			continue
		}
		ch <- prometheus.MustNewConstMetric(recordsDesc, prometheus.GaugeValue, float64(n), string(name))
	}
}
