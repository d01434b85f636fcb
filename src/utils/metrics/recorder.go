package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so tests and multiple servers in one
// process never collide on the default one.
type Recorder struct {
	registry     *prometheus.Registry
	fetches      *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	rowsUpserted *prometheus.CounterVec
	chartBuilds  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		fetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "painel_upstream_fetches_total",
				Help: "Upstream fetches by indicator and source",
			},
			[]string{"indicator", "source"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "painel_errors_total",
				Help: "Errors by operation",
			},
			[]string{"operation"},
		),
		rowsUpserted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "painel_rows_upserted_total",
				Help: "Observations written by indicator",
			},
			[]string{"indicator"},
		),
		chartBuilds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "painel_chart_builds_total",
				Help: "Charts built by indicator",
			},
			[]string{"indicator"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "painel_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "painel_http_requests_total",
				Help: "HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "painel_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method"},
		),
	}
}

func (r *Recorder) RecordFetch(indicator, source string) {
	r.fetches.WithLabelValues(indicator, source).Inc()
}

func (r *Recorder) RecordError(operation string) {
	r.errorsTotal.WithLabelValues(operation).Inc()
}

func (r *Recorder) RecordRows(indicator string, rows int) {
	r.rowsUpserted.WithLabelValues(indicator).Add(float64(rows))
}

func (r *Recorder) RecordChartBuild(indicator string) {
	r.chartBuilds.WithLabelValues(indicator).Inc()
}

func (r *Recorder) RecordLatency(operation string, d time.Duration) {
	r.latency.WithLabelValues(operation).Observe(d.Seconds())
}

// Handler exposes the private registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// unmatchedRoute labels requests no route answered, so arbitrary paths do not
// grow the label set.
const unmatchedRoute = "unmatched"

// Middleware records every request under its chi route pattern to keep label
// cardinality low.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := unmatchedRoute
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.httpRequests.WithLabelValues(route, req.Method, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(route, req.Method).Observe(time.Since(start).Seconds())
	})
}
