package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	catalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_catalog_load_duration_seconds",
			Help:    "Time spent loading the restaurant catalog",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	sectionsReturned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_sections_returned_total",
			Help: "Sections included in discovery responses, by title",
		},
		[]string{"title"},
	)
)

func ObserveCatalogLoad(start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	catalogLoadDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

func IncSection(title string) {
	sectionsReturned.WithLabelValues(title).Inc()
}

// Middleware records request count and latency per route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		routePath := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				routePath = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequestsTotal.WithLabelValues(r.Method, routePath, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePath).Observe(time.Since(start).Seconds())
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
