package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "catalog"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP request durations.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "route", "status"},
	)
	providerFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_fetch_total",
			Help:      "Provider fetch attempts by outcome.",
		},
		[]string{"provider", "outcome"},
	)
	providerFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_fetch_duration_seconds",
			Help:      "Histogram of provider fetch durations.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)
	productsCommitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_committed_total",
			Help:      "Products committed by reconciliation, by action.",
		},
		[]string{"provider", "action"},
	)
	productsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_skipped_total",
			Help:      "Products whose commit failed and were skipped.",
		},
		[]string{"provider"},
	)
	priceChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_changes_total",
			Help:      "Price history entries recorded.",
		},
		[]string{"provider"},
	)
	aggregationRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_run_duration_seconds",
			Help:      "Histogram of full aggregation run durations.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)
	staleProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stale_products_marked",
			Help:      "Products flagged stale by the last staleness sweep.",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(providerFetchTotal)
	prometheus.MustRegister(providerFetchDuration)
	prometheus.MustRegister(productsCommitted)
	prometheus.MustRegister(productsSkipped)
	prometheus.MustRegister(priceChanges)
	prometheus.MustRegister(aggregationRunDuration)
	prometheus.MustRegister(staleProducts)
}

// RecordRequest records metrics for one HTTP request.
func RecordRequest(method, route string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// RecordFetch records one provider fetch.
func RecordFetch(provider string, ok bool, duration time.Duration) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	providerFetchTotal.WithLabelValues(provider, outcome).Inc()
	providerFetchDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordCommit records the outcome of one provider batch.
func RecordCommit(provider string, created, updated, skipped, changes int) {
	productsCommitted.WithLabelValues(provider, "create").Add(float64(created))
	productsCommitted.WithLabelValues(provider, "update").Add(float64(updated))
	productsSkipped.WithLabelValues(provider).Add(float64(skipped))
	priceChanges.WithLabelValues(provider).Add(float64(changes))
}

// RecordRun records the duration of a full aggregation run.
func RecordRun(duration time.Duration) {
	aggregationRunDuration.Observe(duration.Seconds())
}

// SetStale records how many products the last sweep flagged.
func SetStale(n int64) {
	staleProducts.Set(float64(n))
}

// classifyStatus collapses an HTTP status code into its class.
func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// Middleware records request count and latency labelled by route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		RecordRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
