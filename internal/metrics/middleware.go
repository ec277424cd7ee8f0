package metrics

import (
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hadith_stub",
			Name:      "request_duration_seconds",
			Help:      "Stub API request duration in seconds by operation",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hadith_stub",
			Name:      "requests_total",
			Help:      "Total stub API requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	resultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hadith_stub",
			Name:      "results_returned",
			Help:      "Hadiths returned per search or list request",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(requestDuration, requestsTotal, resultsReturned)
}

// Middleware records per-operation request counts, latency and result sizes.
// Operations are named by the Operation route middleware.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx, info := ContextWithRequestInfo(r.Context())

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			op := info.OperationName()
			requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
			requestsTotal.WithLabelValues(op, Outcome(ww.Status())).Inc()
			if info.Counted {
				resultsReturned.WithLabelValues(op).Observe(float64(info.Results))
			}
		})
	}
}

// Outcome maps a response status onto the failure kinds the client reports,
// so stub and client series line up.
func Outcome(status int) string {
	switch {
	case status == 0 || status < 300:
		return "ok"
	case status == http.StatusNotFound:
		return "not_found"
	case status == http.StatusUnauthorized:
		return "unauthorized"
	case status == http.StatusUnprocessableEntity:
		return "invalid"
	case status >= 500:
		return "error"
	}
	return "request"
}
