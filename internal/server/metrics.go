package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bbzsolar/solar-roof-map/pkg/solar"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequestsTotal counts API requests by route, method and status code
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solar_http_requests_total",
		Help: "Total HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// httpRequestDuration tracks handler latency
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solar_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
	}, []string{"route"})

	// estimatesTotal counts estimates by region
	estimatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solar_estimates_total",
		Help: "Total solar estimates computed by region",
	}, []string{"region"})

	// estimatedPotential tracks the daily yield of computed estimates
	estimatedPotential = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solar_estimated_potential_kwh_per_day",
		Help:    "Estimated daily potential in kWh",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500},
	})

	// proposalsSentTotal counts proposals sent to clients
	proposalsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solar_proposals_sent_total",
		Help: "Total proposals sent to clients",
	})
)

func init() {
	// Every region series exists from startup.
	for _, region := range solar.Regions() {
		estimatesTotal.WithLabelValues(string(region))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records request counts and latency per mux pattern.
func instrument(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		mux.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
