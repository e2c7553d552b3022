package mockserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SessionsCreated prometheus.Counter
	CodesSent       *prometheus.CounterVec
	Registrations   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_mockserver_requests_total",
			Help: "Requests handled, by route and status code",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signup_mockserver_request_duration_seconds",
			Help:    "Duration of handled requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"method", "route"}),
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "signup_mockserver_sessions_created_total",
			Help: "Verification sessions created",
		}),
		CodesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_mockserver_codes_sent_total",
			Help: "Verification codes sent, by transport",
		}, []string{"transport"}),
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_mockserver_registrations_total",
			Help: "Registration attempts, by result",
		}, []string{"result"}),
	}
}

// instrument records count and duration of every request under its route
// pattern, so session ids do not end up in label values.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
