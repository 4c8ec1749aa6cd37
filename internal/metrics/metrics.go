package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Dashboard metrics
	pagesGenerated *prometheus.CounterVec
	pagesDeleted   *prometheus.CounterVec
	generatedPages prometheus.Gauge
	sessionsActive prometheus.Gauge
	settingsSaved  *prometheus.CounterVec
	pageViews      *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	r.pagesGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metricboard_pages_generated_total",
			Help: "Total number of analysis pages generated",
		},
		[]string{"category", "status"},
	)
	r.pagesDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metricboard_pages_deleted_total",
			Help: "Total number of analysis page deletions",
		},
		[]string{"status"},
	)
	r.generatedPages = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "metricboard_generated_pages",
			Help: "Number of generated analysis pages on disk",
		},
	)
	r.sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "metricboard_sessions_active",
			Help: "Number of live dashboard sessions",
		},
	)
	r.settingsSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metricboard_settings_saved_total",
			Help: "Total number of settings form submissions",
		},
		[]string{"status"},
	)
	r.pageViews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metricboard_page_views_total",
			Help: "Total number of dashboard page renders",
		},
		[]string{"page"},
	)

	reg.MustRegister(r.pagesGenerated)
	reg.MustRegister(r.pagesDeleted)
	reg.MustRegister(r.generatedPages)
	reg.MustRegister(r.sessionsActive)
	reg.MustRegister(r.settingsSaved)
	reg.MustRegister(r.pageViews)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordGenerate records a page generation attempt.
func (r *Registry) RecordGenerate(category string, err error) {
	r.pagesGenerated.WithLabelValues(category, outcome(err)).Inc()
}

// RecordDelete records a page deletion attempt.
func (r *Registry) RecordDelete(err error) {
	r.pagesDeleted.WithLabelValues(outcome(err)).Inc()
}

// SetGeneratedPages sets the number of generated pages.
func (r *Registry) SetGeneratedPages(n int) {
	r.generatedPages.Set(float64(n))
}

// SetSessionsActive sets the number of live sessions.
func (r *Registry) SetSessionsActive(n int) {
	r.sessionsActive.Set(float64(n))
}

// RecordSettingsSaved records a settings submission.
func (r *Registry) RecordSettingsSaved(err error) {
	r.settingsSaved.WithLabelValues(outcome(err)).Inc()
}

// RecordPageView records a rendered dashboard page.
func (r *Registry) RecordPageView(page string) {
	r.pageViews.WithLabelValues(page).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
