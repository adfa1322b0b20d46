package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunt_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	ApplicationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobhunt_applications_submitted_total",
			Help: "Total number of accepted job applications.",
		},
	)
	TransitionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunt_application_transitions_total",
			Help: "Accepted application status transitions.",
		},
		[]string{"from", "to"},
	)
	RejectedRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunt_rejected_requests_total",
			Help: "Lifecycle and transition requests rejected before any mutation, by failure kind.",
		},
		[]string{"operation", "kind"},
	)
	ArchivedJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobhunt_jobs_archived_total",
			Help: "Total number of jobs archived by deadline sweeps.",
		},
	)
	NotificationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunt_notifications_total",
			Help: "Applicant notifications by kind and delivery result.",
		},
		[]string{"kind", "result"},
	)
	SweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobhunt_archive_sweep_duration_seconds",
			Help:    "Duration of archival sweeps in seconds.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
	RequestDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "jobhunt_http_request_duration_seconds",
			Help:       "Duration of HTTP requests by route.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"method", "route", "status"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(ApplicationsCounter)
		prometheus.MustRegister(TransitionsCounter)
		prometheus.MustRegister(RejectedRequestsCounter)
		prometheus.MustRegister(ArchivedJobsCounter)
		prometheus.MustRegister(NotificationsCounter)
		prometheus.MustRegister(SweepDuration)
		prometheus.MustRegister(RequestDuration)
	})
}

// StartMetricsServer serves /metrics on its own port; the caller owns shutdown.
func StartMetricsServer(port int) *http.Server {
	Register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	return server
}
