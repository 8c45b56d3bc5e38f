// Package telemetry exposes prometheus metrics for the worker.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fishfinder/fishfinder-go/internal/conf"
	"github.com/fishfinder/fishfinder-go/internal/logging"
)

var (
	// TasksProcessed counts successfully completed tasks.
	TasksProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fishfinder_tasks_processed_total",
		Help: "Number of image tasks processed to completion.",
	})

	// TasksSkipped counts messages discarded as not storage events.
	TasksSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fishfinder_tasks_skipped_total",
		Help: "Number of queue messages skipped as unrecognised.",
	})

	// TasksFailed counts tasks that failed and were returned to the queue.
	TasksFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fishfinder_tasks_failed_total",
		Help: "Number of image tasks that failed and were requeued.",
	})

	// ResultsFlaggedForReview counts low-confidence results.
	ResultsFlaggedForReview = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fishfinder_results_flagged_for_review_total",
		Help: "Number of results flagged for manual review.",
	})

	// NotificationFailures counts best-effort notification deliveries that failed.
	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fishfinder_notification_failures_total",
		Help: "Number of notification publishes that failed after a successful persist.",
	})

	// TaskDuration observes end to end task processing time.
	TaskDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fishfinder_task_duration_seconds",
		Help:    "End to end processing time per image task.",
		Buckets: prometheus.DefBuckets,
	})
)

// Serve starts the metrics endpoint when telemetry is enabled. It returns
// immediately; the listener runs until the process exits.
func Serve(settings *conf.Settings) {
	if !settings.Telemetry.Enabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              settings.Telemetry.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.ForService("telemetry").Info("Metrics endpoint listening",
			"address", settings.Telemetry.Listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ForService("telemetry").Error("Metrics endpoint failed", "error", err)
		}
	}()
}
