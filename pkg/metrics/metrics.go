package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the notifier batch metrics.
type Metrics struct {
	ProfilesProcessed  prometheus.Counter
	ProfilesSkipped    prometheus.Counter
	MessagesSent       *prometheus.CounterVec
	MessagesFailed     *prometheus.CounterVec
	StatusesRefreshed  prometheus.Counter
	BatchDuration      prometheus.Histogram
	RecommendationRuns prometheus.Counter
}

// New creates and registers all batch metrics under the given namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		ProfilesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profiles_processed_total",
			Help:      "Total number of profiles processed by the daily batch",
		}),
		ProfilesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profiles_skipped_total",
			Help:      "Profiles skipped because no phone number is on file",
		}),
		MessagesSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Notification messages delivered, by channel",
		}, []string{"channel"}),
		MessagesFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_failed_total",
			Help:      "Notification messages that failed delivery, by channel",
		}, []string{"channel"}),
		StatusesRefreshed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vaccination_statuses_refreshed_total",
			Help:      "Vaccination records flipped from pending to overdue",
		}),
		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Time spent running one daily batch pass",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}),
		RecommendationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_runs_total",
			Help:      "Recommendation generation passes executed",
		}),
	}
}
