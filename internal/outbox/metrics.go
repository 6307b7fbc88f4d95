package outbox

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded for dead-letter entries.
const (
	dlqOutcomeRequeued    = "requeued"
	dlqOutcomeQuarantined = "quarantined"
	dlqOutcomeRetry       = "retry_scheduled"
)

var (
	deliveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "outbox",
		Name:      "events_delivered_total",
		Help:      "Number of outbox events successfully published to Kafka.",
	})

	failedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "outbox",
		Name:      "events_failed_total",
		Help:      "Number of outbox events that failed to publish and routed to DLQ.",
	})

	batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fittracker",
		Subsystem: "outbox",
		Name:      "batch_duration_seconds",
		Help:      "Time spent fetching, delivering, and marking outbox batches.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	})

	dlqCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "outbox",
		Name:      "events_dlq_total",
		Help:      "Number of outbox events routed to the dead-letter queue, labeled by topic.",
	}, []string{"topic"})

	dlqOutcomeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "dlq",
		Name:      "entries_handled_total",
		Help:      "Dead-letter entries handled by the DLQ manager, labeled by outcome.",
	}, []string{"topic", "event_type", "outcome"})

	dlqEntriesGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fittracker",
		Subsystem: "dlq",
		Name:      "entries",
		Help:      "Rows in outbox_dlq by state (pending or quarantined).",
	}, []string{"state"})
)

func init() {
	prometheus.MustRegister(deliveredCounter, failedCounter, batchDuration, dlqCounter, dlqOutcomeCounter, dlqEntriesGauge)
}

func recordDLQOutcome(entry dlqEntry, outcome string) {
	dlqOutcomeCounter.WithLabelValues(entry.Topic, entry.EventType, outcome).Inc()
}

// refreshDLQGauge recounts outbox_dlq rows; the gauge keeps its last value on error.
func refreshDLQGauge(ctx context.Context, pool *pgxpool.Pool) error {
	var pending, quarantined int
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE quarantined_at IS NULL),
		       COUNT(*) FILTER (WHERE quarantined_at IS NOT NULL)
		FROM outbox_dlq`).Scan(&pending, &quarantined)
	if err != nil {
		return err
	}
	dlqEntriesGauge.WithLabelValues("pending").Set(float64(pending))
	dlqEntriesGauge.WithLabelValues("quarantined").Set(float64(quarantined))
	return nil
}
