package consumer

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded per workout event.
const (
	outcomeLogged        = "logged"
	outcomeHandlerFailed = "handler_failed"
)

var (
	workoutEventsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "event_log",
		Name:      "workout_events_total",
		Help:      "Workout events read from Kafka, labeled by event type and outcome.",
	}, []string{"event_type", "outcome"})

	undecodableCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "event_log",
		Name:      "undecodable_records_total",
		Help:      "Records skipped because they were not framed workout events, labeled by reason.",
	}, []string{"topic", "reason"})

	appendDelay = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fittracker",
		Subsystem: "event_log",
		Name:      "append_delay_seconds",
		Help:      "Time from Kafka append to the row landing in workout_event_log.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
	}, []string{"event_type"})
)

func init() {
	prometheus.MustRegister(workoutEventsCounter, undecodableCounter, appendDelay)
}

func recordLogged(msg Message, now time.Time) {
	workoutEventsCounter.WithLabelValues(msg.EventType, outcomeLogged).Inc()
	if msg.Timestamp.IsZero() {
		return
	}
	if delay := now.Sub(msg.Timestamp); delay >= 0 {
		appendDelay.WithLabelValues(msg.EventType).Observe(delay.Seconds())
	}
}

func recordHandlerFailure(msg Message) {
	workoutEventsCounter.WithLabelValues(msg.EventType, outcomeHandlerFailed).Inc()
}

func recordUndecodable(topic string, err error) {
	reason := "unknown"
	var de *decodeError
	if errors.As(err, &de) {
		reason = de.reason
	}
	undecodableCounter.WithLabelValues(topic, reason).Inc()
}
