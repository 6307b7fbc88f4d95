// Package observability holds the workout service's domain metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittracker",
		Subsystem: "persistence",
		Name:      "last_workout_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent workout write committed to the store.",
	})
	workoutsCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "workouts",
		Name:      "created_total",
		Help:      "Number of workouts created.",
	})
	workoutTransitionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "workouts",
		Name:      "status_transitions_total",
		Help:      "Number of workout status transitions, labeled by target status.",
	}, []string{"status"})
	consultationsBookedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "consultations",
		Name:      "booked_total",
		Help:      "Number of consultations booked.",
	})
)

func init() {
	prometheus.MustRegister(workoutPersistGauge, workoutsCreatedCounter, workoutTransitionCounter, consultationsBookedCounter)
}

// RecordWorkoutPersisted updates the persistence watermark gauge.
func RecordWorkoutPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	workoutPersistGauge.Set(float64(ts.Unix()))
}

// RecordWorkoutCreated counts a created workout.
func RecordWorkoutCreated() {
	workoutsCreatedCounter.Inc()
}

// RecordWorkoutTransition counts a status transition to status.
func RecordWorkoutTransition(status string) {
	workoutTransitionCounter.WithLabelValues(status).Inc()
}

// RecordConsultationBooked counts a booked consultation.
func RecordConsultationBooked() {
	consultationsBookedCounter.Inc()
}
