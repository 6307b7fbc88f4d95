// Package events defines the workout event payloads carried through the outbox.
package events

import "time"

// Event types.
const (
	TypeWorkoutCreated       = "workout.created"
	TypeWorkoutStatusChanged = "workout.status_changed"
	TypeWorkoutUpdated       = "workout.updated"
	TypeWorkoutDeleted       = "workout.deleted"
)

// Topics.
const (
	TopicWorkoutEvents        = "workout_events"
	TopicWorkoutStatusChanged = "workout_status_changed"
)

// AggregateWorkout is the aggregate_type recorded for workout events.
const AggregateWorkout = "workout"

// WorkoutCreated is emitted when a workout is stored.
type WorkoutCreated struct {
	WorkoutID     string     `json:"workout_id"`
	OwnerID       string     `json:"owner_id"`
	OwnerUsername string     `json:"owner_username"`
	Title         string     `json:"title"`
	Type          string     `json:"type"`
	Duration      float64    `json:"duration"`
	Calories      float64    `json:"calories"`
	Date          string     `json:"date"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// WorkoutStatusChanged tracks planned/done/missed transitions.
type WorkoutStatusChanged struct {
	WorkoutID      string     `json:"workout_id"`
	OwnerID        string     `json:"owner_id"`
	PreviousStatus string     `json:"previous_status"`
	Status         string     `json:"status"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

// WorkoutUpdated lists the editable fields written by an update.
type WorkoutUpdated struct {
	WorkoutID  string    `json:"workout_id"`
	OwnerID    string    `json:"owner_id"`
	Fields     []string  `json:"fields"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WorkoutDeleted is emitted when a workout is hard-deleted.
type WorkoutDeleted struct {
	WorkoutID  string    `json:"workout_id"`
	OwnerID    string    `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
