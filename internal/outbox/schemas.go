package outbox

import "github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/events"

// workoutEventSchema covers created, updated and deleted events, which share
// the workout_events subject.
const workoutEventSchema = `{
  "type": "object",
  "title": "WorkoutEvent",
  "properties": {
    "workout_id": {"type": "string"},
    "owner_id": {"type": "string"},
    "owner_username": {"type": "string"},
    "title": {"type": "string"},
    "type": {"type": "string", "enum": ["strength", "cardio", "yoga"]},
    "duration": {"type": "number"},
    "calories": {"type": "number"},
    "date": {"type": "string"},
    "scheduled_at": {"type": "string", "format": "date-time"},
    "fields": {"type": "array", "items": {"type": "string"}},
    "occurred_at": {"type": "string", "format": "date-time"}
  },
  "required": ["workout_id", "owner_id", "occurred_at"],
  "additionalProperties": false
}`

const workoutStatusChangedSchema = `{
  "type": "object",
  "title": "WorkoutStatusChanged",
  "properties": {
    "workout_id": {"type": "string"},
    "owner_id": {"type": "string"},
    "previous_status": {"type": "string"},
    "status": {"type": "string", "enum": ["planned", "done", "missed"]},
    "completed_at": {"type": "string", "format": "date-time"},
    "occurred_at": {"type": "string", "format": "date-time"}
  },
  "required": ["workout_id", "owner_id", "status", "occurred_at"],
  "additionalProperties": false
}`

// schemaCatalog maps event types onto the JSON schema registered for their subject.
var schemaCatalog = map[string]string{
	events.TypeWorkoutCreated:       workoutEventSchema,
	events.TypeWorkoutUpdated:       workoutEventSchema,
	events.TypeWorkoutDeleted:       workoutEventSchema,
	events.TypeWorkoutStatusChanged: workoutStatusChangedSchema,
}
