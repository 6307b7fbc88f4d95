package domain

import (
	"time"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/access"
)

// WorkoutType classifies a workout.
type WorkoutType string

const (
	WorkoutTypeStrength WorkoutType = "strength"
	WorkoutTypeCardio   WorkoutType = "cardio"
	WorkoutTypeYoga     WorkoutType = "yoga"
)

// Valid reports whether t is a known workout type.
func (t WorkoutType) Valid() bool {
	switch t {
	case WorkoutTypeStrength, WorkoutTypeCardio, WorkoutTypeYoga:
		return true
	}
	return false
}

// WorkoutStatus is the lifecycle state of a workout.
type WorkoutStatus string

const (
	WorkoutStatusPlanned WorkoutStatus = "planned"
	WorkoutStatusDone    WorkoutStatus = "done"
	WorkoutStatusMissed  WorkoutStatus = "missed"
)

// Valid reports whether s is a known workout status.
func (s WorkoutStatus) Valid() bool {
	switch s {
	case WorkoutStatusPlanned, WorkoutStatusDone, WorkoutStatusMissed:
		return true
	}
	return false
}

const (
	// DateLayout is the calendar date format of Workout.Date.
	DateLayout = "2006-01-02"
	// DefaultDifficulty is assigned when a workout is created without one.
	DefaultDifficulty = "Medium"
)

// Workout is the canonical workout record.
type Workout struct {
	ID                      string
	Title                   string
	Type                    WorkoutType
	Duration                float64
	Calories                float64
	Date                    string
	Difficulty              string
	Notes                   string
	ScheduledAt             *time.Time
	Status                  WorkoutStatus
	CompletedAt             *time.Time
	ConfirmationRequestedAt *time.Time
	OwnerID                 string
	OwnerUsername           string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// EffectiveDate returns the instant used to bucket the workout by day:
// completion time, then scheduled time, then the calendar date.
func (w Workout) EffectiveDate() (time.Time, bool) {
	if w.CompletedAt != nil {
		return w.CompletedAt.UTC(), true
	}
	if w.ScheduledAt != nil {
		return w.ScheduledAt.UTC(), true
	}
	if w.Date == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(DateLayout, w.Date); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, w.Date); err == nil {
		return parsed.UTC(), true
	}
	return time.Time{}, false
}

// IsDueConfirmation reports whether a planned workout's scheduled time has passed.
func (w Workout) IsDueConfirmation(now time.Time) bool {
	return w.Status == WorkoutStatusPlanned && w.ScheduledAt != nil && !w.ScheduledAt.After(now)
}

// Filter narrows store reads. Empty fields match everything.
type Filter struct {
	OwnerID       string
	OwnerUsername string
	Type          WorkoutType
	Statuses      []WorkoutStatus
}

// ScopedFilter converts an access scope into a store filter.
func ScopedFilter(scope access.Scope) Filter {
	return Filter{OwnerID: scope.OwnerID, OwnerUsername: scope.OwnerUsername}
}

// Matches evaluates the filter in memory.
func (f Filter) Matches(w Workout) bool {
	if f.OwnerID != "" && w.OwnerID != f.OwnerID {
		return false
	}
	if f.OwnerUsername != "" && w.OwnerUsername != f.OwnerUsername {
		return false
	}
	if f.Type != "" && w.Type != f.Type {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, status := range f.Statuses {
		if w.Status == status {
			return true
		}
	}
	return false
}

// NullableTime is a patch value that distinguishes "leave as is" from "set to null".
type NullableTime struct {
	Set  bool
	Time *time.Time
}

// SetTime builds a NullableTime that writes t (nil clears the field).
func SetTime(t *time.Time) NullableTime {
	return NullableTime{Set: true, Time: t}
}

// Patch is a partial update. UpdatedAt is always written.
type Patch struct {
	Title                   *string
	Type                    *WorkoutType
	Duration                *float64
	Calories                *float64
	Date                    *string
	Difficulty              *string
	Notes                   *string
	ScheduledAt             NullableTime
	Status                  *WorkoutStatus
	CompletedAt             NullableTime
	ConfirmationRequestedAt NullableTime
	UpdatedAt               time.Time
}

// Empty reports whether the patch changes nothing besides UpdatedAt.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Type == nil && p.Duration == nil && p.Calories == nil &&
		p.Date == nil && p.Difficulty == nil && p.Notes == nil && !p.ScheduledAt.Set &&
		p.Status == nil && !p.CompletedAt.Set && !p.ConfirmationRequestedAt.Set
}

// Apply returns w with the patch written over it.
func (p Patch) Apply(w Workout) Workout {
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.Type != nil {
		w.Type = *p.Type
	}
	if p.Duration != nil {
		w.Duration = *p.Duration
	}
	if p.Calories != nil {
		w.Calories = *p.Calories
	}
	if p.Date != nil {
		w.Date = *p.Date
	}
	if p.Difficulty != nil {
		w.Difficulty = *p.Difficulty
	}
	if p.Notes != nil {
		w.Notes = *p.Notes
	}
	if p.ScheduledAt.Set {
		w.ScheduledAt = p.ScheduledAt.Time
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
	if p.CompletedAt.Set {
		w.CompletedAt = p.CompletedAt.Time
	}
	if p.ConfirmationRequestedAt.Set {
		w.ConfirmationRequestedAt = p.ConfirmationRequestedAt.Time
	}
	w.UpdatedAt = p.UpdatedAt
	return w
}

// GroupField is a closed set of attributes usable with GroupCount.
type GroupField string

const (
	GroupByType          GroupField = "type"
	GroupByOwnerUsername GroupField = "ownerUsername"
)

// GroupCount is one bucket of a grouped count.
type GroupCount struct {
	Key   string
	Count int64
}
