// Package memory provides an in-process store for local development and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/query"
)

// Store keeps workouts and consultations in maps guarded by a single lock.
type Store struct {
	mu            sync.RWMutex
	workouts      map[string]domain.Workout
	consultations map[string]domain.Consultation
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		workouts:      make(map[string]domain.Workout),
		consultations: make(map[string]domain.Consultation),
	}
}

// Insert implements domain.WorkoutStore.
func (s *Store) Insert(ctx context.Context, workout domain.Workout) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(workout.ID) == "" {
		workout.ID = uuid.NewString()
	}
	s.workouts[workout.ID] = cloneWorkout(workout)
	return workout.ID, nil
}

// FindOne implements domain.WorkoutStore.
func (s *Store) FindOne(ctx context.Context, id string) (*domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workout, ok := s.workouts[id]
	if !ok {
		return nil, nil
	}
	out := cloneWorkout(workout)
	return &out, nil
}

// Find implements domain.WorkoutStore. Projection is left to the caller.
func (s *Store) Find(ctx context.Context, filter domain.Filter, opts domain.FindOptions) ([]domain.Workout, error) {
	s.mu.RLock()
	matched := make([]domain.Workout, 0, len(s.workouts))
	for _, w := range s.workouts {
		if filter.Matches(w) {
			matched = append(matched, cloneWorkout(w))
		}
	}
	s.mu.RUnlock()

	sortWorkouts(matched, opts.Sort)

	if opts.Skip > 0 {
		if opts.Skip >= len(matched) {
			return []domain.Workout{}, nil
		}
		matched = matched[opts.Skip:]
	}
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// Count implements domain.WorkoutStore.
func (s *Store) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, w := range s.workouts {
		if filter.Matches(w) {
			total++
		}
	}
	return total, nil
}

// UpdateFields implements domain.WorkoutStore.
func (s *Store) UpdateFields(ctx context.Context, id string, patch domain.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	workout, ok := s.workouts[id]
	if !ok {
		return domain.ErrWorkoutNotFound
	}
	s.workouts[id] = cloneWorkout(patch.Apply(workout))
	return nil
}

// Delete implements domain.WorkoutStore.
func (s *Store) Delete(ctx context.Context, id string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workouts[id]; !ok {
		return domain.ErrWorkoutNotFound
	}
	delete(s.workouts, id)
	return nil
}

// GroupCount implements domain.WorkoutStore.
func (s *Store) GroupCount(ctx context.Context, filter domain.Filter, field domain.GroupField, limit int) ([]domain.GroupCount, error) {
	s.mu.RLock()
	counts := make(map[string]int64)
	for _, w := range s.workouts {
		if !filter.Matches(w) {
			continue
		}
		switch field {
		case domain.GroupByType:
			counts[string(w.Type)]++
		case domain.GroupByOwnerUsername:
			counts[w.OwnerUsername]++
		}
	}
	s.mu.RUnlock()

	out := make([]domain.GroupCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, domain.GroupCount{Key: key, Count: count})
	}
	domain.SortGroupCounts(out)
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// InsertConsultation implements domain.ConsultationStore.
func (s *Store) InsertConsultation(ctx context.Context, consultation domain.Consultation) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(consultation.ID) == "" {
		consultation.ID = uuid.NewString()
	}
	s.consultations[consultation.ID] = consultation
	return consultation.ID, nil
}

// FindConsultation implements domain.ConsultationStore.
func (s *Store) FindConsultation(ctx context.Context, id string) (*domain.Consultation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	consultation, ok := s.consultations[id]
	if !ok {
		return nil, nil
	}
	return &consultation, nil
}

// ListConsultations implements domain.ConsultationStore.
func (s *Store) ListConsultations(ctx context.Context, ownerID string) ([]domain.Consultation, error) {
	s.mu.RLock()
	out := make([]domain.Consultation, 0, len(s.consultations))
	for _, c := range s.consultations {
		if ownerID == "" || c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpdateConsultationStatus implements domain.ConsultationStore.
func (s *Store) UpdateConsultationStatus(ctx context.Context, id string, status domain.ConsultationStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	consultation, ok := s.consultations[id]
	if !ok {
		return domain.ErrConsultationNotFound
	}
	consultation.Status = status
	consultation.UpdatedAt = updatedAt
	s.consultations[id] = consultation
	return nil
}

func sortWorkouts(items []domain.Workout, keys []query.SortKey) {
	if len(keys) == 0 {
		keys = query.DefaultSort
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, key := range keys {
			cmp := compareField(items[i], items[j], key.Field)
			if cmp == 0 {
				continue
			}
			if key.Order == query.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return items[i].ID < items[j].ID
	})
}

// compareField orders absent timestamps before present ones.
func compareField(a, b domain.Workout, field query.Field) int {
	switch field {
	case query.FieldID:
		return strings.Compare(a.ID, b.ID)
	case query.FieldTitle:
		return strings.Compare(a.Title, b.Title)
	case query.FieldType:
		return strings.Compare(string(a.Type), string(b.Type))
	case query.FieldDuration:
		return compareFloat(a.Duration, b.Duration)
	case query.FieldCalories:
		return compareFloat(a.Calories, b.Calories)
	case query.FieldDate:
		return strings.Compare(a.Date, b.Date)
	case query.FieldDifficulty:
		return strings.Compare(a.Difficulty, b.Difficulty)
	case query.FieldNotes:
		return strings.Compare(a.Notes, b.Notes)
	case query.FieldScheduledAt:
		return compareTimePtr(a.ScheduledAt, b.ScheduledAt)
	case query.FieldStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	case query.FieldCompletedAt:
		return compareTimePtr(a.CompletedAt, b.CompletedAt)
	case query.FieldConfirmationRequestedAt:
		return compareTimePtr(a.ConfirmationRequestedAt, b.ConfirmationRequestedAt)
	case query.FieldOwnerID:
		return strings.Compare(a.OwnerID, b.OwnerID)
	case query.FieldOwnerUsername:
		return strings.Compare(a.OwnerUsername, b.OwnerUsername)
	case query.FieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case query.FieldUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

func cloneWorkout(w domain.Workout) domain.Workout {
	w.ScheduledAt = cloneTime(w.ScheduledAt)
	w.CompletedAt = cloneTime(w.CompletedAt)
	w.ConfirmationRequestedAt = cloneTime(w.ConfirmationRequestedAt)
	return w
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
