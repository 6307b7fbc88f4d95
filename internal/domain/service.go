// Package domain defines the business logic for workout and consultation records.
package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/access"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/query"
)

const (
	HistoryDefaultLimit = 30
	HistoryMaxLimit     = 100
	adminTopOwners      = 10
)

// Service orchestrates workout and consultation workflows.
type Service struct {
	workouts      WorkoutStore
	consultations ConsultationStore
	now           func() time.Time
	newID         func() string
}

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// NewService constructs a Service.
func NewService(workouts WorkoutStore, consultations ConsultationStore, opts ...Option) *Service {
	s := &Service{
		workouts:      workouts,
		consultations: consultations,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock reading in UTC.
func (s *Service) Now() time.Time {
	return s.now().UTC()
}

// CreateWorkoutInput captures the payload from the API layer.
type CreateWorkoutInput struct {
	Title       string      `validate:"required"`
	Type        WorkoutType `validate:"required,oneof=strength cardio yoga"`
	Duration    *float64    `validate:"required,gt=0"`
	Calories    *float64    `validate:"omitempty,gte=0"`
	Date        string      `validate:"omitempty,datetime=2006-01-02"`
	Difficulty  string
	Notes       string
	ScheduledAt *time.Time
}

// UpdateWorkoutInput holds the editable fields present in an update request.
type UpdateWorkoutInput struct {
	Title       *string
	Type        *string
	Duration    *float64
	Calories    *float64
	Date        *string
	Difficulty  *string
	Notes       *string
	ScheduledAt NullableTime
}

// WorkoutPage is one page of a scoped listing.
type WorkoutPage struct {
	Items      []Workout
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// HistoryQuery parameterises WorkoutHistory.
type HistoryQuery struct {
	Status string
	Limit  int
	Scope  string
}

// AdminSummary is the cross-owner overview available to admins.
type AdminSummary struct {
	TotalWorkouts int64
	ByType        []GroupCount
	ByOwner       []GroupCount
}

// ListWorkouts returns a page of workouts visible to the caller.
func (s *Service) ListWorkouts(ctx context.Context, caller access.Caller, opts query.Options, requestedScope string) (*WorkoutPage, error) {
	if err := authenticated(caller); err != nil {
		return nil, err
	}

	filter := ScopedFilter(access.ResolveScope(caller, requestedScope))
	filter.Type = WorkoutType(opts.Filter.Type)
	if opts.Filter.Status != "" {
		filter.Statuses = []WorkoutStatus{WorkoutStatus(opts.Filter.Status)}
	}

	items, err := s.workouts.Find(ctx, filter, FindOptions{
		Sort:       opts.Sort,
		Skip:       opts.Skip,
		Limit:      opts.Limit,
		Projection: opts.Projection,
	})
	if err != nil {
		return nil, fmt.Errorf("find workouts: %w", err)
	}
	total, err := s.workouts.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count workouts: %w", err)
	}

	return &WorkoutPage{
		Items:      items,
		Page:       opts.Page,
		Limit:      opts.Limit,
		Total:      total,
		TotalPages: query.TotalPages(total, opts.Limit),
	}, nil
}

// GetWorkout fetches a single workout the caller may access.
func (s *Service) GetWorkout(ctx context.Context, caller access.Caller, id string) (*Workout, error) {
	if err := authenticated(caller); err != nil {
		return nil, err
	}
	id, err := ValidateID(id)
	if err != nil {
		return nil, err
	}
	return s.loadWorkout(ctx, caller, id)
}

// CreateWorkout validates the input and stores a planned workout owned by the caller.
func (s *Service) CreateWorkout(ctx context.Context, caller access.Caller, in CreateWorkoutInput) (*Workout, error) {
	if err := authenticated(caller); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := structError(in); err != nil {
		return nil, err
	}
	if !finite(*in.Duration) {
		return nil, invalid("duration must be a positive number")
	}

	now := s.Now()
	workout := Workout{
		ID:            s.newID(),
		Title:         in.Title,
		Type:          in.Type,
		Duration:      *in.Duration,
		Date:          in.Date,
		Difficulty:    strings.TrimSpace(in.Difficulty),
		Notes:         in.Notes,
		Status:        WorkoutStatusPlanned,
		OwnerID:       caller.ID,
		OwnerUsername: caller.Username,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Calories != nil && finite(*in.Calories) {
		workout.Calories = *in.Calories
	}
	if workout.Date == "" {
		workout.Date = now.Format(DateLayout)
	}
	if workout.Difficulty == "" {
		workout.Difficulty = DefaultDifficulty
	}
	if in.ScheduledAt != nil && !in.ScheduledAt.IsZero() {
		scheduled := in.ScheduledAt.UTC()
		workout.ScheduledAt = &scheduled
	}

	id, err := s.workouts.Insert(ctx, workout)
	if err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}
	workout.ID = id
	return &workout, nil
}

// UpdateWorkout writes the supplied editable fields.
func (s *Service) UpdateWorkout(ctx context.Context, caller access.Caller, id string, in UpdateWorkoutInput) (*Workout, error) {
	if err := authenticated(caller); err != nil {
		return nil, err
	}
	id, err := ValidateID(id)
	if err != nil {
		return nil, err
	}
	patch, err := in.patch(s.Now())
	if err != nil {
		return nil, err
	}

	workout, err := s.loadWorkout(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.workouts.UpdateFields(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("update workout: %w", err)
	}
	updated := patch.Apply(*workout)
	return &updated, nil
}

// TransitionWorkout moves a workout to the status named by action.
func (s *Service) TransitionWorkout(ctx context.Context, caller access.Caller, id, action string) (*Workout, error) {
	if err := authenticated(caller); err != nil {
		return nil, err
	}
	id, err := ValidateID(id)
	if err != nil {
		return nil, err
	}
	target, err := ParseWorkoutAction(action)
	if err != nil {
		return nil, err
	}

	workout, err := s.loadWorkout(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	patch := WorkoutTransition(target, s.Now())
	if err := s.workouts.UpdateFields(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("update workout status: %w", err)
	}
	updated := patch.Apply(*workout)
	return &updated, nil
}

// DeleteWorkout hard-deletes a workout.
func (s *Service) DeleteWorkout(ctx context.Context, caller access.Caller, id string) error {
	if err := authenticated(caller); err != nil {
		return err
	}
	id, err := ValidateID(id)
	if err != nil {
		return err
	}
	if _, err := s.loadWorkout(ctx, caller, id); err != nil {
		return err
	}
	if err := s.workouts.Delete(ctx, id, s.Now()); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// WorkoutHistory returns the most recent finished workouts visible to the caller.
func (s *Service) WorkoutHistory(ctx context.Context, caller access.Caller, q HistoryQuery) ([]Workout, error) {
	if err := authenticated(caller); err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = HistoryDefaultLimit
	}
	if limit > HistoryMaxLimit {
		limit = HistoryMaxLimit
	}

	filter := ScopedFilter(access.ResolveScope(caller, q.Scope))
	if status := strings.TrimSpace(q.Status); status != "" {
		filter.Statuses = []WorkoutStatus{WorkoutStatus(status)}
	} else {
		filter.Statuses = []WorkoutStatus{WorkoutStatusDone, WorkoutStatusMissed}
	}

	items, err := s.workouts.Find(ctx, filter, FindOptions{
		Sort: []query.SortKey{
			{Field: query.FieldCompletedAt, Order: query.Desc},
			{Field: query.FieldScheduledAt, Order: query.Desc},
			{Field: query.FieldUpdatedAt, Order: query.Desc},
		},
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("find workout history: %w", err)
	}
	return items, nil
}

// ProgressStats aggregates the caller's own workouts, whatever their role.
func (s *Service) ProgressStats(ctx context.Context, caller access.Caller) (ProgressStats, error) {
	if err := authenticated(caller); err != nil {
		return ProgressStats{}, err
	}
	items, err := s.workouts.Find(ctx, ScopedFilter(access.Own(caller)), FindOptions{})
	if err != nil {
		return ProgressStats{}, fmt.Errorf("find workouts for stats: %w", err)
	}
	return ComputeProgress(items, s.Now()), nil
}

// AdminSummary reports totals across every owner. Admin only.
func (s *Service) AdminSummary(ctx context.Context, caller access.Caller) (*AdminSummary, error) {
	if err := authenticated(caller); err != nil {
		return nil, err
	}
	if decision := access.Authorize(access.Request{Caller: caller, RequiredRole: access.RoleAdmin}); !decision.Allowed {
		return nil, forbidden(decision.Reason)
	}

	total, err := s.workouts.Count(ctx, Filter{})
	if err != nil {
		return nil, fmt.Errorf("count workouts: %w", err)
	}
	byType, err := s.workouts.GroupCount(ctx, Filter{}, GroupByType, 0)
	if err != nil {
		return nil, fmt.Errorf("group workouts by type: %w", err)
	}
	byOwner, err := s.workouts.GroupCount(ctx, Filter{}, GroupByOwnerUsername, adminTopOwners)
	if err != nil {
		return nil, fmt.Errorf("group workouts by owner: %w", err)
	}
	return &AdminSummary{TotalWorkouts: total, ByType: byType, ByOwner: byOwner}, nil
}

// BookConsultation stores a pending consultation for the caller.
func (s *Service) BookConsultation(ctx context.Context, caller access.Caller, in BookConsultationInput) (*Consultation, error) {
	if err := authenticated(caller); err != nil {
		return nil, err
	}
	now := s.Now()
	consultant, err := in.validate(now)
	if err != nil {
		return nil, err
	}

	consultation := Consultation{
		ID:             s.newID(),
		OwnerID:        caller.ID,
		OwnerUsername:  caller.Username,
		ConsultantID:   consultant.ID,
		ConsultantName: consultant.Name,
		ConsultantRole: consultant.Role,
		Specialty:      consultant.Specialty,
		Mode:           in.Mode,
		Phone:          in.Phone,
		ScheduledAt:    in.ScheduledAt.UTC(),
		Notes:          in.Notes,
		Status:         ConsultationStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	id, err := s.consultations.InsertConsultation(ctx, consultation)
	if err != nil {
		return nil, fmt.Errorf("insert consultation: %w", err)
	}
	consultation.ID = id
	return &consultation, nil
}

// ListConsultations returns the caller's bookings, or every booking for an admin asking for "all".
func (s *Service) ListConsultations(ctx context.Context, caller access.Caller, requestedScope string) ([]Consultation, error) {
	if err := authenticated(caller); err != nil {
		return nil, err
	}
	scope := access.ResolveScope(caller, requestedScope)
	items, err := s.consultations.ListConsultations(ctx, scope.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	return items, nil
}

// TransitionConsultation moves a consultation to the status named by action.
func (s *Service) TransitionConsultation(ctx context.Context, caller access.Caller, id, action string) (*Consultation, error) {
	if err := authenticated(caller); err != nil {
		return nil, err
	}
	id, err := ValidateID(id)
	if err != nil {
		return nil, err
	}
	target, err := ParseConsultationAction(action)
	if err != nil {
		return nil, err
	}

	consultation, err := s.consultations.FindConsultation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find consultation: %w", err)
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if !access.CanAccess(caller, consultation.OwnerID) {
		return nil, forbidden("personal data only")
	}
	decision := access.Authorize(access.Request{
		Caller:       caller,
		OwnerID:      consultation.OwnerID,
		RequiredRole: ConsultationTransitionRole(target),
	})
	if !decision.Allowed {
		return nil, forbidden("only admin can set this status")
	}

	now := s.Now()
	if err := s.consultations.UpdateConsultationStatus(ctx, id, target, now); err != nil {
		return nil, fmt.Errorf("update consultation status: %w", err)
	}
	consultation.Status = target
	consultation.UpdatedAt = now
	return consultation, nil
}

func (s *Service) loadWorkout(ctx context.Context, caller access.Caller, id string) (*Workout, error) {
	workout, err := s.workouts.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find workout: %w", err)
	}
	if workout == nil {
		return nil, ErrWorkoutNotFound
	}
	if decision := access.Authorize(access.Request{Caller: caller, OwnerID: workout.OwnerID}); !decision.Allowed {
		return nil, forbidden(decision.Reason)
	}
	return workout, nil
}

func (in UpdateWorkoutInput) patch(now time.Time) (Patch, error) {
	patch := Patch{UpdatedAt: now}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Patch{}, invalid("title must not be empty")
		}
		patch.Title = &title
	}
	if in.Type != nil {
		workoutType := WorkoutType(*in.Type)
		if !workoutType.Valid() {
			return Patch{}, invalid("invalid workout type")
		}
		patch.Type = &workoutType
	}
	if in.Duration != nil {
		if !finite(*in.Duration) || *in.Duration <= 0 {
			return Patch{}, invalid("duration must be a positive number")
		}
		patch.Duration = in.Duration
	}
	if in.Calories != nil {
		if !finite(*in.Calories) || *in.Calories < 0 {
			return Patch{}, invalid("calories must be a non-negative number")
		}
		patch.Calories = in.Calories
	}
	if in.Date != nil {
		if _, err := time.Parse(DateLayout, *in.Date); err != nil {
			return Patch{}, invalid("date must be formatted as YYYY-MM-DD")
		}
		patch.Date = in.Date
	}
	patch.Difficulty = in.Difficulty
	patch.Notes = in.Notes
	if in.ScheduledAt.Set {
		if in.ScheduledAt.Time != nil {
			scheduled := in.ScheduledAt.Time.UTC()
			patch.ScheduledAt = SetTime(&scheduled)
		} else {
			patch.ScheduledAt = SetTime(nil)
		}
	}

	if patch.Empty() {
		return Patch{}, invalid("no valid fields provided for update")
	}
	return patch, nil
}

func authenticated(caller access.Caller) error {
	if !caller.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}
