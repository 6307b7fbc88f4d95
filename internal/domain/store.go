package domain

import (
	"context"
	"time"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/query"
)

// FindOptions carries sort, paging and projection for WorkoutStore.Find.
// A zero Limit returns every matching record.
type FindOptions struct {
	Sort       []query.SortKey
	Skip       int
	Limit      int
	Projection query.Projection
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=domain_test

// WorkoutStore captures the persistence primitives the service relies on.
// Writes are last-write-wins; no concurrency token is exchanged.
type WorkoutStore interface {
	Insert(ctx context.Context, workout Workout) (string, error)
	// FindOne returns nil without error when the id is absent.
	FindOne(ctx context.Context, id string) (*Workout, error)
	Find(ctx context.Context, filter Filter, opts FindOptions) ([]Workout, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	UpdateFields(ctx context.Context, id string, patch Patch) error
	// Delete removes the record; deletedAt stamps any event the store emits.
	Delete(ctx context.Context, id string, deletedAt time.Time) error
	// GroupCount buckets matching records by field, largest bucket first.
	// A zero limit returns every bucket.
	GroupCount(ctx context.Context, filter Filter, field GroupField, limit int) ([]GroupCount, error)
}

// ConsultationStore persists consultation bookings.
type ConsultationStore interface {
	InsertConsultation(ctx context.Context, consultation Consultation) (string, error)
	FindConsultation(ctx context.Context, id string) (*Consultation, error)
	// ListConsultations returns bookings ordered by scheduled time; an empty ownerID lists all.
	ListConsultations(ctx context.Context, ownerID string) ([]Consultation, error)
	UpdateConsultationStatus(ctx context.Context, id string, status ConsultationStatus, updatedAt time.Time) error
}
