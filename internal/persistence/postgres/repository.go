package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/events"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/observability"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/query"
)

const workoutColumns = `id, title, type, duration, calories, date, difficulty, notes, scheduled_at, status, completed_at, confirmation_requested_at, owner_id, owner_username, created_at, updated_at`

const consultationColumns = `id, owner_id, owner_username, consultant_id, consultant_name, consultant_role, specialty, mode, phone, scheduled_at, notes, status, created_at, updated_at`

// Repository provides Postgres-backed persistence for workouts, consultations and outbox events.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists the workout and records a workout.created event inside a single transaction.
func (r *Repository) Insert(ctx context.Context, workout domain.Workout) (id string, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insertWorkout = `INSERT INTO workouts (` + workoutColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`

	_, err = tx.Exec(ctx, insertWorkout,
		workout.ID,
		workout.Title,
		string(workout.Type),
		workout.Duration,
		workout.Calories,
		workout.Date,
		workout.Difficulty,
		workout.Notes,
		workout.ScheduledAt,
		string(workout.Status),
		workout.CompletedAt,
		workout.ConfirmationRequestedAt,
		workout.OwnerID,
		workout.OwnerUsername,
		workout.CreatedAt,
		workout.UpdatedAt,
	)
	if err != nil {
		return "", err
	}

	if err = r.insertOutbox(ctx, tx, workout, events.TypeWorkoutCreated, events.WorkoutCreated{
		WorkoutID:     workout.ID,
		OwnerID:       workout.OwnerID,
		OwnerUsername: workout.OwnerUsername,
		Title:         workout.Title,
		Type:          string(workout.Type),
		Duration:      workout.Duration,
		Calories:      workout.Calories,
		Date:          workout.Date,
		ScheduledAt:   workout.ScheduledAt,
		OccurredAt:    workout.CreatedAt,
	}, workout.CreatedAt); err != nil {
		return "", err
	}

	if err = tx.Commit(ctx); err != nil {
		return "", err
	}
	observability.RecordWorkoutPersisted(workout.UpdatedAt)
	return workout.ID, nil
}

// FindOne retrieves a workout by ID, returning nil when absent.
func (r *Repository) FindOne(ctx context.Context, id string) (*domain.Workout, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id=$1`, id)
	workout, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &workout, nil
}

// Find lists workouts matching filter with the requested order and window.
func (r *Repository) Find(ctx context.Context, filter domain.Filter, opts domain.FindOptions) ([]domain.Workout, error) {
	where, args := whereClause(filter)
	sql := `SELECT ` + workoutColumns + ` FROM workouts` + where + orderClause(opts.Sort)

	if opts.Skip > 0 {
		args = append(args, opts.Skip)
		sql += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Workout, 0, opts.Limit)
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, workout)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Count returns the number of workouts matching filter.
func (r *Repository) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	where, args := whereClause(filter)
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM workouts`+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateFields writes the patch and records the matching outbox events in one transaction.
func (r *Repository) UpdateFields(ctx context.Context, id string, patch domain.Patch) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	var current domain.Workout
	var previousStatus string
	err = tx.QueryRow(ctx, `SELECT id, owner_id, status FROM workouts WHERE id=$1 FOR UPDATE`, id).
		Scan(&current.ID, &current.OwnerID, &previousStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = domain.ErrWorkoutNotFound
		}
		return err
	}

	set, args, edited := setClause(patch)
	args = append(args, id)
	if _, err = tx.Exec(ctx, fmt.Sprintf(`UPDATE workouts SET %s WHERE id=$%d`, set, len(args)), args...); err != nil {
		return err
	}

	if patch.Status != nil {
		if err = r.insertOutbox(ctx, tx, current, events.TypeWorkoutStatusChanged, events.WorkoutStatusChanged{
			WorkoutID:      id,
			OwnerID:        current.OwnerID,
			PreviousStatus: previousStatus,
			Status:         string(*patch.Status),
			CompletedAt:    patch.CompletedAt.Time,
			OccurredAt:     patch.UpdatedAt,
		}, patch.UpdatedAt); err != nil {
			return err
		}
	}
	if len(edited) > 0 {
		if err = r.insertOutbox(ctx, tx, current, events.TypeWorkoutUpdated, events.WorkoutUpdated{
			WorkoutID:  id,
			OwnerID:    current.OwnerID,
			Fields:     edited,
			OccurredAt: patch.UpdatedAt,
		}, patch.UpdatedAt); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	observability.RecordWorkoutPersisted(patch.UpdatedAt)
	return nil
}

// Delete removes a workout and records a workout.deleted event.
func (r *Repository) Delete(ctx context.Context, id string, deletedAt time.Time) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	current := domain.Workout{ID: id}
	if err = tx.QueryRow(ctx, `DELETE FROM workouts WHERE id=$1 RETURNING owner_id`, id).Scan(&current.OwnerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = domain.ErrWorkoutNotFound
		}
		return err
	}

	deletedAt = deletedAt.UTC()
	if err = r.insertOutbox(ctx, tx, current, events.TypeWorkoutDeleted, events.WorkoutDeleted{
		WorkoutID:  id,
		OwnerID:    current.OwnerID,
		OccurredAt: deletedAt,
	}, deletedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GroupCount buckets workouts by a whitelisted column, largest bucket first.
func (r *Repository) GroupCount(ctx context.Context, filter domain.Filter, field domain.GroupField, limit int) ([]domain.GroupCount, error) {
	column, ok := groupColumns[field]
	if !ok {
		return nil, fmt.Errorf("unsupported group field: %s", field)
	}

	where, args := whereClause(filter)
	sql := fmt.Sprintf(`SELECT %[1]s, COUNT(*) FROM workouts%[2]s GROUP BY %[1]s ORDER BY COUNT(*) DESC, %[1]s ASC`, column, where)
	if limit > 0 {
		args = append(args, limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.GroupCount, 0)
	for rows.Next() {
		var bucket domain.GroupCount
		if err := rows.Scan(&bucket.Key, &bucket.Count); err != nil {
			return nil, err
		}
		results = append(results, bucket)
	}
	return results, rows.Err()
}

// InsertConsultation implements domain.ConsultationStore.
func (r *Repository) InsertConsultation(ctx context.Context, c domain.Consultation) (string, error) {
	_, err := r.pool.Exec(ctx, `INSERT INTO consultations (`+consultationColumns+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		c.ID, c.OwnerID, c.OwnerUsername, c.ConsultantID, c.ConsultantName, c.ConsultantRole, c.Specialty,
		c.Mode, c.Phone, c.ScheduledAt, c.Notes, string(c.Status), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// FindConsultation implements domain.ConsultationStore.
func (r *Repository) FindConsultation(ctx context.Context, id string) (*domain.Consultation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+consultationColumns+` FROM consultations WHERE id=$1`, id)
	c, err := scanConsultation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListConsultations implements domain.ConsultationStore.
func (r *Repository) ListConsultations(ctx context.Context, ownerID string) ([]domain.Consultation, error) {
	sql := `SELECT ` + consultationColumns + ` FROM consultations`
	args := []any{}
	if ownerID != "" {
		sql += ` WHERE owner_id=$1`
		args = append(args, ownerID)
	}
	sql += ` ORDER BY scheduled_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Consultation, 0)
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// UpdateConsultationStatus implements domain.ConsultationStore.
func (r *Repository) UpdateConsultationStatus(ctx context.Context, id string, status domain.ConsultationStatus, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE consultations SET status=$1, updated_at=$2 WHERE id=$3`, string(status), updatedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConsultationNotFound
	}
	return nil
}

func (r *Repository) insertOutbox(ctx context.Context, tx pgx.Tx, workout domain.Workout, eventType string, payload interface{}, occurredAt time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	meta := eventCatalog[eventType]
	if meta.Topic == "" {
		return fmt.Errorf("unknown event type: %s", eventType)
	}

	partitionKey := meta.PartitionKeyFn(workout)
	dedupeKey := fmt.Sprintf("%s:%s:%d", workout.ID, eventType, occurredAt.UnixNano())

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, schema_subject, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err = tx.Exec(ctx, stmt,
		events.AggregateWorkout,
		workout.ID,
		eventType,
		meta.Topic,
		meta.SchemaSubject,
		partitionKey,
		body,
		dedupeKey,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (domain.Workout, error) {
	var w domain.Workout
	var workoutType, status string
	if err := row.Scan(&w.ID, &w.Title, &workoutType, &w.Duration, &w.Calories, &w.Date, &w.Difficulty, &w.Notes,
		&w.ScheduledAt, &status, &w.CompletedAt, &w.ConfirmationRequestedAt, &w.OwnerID, &w.OwnerUsername, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return domain.Workout{}, err
	}
	w.Type = domain.WorkoutType(workoutType)
	w.Status = domain.WorkoutStatus(status)
	w.CreatedAt = w.CreatedAt.UTC()
	w.UpdatedAt = w.UpdatedAt.UTC()
	return w, nil
}

func scanConsultation(row rowScanner) (domain.Consultation, error) {
	var c domain.Consultation
	var status string
	if err := row.Scan(&c.ID, &c.OwnerID, &c.OwnerUsername, &c.ConsultantID, &c.ConsultantName, &c.ConsultantRole, &c.Specialty,
		&c.Mode, &c.Phone, &c.ScheduledAt, &c.Notes, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Consultation{}, err
	}
	c.Status = domain.ConsultationStatus(status)
	return c, nil
}

func whereClause(filter domain.Filter) (string, []any) {
	conds := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id=$%d", len(args)))
	}
	if filter.OwnerUsername != "" {
		args = append(args, filter.OwnerUsername)
		conds = append(conds, fmt.Sprintf("owner_username=$%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conds = append(conds, fmt.Sprintf("type=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause mirrors document-store ordering: absent values sort lowest.
func orderClause(keys []query.SortKey) string {
	if len(keys) == 0 {
		keys = query.DefaultSort
	}
	parts := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		column, ok := sortColumns[key.Field]
		if !ok {
			continue
		}
		if key.Order == query.Desc {
			parts = append(parts, column+" DESC NULLS LAST")
		} else {
			parts = append(parts, column+" ASC NULLS FIRST")
		}
	}
	parts = append(parts, "id ASC")
	return " ORDER BY " + strings.Join(parts, ", ")
}

// setClause returns the SET list, its arguments and the editable fields written.
func setClause(patch domain.Patch) (string, []any, []string) {
	sets := make([]string, 0, 12)
	args := make([]any, 0, 12)
	edited := make([]string, 0, 8)
	add := func(column string, value any, field query.Field, editable bool) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
		if editable {
			edited = append(edited, string(field))
		}
	}

	if patch.Title != nil {
		add("title", *patch.Title, query.FieldTitle, true)
	}
	if patch.Type != nil {
		add("type", string(*patch.Type), query.FieldType, true)
	}
	if patch.Duration != nil {
		add("duration", *patch.Duration, query.FieldDuration, true)
	}
	if patch.Calories != nil {
		add("calories", *patch.Calories, query.FieldCalories, true)
	}
	if patch.Date != nil {
		add("date", *patch.Date, query.FieldDate, true)
	}
	if patch.Difficulty != nil {
		add("difficulty", *patch.Difficulty, query.FieldDifficulty, true)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes, query.FieldNotes, true)
	}
	if patch.ScheduledAt.Set {
		add("scheduled_at", patch.ScheduledAt.Time, query.FieldScheduledAt, true)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status), query.FieldStatus, false)
	}
	if patch.CompletedAt.Set {
		add("completed_at", patch.CompletedAt.Time, query.FieldCompletedAt, false)
	}
	if patch.ConfirmationRequestedAt.Set {
		add("confirmation_requested_at", patch.ConfirmationRequestedAt.Time, query.FieldConfirmationRequestedAt, false)
	}
	add("updated_at", patch.UpdatedAt, query.FieldUpdatedAt, false)
	return strings.Join(sets, ", "), args, edited
}

var sortColumns = map[query.Field]string{
	query.FieldID:                      "id",
	query.FieldTitle:                   "title",
	query.FieldType:                    "type",
	query.FieldDuration:                "duration",
	query.FieldCalories:                "calories",
	query.FieldDate:                    "date",
	query.FieldDifficulty:              "difficulty",
	query.FieldNotes:                   "notes",
	query.FieldScheduledAt:             "scheduled_at",
	query.FieldStatus:                  "status",
	query.FieldCompletedAt:             "completed_at",
	query.FieldConfirmationRequestedAt: "confirmation_requested_at",
	query.FieldOwnerID:                 "owner_id",
	query.FieldOwnerUsername:           "owner_username",
	query.FieldCreatedAt:               "created_at",
	query.FieldUpdatedAt:               "updated_at",
}

var groupColumns = map[domain.GroupField]string{
	domain.GroupByType:          "type",
	domain.GroupByOwnerUsername: "owner_username",
}

// EventMetadata describes how to route an outbox event.
type EventMetadata struct {
	Topic          string
	SchemaSubject  string
	PartitionKeyFn func(domain.Workout) string
}

func byOwner(w domain.Workout) string { return w.OwnerID }

func byWorkout(w domain.Workout) string { return w.ID }

var eventCatalog = map[string]EventMetadata{
	events.TypeWorkoutCreated: {
		Topic:          events.TopicWorkoutEvents,
		SchemaSubject:  events.TopicWorkoutEvents + "-value",
		PartitionKeyFn: byOwner,
	},
	events.TypeWorkoutUpdated: {
		Topic:          events.TopicWorkoutEvents,
		SchemaSubject:  events.TopicWorkoutEvents + "-value",
		PartitionKeyFn: byOwner,
	},
	events.TypeWorkoutDeleted: {
		Topic:          events.TopicWorkoutEvents,
		SchemaSubject:  events.TopicWorkoutEvents + "-value",
		PartitionKeyFn: byOwner,
	},
	events.TypeWorkoutStatusChanged: {
		Topic:          events.TopicWorkoutStatusChanged,
		SchemaSubject:  events.TopicWorkoutStatusChanged + "-value",
		PartitionKeyFn: byWorkout,
	},
}
