// Package mongodb stores workouts and consultations in MongoDB collections.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/query"
)

const (
	workoutsCollection      = "workouts"
	consultationsCollection = "consultations"
)

// Store is a MongoDB-backed domain.WorkoutStore and domain.ConsultationStore.
type Store struct {
	client        *mongo.Client
	workouts      *mongo.Collection
	consultations *mongo.Collection
}

// Connect dials uri, pings the deployment and returns a Store bound to database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	return &Store{
		client:        client,
		workouts:      db.Collection(workoutsCollection),
		consultations: db.Collection(consultationsCollection),
	}, nil
}

// EnsureIndexes creates the indexes used by scoped listings.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.workouts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create workout indexes: %w", err)
	}
	_, err = s.consultations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "scheduledAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create consultation indexes: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Insert implements domain.WorkoutStore.
func (s *Store) Insert(ctx context.Context, workout domain.Workout) (string, error) {
	if _, err := s.workouts.InsertOne(ctx, toWorkoutDocument(workout)); err != nil {
		return "", err
	}
	return workout.ID, nil
}

// FindOne implements domain.WorkoutStore.
func (s *Store) FindOne(ctx context.Context, id string) (*domain.Workout, error) {
	var doc workoutDocument
	if err := s.workouts.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	workout := doc.toDomain()
	return &workout, nil
}

// Find implements domain.WorkoutStore.
func (s *Store) Find(ctx context.Context, filter domain.Filter, opts domain.FindOptions) ([]domain.Workout, error) {
	findOpts := options.Find().SetSort(sortDocument(opts.Sort))
	if opts.Skip > 0 {
		findOpts.SetSkip(int64(opts.Skip))
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Projection != nil {
		findOpts.SetProjection(projectionDocument(opts.Projection))
	}

	cursor, err := s.workouts.Find(ctx, filterDocument(filter), findOpts)
	if err != nil {
		return nil, err
	}
	var docs []workoutDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Workout, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

// Count implements domain.WorkoutStore.
func (s *Store) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	return s.workouts.CountDocuments(ctx, filterDocument(filter))
}

// UpdateFields implements domain.WorkoutStore.
func (s *Store) UpdateFields(ctx context.Context, id string, patch domain.Patch) error {
	res, err := s.workouts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": setDocument(patch)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrWorkoutNotFound
	}
	return nil
}

// Delete implements domain.WorkoutStore.
func (s *Store) Delete(ctx context.Context, id string, _ time.Time) error {
	res, err := s.workouts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrWorkoutNotFound
	}
	return nil
}

// GroupCount implements domain.WorkoutStore with a $group aggregation.
func (s *Store) GroupCount(ctx context.Context, filter domain.Filter, field domain.GroupField, limit int) ([]domain.GroupCount, error) {
	if field != domain.GroupByType && field != domain.GroupByOwnerUsername {
		return nil, fmt.Errorf("unsupported group field: %s", field)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filterDocument(filter)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + string(field)},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cursor, err := s.workouts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var buckets []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}

	out := make([]domain.GroupCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.GroupCount{Key: b.Key, Count: b.Count})
	}
	return out, nil
}

// InsertConsultation implements domain.ConsultationStore.
func (s *Store) InsertConsultation(ctx context.Context, consultation domain.Consultation) (string, error) {
	if _, err := s.consultations.InsertOne(ctx, toConsultationDocument(consultation)); err != nil {
		return "", err
	}
	return consultation.ID, nil
}

// FindConsultation implements domain.ConsultationStore.
func (s *Store) FindConsultation(ctx context.Context, id string) (*domain.Consultation, error) {
	var doc consultationDocument
	if err := s.consultations.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	c := doc.toDomain()
	return &c, nil
}

// ListConsultations implements domain.ConsultationStore.
func (s *Store) ListConsultations(ctx context.Context, ownerID string) ([]domain.Consultation, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["ownerId"] = ownerID
	}
	cursor, err := s.consultations.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []consultationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Consultation, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

// UpdateConsultationStatus implements domain.ConsultationStore.
func (s *Store) UpdateConsultationStatus(ctx context.Context, id string, status domain.ConsultationStatus, updatedAt time.Time) error {
	res, err := s.consultations.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": updatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrConsultationNotFound
	}
	return nil
}

func filterDocument(filter domain.Filter) bson.M {
	doc := bson.M{}
	if filter.OwnerID != "" {
		doc["ownerId"] = filter.OwnerID
	}
	if filter.OwnerUsername != "" {
		doc["ownerUsername"] = filter.OwnerUsername
	}
	if filter.Type != "" {
		doc["type"] = string(filter.Type)
	}
	switch len(filter.Statuses) {
	case 0:
	case 1:
		doc["status"] = string(filter.Statuses[0])
	default:
		statuses := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			statuses[i] = string(status)
		}
		doc["status"] = bson.M{"$in": statuses}
	}
	return doc
}

func sortDocument(keys []query.SortKey) bson.D {
	if len(keys) == 0 {
		keys = query.DefaultSort
	}
	doc := make(bson.D, 0, len(keys)+1)
	for _, key := range keys {
		doc = append(doc, bson.E{Key: fieldName(key.Field), Value: int(key.Order)})
	}
	return append(doc, bson.E{Key: "_id", Value: 1})
}

func projectionDocument(projection query.Projection) bson.D {
	doc := make(bson.D, 0, len(projection))
	for _, field := range projection {
		doc = append(doc, bson.E{Key: fieldName(field), Value: 1})
	}
	return doc
}

func setDocument(patch domain.Patch) bson.M {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Type != nil {
		set["type"] = string(*patch.Type)
	}
	if patch.Duration != nil {
		set["duration"] = *patch.Duration
	}
	if patch.Calories != nil {
		set["calories"] = *patch.Calories
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Difficulty != nil {
		set["difficulty"] = *patch.Difficulty
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	if patch.ScheduledAt.Set {
		set["scheduledAt"] = patch.ScheduledAt.Time
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.CompletedAt.Set {
		set["completedAt"] = patch.CompletedAt.Time
	}
	if patch.ConfirmationRequestedAt.Set {
		set["confirmationRequestedAt"] = patch.ConfirmationRequestedAt.Time
	}
	return set
}

// fieldName maps a query field onto its document key.
func fieldName(field query.Field) string {
	if field == query.FieldID {
		return "_id"
	}
	return string(field)
}
