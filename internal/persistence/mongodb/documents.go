package mongodb

import (
	"time"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
)

type workoutDocument struct {
	ID                      string     `bson:"_id"`
	Title                   string     `bson:"title"`
	Type                    string     `bson:"type"`
	Duration                float64    `bson:"duration"`
	Calories                float64    `bson:"calories"`
	Date                    string     `bson:"date"`
	Difficulty              string     `bson:"difficulty"`
	Notes                   string     `bson:"notes"`
	ScheduledAt             *time.Time `bson:"scheduledAt"`
	Status                  string     `bson:"status"`
	CompletedAt             *time.Time `bson:"completedAt"`
	ConfirmationRequestedAt *time.Time `bson:"confirmationRequestedAt"`
	OwnerID                 string     `bson:"ownerId"`
	OwnerUsername           string     `bson:"ownerUsername"`
	CreatedAt               time.Time  `bson:"createdAt"`
	UpdatedAt               time.Time  `bson:"updatedAt"`
}

func toWorkoutDocument(w domain.Workout) workoutDocument {
	return workoutDocument{
		ID:                      w.ID,
		Title:                   w.Title,
		Type:                    string(w.Type),
		Duration:                w.Duration,
		Calories:                w.Calories,
		Date:                    w.Date,
		Difficulty:              w.Difficulty,
		Notes:                   w.Notes,
		ScheduledAt:             w.ScheduledAt,
		Status:                  string(w.Status),
		CompletedAt:             w.CompletedAt,
		ConfirmationRequestedAt: w.ConfirmationRequestedAt,
		OwnerID:                 w.OwnerID,
		OwnerUsername:           w.OwnerUsername,
		CreatedAt:               w.CreatedAt,
		UpdatedAt:               w.UpdatedAt,
	}
}

func (d workoutDocument) toDomain() domain.Workout {
	return domain.Workout{
		ID:                      d.ID,
		Title:                   d.Title,
		Type:                    domain.WorkoutType(d.Type),
		Duration:                d.Duration,
		Calories:                d.Calories,
		Date:                    d.Date,
		Difficulty:              d.Difficulty,
		Notes:                   d.Notes,
		ScheduledAt:             utcPtr(d.ScheduledAt),
		Status:                  domain.WorkoutStatus(d.Status),
		CompletedAt:             utcPtr(d.CompletedAt),
		ConfirmationRequestedAt: utcPtr(d.ConfirmationRequestedAt),
		OwnerID:                 d.OwnerID,
		OwnerUsername:           d.OwnerUsername,
		CreatedAt:               d.CreatedAt.UTC(),
		UpdatedAt:               d.UpdatedAt.UTC(),
	}
}

type consultationDocument struct {
	ID             string    `bson:"_id"`
	OwnerID        string    `bson:"ownerId"`
	OwnerUsername  string    `bson:"ownerUsername"`
	ConsultantID   string    `bson:"consultantId"`
	ConsultantName string    `bson:"consultantName"`
	ConsultantRole string    `bson:"consultantRole"`
	Specialty      string    `bson:"specialty"`
	Mode           string    `bson:"mode"`
	Phone          string    `bson:"phone"`
	ScheduledAt    time.Time `bson:"scheduledAt"`
	Notes          string    `bson:"notes"`
	Status         string    `bson:"status"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

func toConsultationDocument(c domain.Consultation) consultationDocument {
	return consultationDocument{
		ID:             c.ID,
		OwnerID:        c.OwnerID,
		OwnerUsername:  c.OwnerUsername,
		ConsultantID:   c.ConsultantID,
		ConsultantName: c.ConsultantName,
		ConsultantRole: c.ConsultantRole,
		Specialty:      c.Specialty,
		Mode:           c.Mode,
		Phone:          c.Phone,
		ScheduledAt:    c.ScheduledAt,
		Notes:          c.Notes,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (d consultationDocument) toDomain() domain.Consultation {
	return domain.Consultation{
		ID:             d.ID,
		OwnerID:        d.OwnerID,
		OwnerUsername:  d.OwnerUsername,
		ConsultantID:   d.ConsultantID,
		ConsultantName: d.ConsultantName,
		ConsultantRole: d.ConsultantRole,
		Specialty:      d.Specialty,
		Mode:           d.Mode,
		Phone:          d.Phone,
		ScheduledAt:    d.ScheduledAt.UTC(),
		Notes:          d.Notes,
		Status:         domain.ConsultationStatus(d.Status),
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
