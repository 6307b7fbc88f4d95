package api

import (
	"time"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/access"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/query"
)

// workoutView is a workout as rendered to clients. Keys follow query.Field
// names so a projection can select them directly.
type workoutView map[string]any

func toWorkoutView(w domain.Workout, caller access.Caller, now time.Time) workoutView {
	return workoutView{
		string(query.FieldID):                      w.ID,
		string(query.FieldTitle):                   w.Title,
		string(query.FieldType):                    string(w.Type),
		string(query.FieldDuration):                w.Duration,
		string(query.FieldCalories):                w.Calories,
		string(query.FieldDate):                    w.Date,
		string(query.FieldDifficulty):              w.Difficulty,
		string(query.FieldNotes):                   w.Notes,
		string(query.FieldScheduledAt):             w.ScheduledAt,
		string(query.FieldStatus):                  string(w.Status),
		string(query.FieldCompletedAt):             w.CompletedAt,
		string(query.FieldConfirmationRequestedAt): w.ConfirmationRequestedAt,
		string(query.FieldOwnerID):                 w.OwnerID,
		string(query.FieldOwnerUsername):           w.OwnerUsername,
		string(query.FieldCreatedAt):               w.CreatedAt,
		string(query.FieldUpdatedAt):               w.UpdatedAt,
		"canManage":                                access.CanAccess(caller, w.OwnerID),
		"isDueConfirmation":                        w.IsDueConfirmation(now),
	}
}

// project keeps the selected fields plus the computed flags.
func (v workoutView) project(projection query.Projection) workoutView {
	if projection == nil {
		return v
	}
	out := workoutView{
		"canManage":         v["canManage"],
		"isDueConfirmation": v["isDueConfirmation"],
	}
	for _, field := range projection {
		if value, ok := v[string(field)]; ok {
			out[string(field)] = value
		}
	}
	return out
}

// Pagination describes the page returned by a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListWorkoutsResponse packages list results.
type ListWorkoutsResponse struct {
	Items      []workoutView `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// ItemsResponse wraps an unpaginated collection.
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

// CreatedResponse is returned by create endpoints.
type CreatedResponse struct {
	Message    string `json:"message"`
	InsertedID string `json:"insertedId"`
}

// MessageResponse acknowledges a write.
type MessageResponse struct {
	Message string `json:"message"`
}

// GroupCountView is one bucket of a grouped count.
type GroupCountView struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

func toGroupCountViews(counts []domain.GroupCount) []GroupCountView {
	out := make([]GroupCountView, 0, len(counts))
	for _, c := range counts {
		out = append(out, GroupCountView{Key: c.Key, Count: c.Count})
	}
	return out
}

// ProgressResponse reports the caller's progress statistics.
type ProgressResponse struct {
	TotalWorkouts     int              `json:"totalWorkouts"`
	Done              int              `json:"done"`
	Missed            int              `json:"missed"`
	Planned           int              `json:"planned"`
	CompletionRate    int              `json:"completionRate"`
	WeeklyDone        int              `json:"weeklyDone"`
	MonthlyDone       int              `json:"monthlyDone"`
	TotalDurationDone float64          `json:"totalDurationDone"`
	TotalCaloriesDone float64          `json:"totalCaloriesDone"`
	StreakDays        int              `json:"streakDays"`
	DoneByType        []GroupCountView `json:"doneByType"`
}

func toProgressResponse(stats domain.ProgressStats) ProgressResponse {
	return ProgressResponse{
		TotalWorkouts:     stats.TotalWorkouts,
		Done:              stats.Done,
		Missed:            stats.Missed,
		Planned:           stats.Planned,
		CompletionRate:    stats.CompletionRate,
		WeeklyDone:        stats.WeeklyDone,
		MonthlyDone:       stats.MonthlyDone,
		TotalDurationDone: stats.TotalDurationDone,
		TotalCaloriesDone: stats.TotalCaloriesDone,
		StreakDays:        stats.StreakDays,
		DoneByType:        toGroupCountViews(stats.DoneByType),
	}
}

// AdminSummaryResponse is the cross-owner overview.
type AdminSummaryResponse struct {
	TotalWorkouts int64            `json:"totalWorkouts"`
	ByType        []GroupCountView `json:"byType"`
	ByOwner       []GroupCountView `json:"byOwner"`
}

// ConsultantView is a catalog entry.
type ConsultantView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Specialty string   `json:"specialty"`
	Modes     []string `json:"modes"`
}

// ConsultationView exposes a booking.
type ConsultationView struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	OwnerUsername  string    `json:"ownerUsername"`
	ConsultantID   string    `json:"consultantId"`
	ConsultantName string    `json:"consultantName"`
	ConsultantRole string    `json:"consultantRole"`
	Specialty      string    `json:"specialty"`
	Mode           string    `json:"mode"`
	Phone          string    `json:"phone"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	Notes          string    `json:"notes"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toConsultationView(c domain.Consultation) ConsultationView {
	return ConsultationView{
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
