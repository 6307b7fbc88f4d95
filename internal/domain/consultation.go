package domain

import (
	"regexp"
	"time"
)

// ConsultationStatus is the lifecycle state of a booking.
type ConsultationStatus string

const (
	ConsultationStatusPending   ConsultationStatus = "pending"
	ConsultationStatusApproved  ConsultationStatus = "approved"
	ConsultationStatusCompleted ConsultationStatus = "completed"
	ConsultationStatusCancelled ConsultationStatus = "cancelled"
)

// Valid reports whether s is a known consultation status.
func (s ConsultationStatus) Valid() bool {
	switch s {
	case ConsultationStatusPending, ConsultationStatusApproved, ConsultationStatusCompleted, ConsultationStatusCancelled:
		return true
	}
	return false
}

// Consultation modes.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
)

// Consultant is an entry of the static consultant catalog.
type Consultant struct {
	ID        string
	Name      string
	Role      string
	Specialty string
	Modes     []string
}

// Offers reports whether the consultant works in the given mode.
func (c Consultant) Offers(mode string) bool {
	for _, m := range c.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

var consultants = []Consultant{
	{ID: "trainer_almas", Name: "Almasuly Damir", Role: "Trainer", Specialty: "Strength and Body Recomposition", Modes: []string{ModeOnline, ModeOffline}},
	{ID: "trainer_amir", Name: "Amir Berdibek", Role: "Trainer", Specialty: "Cardio and Endurance", Modes: []string{ModeOnline, ModeOffline}},
	{ID: "consultant_zarina", Name: "Qosaman Zarina", Role: "Online Consultant", Specialty: "Nutrition and Recovery", Modes: []string{ModeOnline}},
	{ID: "consultant_alikhan", Name: "Alikhan Korazbay", Role: "Online Consultant", Specialty: "Mobility and Technique", Modes: []string{ModeOnline}},
	{ID: "trainer_ali", Name: "Sharshiken Ali", Role: "Trainer", Specialty: "Functional Fitness", Modes: []string{ModeOnline, ModeOffline}},
}

// Consultants returns a copy of the consultant catalog.
func Consultants() []Consultant {
	out := make([]Consultant, len(consultants))
	copy(out, consultants)
	return out
}

// FindConsultant looks a consultant up by id.
func FindConsultant(id string) (Consultant, bool) {
	for _, c := range consultants {
		if c.ID == id {
			return c, true
		}
	}
	return Consultant{}, false
}

var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)

// Consultation is a booking with a consultant.
type Consultation struct {
	ID             string
	OwnerID        string
	OwnerUsername  string
	ConsultantID   string
	ConsultantName string
	ConsultantRole string
	Specialty      string
	Mode           string
	Phone          string
	ScheduledAt    time.Time
	Notes          string
	Status         ConsultationStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BookConsultationInput is the payload for a new booking.
type BookConsultationInput struct {
	ConsultantID string     `validate:"required"`
	Mode         string     `validate:"required,oneof=online offline"`
	Phone        string     `validate:"required"`
	ScheduledAt  *time.Time `validate:"required"`
	Notes        string
}

func (in BookConsultationInput) validate(now time.Time) (Consultant, error) {
	if err := structError(in); err != nil {
		return Consultant{}, err
	}
	consultant, ok := FindConsultant(in.ConsultantID)
	if !ok {
		return Consultant{}, invalid("invalid consultant selected")
	}
	if !consultant.Offers(in.Mode) {
		return Consultant{}, invalid("selected mode is not available for this consultant")
	}
	if !phonePattern.MatchString(in.Phone) {
		return Consultant{}, invalid("invalid phone number")
	}
	if !in.ScheduledAt.After(now) {
		return Consultant{}, invalid("consultation time must be in the future")
	}
	return consultant, nil
}
