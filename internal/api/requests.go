package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
)

// timeLayouts are tried in order when parsing client datetimes. Values
// without an offset are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	domain.DateLayout,
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", raw)
}

// number accepts a JSON number or a numeric string, as sent by HTML forms.
type number struct {
	value   float64
	present bool
	valid   bool
}

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	n.present = true
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			n.present = false
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		n.value, n.valid = parsed, err == nil
		return nil
	}
	if err := json.Unmarshal(data, &n.value); err != nil {
		return err
	}
	n.valid = true
	return nil
}

func (n number) ptr() *float64 {
	if !n.present {
		return nil
	}
	v := n.value
	return &v
}

// optionalTime distinguishes an absent key from an explicit null.
type optionalTime struct {
	set bool
	raw *string
}

func (o *optionalTime) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.raw = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.raw = &s
	return nil
}

// parse returns the instant, nil for null or blank, or a validation error.
func (o optionalTime) parse(field string) (*time.Time, error) {
	if o.raw == nil || strings.TrimSpace(*o.raw) == "" {
		return nil, nil
	}
	t, err := parseTime(*o.raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s datetime", domain.ErrValidation, field)
	}
	return &t, nil
}

// CreateWorkoutRequest is the payload for POST /workouts.
type CreateWorkoutRequest struct {
	Title       string       `json:"title"`
	Type        string       `json:"type"`
	Duration    number       `json:"duration"`
	Calories    number       `json:"calories"`
	Date        string       `json:"date"`
	Difficulty  string       `json:"difficulty"`
	Notes       string       `json:"notes"`
	ScheduledAt optionalTime `json:"scheduledAt"`
}

func (r CreateWorkoutRequest) toInput() (domain.CreateWorkoutInput, error) {
	if r.Duration.present && !r.Duration.valid {
		return domain.CreateWorkoutInput{}, fmt.Errorf("%w: duration must be a positive number", domain.ErrValidation)
	}
	if r.Calories.present && !r.Calories.valid {
		return domain.CreateWorkoutInput{}, fmt.Errorf("%w: calories must be a non-negative number", domain.ErrValidation)
	}
	scheduledAt, err := r.ScheduledAt.parse("scheduledAt")
	if err != nil {
		return domain.CreateWorkoutInput{}, err
	}
	return domain.CreateWorkoutInput{
		Title:       r.Title,
		Type:        domain.WorkoutType(strings.TrimSpace(r.Type)),
		Duration:    r.Duration.ptr(),
		Calories:    r.Calories.ptr(),
		Date:        strings.TrimSpace(r.Date),
		Difficulty:  r.Difficulty,
		Notes:       r.Notes,
		ScheduledAt: scheduledAt,
	}, nil
}

// UpdateWorkoutRequest carries any subset of the editable fields. Unknown
// keys are ignored.
type UpdateWorkoutRequest struct {
	Title       *string      `json:"title"`
	Type        *string      `json:"type"`
	Duration    number       `json:"duration"`
	Calories    number       `json:"calories"`
	Date        *string      `json:"date"`
	Difficulty  *string      `json:"difficulty"`
	Notes       *string      `json:"notes"`
	ScheduledAt optionalTime `json:"scheduledAt"`
}

func (r UpdateWorkoutRequest) toInput() (domain.UpdateWorkoutInput, error) {
	if r.Duration.present && !r.Duration.valid {
		return domain.UpdateWorkoutInput{}, fmt.Errorf("%w: duration must be a positive number", domain.ErrValidation)
	}
	if r.Calories.present && !r.Calories.valid {
		return domain.UpdateWorkoutInput{}, fmt.Errorf("%w: calories must be a non-negative number", domain.ErrValidation)
	}
	in := domain.UpdateWorkoutInput{
		Title:      r.Title,
		Type:       r.Type,
		Duration:   r.Duration.ptr(),
		Calories:   r.Calories.ptr(),
		Date:       r.Date,
		Difficulty: r.Difficulty,
		Notes:      r.Notes,
	}
	if r.ScheduledAt.set {
		scheduledAt, err := r.ScheduledAt.parse("scheduledAt")
		if err != nil {
			return domain.UpdateWorkoutInput{}, err
		}
		in.ScheduledAt = domain.SetTime(scheduledAt)
	}
	return in, nil
}

// StatusRequest is the payload of both status endpoints.
type StatusRequest struct {
	Action string `json:"action"`
}

// BookConsultationRequest is the payload for POST /consultations.
type BookConsultationRequest struct {
	ConsultantID string `json:"consultantId"`
	Mode         string `json:"mode"`
	Phone        string `json:"phone"`
	ScheduledAt  string `json:"scheduledAt"`
	Notes        string `json:"notes"`
}

func (r BookConsultationRequest) toInput() (domain.BookConsultationInput, error) {
	in := domain.BookConsultationInput{
		ConsultantID: strings.TrimSpace(r.ConsultantID),
		Mode:         strings.ToLower(strings.TrimSpace(r.Mode)),
		Phone:        strings.TrimSpace(r.Phone),
		Notes:        strings.TrimSpace(r.Notes),
	}
	if strings.TrimSpace(r.ScheduledAt) != "" {
		t, err := parseTime(r.ScheduledAt)
		if err != nil {
			return domain.BookConsultationInput{}, fmt.Errorf("%w: invalid date/time", domain.ErrValidation)
		}
		in.ScheduledAt = &t
	}
	return in, nil
}
