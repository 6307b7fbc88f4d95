package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateID rejects ids that are not UUIDs before any store access and
// returns the canonical lowercase dashed form the stores key records by.
func ValidateID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", invalid("invalid id")
	}
	return parsed.String(), nil
}

// structError validates in and converts the first failure into a domain error.
func structError(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid("%v", err)
	}
	return invalid("%s", describeFieldError(fieldErrs[0]))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Title", "Type", "Duration":
		if fe.Tag() == "required" {
			return "missing required fields (title, type, duration)"
		}
		if fe.Field() == "Type" {
			return "invalid workout type"
		}
		if fe.Field() == "Duration" {
			return "duration must be a positive number"
		}
	case "Calories":
		return "calories must be a non-negative number"
	case "Date":
		return "date must be formatted as YYYY-MM-DD"
	case "ConsultantID":
		return "invalid consultant selected"
	case "Mode":
		return "invalid consultation mode"
	case "Phone":
		return "invalid phone number"
	case "ScheduledAt":
		return "invalid date/time"
	}
	return fmt.Sprintf("%s failed %s validation", strings.ToLower(fe.Field()), fe.Tag())
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
