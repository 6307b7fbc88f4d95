package domain

import (
	"strings"
	"time"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/access"
)

// ParseWorkoutAction normalises a status action. Any known status is a valid
// target from any current state, including itself.
func ParseWorkoutAction(raw string) (WorkoutStatus, error) {
	target := WorkoutStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !target.Valid() {
		return "", invalid("invalid action, use done, missed, or planned")
	}
	return target, nil
}

// WorkoutTransition builds the patch that moves a workout to target.
// completedAt is written iff the target is done; confirmationRequestedAt is
// stamped on every transition.
func WorkoutTransition(target WorkoutStatus, now time.Time) Patch {
	now = now.UTC()
	patch := Patch{
		Status:                  &target,
		ConfirmationRequestedAt: SetTime(&now),
		CompletedAt:             SetTime(nil),
		UpdatedAt:               now,
	}
	if target == WorkoutStatusDone {
		patch.CompletedAt = SetTime(&now)
	}
	return patch
}

// ParseConsultationAction normalises a consultation status action.
func ParseConsultationAction(raw string) (ConsultationStatus, error) {
	target := ConsultationStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !target.Valid() {
		return "", invalid("invalid status action")
	}
	return target, nil
}

// ConsultationTransitionRole is the role required to move a consultation to
// target. Owners may only cancel; everything else is an admin decision.
func ConsultationTransitionRole(target ConsultationStatus) access.Role {
	if target == ConsultationStatusCancelled {
		return ""
	}
	return access.RoleAdmin
}
