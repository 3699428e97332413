package booking

import (
	"fmt"
	"time"
)

// ConflictError reports that the requested window is already occupied. The
// conflicting range is included so clients can re-plan without another
// availability call.
type ConflictError struct {
	DentistID string    `json:"dentistId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("time window conflicts with an existing appointment from %s to %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// InvalidBookingError reports a request that can never succeed as stated.
type InvalidBookingError struct {
	Reason string
}

func (e InvalidBookingError) Error() string {
	return "invalid booking: " + e.Reason
}

// NotFoundError reports a missing appointment or dentist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ForbiddenError reports an operation on another patient's appointment.
type ForbiddenError struct {
	AppointmentID string
}

func (e ForbiddenError) Error() string {
	return "appointment " + e.AppointmentID + " does not belong to the requesting patient"
}
