package models

import (
	"fmt"
	"time"
)

// Appointment statuses. Cancelled appointments do not occupy the calendar.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment represents a confirmed booking on a dentist's calendar.
// The time window is fixed at creation; only the status ever changes.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`
	DentistID string    `bson:"dentist_id" json:"dentistId"`
	PatientID string    `bson:"patient_id" json:"patientId"`
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"`
	Status    string    `bson:"status" json:"status"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Validate checks the structural invariants of an appointment.
func (a Appointment) Validate() error {
	if a.DentistID == "" {
		return fmt.Errorf("dentist id is required")
	}
	if a.PatientID == "" {
		return fmt.Errorf("patient id is required")
	}
	if a.Start.IsZero() || a.End.IsZero() {
		return fmt.Errorf("start and end times are required")
	}
	if !a.Start.Before(a.End) {
		return fmt.Errorf("start time must precede end time")
	}
	return nil
}

// Active reports whether the appointment occupies its calendar window.
func (a Appointment) Active() bool {
	return a.Status != AppointmentCancelled
}

// BookingRequest is the payload for creating an appointment.
type BookingRequest struct {
	DentistID string    `json:"dentistId" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
	Reason    string    `json:"reason"`
}
