package appointmentRepo

import (
	"context"
	"time"

	"clinio/models"
)

// AppointmentRepository persists appointments. Time windows are immutable
// after insert; only status transitions are supported.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by ID; nil if absent.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// FindActiveOverlapping returns the dentist's non-cancelled appointments
	// overlapping the closed-open window [start, end), ordered by start.
	FindActiveOverlapping(ctx context.Context, dentistID string, start, end time.Time) ([]models.Appointment, error)
	// ListByDentistAndRange returns the dentist's appointments with
	// start in [from, to), ordered by start.
	ListByDentistAndRange(ctx context.Context, dentistID string, from, to time.Time) ([]models.Appointment, error)
	// ListByPatient returns all of a patient's appointments, newest first.
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	// InsertIfFree atomically re-checks for conflicts and inserts. On overlap
	// it returns the conflicting appointment and no write occurs.
	InsertIfFree(ctx context.Context, appt *models.Appointment) (*models.Appointment, error)
	// UpdateStatus transitions an appointment's status and returns the new state.
	UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error)
	// MarkCompletedBefore flips every scheduled appointment that ended before
	// the cutoff to completed, returning the number updated.
	MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
