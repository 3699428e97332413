// Package booking implements the appointment lifecycle: creation with an
// authoritative conflict check, cancellation, and completion.
package booking

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "clinio/database/repository/appointment"
	dentistRepo "clinio/database/repository/dentist"
	"clinio/models"
	"clinio/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateAppointment books the window for the patient. The conflict check
	// runs atomically with the insert, so double booking cannot happen even
	// under concurrent requests.
	CreateAppointment(ctx context.Context, patientID string, req models.BookingRequest) (*models.Appointment, error)
	// CancelAppointment frees the window. Only the owning patient may cancel,
	// and only before the appointment has started.
	CancelAppointment(ctx context.Context, patientID, apptID string) (*models.Appointment, error)
	// CompleteAppointment marks a scheduled appointment as completed (staff only).
	CompleteAppointment(ctx context.Context, apptID string) (*models.Appointment, error)
	// GetAppointment fetches a single appointment.
	GetAppointment(ctx context.Context, apptID string) (*models.Appointment, error)
	// ListPatientAppointments returns the patient's appointments, newest first.
	ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error)
	// ListDentistAppointments returns a dentist's appointments starting in [from, to).
	ListDentistAppointments(ctx context.Context, dentistID string, from, to time.Time) ([]models.Appointment, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Appointments appointmentRepo.AppointmentRepository
	Dentists     dentistRepo.DentistRepository
	Location     *time.Location // clinic timezone; nil means UTC
}

func (s *DefaultBookingService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

func (s *DefaultBookingService) CreateAppointment(ctx context.Context, patientID string, req models.BookingRequest) (*models.Appointment, error) {
	appt := &models.Appointment{
		ID:        uuid.New().String(),
		DentistID: req.DentistID,
		PatientID: patientID,
		Start:     req.Start.UTC(),
		End:       req.End.UTC(),
		Status:    models.AppointmentScheduled,
		Reason:    req.Reason,
	}
	if err := appt.Validate(); err != nil {
		return nil, InvalidBookingError{Reason: err.Error()}
	}
	if appt.Start.Before(time.Now()) {
		return nil, InvalidBookingError{Reason: "appointments cannot start in the past"}
	}

	dentist, err := s.Dentists.GetByID(req.DentistID)
	if err != nil {
		utils.GetLogger().Error("CreateAppointment: failed to fetch dentist",
			zap.String("dentistID", req.DentistID), zap.Error(err))
		return nil, fmt.Errorf("booking failed, please try again")
	}
	if dentist == nil {
		return nil, NotFoundError{Kind: "dentist", ID: req.DentistID}
	}
	if !dentist.Active {
		return nil, InvalidBookingError{Reason: "dentist is not accepting bookings"}
	}
	if err := s.checkWithinWorkingHours(dentist, appt.Start, appt.End); err != nil {
		return nil, err
	}

	conflict, err := s.Appointments.InsertIfFree(ctx, appt)
	if err != nil {
		utils.GetLogger().Error("CreateAppointment: booking transaction failed",
			zap.String("dentistID", req.DentistID), zap.Error(err))
		return nil, fmt.Errorf("booking failed, please try again")
	}
	if conflict != nil {
		return nil, ConflictError{DentistID: conflict.DentistID, Start: conflict.Start, End: conflict.End}
	}

	utils.GetLogger().Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("dentistID", appt.DentistID),
		zap.String("patientID", appt.PatientID),
		zap.Time("start", appt.Start))
	return appt, nil
}

// checkWithinWorkingHours verifies the window falls inside one of the
// dentist's working intervals on that weekday, evaluated in clinic time. A
// window spanning midnight never fits a daily template.
func (s *DefaultBookingService) checkWithinWorkingHours(dentist *models.Dentist, start, end time.Time) error {
	loc := s.location()
	localStart := start.In(loc)
	localEnd := end.In(loc)

	dayStart := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)
	if !localEnd.After(dayStart) || localEnd.After(dayStart.AddDate(0, 0, 1)) {
		return InvalidBookingError{Reason: "appointment must fall within a single day"}
	}

	startMin := int(localStart.Sub(dayStart) / time.Minute)
	endMin := int(localEnd.Sub(dayStart) / time.Minute)
	if localEnd.Sub(dayStart)%time.Minute != 0 {
		endMin++
	}

	for _, iv := range dentist.WorkingHours.ForDay(localStart.Weekday()) {
		if startMin >= iv.Start && endMin <= iv.End {
			return nil
		}
	}
	return InvalidBookingError{Reason: "appointment falls outside the dentist's working hours"}
}

func (s *DefaultBookingService) CancelAppointment(ctx context.Context, patientID, apptID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, apptID)
	if err != nil {
		utils.GetLogger().Error("CancelAppointment: failed to fetch appointment",
			zap.String("appointmentID", apptID), zap.Error(err))
		return nil, fmt.Errorf("cancellation failed, please try again")
	}
	if appt == nil {
		return nil, NotFoundError{Kind: "appointment", ID: apptID}
	}
	if patientID != "" && appt.PatientID != patientID {
		return nil, ForbiddenError{AppointmentID: apptID}
	}
	if appt.Status != models.AppointmentScheduled {
		return nil, InvalidBookingError{Reason: "only scheduled appointments can be cancelled"}
	}
	if !appt.Start.After(time.Now()) {
		return nil, InvalidBookingError{Reason: "appointments that have started cannot be cancelled"}
	}

	updated, err := s.Appointments.UpdateStatus(ctx, apptID, models.AppointmentCancelled)
	if err != nil {
		utils.GetLogger().Error("CancelAppointment: failed to update status",
			zap.String("appointmentID", apptID), zap.Error(err))
		return nil, fmt.Errorf("cancellation failed, please try again")
	}

	utils.GetLogger().Info("appointment cancelled",
		zap.String("appointmentID", apptID), zap.String("patientID", appt.PatientID))
	return updated, nil
}

func (s *DefaultBookingService) CompleteAppointment(ctx context.Context, apptID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, apptID)
	if err != nil {
		utils.GetLogger().Error("CompleteAppointment: failed to fetch appointment",
			zap.String("appointmentID", apptID), zap.Error(err))
		return nil, fmt.Errorf("completion failed, please try again")
	}
	if appt == nil {
		return nil, NotFoundError{Kind: "appointment", ID: apptID}
	}
	if appt.Status != models.AppointmentScheduled {
		return nil, InvalidBookingError{Reason: "only scheduled appointments can be completed"}
	}

	updated, err := s.Appointments.UpdateStatus(ctx, apptID, models.AppointmentCompleted)
	if err != nil {
		utils.GetLogger().Error("CompleteAppointment: failed to update status",
			zap.String("appointmentID", apptID), zap.Error(err))
		return nil, fmt.Errorf("completion failed, please try again")
	}
	return updated, nil
}

func (s *DefaultBookingService) GetAppointment(ctx context.Context, apptID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, apptID)
	if err != nil {
		utils.GetLogger().Error("GetAppointment: failed to fetch appointment",
			zap.String("appointmentID", apptID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch appointment")
	}
	if appt == nil {
		return nil, NotFoundError{Kind: "appointment", ID: apptID}
	}
	return appt, nil
}

func (s *DefaultBookingService) ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	appts, err := s.Appointments.ListByPatient(ctx, patientID)
	if err != nil {
		utils.GetLogger().Error("ListPatientAppointments: query failed",
			zap.String("patientID", patientID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch appointments")
	}
	return appts, nil
}

func (s *DefaultBookingService) ListDentistAppointments(ctx context.Context, dentistID string, from, to time.Time) ([]models.Appointment, error) {
	if !from.Before(to) {
		return nil, InvalidBookingError{Reason: "range start must precede range end"}
	}
	appts, err := s.Appointments.ListByDentistAndRange(ctx, dentistID, from, to)
	if err != nil {
		utils.GetLogger().Error("ListDentistAppointments: query failed",
			zap.String("dentistID", dentistID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch appointments")
	}
	return appts, nil
}
