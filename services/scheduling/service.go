package scheduling

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "clinio/database/repository/appointment"
	dentistRepo "clinio/database/repository/dentist"
	"clinio/models"
	"clinio/utils"

	"go.uber.org/zap"
)

// Service exposes the two scheduling operations the booking path relies on.
type Service interface {
	// ComputeAvailability returns the ordered free slots of the given
	// duration for a dentist on a date ("2006-01-02").
	ComputeAvailability(ctx context.Context, dentistID, date string, durationMin int) (*models.AvailabilityResponse, error)
	// CheckConflict returns the active appointment occupying any part of
	// [start, end) for the dentist, or nil when the window is free.
	CheckConflict(ctx context.Context, dentistID string, start, end time.Time) (*models.Appointment, error)
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	Dentists     dentistRepo.DentistRepository
	Appointments appointmentRepo.AppointmentRepository
	Location     *time.Location // clinic timezone; nil means UTC
	Granularity  int            // candidate-slot step in minutes; 0 means duration
}

func (s *DefaultSchedulingService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

// ComputeAvailability loads the dentist's template for the date's weekday and
// that day's active appointments, then runs the pure slot calculator. Calling
// it twice with no intervening bookings yields identical results.
func (s *DefaultSchedulingService) ComputeAvailability(ctx context.Context, dentistID, date string, durationMin int) (*models.AvailabilityResponse, error) {
	if durationMin <= 0 {
		return nil, InvalidInputError{Reason: "duration must be positive"}
	}
	day, err := time.ParseInLocation("2006-01-02", date, s.location())
	if err != nil {
		return nil, InvalidInputError{Reason: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date)}
	}

	dentist, err := s.Dentists.GetByID(dentistID)
	if err != nil {
		utils.GetLogger().Error("ComputeAvailability: failed to fetch dentist",
			zap.String("dentistID", dentistID), zap.Error(err))
		return nil, fmt.Errorf("failed to compute availability, please try again")
	}
	if dentist == nil {
		return nil, DentistNotFoundError{DentistID: dentistID}
	}

	resp := &models.AvailabilityResponse{
		DentistID: dentistID,
		Date:      date,
		Duration:  durationMin,
	}

	working := dentist.WorkingHours.ForDay(day.Weekday())
	if len(working) == 0 {
		return resp, nil
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)
	appts, err := s.Appointments.FindActiveOverlapping(ctx, dentistID, dayStart, dayEnd)
	if err != nil {
		utils.GetLogger().Error("ComputeAvailability: failed to fetch appointments",
			zap.String("dentistID", dentistID), zap.Error(err))
		return nil, fmt.Errorf("failed to compute availability, please try again")
	}

	busy := make([]models.MinuteInterval, 0, len(appts))
	for _, a := range appts {
		busy = append(busy, clampToDay(a, dayStart))
	}

	for _, iv := range FreeSlots(working, busy, durationMin, s.Granularity) {
		resp.Slots = append(resp.Slots, models.Slot{
			Start: dayStart.Add(time.Duration(iv.Start) * time.Minute),
			End:   dayStart.Add(time.Duration(iv.End) * time.Minute),
		})
	}
	return resp, nil
}

// clampToDay converts an appointment window to minutes from the day's
// midnight, clipped to the 24h clock. The start floors and the end ceils so
// sub-minute remainders still block their minute.
func clampToDay(a models.Appointment, dayStart time.Time) models.MinuteInterval {
	start := int(a.Start.Sub(dayStart) / time.Minute)
	endD := a.End.Sub(dayStart)
	end := int(endD / time.Minute)
	if endD%time.Minute != 0 {
		end++
	}
	if start < 0 {
		start = 0
	}
	if end > 24*60 {
		end = 24 * 60
	}
	return models.MinuteInterval{Start: start, End: end}
}

// CheckConflict is the authoritative overlap check run at booking time; the
// client's chosen slot is never trusted because availability may be stale.
func (s *DefaultSchedulingService) CheckConflict(ctx context.Context, dentistID string, start, end time.Time) (*models.Appointment, error) {
	if dentistID == "" {
		return nil, InvalidInputError{Reason: "dentist id is required"}
	}
	if !start.Before(end) {
		return nil, InvalidInputError{Reason: "start time must precede end time"}
	}

	appts, err := s.Appointments.FindActiveOverlapping(ctx, dentistID, start, end)
	if err != nil {
		utils.GetLogger().Error("CheckConflict: failed to fetch appointments",
			zap.String("dentistID", dentistID), zap.Error(err))
		return nil, fmt.Errorf("failed to check for conflicts, please try again")
	}
	return FindConflict(appts, start, end), nil
}
