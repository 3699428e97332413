package models

import "time"

// Slot is a candidate bookable window of fixed duration that lies entirely
// within working hours and overlaps no active appointment.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilityResponse is the availability endpoint's payload.
type AvailabilityResponse struct {
	DentistID string `json:"dentistId"`
	Date      string `json:"date"` // "2006-01-02"
	Duration  int    `json:"durationMinutes"`
	Slots     []Slot `json:"slots"`
}
