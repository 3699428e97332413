package handlers

import (
	userRepoPkg "clinio/database/repository/user"
)

// HandlerBundle groups all endpoint handlers plus the repositories the
// middleware needs, so route registration takes a single argument.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	User         *UserHandler
	Dentist      *DentistHandler
	Availability *AvailabilityHandler
	Appointment  *AppointmentHandler
	Record       *RecordHandler
}
