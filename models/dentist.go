package models

import "time"

// Dentist represents a practitioner whose calendar can be booked.
type Dentist struct {
	ID           string      `bson:"id" json:"id"`
	Name         string      `bson:"name" json:"name"`
	Email        string      `bson:"email" json:"email"`
	Specialty    string      `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Active       bool        `bson:"active" json:"active"`
	WorkingHours WeeklyHours `bson:"working_hours,omitempty" json:"workingHours,omitempty"`
	CreatedAt    time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `bson:"updated_at" json:"updatedAt"`
}

// DentistRegistrationRequest is the staff payload for adding a dentist.
type DentistRegistrationRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Specialty string `json:"specialty"`
}

// SetWorkingHoursRequest replaces a dentist's weekly template.
type SetWorkingHoursRequest struct {
	WorkingHours WeeklyHours `json:"workingHours" binding:"required"`
}
