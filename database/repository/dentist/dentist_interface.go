package dentistRepo

import (
	"clinio/models"
)

// DentistRepository defines methods for dentist data access. Working hours
// are part of the dentist document and are read-only from the scheduling
// subsystem's perspective.
type DentistRepository interface {
	// GetByID retrieves a dentist by its unique ID; nil if absent.
	GetByID(id string) (*models.Dentist, error)
	// GetByEmail retrieves a dentist by its email address; nil if absent.
	GetByEmail(email string) (*models.Dentist, error)
	// GetAll retrieves all dentists.
	GetAll() ([]models.Dentist, error)
	// Create inserts a new dentist record.
	Create(dentist *models.Dentist) error
	// SetWorkingHours replaces the weekly template and returns the new state.
	SetWorkingHours(id string, hours models.WeeklyHours) (*models.Dentist, error)
	// SetActive flips the bookable flag.
	SetActive(id string, active bool) (*models.Dentist, error)
}
