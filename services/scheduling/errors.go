package scheduling

import "fmt"

// InvalidInputError reports a malformed availability or conflict query.
type InvalidInputError struct {
	Reason string
}

func (e InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// DentistNotFoundError reports an unknown dentist ID.
type DentistNotFoundError struct {
	DentistID string
}

func (e DentistNotFoundError) Error() string {
	return fmt.Sprintf("dentist %s not found", e.DentistID)
}
