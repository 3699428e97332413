package models

import "time"

// PatientRecord is a clinical note attached to a patient, authored by a dentist.
type PatientRecord struct {
	ID        string    `bson:"id" json:"id"`
	PatientID string    `bson:"patient_id" json:"patientId"`
	DentistID string    `bson:"dentist_id" json:"dentistId"`
	Title     string    `bson:"title" json:"title"`
	Notes     string    `bson:"notes" json:"notes"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
