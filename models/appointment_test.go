package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentValidate(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	valid := Appointment{
		DentistID: "den-1",
		PatientID: "pat-1",
		Start:     start,
		End:       start.Add(30 * time.Minute),
	}

	tests := []struct {
		name    string
		mutate  func(a *Appointment)
		wantErr bool
	}{
		{"valid", func(a *Appointment) {}, false},
		{"missing dentist", func(a *Appointment) { a.DentistID = "" }, true},
		{"missing patient", func(a *Appointment) { a.PatientID = "" }, true},
		{"zero start", func(a *Appointment) { a.Start = time.Time{} }, true},
		{"zero end", func(a *Appointment) { a.End = time.Time{} }, true},
		{"inverted window", func(a *Appointment) { a.Start, a.End = a.End, a.Start }, true},
		{"zero-length window", func(a *Appointment) { a.End = a.Start }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			err := a.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentActive(t *testing.T) {
	assert.True(t, Appointment{Status: AppointmentScheduled}.Active())
	assert.True(t, Appointment{Status: AppointmentCompleted}.Active())
	assert.False(t, Appointment{Status: AppointmentCancelled}.Active())
}
