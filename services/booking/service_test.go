package booking

import (
	"context"
	"testing"
	"time"

	"clinio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDentistRepo struct {
	dentist *models.Dentist
}

func (f *fakeDentistRepo) GetByID(id string) (*models.Dentist, error) {
	if f.dentist != nil && f.dentist.ID == id {
		d := *f.dentist
		return &d, nil
	}
	return nil, nil
}

func (f *fakeDentistRepo) GetByEmail(email string) (*models.Dentist, error) { return nil, nil }
func (f *fakeDentistRepo) GetAll() ([]models.Dentist, error)               { return nil, nil }
func (f *fakeDentistRepo) Create(d *models.Dentist) error                  { return nil }
func (f *fakeDentistRepo) SetWorkingHours(id string, h models.WeeklyHours) (*models.Dentist, error) {
	return nil, nil
}
func (f *fakeDentistRepo) SetActive(id string, active bool) (*models.Dentist, error) {
	return nil, nil
}

// fakeApptRepo mimics the transactional insert: the overlap check and the
// append happen in one step.
type fakeApptRepo struct {
	appts []models.Appointment
}

func (f *fakeApptRepo) InsertIfFree(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	for i := range f.appts {
		a := f.appts[i]
		if a.DentistID != appt.DentistID || !a.Active() {
			continue
		}
		if appt.Start.Before(a.End) && a.Start.Before(appt.End) {
			return &f.appts[i], nil
		}
	}
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	f.appts = append(f.appts, *appt)
	return nil, nil
}

func (f *fakeApptRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	for i := range f.appts {
		if f.appts[i].ID == id {
			a := f.appts[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeApptRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error) {
	for i := range f.appts {
		if f.appts[i].ID == id {
			f.appts[i].Status = status
			f.appts[i].UpdatedAt = time.Now()
			a := f.appts[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeApptRepo) FindActiveOverlapping(ctx context.Context, dentistID string, start, end time.Time) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeApptRepo) ListByDentistAndRange(ctx context.Context, dentistID string, from, to time.Time) ([]models.Appointment, error) {
	return f.appts, nil
}
func (f *fakeApptRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeApptRepo) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for i := range f.appts {
		if f.appts[i].Status == models.AppointmentScheduled && !f.appts[i].End.After(cutoff) {
			f.appts[i].Status = models.AppointmentCompleted
			n++
		}
	}
	return n, nil
}

// nextMonday returns midnight UTC of a Monday at least a week out, so test
// bookings are always in the future.
func nextMonday() time.Time {
	day := time.Now().UTC().AddDate(0, 0, 7)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

func newTestService(appts *fakeApptRepo) *DefaultBookingService {
	return &DefaultBookingService{
		Appointments: appts,
		Dentists: &fakeDentistRepo{dentist: &models.Dentist{
			ID:     "den-1",
			Name:   "Dr. Adams",
			Active: true,
			WorkingHours: models.WeeklyHours{
				time.Monday: {{Start: 9 * 60, End: 12 * 60}},
			},
		}},
	}
}

func TestCreateAppointment(t *testing.T) {
	day := nextMonday()
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }
	ctx := context.Background()

	t.Run("books a free window", func(t *testing.T) {
		repo := &fakeApptRepo{}
		svc := newTestService(repo)

		appt, err := svc.CreateAppointment(ctx, "pat-1", models.BookingRequest{
			DentistID: "den-1", Start: at(10, 0), End: at(10, 30), Reason: "checkup",
		})
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentScheduled, appt.Status)
		assert.Equal(t, "pat-1", appt.PatientID)
		assert.NotEmpty(t, appt.ID)
		assert.Len(t, repo.appts, 1)
	})

	t.Run("reports the conflicting range", func(t *testing.T) {
		repo := &fakeApptRepo{appts: []models.Appointment{{
			ID: "a1", DentistID: "den-1", PatientID: "pat-2",
			Start: at(10, 0), End: at(10, 30), Status: models.AppointmentScheduled,
		}}}
		svc := newTestService(repo)

		_, err := svc.CreateAppointment(ctx, "pat-1", models.BookingRequest{
			DentistID: "den-1", Start: at(10, 15), End: at(10, 45),
		})
		var conflict ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, at(10, 0), conflict.Start)
		assert.Equal(t, at(10, 30), conflict.End)
		assert.Len(t, repo.appts, 1, "nothing must be written on conflict")
	})

	t.Run("abutting windows both succeed", func(t *testing.T) {
		repo := &fakeApptRepo{appts: []models.Appointment{{
			ID: "a1", DentistID: "den-1", PatientID: "pat-2",
			Start: at(10, 0), End: at(10, 30), Status: models.AppointmentScheduled,
		}}}
		svc := newTestService(repo)

		_, err := svc.CreateAppointment(ctx, "pat-1", models.BookingRequest{
			DentistID: "den-1", Start: at(10, 30), End: at(11, 0),
		})
		assert.NoError(t, err)
	})

	t.Run("cancelled appointments free their window", func(t *testing.T) {
		repo := &fakeApptRepo{appts: []models.Appointment{{
			ID: "a1", DentistID: "den-1", PatientID: "pat-2",
			Start: at(10, 0), End: at(10, 30), Status: models.AppointmentCancelled,
		}}}
		svc := newTestService(repo)

		_, err := svc.CreateAppointment(ctx, "pat-1", models.BookingRequest{
			DentistID: "den-1", Start: at(10, 0), End: at(10, 30),
		})
		assert.NoError(t, err)
	})

	t.Run("rejects windows in the past", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{})
		past := time.Now().Add(-2 * time.Hour)

		_, err := svc.CreateAppointment(ctx, "pat-1", models.BookingRequest{
			DentistID: "den-1", Start: past, End: past.Add(30 * time.Minute),
		})
		var invalid InvalidBookingError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("rejects unknown dentist", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{})

		_, err := svc.CreateAppointment(ctx, "pat-1", models.BookingRequest{
			DentistID: "nobody", Start: at(10, 0), End: at(10, 30),
		})
		var notFound NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "dentist", notFound.Kind)
	})

	t.Run("rejects inactive dentist", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{})
		svc.Dentists.(*fakeDentistRepo).dentist.Active = false

		_, err := svc.CreateAppointment(ctx, "pat-1", models.BookingRequest{
			DentistID: "den-1", Start: at(10, 0), End: at(10, 30),
		})
		var invalid InvalidBookingError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("rejects windows outside working hours", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{})

		// 13:00 is past the Monday 09:00-12:00 template.
		_, err := svc.CreateAppointment(ctx, "pat-1", models.BookingRequest{
			DentistID: "den-1", Start: at(13, 0), End: at(13, 30),
		})
		var invalid InvalidBookingError
		assert.ErrorAs(t, err, &invalid)

		// Tuesday has no template at all.
		tuesday := day.AddDate(0, 0, 1)
		_, err = svc.CreateAppointment(ctx, "pat-1", models.BookingRequest{
			DentistID: "den-1",
			Start:     tuesday.Add(10 * time.Hour),
			End:       tuesday.Add(10*time.Hour + 30*time.Minute),
		})
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("rejects windows straddling the template edge", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{})

		_, err := svc.CreateAppointment(ctx, "pat-1", models.BookingRequest{
			DentistID: "den-1", Start: at(11, 45), End: at(12, 15),
		})
		var invalid InvalidBookingError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestCancelAppointment(t *testing.T) {
	day := nextMonday()
	ctx := context.Background()

	seed := func(status string, start time.Time) *fakeApptRepo {
		return &fakeApptRepo{appts: []models.Appointment{{
			ID: "a1", DentistID: "den-1", PatientID: "pat-1",
			Start: start, End: start.Add(30 * time.Minute), Status: status,
		}}}
	}

	t.Run("owner cancels a future appointment", func(t *testing.T) {
		repo := seed(models.AppointmentScheduled, day.Add(10*time.Hour))
		svc := newTestService(repo)

		appt, err := svc.CancelAppointment(ctx, "pat-1", "a1")
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentCancelled, appt.Status)
	})

	t.Run("other patients are rejected", func(t *testing.T) {
		repo := seed(models.AppointmentScheduled, day.Add(10*time.Hour))
		svc := newTestService(repo)

		_, err := svc.CancelAppointment(ctx, "pat-2", "a1")
		var forbidden ForbiddenError
		assert.ErrorAs(t, err, &forbidden)
		assert.Equal(t, models.AppointmentScheduled, repo.appts[0].Status)
	})

	t.Run("staff may cancel any appointment", func(t *testing.T) {
		repo := seed(models.AppointmentScheduled, day.Add(10*time.Hour))
		svc := newTestService(repo)

		appt, err := svc.CancelAppointment(ctx, "", "a1")
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentCancelled, appt.Status)
	})

	t.Run("started appointments cannot be cancelled", func(t *testing.T) {
		repo := seed(models.AppointmentScheduled, time.Now().Add(-10*time.Minute))
		svc := newTestService(repo)

		_, err := svc.CancelAppointment(ctx, "pat-1", "a1")
		var invalid InvalidBookingError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		repo := seed(models.AppointmentCancelled, day.Add(10*time.Hour))
		svc := newTestService(repo)

		_, err := svc.CancelAppointment(ctx, "pat-1", "a1")
		var invalid InvalidBookingError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{})
		_, err := svc.CancelAppointment(ctx, "pat-1", "missing")
		var notFound NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestCompleteAppointment(t *testing.T) {
	day := nextMonday()
	ctx := context.Background()

	repo := &fakeApptRepo{appts: []models.Appointment{{
		ID: "a1", DentistID: "den-1", PatientID: "pat-1",
		Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 30*time.Minute),
		Status: models.AppointmentScheduled,
	}}}
	svc := newTestService(repo)

	appt, err := svc.CompleteAppointment(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, appt.Status)

	_, err = svc.CompleteAppointment(ctx, "a1")
	var invalid InvalidBookingError
	assert.ErrorAs(t, err, &invalid)
}
