package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDentistRepo struct {
	dentist *models.Dentist
	err     error
}

func (f *fakeDentistRepo) GetByID(id string) (*models.Dentist, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.dentist != nil && f.dentist.ID == id {
		return f.dentist, nil
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

type fakeAppointmentRepo struct {
	appts []models.Appointment
	err   error
}

func (f *fakeAppointmentRepo) FindActiveOverlapping(ctx context.Context, dentistID string, start, end time.Time) ([]models.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Appointment
	for _, a := range f.appts {
		if a.DentistID != dentistID || a.Status == models.AppointmentCancelled {
			continue
		}
		if a.Start.Before(end) && start.Before(a.End) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) ListByDentistAndRange(ctx context.Context, dentistID string, from, to time.Time) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) InsertIfFree(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func mondayHours() models.WeeklyHours {
	return models.WeeklyHours{
		time.Monday: {{Start: 9 * 60, End: 12 * 60}},
	}
}

// 2026-03-02 is a Monday.
const testDate = "2026-03-02"

func newTestService(appts []models.Appointment) *DefaultSchedulingService {
	return &DefaultSchedulingService{
		Dentists: &fakeDentistRepo{dentist: &models.Dentist{
			ID:           "den-1",
			Name:         "Dr. Adams",
			Active:       true,
			WorkingHours: mondayHours(),
		}},
		Appointments: &fakeAppointmentRepo{appts: appts},
		Granularity:  30,
	}
}

func TestComputeAvailability(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	svc := newTestService([]models.Appointment{
		{ID: "a1", DentistID: "den-1", PatientID: "pat-1",
			Start: at(10, 0), End: at(10, 30), Status: models.AppointmentScheduled},
	})

	resp, err := svc.ComputeAvailability(context.Background(), "den-1", testDate, 30)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "den-1", resp.DentistID)
	assert.Equal(t, testDate, resp.Date)

	starts := make([]time.Time, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.Start)
		assert.Equal(t, 30*time.Minute, s.End.Sub(s.Start))
	}
	assert.Equal(t, []time.Time{
		at(9, 0), at(9, 30), at(10, 30), at(11, 0), at(11, 30),
	}, starts)
}

func TestComputeAvailabilityIdempotent(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	svc := newTestService([]models.Appointment{
		{ID: "a1", DentistID: "den-1",
			Start:  day.Add(10 * time.Hour),
			End:    day.Add(10*time.Hour + 30*time.Minute),
			Status: models.AppointmentScheduled},
	})

	first, err := svc.ComputeAvailability(context.Background(), "den-1", testDate, 30)
	require.NoError(t, err)
	second, err := svc.ComputeAvailability(context.Background(), "den-1", testDate, 30)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeAvailabilityDayOff(t *testing.T) {
	svc := newTestService(nil)

	// 2026-03-03 is a Tuesday; the template only covers Monday.
	resp, err := svc.ComputeAvailability(context.Background(), "den-1", "2026-03-03", 30)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestComputeAvailabilityErrors(t *testing.T) {
	t.Run("unknown dentist", func(t *testing.T) {
		svc := newTestService(nil)
		_, err := svc.ComputeAvailability(context.Background(), "nobody", testDate, 30)
		var notFound DentistNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "nobody", notFound.DentistID)
	})

	t.Run("malformed date", func(t *testing.T) {
		svc := newTestService(nil)
		_, err := svc.ComputeAvailability(context.Background(), "den-1", "03/02/2026", 30)
		var invalid InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("non-positive duration", func(t *testing.T) {
		svc := newTestService(nil)
		_, err := svc.ComputeAvailability(context.Background(), "den-1", testDate, 0)
		var invalid InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("repository failure is not leaked", func(t *testing.T) {
		svc := newTestService(nil)
		svc.Appointments = &fakeAppointmentRepo{err: errors.New("connection reset")}
		_, err := svc.ComputeAvailability(context.Background(), "den-1", testDate, 30)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "connection reset")
	})
}

func TestCheckConflict(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	svc := newTestService([]models.Appointment{
		{ID: "a1", DentistID: "den-1",
			Start: at(10, 0), End: at(10, 30), Status: models.AppointmentScheduled},
	})

	t.Run("overlap reported", func(t *testing.T) {
		conflict, err := svc.CheckConflict(context.Background(), "den-1", at(10, 15), at(10, 45))
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, "a1", conflict.ID)
	})

	t.Run("abutting window is free", func(t *testing.T) {
		conflict, err := svc.CheckConflict(context.Background(), "den-1", at(10, 30), at(11, 0))
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		_, err := svc.CheckConflict(context.Background(), "den-1", at(11, 0), at(10, 0))
		var invalid InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})
}
