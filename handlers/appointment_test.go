package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinio/models"
	"clinio/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingService struct {
	createErr error
	cancelErr error
	appt      *models.Appointment

	cancelCalls     int
	cancelPatientID string
}

func (f *fakeBookingService) CreateAppointment(ctx context.Context, patientID string, req models.BookingRequest) (*models.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.appt, nil
}

func (f *fakeBookingService) CancelAppointment(ctx context.Context, patientID, apptID string) (*models.Appointment, error) {
	f.cancelCalls++
	f.cancelPatientID = patientID
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return f.appt, nil
}
func (f *fakeBookingService) CompleteAppointment(ctx context.Context, apptID string) (*models.Appointment, error) {
	return nil, nil
}
func (f *fakeBookingService) GetAppointment(ctx context.Context, apptID string) (*models.Appointment, error) {
	return f.appt, nil
}
func (f *fakeBookingService) ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeBookingService) ListDentistAppointments(ctx context.Context, dentistID string, from, to time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func newBookingRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &AppointmentHandler{BookingService: svc}
	r := gin.New()
	r.POST("/appointments", func(c *gin.Context) { c.Set("userID", "pat-1") }, h.CreateAppointmentHandler)
	return r
}

func postBooking(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"dentistId":"den-1","start":"2026-03-02T10:15:00Z","end":"2026-03-02T10:45:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAppointmentHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 10, 15, 0, 0, time.UTC)
		r := newBookingRouter(&fakeBookingService{appt: &models.Appointment{
			ID: "a1", DentistID: "den-1", PatientID: "pat-1",
			Start: start, End: start.Add(30 * time.Minute),
			Status: models.AppointmentScheduled,
		}})

		w := postBooking(t, r)
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp models.Appointment
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "a1", resp.ID)
	})

	t.Run("conflict carries the occupied range", func(t *testing.T) {
		conflictStart := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		r := newBookingRouter(&fakeBookingService{createErr: booking.ConflictError{
			DentistID: "den-1",
			Start:     conflictStart,
			End:       conflictStart.Add(30 * time.Minute),
		}})

		w := postBooking(t, r)
		assert.Equal(t, http.StatusConflict, w.Code)

		var resp struct {
			Error    string `json:"error"`
			Conflict struct {
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			} `json:"conflict"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, conflictStart, resp.Conflict.Start)
		assert.Equal(t, conflictStart.Add(30*time.Minute), resp.Conflict.End)
	})

	t.Run("invalid booking maps to 400", func(t *testing.T) {
		r := newBookingRouter(&fakeBookingService{
			createErr: booking.InvalidBookingError{Reason: "appointments cannot start in the past"},
		})
		w := postBooking(t, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown dentist maps to 404", func(t *testing.T) {
		r := newBookingRouter(&fakeBookingService{
			createErr: booking.NotFoundError{Kind: "dentist", ID: "nobody"},
		})
		w := postBooking(t, r)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed payload maps to 400", func(t *testing.T) {
		r := newBookingRouter(&fakeBookingService{})
		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(`{"dentistId":""}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// newCancelRouter registers the cancel endpoint behind a stand-in for the
// staff-or-patient auth middleware.
func newCancelRouter(svc booking.BookingService, identity gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &AppointmentHandler{BookingService: svc}
	r := gin.New()
	r.DELETE("/appointments/:id", identity, h.CancelAppointmentHandler)
	return r
}

func deleteAppointment(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/appointments/a1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCancelAppointmentHandler(t *testing.T) {
	appt := &models.Appointment{ID: "a1", PatientID: "pat-1", Status: models.AppointmentCancelled}

	t.Run("patient cancels with own identity", func(t *testing.T) {
		svc := &fakeBookingService{appt: appt}
		r := newCancelRouter(svc, func(c *gin.Context) { c.Set("userID", "pat-1") })

		w := deleteAppointment(t, r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pat-1", svc.cancelPatientID)
	})

	t.Run("staff key alone reaches the service without a patient identity", func(t *testing.T) {
		svc := &fakeBookingService{appt: appt}
		r := newCancelRouter(svc, func(c *gin.Context) { c.Set("isStaff", true) })

		w := deleteAppointment(t, r)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, svc.cancelCalls)
		assert.Empty(t, svc.cancelPatientID)
	})

	t.Run("no identity at all is rejected", func(t *testing.T) {
		svc := &fakeBookingService{appt: appt}
		r := newCancelRouter(svc, func(c *gin.Context) {})

		w := deleteAppointment(t, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, svc.cancelCalls)
	})

	t.Run("forbidden from the service maps to 403", func(t *testing.T) {
		svc := &fakeBookingService{cancelErr: booking.ForbiddenError{AppointmentID: "a1"}}
		r := newCancelRouter(svc, func(c *gin.Context) { c.Set("userID", "pat-2") })

		w := deleteAppointment(t, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
