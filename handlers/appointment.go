package handlers

import (
	"errors"
	"net/http"
	"time"

	"clinio/models"
	"clinio/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the booking endpoints.
type AppointmentHandler struct {
	BookingService booking.BookingService
}

// bookingError maps the typed booking errors onto HTTP statuses. Conflicts
// carry the occupied range so clients can re-plan immediately.
func bookingError(c *gin.Context, err error) {
	var conflict booking.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "time window conflicts with an existing appointment",
			"conflict": gin.H{
				"start": conflict.Start,
				"end":   conflict.End,
			},
		})
		return
	}
	var invalid booking.InvalidBookingError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		return
	}
	var notFound booking.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}
	var forbidden booking.ForbiddenError
	if errors.As(err, &forbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": forbidden.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// CreateAppointmentHandler books a window for the authenticated patient.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)

	patientID := c.GetString("userID")
	if patientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.BookingService.CreateAppointment(c.Request.Context(), patientID, req)
	if err != nil {
		logger.Warn("Booking failed",
			zap.String("patientID", patientID), zap.String("dentistID", req.DentistID), zap.Error(err))
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// CancelAppointmentHandler cancels an appointment. Patients may only cancel
// their own; staff requests carry no patient identity and may cancel any.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)

	patientID := c.GetString("userID")
	if patientID == "" && !c.GetBool("isStaff") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	apptID := c.Param("id")

	appt, err := h.BookingService.CancelAppointment(c.Request.Context(), patientID, apptID)
	if err != nil {
		logger.Warn("Cancellation failed", zap.String("appointmentID", apptID), zap.Error(err))
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListMyAppointmentsHandler returns the authenticated patient's appointments.
func (h *AppointmentHandler) ListMyAppointmentsHandler(c *gin.Context) {
	logger := getLogger(c)

	patientID := c.GetString("userID")
	if patientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	appts, err := h.BookingService.ListPatientAppointments(c.Request.Context(), patientID)
	if err != nil {
		logger.Error("Failed to list appointments", zap.String("patientID", patientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appts)
}

// GetAppointmentHandler returns one appointment. Patients may only see their own.
func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)

	patientID := c.GetString("userID")
	if patientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	apptID := c.Param("id")

	appt, err := h.BookingService.GetAppointment(c.Request.Context(), apptID)
	if err != nil {
		logger.Warn("Failed to fetch appointment", zap.String("appointmentID", apptID), zap.Error(err))
		bookingError(c, err)
		return
	}
	if appt.PatientID != patientID {
		c.JSON(http.StatusForbidden, gin.H{"error": "appointment does not belong to the requesting patient"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListDentistAppointmentsHandler returns a dentist's calendar for a range (staff only).
// Defaults to the next seven days when no range is given.
func (h *AppointmentHandler) ListDentistAppointmentsHandler(c *gin.Context) {
	logger := getLogger(c)

	dentistID := c.Param("dentistID")
	from, to, err := parseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appts, err := h.BookingService.ListDentistAppointments(c.Request.Context(), dentistID, from, to)
	if err != nil {
		logger.Error("Failed to list dentist appointments", zap.String("dentistID", dentistID), zap.Error(err))
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// CompleteAppointmentHandler marks an appointment completed (staff only).
func (h *AppointmentHandler) CompleteAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)

	apptID := c.Param("id")
	appt, err := h.BookingService.CompleteAppointment(c.Request.Context(), apptID)
	if err != nil {
		logger.Warn("Completion failed", zap.String("appointmentID", apptID), zap.Error(err))
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func parseRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now
	to := now.AddDate(0, 0, 7)

	var err error
	if fromRaw != "" {
		if from, err = time.Parse(time.RFC3339, fromRaw); err != nil {
			return time.Time{}, time.Time{}, errors.New("query parameter 'from' must be RFC 3339")
		}
	}
	if toRaw != "" {
		if to, err = time.Parse(time.RFC3339, toRaw); err != nil {
			return time.Time{}, time.Time{}, errors.New("query parameter 'to' must be RFC 3339")
		}
	}
	return from, to, nil
}
