package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"clinio/config"
	"clinio/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the free-slot calculator.
type AvailabilityHandler struct {
	SchedulingService scheduling.Service
}

// GetAvailabilityHandler handles GET /availability/:dentistID?date=YYYY-MM-DD&duration=30.
// Duration defaults to the configured slot length.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c)

	dentistID := c.Param("dentistID")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'date' is required (YYYY-MM-DD)"})
		return
	}

	duration := config.AppConfig.DefaultSlotMinutes
	if raw := c.Query("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'duration' must be an integer number of minutes"})
			return
		}
		duration = parsed
	}

	resp, err := h.SchedulingService.ComputeAvailability(c.Request.Context(), dentistID, date, duration)
	if err != nil {
		var invalid scheduling.InvalidInputError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
			return
		}
		var notFound scheduling.DentistNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
			return
		}
		logger.Error("Availability computation failed",
			zap.String("dentistID", dentistID), zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
