package handlers

import (
	"net/http"

	"clinio/models"
	"clinio/services/dentist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DentistHandler exposes the practitioner directory endpoints.
type DentistHandler struct {
	DentistService dentist.DentistService
}

// RegisterDentistHandler adds a practitioner to the directory (staff only).
func (h *DentistHandler) RegisterDentistHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.DentistRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid dentist registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.DentistService.RegisterDentist(req)
	if err != nil {
		logger.Error("Dentist registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListDentistsHandler returns the full directory.
func (h *DentistHandler) ListDentistsHandler(c *gin.Context) {
	logger := getLogger(c)

	dentists, err := h.DentistService.ListDentists(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list dentists", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dentists)
}

// GetDentistHandler returns one dentist, including the weekly template.
func (h *DentistHandler) GetDentistHandler(c *gin.Context) {
	logger := getLogger(c)

	id := c.Param("id")
	found, err := h.DentistService.GetDentistByID(id)
	if err != nil {
		logger.Error("Dentist not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, found)
}

// SetWorkingHoursHandler replaces a dentist's weekly template (staff only).
func (h *DentistHandler) SetWorkingHoursHandler(c *gin.Context) {
	logger := getLogger(c)

	id := c.Param("id")
	var req models.SetWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid working hours request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.DentistService.SetWorkingHours(id, req.WorkingHours)
	if err != nil {
		logger.Error("Failed to set working hours", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetActiveHandler flips whether a dentist accepts new bookings (staff only).
func (h *DentistHandler) SetActiveHandler(c *gin.Context) {
	logger := getLogger(c)

	id := c.Param("id")
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid active flag request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.DentistService.SetActive(id, *req.Active)
	if err != nil {
		logger.Error("Failed to set active flag", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}
