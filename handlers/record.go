package handlers

import (
	"errors"
	"net/http"

	"clinio/models"
	"clinio/services/record"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecordHandler exposes the clinical record endpoints. Writes are staff only;
// patients read their own history.
type RecordHandler struct {
	RecordService record.RecordService
}

func recordError(c *gin.Context, err error) {
	var notFound record.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// CreateRecordHandler attaches a clinical note to a patient (staff only).
func (h *RecordHandler) CreateRecordHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.PatientRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid record request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	id, err := h.RecordService.CreateRecord(c.Request.Context(), req)
	if err != nil {
		logger.Error("Record creation failed", zap.String("patientID", req.PatientID), zap.Error(err))
		recordError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListMyRecordsHandler returns the authenticated patient's clinical history.
func (h *RecordHandler) ListMyRecordsHandler(c *gin.Context) {
	logger := getLogger(c)

	patientID := c.GetString("userID")
	if patientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	recs, err := h.RecordService.ListPatientRecords(c.Request.Context(), patientID)
	if err != nil {
		logger.Error("Failed to list records", zap.String("patientID", patientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}

// ListPatientRecordsHandler returns any patient's history (staff only).
func (h *RecordHandler) ListPatientRecordsHandler(c *gin.Context) {
	logger := getLogger(c)

	patientID := c.Param("patientID")
	recs, err := h.RecordService.ListPatientRecords(c.Request.Context(), patientID)
	if err != nil {
		logger.Error("Failed to list records", zap.String("patientID", patientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}

// DeleteRecordHandler removes a clinical note (staff only).
func (h *RecordHandler) DeleteRecordHandler(c *gin.Context) {
	logger := getLogger(c)

	id := c.Param("id")
	if err := h.RecordService.DeleteRecord(c.Request.Context(), id); err != nil {
		logger.Error("Record deletion failed", zap.String("recordID", id), zap.Error(err))
		recordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}
