// Package record manages clinical notes attached to patients.
package record

import (
	"context"
	"fmt"

	recordRepo "clinio/database/repository/record"
	userRepo "clinio/database/repository/user"
	"clinio/models"
	"clinio/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// NotFoundError reports a missing record or patient.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

type RecordService interface {
	// CreateRecord attaches a clinical note to an existing patient and
	// returns the stored record's ID.
	CreateRecord(ctx context.Context, rec models.PatientRecord) (string, error)
	// GetRecord fetches a single record by ID.
	GetRecord(ctx context.Context, id string) (*models.PatientRecord, error)
	// ListPatientRecords returns every record for a patient, newest first.
	ListPatientRecords(ctx context.Context, patientID string) ([]models.PatientRecord, error)
	// DeleteRecord removes a record.
	DeleteRecord(ctx context.Context, id string) error
}

// DefaultRecordService is the production implementation.
type DefaultRecordService struct {
	Repo  recordRepo.PatientRecordRepository
	Users userRepo.UserRepository
}

func (s *DefaultRecordService) CreateRecord(ctx context.Context, rec models.PatientRecord) (string, error) {
	if rec.PatientID == "" || rec.DentistID == "" {
		return "", fmt.Errorf("patient id and dentist id are required")
	}
	if rec.Title == "" {
		return "", fmt.Errorf("record title is required")
	}

	// Records must never dangle off deleted accounts.
	patient, err := s.Users.GetByIDWithProjection(rec.PatientID, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("CreateRecord: failed to check patient",
			zap.String("patientID", rec.PatientID), zap.Error(err))
		return "", fmt.Errorf("failed to create record, please try again")
	}
	if patient == nil {
		return "", NotFoundError{Kind: "patient", ID: rec.PatientID}
	}

	id, err := s.Repo.Create(ctx, rec)
	if err != nil {
		utils.GetLogger().Error("CreateRecord: failed to store record",
			zap.String("patientID", rec.PatientID), zap.Error(err))
		return "", fmt.Errorf("failed to create record, please try again")
	}
	return id, nil
}

func (s *DefaultRecordService) GetRecord(ctx context.Context, id string) (*models.PatientRecord, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		utils.GetLogger().Error("GetRecord: failed to fetch record", zap.String("recordID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch record")
	}
	if rec == nil {
		return nil, NotFoundError{Kind: "record", ID: id}
	}
	return rec, nil
}

func (s *DefaultRecordService) ListPatientRecords(ctx context.Context, patientID string) ([]models.PatientRecord, error) {
	recs, err := s.Repo.GetByPatientID(ctx, patientID)
	if err != nil {
		utils.GetLogger().Error("ListPatientRecords: query failed",
			zap.String("patientID", patientID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch records")
	}
	return recs, nil
}

func (s *DefaultRecordService) DeleteRecord(ctx context.Context, id string) error {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		utils.GetLogger().Error("DeleteRecord: failed to fetch record", zap.String("recordID", id), zap.Error(err))
		return fmt.Errorf("failed to delete record")
	}
	if rec == nil {
		return NotFoundError{Kind: "record", ID: id}
	}
	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		utils.GetLogger().Error("DeleteRecord: failed to delete record", zap.String("recordID", id), zap.Error(err))
		return fmt.Errorf("failed to delete record")
	}
	return nil
}
