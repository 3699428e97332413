package recordRepo

import (
	"context"

	"clinio/database"
	"clinio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PatientRecordRepository stores clinical notes per patient.
type PatientRecordRepository interface {
	Create(ctx context.Context, record models.PatientRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.PatientRecord, error)
	GetByPatientID(ctx context.Context, patientID string) ([]models.PatientRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a new PatientRecordRepository instance using MongoDB.
func NewMongoRecordRepo(conn *database.Conn) PatientRecordRepository {
	return &mongoRecordRepo{
		coll: conn.Database().Collection("patient_records"),
	}
}
