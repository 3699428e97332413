package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clinio/database"
	"clinio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	conn *database.Conn
	coll *mongo.Collection
	// One document per dentist, written by every booking transaction so
	// concurrent bookings for the same dentist collide instead of committing
	// side by side.
	locks *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo(conn *database.Conn) AppointmentRepository {
	repo := &MongoAppointmentRepo{
		conn:  conn,
		coll:  conn.Database().Collection("appointments"),
		locks: conn.Database().Collection("calendar_locks"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// Calendar scans are always per dentist ordered by start.
		{Keys: bson.D{{Key: "dentist_id", Value: 1}, {Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "start", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	lockIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "dentist_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.locks.Indexes().CreateOne(ctx, lockIndex); err != nil {
		return fmt.Errorf("failed to create calendar lock index: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its ID.
func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// UpdateStatus transitions an appointment's status and returns the new state.
func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Appointment, error) {
	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Appointment
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("appointment with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	return &updated, nil
}

// MarkCompletedBefore sweeps scheduled appointments whose window has passed.
func (r *MongoAppointmentRepo) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"status": models.AppointmentScheduled,
		"end":    bson.M{"$lte": cutoff},
	}
	update := bson.M{"$set": bson.M{
		"status":     models.AppointmentCompleted,
		"updated_at": time.Now(),
	}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep past appointments: %w", err)
	}
	return res.ModifiedCount, nil
}
