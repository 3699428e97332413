package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clinio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// activeOverlapFilter matches the dentist's non-cancelled appointments whose
// closed-open window [start, end) intersects the given one:
// existing.start < end AND existing.end > start.
func activeOverlapFilter(dentistID string, start, end time.Time) bson.M {
	return bson.M{
		"dentist_id": dentistID,
		"status":     bson.M{"$ne": models.AppointmentCancelled},
		"start":      bson.M{"$lt": end},
		"end":        bson.M{"$gt": start},
	}
}

// bookingLockFilter addresses a dentist's calendar lock document.
func bookingLockFilter(dentistID string) bson.M {
	return bson.M{"dentist_id": dentistID}
}

// bookingLockUpdate bumps the lock's revision. The lock carries no state of
// its own; bookings write it only so that two transactions touching the same
// dentist's calendar can never both commit without seeing each other.
func bookingLockUpdate() bson.M {
	return bson.M{
		"$inc":         bson.M{"revision": 1},
		"$currentDate": bson.M{"updated_at": true},
	}
}

// FindActiveOverlapping returns active appointments overlapping [start, end).
func (r *MongoAppointmentRepo) FindActiveOverlapping(ctx context.Context, dentistID string, start, end time.Time) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, activeOverlapFilter(dentistID, start, end), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping appointments: %w", err)
	}
	return appts, nil
}

// ListByDentistAndRange returns appointments starting within [from, to).
func (r *MongoAppointmentRepo) ListByDentistAndRange(ctx context.Context, dentistID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"dentist_id": dentistID,
		"start":      bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for dentist %s: %w", dentistID, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// ListByPatient returns all of a patient's appointments, newest first.
func (r *MongoAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	filter := bson.M{"patient_id": patientID}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for patient %s: %w", patientID, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}
