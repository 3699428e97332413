package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clinio/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertIfFree re-runs the overlap check and inserts the appointment inside a
// single MongoDB transaction.
//
// A snapshot-isolated transaction alone is not enough here: two concurrent
// bookings each read an empty calendar on their own snapshot and each insert
// a distinct document, so their write sets never intersect and both commit.
// To close that hole every booking first bumps the dentist's calendar lock
// document. Concurrent transactions for the same dentist then write the same
// document, MongoDB aborts one with a transient write conflict, and
// WithTransaction reruns it against the winner's committed insert, where the
// overlap check now sees the clash.
//
// On conflict the clashing appointment is returned and nothing is written to
// the calendar.
func (r *MongoAppointmentRepo) InsertIfFree(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	sess, err := r.conn.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	result, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.locks.UpdateOne(sc,
			bookingLockFilter(appt.DentistID),
			bookingLockUpdate(),
			options.Update().SetUpsert(true),
		); err != nil {
			return nil, fmt.Errorf("failed to take calendar lock: %w", err)
		}

		var existing models.Appointment
		err := r.coll.FindOne(sc, activeOverlapFilter(appt.DentistID, appt.Start, appt.End)).Decode(&existing)
		if err == nil {
			return &existing, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("conflict check failed: %w", err)
		}

		now := time.Now()
		appt.CreatedAt = now
		appt.UpdatedAt = now
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return nil, fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("booking transaction failed: %w", err)
	}

	if existing, ok := result.(*models.Appointment); ok && existing != nil {
		return existing, nil
	}
	return nil, nil
}
