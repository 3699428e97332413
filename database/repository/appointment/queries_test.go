package appointmentRepo

import (
	"testing"
	"time"

	"clinio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestActiveOverlapFilter(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	filter := activeOverlapFilter("den-1", start, end)

	assert.Equal(t, "den-1", filter["dentist_id"])
	assert.Equal(t, bson.M{"$ne": models.AppointmentCancelled}, filter["status"])

	// Closed-open overlap: existing.start < end AND existing.end > start,
	// so an appointment ending exactly at start (or starting at end) does
	// not match.
	assert.Equal(t, bson.M{"$lt": end}, filter["start"])
	assert.Equal(t, bson.M{"$gt": start}, filter["end"])
}

func TestBookingLock(t *testing.T) {
	filter := bookingLockFilter("den-1")
	assert.Equal(t, bson.M{"dentist_id": "den-1"}, filter)

	// Every booking must WRITE the lock document, not merely read it, so
	// concurrent transactions for one dentist share a write set and cannot
	// both commit overlapping inserts.
	update := bookingLockUpdate()
	inc, ok := update["$inc"].(bson.M)
	require.True(t, ok, "lock update must modify the document")
	assert.Equal(t, 1, inc["revision"])
	assert.Contains(t, update, "$currentDate")
}
