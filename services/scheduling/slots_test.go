package scheduling

import (
	"testing"
	"time"

	"clinio/models"

	"github.com/stretchr/testify/assert"
)

func iv(start, end int) models.MinuteInterval {
	return models.MinuteInterval{Start: start, End: end}
}

func TestFreeSlots(t *testing.T) {
	tests := []struct {
		name     string
		working  []models.MinuteInterval
		busy     []models.MinuteInterval
		duration int
		step     int
		expected []models.MinuteInterval
	}{
		{
			name:     "morning with one booked half hour",
			working:  []models.MinuteInterval{iv(9*60, 12*60)},
			busy:     []models.MinuteInterval{iv(10*60, 10*60+30)},
			duration: 30,
			step:     30,
			expected: []models.MinuteInterval{
				iv(9*60, 9*60+30),
				iv(9*60+30, 10*60),
				iv(10*60+30, 11*60),
				iv(11*60, 11*60+30),
				iv(11*60+30, 12*60),
			},
		},
		{
			name:     "no working hours",
			working:  nil,
			busy:     []models.MinuteInterval{iv(10*60, 11*60)},
			duration: 30,
			expected: nil,
		},
		{
			name:     "gap smaller than duration yields nothing",
			working:  []models.MinuteInterval{iv(9*60, 9*60+20)},
			busy:     nil,
			duration: 30,
			expected: nil,
		},
		{
			name:     "slot abutting appointment boundary is valid",
			working:  []models.MinuteInterval{iv(9*60, 11*60)},
			busy:     []models.MinuteInterval{iv(10*60, 10*60+30)},
			duration: 60,
			step:     30,
			expected: []models.MinuteInterval{iv(9*60, 10*60)},
		},
		{
			name:     "fully booked day",
			working:  []models.MinuteInterval{iv(9*60, 12*60)},
			busy:     []models.MinuteInterval{iv(8*60, 13*60)},
			duration: 30,
			expected: nil,
		},
		{
			name:     "split working day",
			working:  []models.MinuteInterval{iv(9*60, 10*60), iv(14*60, 15*60)},
			busy:     nil,
			duration: 60,
			expected: []models.MinuteInterval{iv(9*60, 10*60), iv(14*60, 15*60)},
		},
		{
			name:     "step defaults to duration",
			working:  []models.MinuteInterval{iv(9*60, 11*60)},
			busy:     nil,
			duration: 60,
			step:     0,
			expected: []models.MinuteInterval{iv(9*60, 10*60), iv(10*60, 11*60)},
		},
		{
			name:     "finer granularity than duration",
			working:  []models.MinuteInterval{iv(9*60, 10*60)},
			busy:     nil,
			duration: 30,
			step:     15,
			expected: []models.MinuteInterval{
				iv(9*60, 9*60+30),
				iv(9*60+15, 9*60+45),
				iv(9*60+30, 10*60),
			},
		},
		{
			name:     "zero duration yields nothing",
			working:  []models.MinuteInterval{iv(9*60, 12*60)},
			duration: 0,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeSlots(tt.working, tt.busy, tt.duration, tt.step)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// Every emitted slot must lie inside a working interval and avoid every busy
// interval; the computation must be deterministic.
func TestFreeSlotsProperties(t *testing.T) {
	working := []models.MinuteInterval{iv(8*60, 12*60), iv(13*60, 17*60)}
	busy := []models.MinuteInterval{iv(9*60, 9*60+45), iv(11*60+30, 13*60+30), iv(15*60, 15*60+15)}

	first := FreeSlots(working, busy, 30, 15)
	second := FreeSlots(working, busy, 30, 15)
	assert.Equal(t, first, second, "availability must be idempotent")
	assert.NotEmpty(t, first)

	prev := -1
	for _, slot := range first {
		assert.Equal(t, 30, slot.End-slot.Start)
		assert.Greater(t, slot.Start, prev, "slots must be chronological")
		prev = slot.Start

		contained := false
		for _, w := range working {
			if slot.Start >= w.Start && slot.End <= w.End {
				contained = true
				break
			}
		}
		assert.True(t, contained, "slot [%d,%d) outside working hours", slot.Start, slot.End)

		for _, b := range busy {
			assert.False(t, Overlaps(slot.Start, slot.End, b.Start, b.End),
				"slot [%d,%d) overlaps busy [%d,%d)", slot.Start, slot.End, b.Start, b.End)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		expected       bool
	}{
		{"partial overlap", 10*60 + 15, 10*60 + 45, 10 * 60, 10*60 + 30, true},
		{"abutting does not overlap", 10*60 + 30, 11 * 60, 10 * 60, 10*60 + 30, false},
		{"contained", 10 * 60, 11 * 60, 10*60 + 15, 10*60 + 30, true},
		{"disjoint", 9 * 60, 10 * 60, 11 * 60, 12 * 60, false},
		{"identical", 10 * 60, 11 * 60, 10 * 60, 11 * 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// Overlap is symmetric.
			assert.Equal(t, tt.expected, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestFindConflict(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	existing := []models.Appointment{
		{ID: "a1", Start: at(10, 0), End: at(10, 30), Status: models.AppointmentScheduled},
		{ID: "a2", Start: at(14, 0), End: at(15, 0), Status: models.AppointmentCancelled},
	}

	t.Run("overlapping window conflicts", func(t *testing.T) {
		got := FindConflict(existing, at(10, 15), at(10, 45))
		if assert.NotNil(t, got) {
			assert.Equal(t, "a1", got.ID)
		}
	})

	t.Run("abutting window does not conflict", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, at(10, 30), at(11, 0)))
	})

	t.Run("cancelled appointments do not occupy the calendar", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, at(14, 0), at(15, 0)))
	})

	t.Run("empty calendar", func(t *testing.T) {
		assert.Nil(t, FindConflict(nil, at(9, 0), at(9, 30)))
	})
}
