// Package scheduling holds the availability and conflict-detection core.
// The calculators are pure functions over minute intervals; the Service
// wires them to the dentist and appointment stores.
package scheduling

import (
	"time"

	"clinio/models"
)

// Overlaps reports whether the closed-open ranges [s1,e1) and [s2,e2)
// intersect. Abutting ranges do not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// subtractBusy removes the busy intervals from each working interval,
// producing the continuous free gaps in chronological order.
func subtractBusy(working, busy []models.MinuteInterval) []models.MinuteInterval {
	free := make([]models.MinuteInterval, len(working))
	copy(free, working)

	for _, b := range busy {
		var updated []models.MinuteInterval
		for _, iv := range free {
			if b.End <= iv.Start || b.Start >= iv.End {
				updated = append(updated, iv)
				continue
			}
			if b.Start > iv.Start {
				updated = append(updated, models.MinuteInterval{Start: iv.Start, End: b.Start})
			}
			if b.End < iv.End {
				updated = append(updated, models.MinuteInterval{Start: b.End, End: iv.End})
			}
		}
		free = updated
	}
	return free
}

// FreeSlots computes every bookable slot of exactly duration minutes within
// the working intervals, avoiding the busy intervals. Candidate starts step
// by the given granularity from the beginning of each free gap; a gap smaller
// than duration yields nothing. A slot abutting a busy boundary is valid.
// Inputs are expected normalized (sorted, non-overlapping working intervals).
func FreeSlots(working, busy []models.MinuteInterval, duration, step int) []models.MinuteInterval {
	if duration <= 0 {
		return nil
	}
	if step <= 0 {
		step = duration
	}

	var slots []models.MinuteInterval
	for _, gap := range subtractBusy(working, busy) {
		for start := gap.Start; start+duration <= gap.End; start += step {
			slots = append(slots, models.MinuteInterval{Start: start, End: start + duration})
		}
	}
	return slots
}

// FindConflict returns the first active appointment whose window overlaps
// [start, end), or nil when the window is free. Cancelled appointments never
// conflict.
func FindConflict(appts []models.Appointment, start, end time.Time) *models.Appointment {
	for i := range appts {
		a := appts[i]
		if !a.Active() {
			continue
		}
		if start.Before(a.End) && a.Start.Before(end) {
			return &appts[i]
		}
	}
	return nil
}
