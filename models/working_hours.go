package models

import (
	"fmt"
	"sort"
	"time"
)

const minutesPerDay = 24 * 60

// MinuteInterval is a closed-open [Start, End) range of minutes from midnight.
type MinuteInterval struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// WeeklyHours is a dentist's recurring availability template: for each
// weekday, the working intervals of that day. Invariant after Normalize:
// intervals per day are sorted and non-overlapping.
type WeeklyHours map[time.Weekday][]MinuteInterval

// Validate checks a single interval against the 24h clock.
func (iv MinuteInterval) Validate() error {
	if iv.Start < 0 || iv.End > minutesPerDay {
		return fmt.Errorf("interval [%d, %d) outside the 24h clock", iv.Start, iv.End)
	}
	if iv.Start >= iv.End {
		return fmt.Errorf("interval start %d must precede end %d", iv.Start, iv.End)
	}
	return nil
}

// Normalize sorts each day's intervals, merges touching or overlapping ones
// and validates bounds. It returns a fresh WeeklyHours and leaves the
// receiver untouched.
func (wh WeeklyHours) Normalize() (WeeklyHours, error) {
	out := make(WeeklyHours, len(wh))
	for day, intervals := range wh {
		if day < time.Sunday || day > time.Saturday {
			return nil, fmt.Errorf("invalid weekday %d", day)
		}
		merged, err := normalizeIntervals(intervals)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", day, err)
		}
		if len(merged) > 0 {
			out[day] = merged
		}
	}
	return out, nil
}

func normalizeIntervals(intervals []MinuteInterval) ([]MinuteInterval, error) {
	if len(intervals) == 0 {
		return nil, nil
	}
	sorted := make([]MinuteInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var merged []MinuteInterval
	for _, iv := range sorted {
		if err := iv.Validate(); err != nil {
			return nil, err
		}
		if n := len(merged); n > 0 && iv.Start <= merged[n-1].End {
			if iv.End > merged[n-1].End {
				merged[n-1].End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged, nil
}

// ForDay returns the working intervals for the given weekday.
func (wh WeeklyHours) ForDay(day time.Weekday) []MinuteInterval {
	return wh[day]
}
