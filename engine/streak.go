package engine

import (
	"math"
	"time"
)

// midnight truncates a timestamp to the start of its calendar day in loc.
// Streak continuity is defined on calendar days, not 24-hour deltas: a
// completion at 23:59 followed by one at 00:01 the next day still counts as
// consecutive.
func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// dayDiff counts calendar days between two timestamps. Rounding absorbs the
// 23/25-hour days around DST transitions.
func dayDiff(from, to time.Time, loc *time.Location) int {
	d := midnight(to, loc).Sub(midnight(from, loc))
	return int(math.Round(d.Hours() / 24))
}

// NextStreak computes the streak after a successful completion at now.
//
//   - no prior completion: streak becomes at least 1
//   - completed exactly one calendar day after the last: increment
//   - a day or more skipped: reset to 1
//   - same calendar day again: unchanged (repeat completions on one day
//     neither extend nor break the streak)
func NextStreak(last *time.Time, current int, now time.Time, loc *time.Location) int {
	if last == nil {
		if current > 1 {
			return current
		}
		return 1
	}
	switch diff := dayDiff(*last, now, loc); {
	case diff == 1:
		return current + 1
	case diff > 1:
		return 1
	default:
		return current
	}
}

// MaxStreak returns the new longest-streak high-water mark.
func MaxStreak(longest, streak int) int {
	if streak > longest {
		return streak
	}
	return longest
}
