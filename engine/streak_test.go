package engine

import (
	"testing"
	"time"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", value, err)
	}
	return parsed
}

func TestNextStreak_FirstCompletion(t *testing.T) {
	now := ts(t, "2025-03-10 14:00")
	if got := NextStreak(nil, 0, now, time.UTC); got != 1 {
		t.Fatalf("first completion: want streak 1, got %d", got)
	}
	// A non-zero prior streak with no completion timestamp must not shrink.
	if got := NextStreak(nil, 4, now, time.UTC); got != 4 {
		t.Fatalf("first completion with prior streak: want 4, got %d", got)
	}
}

func TestNextStreak_MidnightBoundary(t *testing.T) {
	// 23:59 -> 00:01 the next day is one calendar day apart even though the
	// wall-clock delta is two minutes.
	last := ts(t, "2025-03-10 23:59")
	now := ts(t, "2025-03-11 00:01")
	if got := NextStreak(&last, 3, now, time.UTC); got != 4 {
		t.Fatalf("midnight boundary: want 4, got %d", got)
	}
}

func TestNextStreak_FullDayApart(t *testing.T) {
	last := ts(t, "2025-03-10 09:00")
	now := ts(t, "2025-03-11 21:30")
	if got := NextStreak(&last, 1, now, time.UTC); got != 2 {
		t.Fatalf("next-day completion: want 2, got %d", got)
	}
}

func TestNextStreak_GapResets(t *testing.T) {
	last := ts(t, "2025-03-10 09:00")
	now := ts(t, "2025-03-13 09:00")
	if got := NextStreak(&last, 9, now, time.UTC); got != 1 {
		t.Fatalf("three-day gap: want reset to 1, got %d", got)
	}
}

func TestNextStreak_SameDayUnchanged(t *testing.T) {
	last := ts(t, "2025-03-10 09:00")
	now := ts(t, "2025-03-10 22:00")
	if got := NextStreak(&last, 5, now, time.UTC); got != 5 {
		t.Fatalf("same-day repeat: want unchanged 5, got %d", got)
	}
}

func TestNextStreak_LocalCalendarDay(t *testing.T) {
	// Two instants that are the same UTC day but different days in UTC+9.
	loc := time.FixedZone("UTC+9", 9*3600)
	last := ts(t, "2025-03-10 13:00") // 22:00 on the 10th in UTC+9
	now := ts(t, "2025-03-10 16:00")  // 01:00 on the 11th in UTC+9
	if got := NextStreak(&last, 2, now, loc); got != 3 {
		t.Fatalf("local-midnight normalization: want 3, got %d", got)
	}
	if got := NextStreak(&last, 2, now, time.UTC); got != 2 {
		t.Fatalf("same UTC day: want unchanged 2, got %d", got)
	}
}

func TestMaxStreak(t *testing.T) {
	if got := MaxStreak(7, 3); got != 7 {
		t.Fatalf("want 7, got %d", got)
	}
	if got := MaxStreak(3, 8); got != 8 {
		t.Fatalf("want 8, got %d", got)
	}
}
