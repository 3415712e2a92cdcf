package scheduler

import (
	"testing"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/engine"
)

func TestDueForNudge(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	window := 2 * time.Hour
	in90m := now.Add(90 * time.Minute)

	cases := []struct {
		name       string
		status     string
		deadline   time.Time
		lastNudged *time.Time
		want       bool
	}{
		{"inside window, never nudged", engine.StatusPending, in90m, nil, true},
		{"deadline too far out", engine.StatusPending, now.Add(3 * time.Hour), nil, false},
		{"already overdue", engine.StatusPending, now.Add(-time.Minute), nil, false},
		{"deadline exactly now", engine.StatusPending, now, nil, false},
		{"deadline exactly at window edge", engine.StatusPending, now.Add(window), nil, true},
		{"proof already submitted", engine.StatusPendingReview, in90m, nil, false},
		{"settled", engine.StatusSuccess, in90m, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DueForNudge(tc.status, tc.deadline, tc.lastNudged, now, window)
			if got != tc.want {
				t.Fatalf("DueForNudge = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDueForNudge_NoDuplicateInsideWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	window := 2 * time.Hour
	deadline := now.Add(90 * time.Minute)

	// First sweep nudges, stamps last_nudged_at = now. A second sweep 30
	// minutes later (overlap or clock drift) must skip the task.
	firstNudge := now
	later := now.Add(30 * time.Minute)
	if DueForNudge(engine.StatusPending, deadline, &firstNudge, later, window) {
		t.Fatal("task nudged twice inside one panic window")
	}

	// A stamp from a previous deadline's window does not suppress the next one.
	oldNudge := deadline.Add(-window).Add(-time.Hour)
	if !DueForNudge(engine.StatusPending, deadline, &oldNudge, now, window) {
		t.Fatal("stale nudge stamp suppressed a fresh panic window")
	}
}
