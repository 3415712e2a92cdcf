package engine

import (
	"errors"
	"testing"
	"time"
)

func TestCanCreate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)

	cases := []struct {
		name     string
		balance  int64
		stake    int64
		deadline time.Time
		want     error
	}{
		{"ok", 100, 30, future, nil},
		{"stake equals balance", 30, 30, future, nil},
		{"zero stake", 100, 0, future, ErrInvalidStake},
		{"negative stake", 100, -5, future, ErrInvalidStake},
		{"stake over balance", 20, 30, future, ErrInsufficientBalance},
		{"deadline in past", 100, 30, now.Add(-time.Minute), ErrInvalidDeadline},
		{"deadline exactly now", 100, 30, now, ErrInvalidDeadline},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanCreate(tc.balance, tc.stake, tc.deadline, now); !errors.Is(got, tc.want) {
				t.Fatalf("CanCreate = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanSubmitProof(t *testing.T) {
	if err := CanSubmitProof(StatusPending); err != nil {
		t.Fatalf("pending should accept proof: %v", err)
	}
	if err := CanSubmitProof(StatusPendingReview); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("pending_review: want ErrInvalidState, got %v", err)
	}
	if err := CanSubmitProof(StatusSuccess); !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("success: want ErrAlreadySettled, got %v", err)
	}
}

func TestCanSettle_DuplicateApprovalFails(t *testing.T) {
	if err := CanSettle(StatusPendingReview); err != nil {
		t.Fatalf("pending_review should settle: %v", err)
	}
	// The second approval of the same task must be rejected loudly, never
	// silently succeed, or the reward would be credited twice.
	if err := CanSettle(StatusSuccess); !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("settled task: want ErrAlreadySettled, got %v", err)
	}
	if err := CanSettle(StatusFailed); !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("failed task: want ErrAlreadySettled, got %v", err)
	}
	if err := CanSettle(StatusPending); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("pending task: want ErrInvalidState, got %v", err)
	}
}

func TestCanExpire(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	expired, err := CanExpire(StatusPending, now.Add(-time.Hour), now)
	if err != nil || !expired {
		t.Fatalf("overdue pending: want (true, nil), got (%v, %v)", expired, err)
	}

	expired, err = CanExpire(StatusPending, now.Add(time.Hour), now)
	if err != nil || expired {
		t.Fatalf("deadline not passed: want no-op (false, nil), got (%v, %v)", expired, err)
	}

	if _, err := CanExpire(StatusSuccess, now.Add(-time.Hour), now); !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("settled: want ErrAlreadySettled, got %v", err)
	}
	if _, err := CanExpire(StatusPendingReview, now.Add(-time.Hour), now); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("pending_review: want ErrInvalidState, got %v", err)
	}
}

func TestReward(t *testing.T) {
	cases := []struct {
		stake int64
		rate  float64
		want  int64
	}{
		{30, 0.05, 1},   // floor(1.5)
		{100, 0.05, 5},
		{19, 0.05, 0},   // floor(0.95)
		{20, 0.05, 1},
		{0, 0.05, 0},
		{100, 0, 0},
	}
	for _, tc := range cases {
		if got := Reward(tc.stake, tc.rate); got != tc.want {
			t.Errorf("Reward(%d, %v) = %d, want %d", tc.stake, tc.rate, got, tc.want)
		}
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if !Overdue(StatusPending, now.Add(-time.Minute), now) {
		t.Fatal("pending past deadline should display as overdue")
	}
	if Overdue(StatusPending, now.Add(time.Minute), now) {
		t.Fatal("pending before deadline is not overdue")
	}
	if Overdue(StatusPendingReview, now.Add(-time.Minute), now) {
		t.Fatal("proof submitted before deadline review is not overdue")
	}
}
