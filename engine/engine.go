// Package engine holds the task lifecycle rules: which transitions are legal,
// what a completed task pays out, and how streaks move. Everything here is
// pure so the settlement layer can wrap it in a database transaction and the
// tests can exercise it without one.
package engine

import (
	"errors"
	"time"
)

const (
	StatusPending       = "pending"
	StatusPendingReview = "pending_review"
	StatusSuccess       = "success"
	StatusFailed        = "failed"
)

var (
	ErrInvalidStake        = errors.New("stake must be a positive amount")
	ErrInsufficientBalance = errors.New("insufficient balance for stake")
	ErrInvalidDeadline     = errors.New("deadline must be in the future")
	ErrInvalidState        = errors.New("task is not in a valid state for this operation")
	ErrAlreadySettled      = errors.New("task already settled")
)

// Terminal reports whether a status can never transition again.
func Terminal(status string) bool {
	return status == StatusSuccess || status == StatusFailed
}

// Overdue is the derived display state: a pending task whose deadline has
// passed without proof. The stored status stays "pending" until an explicit
// expiry settles it.
func Overdue(status string, deadline, now time.Time) bool {
	return status == StatusPending && now.After(deadline)
}

// CanCreate validates the create-task guards: positive stake covered by the
// owner's balance, deadline strictly in the future.
func CanCreate(balance, stake int64, deadline, now time.Time) error {
	if stake <= 0 {
		return ErrInvalidStake
	}
	if stake > balance {
		return ErrInsufficientBalance
	}
	if !deadline.After(now) {
		return ErrInvalidDeadline
	}
	return nil
}

// CanSubmitProof permits proof submission only while the task is pending.
func CanSubmitProof(status string) error {
	if status != StatusPending {
		if Terminal(status) {
			return ErrAlreadySettled
		}
		return ErrInvalidState
	}
	return nil
}

// CanSettle guards approve and reject. A terminal task must fail loudly here:
// a retried approval passing this check twice would double-credit the reward.
func CanSettle(status string) error {
	if Terminal(status) {
		return ErrAlreadySettled
	}
	if status != StatusPendingReview {
		return ErrInvalidState
	}
	return nil
}

// CanExpire reports whether an expiry call settles the task. A pending task
// whose deadline has not yet passed is a no-op (false, nil), not an error.
func CanExpire(status string, deadline, now time.Time) (bool, error) {
	if Terminal(status) {
		return false, ErrAlreadySettled
	}
	if status != StatusPending {
		return false, ErrInvalidState
	}
	if deadline.After(now) {
		return false, nil
	}
	return true, nil
}
