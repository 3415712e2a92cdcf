// Package settlement applies lifecycle decisions to the ledger store. Every
// operation runs in a database transaction holding a row lock on the task
// (and its owner) so that two concurrent calls cannot both pass the status
// guard: the loser of the race sees the already-settled row and fails.
package settlement

import (
	"errors"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/engine"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTaskNotFound = errors.New("task not found")

// CreateTask debits the stake from the owner's balance and writes the task
// and its ledger row atomically. The stake is deducted here exactly once and
// only ever returned by Approve.
func CreateTask(db *gorm.DB, ownerID uint, objective string, stake int64, deadline time.Time) (*models.Task, error) {
	var task models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, ownerID).Error; err != nil {
			return err
		}
		if err := engine.CanCreate(user.Balance, stake, deadline, time.Now()); err != nil {
			return err
		}
		task = models.Task{
			UserID:    ownerID,
			Objective: objective,
			Stake:     stake,
			Deadline:  deadline,
			Status:    engine.StatusPending,
		}
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", ownerID).Updates(map[string]interface{}{
			"balance":      gorm.Expr("balance - ?", stake),
			"stats_staked": gorm.Expr("stats_staked + ?", stake),
		}).Error; err != nil {
			return err
		}
		return writeLedger(tx, ownerID, task.ID, stake, "debit", "stake", "Stake held for: "+objective)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// SubmitProof moves a pending task to pending_review and records the proof
// reference.
func SubmitProof(db *gorm.DB, ownerID, taskID uint, proofURL string) (*models.Task, error) {
	var task models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockOwnedTask(tx, &task, ownerID, taskID); err != nil {
			return err
		}
		if err := engine.CanSubmitProof(task.Status); err != nil {
			return err
		}
		task.Status = engine.StatusPendingReview
		task.ProofURL = &proofURL
		return tx.Model(&models.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
			"status":    engine.StatusPendingReview,
			"proof_url": proofURL,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Approve settles a reviewed task as success: the stake comes back with the
// reward on top, xp and streak advance, stats are bumped. The status guard
// inside the same locked transaction makes the credit at-most-once.
func Approve(db *gorm.DB, taskID uint, loc *time.Location) (*models.Task, error) {
	var task models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockTask(tx, &task, taskID); err != nil {
			return err
		}
		if err := engine.CanSettle(task.Status); err != nil {
			return err
		}
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, task.UserID).Error; err != nil {
			return err
		}

		now := time.Now()
		reward := engine.Reward(task.Stake, engine.RewardRate())
		credit := task.Stake + reward
		streak := engine.NextStreak(user.LastTaskCompleted, user.Streak, now, loc)

		if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
			"status":       engine.StatusSuccess,
			"completed_at": now,
			"reviewed_at":  now,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"balance":             gorm.Expr("balance + ?", credit),
			"xp":                  gorm.Expr("xp + ?", engine.XPAward()),
			"streak":              streak,
			"longest_streak":      engine.MaxStreak(user.LongestStreak, streak),
			"last_task_completed": now,
			"stats_success":       gorm.Expr("stats_success + 1"),
			"stats_earned":        gorm.Expr("stats_earned + ?", reward),
		}).Error; err != nil {
			return err
		}
		task.Status = engine.StatusSuccess
		task.CompletedAt = &now
		task.ReviewedAt = &now
		return writeLedger(tx, user.ID, task.ID, credit, "credit", "reward", "Stake returned with reward")
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Reject settles a reviewed task as failed: the stake stays forfeited and is
// routed to the owner's default charity, the streak resets to zero.
func Reject(db *gorm.DB, taskID uint, reason string) (*models.Task, error) {
	var task models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockTask(tx, &task, taskID); err != nil {
			return err
		}
		if err := engine.CanSettle(task.Status); err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
			"status":           engine.StatusFailed,
			"rejection_reason": reason,
			"reviewed_at":      now,
		}).Error; err != nil {
			return err
		}
		task.Status = engine.StatusFailed
		task.RejectionReason = &reason
		task.ReviewedAt = &now
		return settleFailure(tx, &task)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Expire settles an overdue pending task as failed. When the deadline has not
// yet passed the call is a no-op and reports expired=false.
func Expire(db *gorm.DB, ownerID, taskID uint) (bool, *models.Task, error) {
	var task models.Task
	expired := false
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockOwnedTask(tx, &task, ownerID, taskID); err != nil {
			return err
		}
		ok, err := engine.CanExpire(task.Status, task.Deadline, time.Now())
		if err != nil || !ok {
			return err
		}
		expired = true
		now := time.Now()
		if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
			"status":      engine.StatusFailed,
			"reviewed_at": now,
		}).Error; err != nil {
			return err
		}
		task.Status = engine.StatusFailed
		task.ReviewedAt = &now
		return settleFailure(tx, &task)
	})
	if err != nil {
		return false, nil, err
	}
	return expired, &task, nil
}

// settleFailure applies the shared failure side effects: streak reset, failed
// counter, and the charity donation record for the forfeited stake. The stake
// was debited at creation, so the balance is left alone.
func settleFailure(tx *gorm.DB, task *models.Task) error {
	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, task.UserID).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"streak":       0,
		"stats_failed": gorm.Expr("stats_failed + 1"),
	}).Error; err != nil {
		return err
	}
	donation := models.CharityDonation{
		UserID:    user.ID,
		TaskID:    task.ID,
		CharityID: user.DefaultCharityID,
		Amount:    task.Stake,
	}
	return tx.Create(&donation).Error
}

func writeLedger(tx *gorm.DB, userID, taskID uint, amount int64, flow, entryType, message string) error {
	entry := models.LedgerEntry{
		UserID:      userID,
		TaskID:      &taskID,
		Amount:      amount,
		ReferenceID: utils.GenerateReferenceID(userID),
		Flow:        flow,
		EntryType:   entryType,
		Message:     &message,
	}
	return tx.Create(&entry).Error
}

func lockTask(tx *gorm.DB, task *models.Task, taskID uint) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(task, taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTaskNotFound
	}
	return err
}

func lockOwnedTask(tx *gorm.DB, task *models.Task, ownerID, taskID uint) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", taskID, ownerID).
		First(task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTaskNotFound
	}
	return err
}
