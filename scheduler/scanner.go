// Package scheduler runs the periodic housekeeping: the hourly deadline scan
// that nudges users whose tasks are about to expire, and the overdue-task
// expiry sweep.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/engine"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/notifier"
	"github.com/ashitoshh01/do-or-due-sub000/settlement"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const DefaultPanicWindow = 2 * time.Hour

type Scanner struct {
	DB       *gorm.DB
	Notifier *notifier.Client
	Window   time.Duration
}

func NewScanner(db *gorm.DB, n *notifier.Client) *Scanner {
	window := DefaultPanicWindow
	if s := os.Getenv("PANIC_WINDOW_HOURS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			window = time.Duration(v) * time.Hour
		}
	}
	return &Scanner{DB: db, Notifier: n, Window: window}
}

// DueForNudge decides whether a pending task needs a panic notification at
// now. A task is nudged at most once per panic window: once last_nudged_at
// falls inside the window before the deadline, later runs skip it, so
// overlapping or drifted invocations cannot double-notify.
func DueForNudge(status string, deadline time.Time, lastNudged *time.Time, now time.Time, window time.Duration) bool {
	if status != engine.StatusPending {
		return false
	}
	if !now.Before(deadline) {
		return false
	}
	if deadline.Sub(now) > window {
		return false
	}
	if lastNudged != nil && lastNudged.After(deadline.Add(-window)) {
		return false
	}
	return true
}

// Run is the hourly sweep: every pending task inside its panic window gets
// one urgency push to all of its owner's devices.
func (s *Scanner) Run(ctx context.Context) error {
	now := time.Now()

	var tasks []models.Task
	err := s.DB.WithContext(ctx).
		Where("status = ? AND deadline > ? AND deadline <= ?", engine.StatusPending, now, now.Add(s.Window)).
		Find(&tasks).Error
	if err != nil {
		return fmt.Errorf("scanner query failed: %w", err)
	}

	nudged := 0
	for _, task := range tasks {
		if !DueForNudge(task.Status, task.Deadline, task.LastNudgedAt, now, s.Window) {
			continue
		}
		// Claim the nudge before sending. The conditional write makes the
		// claim first-run-wins when two sweeps overlap.
		res := s.DB.WithContext(ctx).Model(&models.Task{}).
			Where("id = ? AND (last_nudged_at IS NULL OR last_nudged_at <= ?)", task.ID, task.Deadline.Add(-s.Window)).
			Update("last_nudged_at", now)
		if res.Error != nil {
			log.Printf("[scanner] failed to stamp task %d: %v", task.ID, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			continue
		}

		tokens := s.Notifier.UserTokens(task.UserID)
		if len(tokens) == 0 {
			continue
		}
		title, body := notifier.Compose(notifier.CategoryPanic, task.Objective)
		if _, err := s.Notifier.Send(ctx, notifier.Message{
			Title:  title,
			Body:   body,
			Tokens: tokens,
			Data: map[string]string{
				"category": notifier.CategoryPanic.String(),
				"task_id":  strconv.FormatUint(uint64(task.ID), 10),
			},
		}); err != nil {
			// best effort only
			log.Printf("[scanner] panic push for task %d failed: %v", task.ID, err)
			continue
		}
		nudged++
	}
	log.Printf("[scanner] sweep done: %d candidate(s), %d nudged", len(tasks), nudged)
	return nil
}

// ExpireOverdue settles every overdue pending task as failed and sends the
// comeback push. Exposed to the ops cron endpoint as well as the in-process
// schedule.
// TODO: hold the comeback push until the user's next morning instead of
// sending immediately after expiry.
func (s *Scanner) ExpireOverdue(ctx context.Context) (int, error) {
	var tasks []models.Task
	err := s.DB.WithContext(ctx).
		Where("status = ? AND deadline < ?", engine.StatusPending, time.Now()).
		Find(&tasks).Error
	if err != nil {
		return 0, fmt.Errorf("overdue query failed: %w", err)
	}

	expired := 0
	for _, task := range tasks {
		ok, settled, err := settlement.Expire(s.DB, task.UserID, task.ID)
		if err != nil {
			log.Printf("[scanner] expiry of task %d failed: %v", task.ID, err)
			continue
		}
		if !ok {
			continue
		}
		expired++

		tokens := s.Notifier.UserTokens(settled.UserID)
		if len(tokens) == 0 {
			continue
		}
		title, body := notifier.Compose(notifier.CategoryComeback, settled.Objective)
		s.Notifier.SendAsync(notifier.Message{
			Title:  title,
			Body:   body,
			Tokens: tokens,
			Data:   map[string]string{"category": notifier.CategoryComeback.String()},
		})
	}
	if expired > 0 {
		log.Printf("[scanner] expired %d overdue task(s)", expired)
	}
	return expired, nil
}

// Start registers the hourly scan and the daily expiry sweep and starts the
// cron runner. The returned cron is stopped by main on shutdown.
func Start(db *gorm.DB, n *notifier.Client) *cron.Cron {
	s := NewScanner(db, n)
	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		if err := s.Run(context.Background()); err != nil {
			log.Printf("[scanner] hourly sweep failed: %v", err)
		}
	}); err != nil {
		log.Printf("[scanner] failed to register hourly sweep: %v", err)
	}
	if _, err := c.AddFunc("5 0 * * *", func() {
		if _, err := s.ExpireOverdue(context.Background()); err != nil {
			log.Printf("[scanner] expiry sweep failed: %v", err)
		}
	}); err != nil {
		log.Printf("[scanner] failed to register expiry sweep: %v", err)
	}
	c.Start()
	return c
}
