package models

import "time"

type User struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Subject string `gorm:"size:128;uniqueIndex;not null" json:"-"`
	Name    string `gorm:"size:100;not null" json:"name"`

	// Balance is virtual currency in whole coins. It is debited by task
	// creation and credited by approval, never mutated anywhere else.
	Balance int64 `gorm:"not null;default:0" json:"balance"`
	XP      int64 `gorm:"column:xp;not null;default:0" json:"xp"`

	Streak            int        `gorm:"not null;default:0" json:"streak"`
	LongestStreak     int        `gorm:"not null;default:0" json:"longest_streak"`
	LastTaskCompleted *time.Time `json:"last_task_completed,omitempty"`

	Plan          string     `gorm:"type:enum('base','pro','elite');default:'base'" json:"plan"`
	PlanExpiresAt *time.Time `json:"plan_expires_at,omitempty"`

	DefaultCharityID *uint `json:"default_charity_id,omitempty"`

	StatsSuccess int64 `gorm:"not null;default:0" json:"stats_success"`
	StatsFailed  int64 `gorm:"not null;default:0" json:"stats_failed"`
	StatsStaked  int64 `gorm:"not null;default:0" json:"stats_staked"`
	StatsEarned  int64 `gorm:"not null;default:0" json:"stats_earned"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
