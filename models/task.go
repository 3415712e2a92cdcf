package models

import "time"

type Task struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	Objective string `gorm:"type:text;not null" json:"objective"`

	// Stake is immutable after creation; the amount was already deducted
	// from the owner's balance when the row was written.
	Stake    int64     `gorm:"not null" json:"stake"`
	Deadline time.Time `gorm:"not null;index" json:"deadline"`

	Status          string  `gorm:"type:enum('pending','pending_review','success','failed');default:'pending';index" json:"status"`
	ProofURL        *string `gorm:"type:varchar(512)" json:"proof_url,omitempty"`
	RejectionReason *string `gorm:"type:text" json:"rejection_reason,omitempty"`

	// LastNudgedAt stamps the most recent panic notification so the hourly
	// scanner never nudges the same task twice within one panic window.
	LastNudgedAt *time.Time `json:"-"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}
