package models

import "time"

// LedgerEntry is the audit row written alongside every balance mutation.
// Summing debits and credits per user must reproduce the balance column.
type LedgerEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	TaskID      *uint     `gorm:"index" json:"task_id,omitempty"`
	Amount      int64     `gorm:"not null" json:"amount"`
	ReferenceID string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"reference_id"`
	Flow        string    `gorm:"type:enum('debit','credit');not null" json:"flow"`
	EntryType   string    `gorm:"type:varchar(50);not null" json:"entry_type"`
	Message     *string   `gorm:"type:text" json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
