package models

import "time"

type Charity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Website   *string   `gorm:"type:varchar(255)" json:"website,omitempty"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Charity) TableName() string {
	return "charities"
}

// CharityDonation records a forfeited stake. CharityID is nil when the owner
// never picked a default charity; those amounts sit unassigned until an admin
// routes them.
type CharityDonation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TaskID    uint      `gorm:"not null;uniqueIndex" json:"task_id"`
	CharityID *uint     `gorm:"index" json:"charity_id,omitempty"`
	Amount    int64     `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func (CharityDonation) TableName() string {
	return "charity_donations"
}
