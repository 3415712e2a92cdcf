package models

import "time"

type Squad struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	InviteCode string    `gorm:"size:6;uniqueIndex;not null" json:"invite_code"`
	CreatedBy  uint      `gorm:"not null" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

func (Squad) TableName() string {
	return "squads"
}

type SquadMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	SquadID  uint      `gorm:"not null;uniqueIndex:idx_squad_user" json:"squad_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_squad_user" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (SquadMember) TableName() string {
	return "squad_members"
}
