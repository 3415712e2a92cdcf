package models

import "time"

type DeviceToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_token" json:"user_id"`
	Token     string    `gorm:"size:255;not null;uniqueIndex:idx_user_token" json:"token"`
	Platform  string    `gorm:"type:enum('android','ios','web');default:'android'" json:"platform"`
	CreatedAt time.Time `json:"created_at"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}
