package models

import "time"

// Admin is the single content administrator. PasswordHash never leaves the server.
type Admin struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Admin) TableName() string {
	return "admin"
}
