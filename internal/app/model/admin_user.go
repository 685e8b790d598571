package model

import "time"

// AdminUser is an operator allowed to use the admin API.
type AdminUser struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
