package model

import "time"

// Work is a portfolio entry.
type Work struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	ImageURL    string    `json:"image_url" gorm:"type:text;not null"`
	ProjectLink string    `json:"project_link" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Work) TableName() string {
	return "works"
}
