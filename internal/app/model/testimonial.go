package model

import "time"

// Testimonial is a customer quote shown on the marketing site.
type Testimonial struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Quote     string    `json:"quote" gorm:"type:text;not null"`
	Author    string    `json:"author" gorm:"size:255;not null"`
	Company   string    `json:"company" gorm:"size:255;not null"`
	Image     string    `json:"image" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
