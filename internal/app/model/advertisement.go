package model

import (
	"strings"
	"time"
)

// Category classifies an advertisement for targeted selection.
type Category string

const (
	CategoryTech          Category = "tech"
	CategoryFashion       Category = "fashion"
	CategoryEducation     Category = "education"
	CategoryBusiness      Category = "business"
	CategoryHealth        Category = "health"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryTech,
	CategoryFashion,
	CategoryEducation,
	CategoryBusiness,
	CategoryHealth,
	CategoryEntertainment,
	CategoryOther,
}

// ParseCategory normalises raw input and reports whether it names a known category.
func ParseCategory(raw string) (Category, bool) {
	candidate := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, c := range Categories {
		if c == candidate {
			return c, true
		}
	}
	return "", false
}

// CategoryNames returns the category values as plain strings.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}

// Advertisement is a catalog record eligible to be served to requesting sites.
type Advertisement struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"size:1000;not null"`
	ImageURL    string    `json:"image_url" gorm:"type:text;not null"`
	LinkURL     string    `json:"link_url" gorm:"type:text;not null"`
	Category    Category  `json:"category" gorm:"size:32;not null;index"`
	IsActive    bool      `json:"is_active" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Advertisement) TableName() string {
	return "advertisements"
}
