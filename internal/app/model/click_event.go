package model

import "time"

// ClickEvent is an append-only record of a single click on an advertisement.
type ClickEvent struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	AdID          uint      `json:"ad_id" gorm:"not null;index"`
	PublisherSite string    `json:"publisher_site" gorm:"type:text"`
	ReferrerURL   string    `json:"referrer_url" gorm:"type:text"`
	UserIP        string    `json:"user_ip" gorm:"size:64"`
	UserAgent     string    `json:"user_agent" gorm:"type:text"`
	PageType      string    `json:"page_type" gorm:"size:64"`
	DeviceType    string    `json:"device_type" gorm:"size:16"`
	Browser       string    `json:"browser" gorm:"size:64"`
	OS            string    `json:"os" gorm:"size:64"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null;index"`
}

func (ClickEvent) TableName() string {
	return "ad_clicks"
}

const (
	ClickStreamName     = "AD_CLICKS"
	ClickStreamSubject  = "clicks.events"
	ClickConsumerName   = "click-recorder"
	ClickStreamMaxBytes = 1024 * 1024 * 100 // 100MB
)
