package model

// Overview holds the headline counters of the analytics dashboard.
type Overview struct {
	TotalClicks int64 `json:"totalClicks"`
	TotalAds    int64 `json:"totalAds"`
	ActiveAds   int64 `json:"activeAds"`
}

// AdPerformance is the click count of one existing advertisement.
type AdPerformance struct {
	AdID     uint     `json:"adId"`
	Title    string   `json:"title"`
	Category Category `json:"category"`
	Clicks   int64    `json:"clicks"`
}

// UnknownPublisher buckets clicks that arrived without a publisher site.
const UnknownPublisher = "unknown"
