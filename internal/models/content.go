package models

import "time"

// FreeFormTopic is the sentinel trend ID used when content was generated from
// a free-text topic rather than a catalog trend.
const FreeFormTopic = "custom"

// ContentBody is the sparse bag of generated fields. Which fields are present
// depends on platform and content type.
type ContentBody struct {
	Hook     string `json:"hook,omitempty"`
	Title    string `json:"title,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Hashtags string `json:"hashtags,omitempty"`
	CTA      string `json:"cta,omitempty"`
	Body     string `json:"body,omitempty"`
	Outline  string `json:"outline,omitempty"`
}

// GeneratedContent is one generation result. Records are read-only once
// created; "regenerate" means creating another record.
type GeneratedContent struct {
	ID                   string      `gorm:"primaryKey" json:"id"`
	UserID               uint        `gorm:"index" json:"-"`
	TrendID              string      `json:"trend_id"`
	Platform             string      `json:"platform"`
	ContentType          string      `json:"content_type"`
	Content              ContentBody `gorm:"serializer:json" json:"content"`
	EstimatedReach       string      `json:"estimated_reach,omitempty"`
	EngagementPrediction string      `json:"engagement_prediction,omitempty"`
	ViralScore           int         `json:"viral_score"`
	CreatedAt            time.Time   `json:"created_at"`
}
