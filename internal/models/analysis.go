package models

import "time"

// AudienceInsights summarizes who an analyzed profile reaches.
type AudienceInsights struct {
	Demographics string   `json:"demographics"`
	Interests    []string `json:"interests"`
}

// UserAnalysis is one profile-analysis result. History is append-only per user.
type UserAnalysis struct {
	ID               string           `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"index" json:"-"`
	Platform         string           `json:"platform"`
	URL              string           `json:"url"`
	Niche            string           `json:"niche"`
	Confidence       float64          `json:"confidence"`
	BrandVoice       []string         `gorm:"serializer:json" json:"brand_voice"`
	AudienceInsights AudienceInsights `gorm:"serializer:json" json:"audience_insights"`
	ContentThemes    []string         `gorm:"serializer:json" json:"content_themes"`
	CreatedAt        time.Time        `json:"created_at"`
}
