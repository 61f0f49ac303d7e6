// Package generator defines the content-generation boundary. The engine is an
// external collaborator with unspecified latency; callers treat it as a black
// box that either returns a full payload or fails.
package generator

import (
	"context"

	"trenai/internal/models"
)

// Request describes one generation attempt. Trend is nil for free-form
// topics, in which case Topic carries the subject.
type Request struct {
	Platform    string
	ContentType string
	Trend       *models.Trend
	Topic       string
}

// TrendID returns the catalog id behind the request, or the free-form
// sentinel.
func (r Request) TrendID() string {
	if r.Trend != nil {
		return r.Trend.ID
	}
	return models.FreeFormTopic
}

// Result is a complete generation payload. Partial results do not exist;
// a failed generation returns an error and nothing else.
type Result struct {
	Content              models.ContentBody
	EstimatedReach       string
	EngagementPrediction string
	ViralScore           int
}

// Generator produces social content for a platform and content type.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Analyzer inspects a creator's public profile and produces audience
// insights.
type Analyzer interface {
	Analyze(ctx context.Context, platform, url string) (*models.UserAnalysis, error)
}
