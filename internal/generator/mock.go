package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trenai/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// platformTemplates maps platform -> contentType -> field recipe. The recipe
// decides which sparse fields the mock fills in.
var platformTemplates = map[string]map[string]string{
	"Instagram": {
		"post":  "hook + caption + hashtags + cta",
		"story": "hook + short text + poll/question",
		"reel":  "hook + script + hashtags + trending audio",
	},
	"TikTok": {
		"video":    "hook + script + hashtags + trending sounds",
		"trending": "hook + trend participation + hashtags",
	},
	"YouTube": {
		"short": "hook + script + title + description",
		"video": "title + description + script outline + tags",
	},
	"LinkedIn": {
		"post":    "professional hook + insights + discussion starter",
		"article": "title + professional outline + key points",
	},
	"X": {
		"thread": "hook thread + key points + engagement",
		"post":   "concise hook + value + hashtags",
	},
	"Blog": {
		"article":    "title + outline + meta description + keywords",
		"newsletter": "subject + outline + key sections",
	},
}

// SupportedPlatform reports whether the mock knows the platform.
func SupportedPlatform(platform string) bool {
	_, ok := platformTemplates[platform]
	return ok
}

// Mock simulates the generation engine: it sleeps for a configured delay and
// fabricates a payload. Delay respects context cancellation so a dying
// request does not hold a worker.
type Mock struct {
	delay time.Duration
}

// NewMock builds a mock engine with the given simulated latency.
func NewMock(delay time.Duration) *Mock {
	return &Mock{delay: delay}
}

func (m *Mock) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Platform == "" || req.ContentType == "" {
		return nil, models.NewValidationError("Platform and content type are required")
	}
	if !SupportedPlatform(req.Platform) {
		return nil, models.NewValidationError(fmt.Sprintf("Unsupported platform %q", req.Platform))
	}
	if req.Trend == nil && strings.TrimSpace(req.Topic) == "" {
		return nil, models.NewValidationError("A trend or topic is required")
	}

	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	topic := req.Topic
	if req.Trend != nil {
		topic = req.Trend.Title
	}

	score := gofakeit.Number(60, 100)
	recipe := platformTemplates[req.Platform][strings.ToLower(req.ContentType)]

	return &Result{
		Content:              buildBody(req.Platform, topic, recipe),
		EstimatedReach:       estimateReach(req.Platform, score),
		EngagementPrediction: predictEngagement(score),
		ViralScore:           score,
	}, nil
}

func (m *Mock) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return models.NewExternalServiceError("generator", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func buildBody(platform, topic, recipe string) models.ContentBody {
	body := models.ContentBody{}

	longForm := platform == "Blog" || strings.Contains(recipe, "outline")
	if longForm {
		body.Title = fmt.Sprintf("%s: The Complete Guide for Content Creators", topic)
		body.Outline = fmt.Sprintf("H1: %s\nH2: Why it matters now\nH2: How to get started\nH2: Common mistakes\nH2: What comes next", topic)
		body.Body = gofakeit.Paragraph(2, 4, 12, "\n\n")
		return body
	}

	body.Hook = fmt.Sprintf("🔥 %s is everywhere right now — here's how to ride it!", topic)
	body.Caption = gofakeit.Paragraph(1, 3, 10, "\n")
	body.Hashtags = hashtagsFor(topic)
	body.CTA = "Save this post and tag a friend who needs to see this!"
	return body
}

func hashtagsFor(topic string) string {
	words := strings.Fields(topic)
	tags := make([]string, 0, len(words)+2)
	for _, w := range words {
		clean := strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, w)
		if clean != "" {
			tags = append(tags, "#"+capitalize(clean))
		}
	}
	tags = append(tags, "#ContentCreator", "#Trending")
	return strings.Join(tags, " ")
}

func capitalize(s string) string {
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func estimateReach(platform string, score int) string {
	if platform == "Blog" {
		return "2,500-3,000 words"
	}
	low := score * 150
	high := score * 280
	return fmt.Sprintf("%dK-%dK impressions", low/1000, high/1000)
}

func predictEngagement(score int) string {
	switch {
	case score >= 85:
		return "High"
	case score >= 70:
		return "Medium"
	default:
		return "Moderate"
	}
}

// MockAnalyzer fabricates audience insights for a profile URL.
type MockAnalyzer struct {
	delay time.Duration
}

// NewMockAnalyzer builds a mock analyzer with the given simulated latency.
func NewMockAnalyzer(delay time.Duration) *MockAnalyzer {
	return &MockAnalyzer{delay: delay}
}

var brandVoices = []string{
	"Motivational", "Educational", "Energetic", "Supportive",
	"Professional", "Data-driven", "Analytical", "Forward-thinking",
	"Playful", "Authentic",
}

func (a *MockAnalyzer) Analyze(ctx context.Context, platform, url string) (*models.UserAnalysis, error) {
	if strings.TrimSpace(platform) == "" || strings.TrimSpace(url) == "" {
		return nil, models.NewValidationError("Platform and profile URL are required")
	}

	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, models.NewExternalServiceError("analyzer", ctx.Err())
		case <-timer.C:
		}
	}

	voices := make([]string, len(brandVoices))
	copy(voices, brandVoices)
	gofakeit.ShuffleStrings(voices)
	voices = voices[:4]

	return &models.UserAnalysis{
		ID:         uuid.NewString(),
		Platform:   platform,
		URL:        url,
		Niche:      gofakeit.RandomString([]string{"Health & Fitness", "Technology & AI", "Food & Culinary", "Business & Career"}),
		Confidence: float64(gofakeit.Number(75, 97)) / 100,
		BrandVoice: voices,
		AudienceInsights: models.AudienceInsights{
			Demographics: fmt.Sprintf("%s %d-%d, %s",
				gofakeit.RandomString([]string{"Women", "Men", "Professionals"}),
				gofakeit.Number(18, 30), gofakeit.Number(31, 50),
				gofakeit.RandomString([]string{"Urban professionals", "Students", "Entrepreneurs"})),
			Interests: []string{gofakeit.Hobby(), gofakeit.Hobby(), gofakeit.Hobby()},
		},
		ContentThemes: []string{gofakeit.Sentence(2), gofakeit.Sentence(2), gofakeit.Sentence(2)},
		CreatedAt:     time.Now(),
	}, nil
}
