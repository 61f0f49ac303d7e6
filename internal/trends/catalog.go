// Package trends provides the curated trend catalog served to dashboards.
// Trend discovery is simulated; the catalog mixes a fixed editorial set with
// synthesized filler so development environments feel populated.
package trends

import (
	"fmt"

	"trenai/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// NicheCategories is the vocabulary used for onboarding and trend filtering.
var NicheCategories = []string{
	"Technology & AI",
	"Health & Fitness",
	"Food & Culinary",
	"Fashion & Beauty",
	"Business & Career",
	"Mental Health & Wellness",
	"Travel & Lifestyle",
	"Personal Finance",
	"Education & Learning",
	"Entertainment & Gaming",
	"Parenting & Family",
	"Home & Garden",
	"Sports & Recreation",
	"Art & Creativity",
	"Music & Audio",
}

// PlatformOption is a distribution target selectable during onboarding.
type PlatformOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// PlatformOptions lists the supported publishing platforms.
var PlatformOptions = []PlatformOption{
	{ID: "instagram", Name: "Instagram", Icon: "📷"},
	{ID: "tiktok", Name: "TikTok", Icon: "🎵"},
	{ID: "youtube", Name: "YouTube", Icon: "📺"},
	{ID: "linkedin", Name: "LinkedIn", Icon: "💼"},
	{ID: "x", Name: "X (Twitter)", Icon: "🐦"},
	{ID: "threads", Name: "Threads", Icon: "🧵"},
	{ID: "facebook", Name: "Facebook", Icon: "👥"},
	{ID: "blog", Name: "Blog", Icon: "📝"},
	{ID: "newsletter", Name: "Newsletter", Icon: "📧"},
}

var canonical = []models.Trend{
	{
		ID:           "1",
		Title:        "AI Video Generation Tools Breakthrough",
		Description:  "Revolutionary AI tools creating Hollywood-quality videos from text prompts",
		Category:     "Technology & AI",
		ViralScore:   94,
		Momentum:     models.MomentumRising,
		TimeAgo:      "2 hours ago",
		Keywords:     []string{"AI video", "text to video", "content creation", "automation"},
		WhyTrending:  "Major tech companies just released competing video AI tools, causing massive buzz in creator communities.",
		RelatedTrends: []string{"AI Content Creation", "Video Marketing Revolution"},
		Region:       "Global",
	},
	{
		ID:           "2",
		Title:        "10-Minute Morning Workout Trend",
		Description:  "Quick morning routines gaining massive popularity for busy professionals",
		Category:     "Health & Fitness",
		ViralScore:   87,
		Momentum:     models.MomentumPeak,
		TimeAgo:      "1 hour ago",
		Keywords:     []string{"morning workout", "quick fitness", "busy lifestyle", "productivity"},
		WhyTrending:  "Influencers sharing time-efficient workouts as people return to busy work schedules.",
		RelatedTrends: []string{"Productivity Hacks", "Wellness Trends"},
		Region:       "Global",
	},
	{
		ID:           "3",
		Title:        "One-Pot Meal Recipes Viral",
		Description:  "Simple, minimal cleanup cooking videos exploding across platforms",
		Category:     "Food & Culinary",
		ViralScore:   91,
		Momentum:     models.MomentumRising,
		TimeAgo:      "4 hours ago",
		Keywords:     []string{"one pot meals", "easy cooking", "minimal cleanup", "quick recipes"},
		WhyTrending:  "Busy families seeking simple cooking solutions driving engagement.",
		RelatedTrends: []string{"Meal Prep Trends", "Budget Cooking"},
		Region:       "Global",
	},
	{
		ID:           "4",
		Title:        "Sustainable Fashion Revolution",
		Description:  "Eco-friendly fashion brands and sustainable styling tips trending",
		Category:     "Fashion & Beauty",
		ViralScore:   82,
		Momentum:     models.MomentumRising,
		TimeAgo:      "6 hours ago",
		Keywords:     []string{"sustainable fashion", "eco-friendly", "ethical brands", "secondhand"},
		WhyTrending:  "Climate consciousness driving fashion choices among Gen Z and millennials.",
		RelatedTrends: []string{"Zero Waste Living", "Thrift Flips"},
		Region:       "Global",
	},
	{
		ID:           "5",
		Title:        "Remote Work Productivity Hacks",
		Description:  "Digital nomads sharing workspace setups and productivity systems",
		Category:     "Business & Career",
		ViralScore:   78,
		Momentum:     models.MomentumPeak,
		TimeAgo:      "8 hours ago",
		Keywords:     []string{"remote work", "productivity", "digital nomad", "workspace"},
		WhyTrending:  "Return to hybrid work models sparking productivity optimization content.",
		RelatedTrends: []string{"Work From Home", "Freelancer Tips"},
		Region:       "Global",
	},
	{
		ID:           "6",
		Title:        "Mindfulness for Entrepreneurs",
		Description:  "Business leaders sharing meditation and stress management techniques",
		Category:     "Mental Health & Wellness",
		ViralScore:   85,
		Momentum:     models.MomentumRising,
		TimeAgo:      "3 hours ago",
		Keywords:     []string{"mindfulness", "entrepreneur wellness", "stress management", "meditation"},
		WhyTrending:  "High-profile entrepreneurs openly discussing mental health driving conversation.",
		RelatedTrends: []string{"CEO Wellness", "Business Burnout"},
		Region:       "Global",
	},
}

// Canonical returns the editorial trend set. Callers receive a copy; trends
// are immutable once loaded into a store.
func Canonical() []models.Trend {
	out := make([]models.Trend, len(canonical))
	copy(out, canonical)
	return out
}

// Synthesize fabricates n additional plausible trends for demo data. IDs
// continue past the canonical set to stay collision-free.
func Synthesize(n int) []models.Trend {
	momenta := []models.Momentum{models.MomentumRising, models.MomentumPeak, models.MomentumDeclining}

	out := make([]models.Trend, 0, n)
	for i := 0; i < n; i++ {
		category := NicheCategories[gofakeit.Number(0, len(NicheCategories)-1)]
		out = append(out, models.Trend{
			ID:          fmt.Sprintf("%d", len(canonical)+i+1),
			Title:       gofakeit.Sentence(5),
			Description: gofakeit.Sentence(10),
			Category:    category,
			ViralScore:  gofakeit.Number(55, 99),
			Momentum:    momenta[gofakeit.Number(0, len(momenta)-1)],
			TimeAgo:     fmt.Sprintf("%d hours ago", gofakeit.Number(1, 23)),
			Keywords:    []string{gofakeit.Word(), gofakeit.Word(), gofakeit.Word()},
			WhyTrending: gofakeit.Sentence(12),
			Region:      "Global",
		})
	}
	return out
}
