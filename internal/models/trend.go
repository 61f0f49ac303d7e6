package models

// Momentum describes where a trend sits on its lifecycle curve.
type Momentum string

const (
	MomentumRising    Momentum = "Rising"
	MomentumPeak      Momentum = "Peak"
	MomentumDeclining Momentum = "Declining"
)

// Trend is a single trending topic. Trends are sourced externally and are
// immutable once loaded into a session's state store.
type Trend struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	ViralScore    int      `json:"viral_score"`
	Momentum      Momentum `json:"momentum"`
	TimeAgo       string   `json:"time_ago"`
	Keywords      []string `json:"keywords"`
	WhyTrending   string   `json:"why_trending"`
	RelatedTrends []string `json:"related_trends"`
	Region        string   `json:"region"`
}

// FilterAll is the neutral value for category and momentum filter criteria.
const FilterAll = "All"

// TrendFilter narrows a trend collection. Zero values ("All"/"All"/"") match
// everything.
type TrendFilter struct {
	Category string `json:"category"`
	Momentum string `json:"momentum"`
	Search   string `json:"search"`
}

// NeutralTrendFilter returns criteria that match every trend.
func NeutralTrendFilter() TrendFilter {
	return TrendFilter{Category: FilterAll, Momentum: FilterAll, Search: ""}
}

// IsNeutral reports whether the criteria match every trend.
func (f TrendFilter) IsNeutral() bool {
	return (f.Category == "" || f.Category == FilterAll) &&
		(f.Momentum == "" || f.Momentum == FilterAll) &&
		f.Search == ""
}
