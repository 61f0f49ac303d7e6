package appstate

import (
	"strings"

	"trenai/internal/models"
)

// FilterTrends narrows trends by the given criteria: category equality unless
// "All", then momentum equality unless "All", then a case-insensitive
// substring match against title or description unless the search is empty.
// Input order is preserved. The function is pure; the store derives its
// filtered view exclusively through it so the view can never drift.
func FilterTrends(trends []models.Trend, f models.TrendFilter) []models.Trend {
	out := make([]models.Trend, 0, len(trends))

	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, tr := range trends {
		if f.Category != "" && f.Category != models.FilterAll && tr.Category != f.Category {
			continue
		}
		if f.Momentum != "" && f.Momentum != models.FilterAll && string(tr.Momentum) != f.Momentum {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(tr.Title), search) &&
			!strings.Contains(strings.ToLower(tr.Description), search) {
			continue
		}
		out = append(out, tr)
	}
	return out
}
