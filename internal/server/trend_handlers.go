package server

import (
	"trenai/internal/models"
	"trenai/internal/trends"

	"github.com/gofiber/fiber/v2"
)

// TrendsResponse returns the session's trend collection alongside the derived
// view and the criteria that produced it, so the dashboard renders without a
// second round trip.
type TrendsResponse struct {
	Trends   []models.Trend     `json:"trends"`
	Filtered []models.Trend     `json:"filtered"`
	Filter   models.TrendFilter `json:"filter"`
}

// GetTrends loads the current catalog into the caller's state store and
// returns it. Loading resets any previously applied filter.
func (s *Server) GetTrends(c *fiber.Ctx) error {
	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	st.LoadTrends(trends.Canonical())

	return c.JSON(TrendsResponse{
		Trends:   st.Trends(),
		Filtered: st.FilteredTrends(),
		Filter:   st.Filter(),
	})
}

// ApplyTrendFilter narrows the session's trend view. Unset fields behave as
// their neutral values.
func (s *Server) ApplyTrendFilter(c *fiber.Ctx) error {
	var filter models.TrendFilter
	if err := c.BodyParser(&filter); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	filtered := st.ApplyFilter(filter)

	return c.JSON(TrendsResponse{
		Trends:   st.Trends(),
		Filtered: filtered,
		Filter:   st.Filter(),
	})
}

// ToggleBookmark flips bookmark membership for a trend and reports the new
// state.
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	trendID := c.Params("id")
	if trendID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Trend id is required"))
	}

	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	bookmarked := st.ToggleBookmark(trendID)
	s.persistState(c)

	return c.JSON(fiber.Map{
		"trend_id":   trendID,
		"bookmarked": bookmarked,
	})
}

// GetBookmarks returns the caller's bookmarked trend ids.
func (s *Server) GetBookmarks(c *fiber.Ctx) error {
	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"bookmarks": st.Bookmarks(),
	})
}

// GetCategories returns the niche/category vocabulary used for onboarding and
// trend filtering.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": trends.NicheCategories,
	})
}

// GetPlatforms returns the supported platform options.
func (s *Server) GetPlatforms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"platforms": trends.PlatformOptions,
	})
}
