package server

import (
	"trenai/internal/appstate"
	"trenai/internal/models"

	"github.com/gofiber/fiber/v2"
)

// StateResponse is the full session state a dashboard needs to boot: identity,
// trend collection with its derived view, bookmarks, histories, queue, and
// the transient UI flags.
type StateResponse struct {
	Identity      *models.Identity          `json:"identity,omitempty"`
	Authenticated bool                      `json:"authenticated"`
	Trends        []models.Trend            `json:"trends"`
	Filtered      []models.Trend            `json:"filtered"`
	Filter        models.TrendFilter        `json:"filter"`
	Bookmarks     []string                  `json:"bookmarks"`
	History       []models.GeneratedContent `json:"history"`
	Analyses      []models.UserAnalysis     `json:"analyses"`
	Notifications []appstate.Notification   `json:"notifications"`
	Generating    bool                      `json:"generating"`
	UpgradePrompt bool                      `json:"upgrade_prompt"`
}

// GetState returns the caller's hydrated session state in one shot.
func (s *Server) GetState(c *fiber.Ctx) error {
	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	resp := StateResponse{
		Trends:        st.Trends(),
		Filtered:      st.FilteredTrends(),
		Filter:        st.Filter(),
		Bookmarks:     st.Bookmarks(),
		History:       st.History(),
		Analyses:      st.Analyses(),
		Notifications: st.Notifications(),
		Generating:    st.Generating(),
		UpgradePrompt: st.UpgradePrompt(),
	}
	if identity, ok := st.Identity(); ok {
		resp.Identity = &identity
		resp.Authenticated = true
	}

	return c.JSON(resp)
}
