package server

import (
	"trenai/internal/models"
	"trenai/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateSettingsRequest is the payload for partial profile updates. Omitted
// fields stay as they are.
type UpdateSettingsRequest struct {
	Name      string      `json:"name"`
	Niche     string      `json:"niche"`
	Platforms []string    `json:"platforms"`
	Plan      models.Plan `json:"plan"`
}

// OnboardingRequest is the payload for completing creator onboarding.
type OnboardingRequest struct {
	Niche     string   `json:"niche"`
	Platforms []string `json:"platforms"`
}

// GetMyProfile returns the authenticated user's full profile.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(user)
}

// UpdateSettings applies partial profile changes and mirrors the result into
// the session identity.
func (s *Server) UpdateSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateSettings(c.Context(), service.UpdateSettingsInput{
		UserID:    currentUserID(c),
		Name:      req.Name,
		Niche:     req.Niche,
		Platforms: req.Platforms,
		Plan:      req.Plan,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	s.refreshIdentity(c, user)

	return c.JSON(user)
}

// CompleteOnboarding records niche and platforms and marks the account
// onboarded.
func (s *Server) CompleteOnboarding(c *fiber.Ctx) error {
	var req OnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CompleteOnboarding(c.Context(), service.OnboardingInput{
		UserID:    currentUserID(c),
		Niche:     req.Niche,
		Platforms: req.Platforms,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	s.refreshIdentity(c, user)

	return c.JSON(user)
}

// GetFeatureFlags evaluates every configured flag for the caller.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	plan := models.PlanFree
	if user, err := s.userService.GetUserByID(c.Context(), currentUserID(c)); err == nil {
		plan = user.Plan
	}

	return c.JSON(fiber.Map{
		"flags": s.featureFlags.Snapshot(currentUserID(c), plan),
	})
}

// refreshIdentity keeps the session store's identity mirror in sync after a
// profile change.
func (s *Server) refreshIdentity(c *fiber.Ctx, user *models.User) {
	st, err := s.store(c)
	if err != nil {
		return
	}
	identity := user.Identity()
	st.SetIdentity(&identity)
	s.persistState(c)
}
