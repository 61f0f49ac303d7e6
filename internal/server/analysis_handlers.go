package server

import (
	"trenai/internal/appstate"
	"trenai/internal/middleware"
	"trenai/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AnalyzeRequest is the payload for a profile analysis.
type AnalyzeRequest struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// AnalyzeProfile runs a profile analysis and appends the result to the
// caller's analysis history.
func (s *Server) AnalyzeProfile(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	analysis, err := s.analyzer.Analyze(c.Context(), req.Platform, req.URL)
	if err != nil {
		if !models.HasCode(err, models.CodeValidation) {
			st.EnqueueNotification(appstate.KindError, "Analysis failed. Please try again.")
		}
		return models.RespondWithError(c, statusForError(err), err)
	}

	analysis.UserID = currentUserID(c)
	st.RecordAnalysis(*analysis)

	if err := s.analysisRepo.Create(c.Context(), analysis); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(),
			"failed to persist analysis", "error", err)
	}
	s.persistState(c)

	st.EnqueueNotification(appstate.KindSuccess, "Profile analyzed!")

	return c.Status(fiber.StatusCreated).JSON(analysis)
}

// GetAnalyses returns the caller's analysis history, newest first.
func (s *Server) GetAnalyses(c *fiber.Ctx) error {
	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	analyses := st.Analyses()
	if len(analyses) == 0 {
		stored, err := s.analysisRepo.ListByUser(c.Context(), currentUserID(c), 50)
		if err != nil {
			return models.RespondWithError(c, statusForError(err), err)
		}
		analyses = stored
	}

	return c.JSON(fiber.Map{
		"analyses": analyses,
	})
}
