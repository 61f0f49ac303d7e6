package server

import (
	"time"

	"trenai/internal/appstate"
	"trenai/internal/generator"
	"trenai/internal/middleware"
	"trenai/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GenerateRequest is the payload for one content generation attempt. TrendID
// and Topic are mutually optional; exactly one subject must be present.
type GenerateRequest struct {
	Platform    string `json:"platform"`
	ContentType string `json:"content_type"`
	TrendID     string `json:"trend_id"`
	Topic       string `json:"topic"`
}

// GenerateContent runs one generation attempt. The in-flight flag is set for
// the duration; on failure the flag clears, an error toast is enqueued, and
// no history entry is written. On success the result is recorded in session
// history and the database, and a success toast is enqueued.
func (s *Server) GenerateContent(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	var trend *models.Trend
	if req.TrendID != "" && req.TrendID != models.FreeFormTopic {
		for _, t := range st.Trends() {
			if t.ID == req.TrendID {
				cp := t
				trend = &cp
				break
			}
		}
		if trend == nil {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Trend", req.TrendID))
		}
	}

	st.SetGenerating(true)

	start := time.Now()
	result, err := s.gen.Generate(c.Context(), generator.Request{
		Platform:    req.Platform,
		ContentType: req.ContentType,
		Trend:       trend,
		Topic:       req.Topic,
	})
	middleware.GenerationLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		st.SetGenerating(false)
		if !models.HasCode(err, models.CodeValidation) {
			middleware.GenerationRequests.WithLabelValues(req.Platform, "failure").Inc()
			st.EnqueueNotification(appstate.KindError, "Generation failed. Please try again.")
		}
		return models.RespondWithError(c, statusForError(err), err)
	}
	middleware.GenerationRequests.WithLabelValues(req.Platform, "success").Inc()

	trendID := models.FreeFormTopic
	if trend != nil {
		trendID = trend.ID
	}
	content := models.GeneratedContent{
		ID:                   uuid.NewString(),
		UserID:               currentUserID(c),
		TrendID:              trendID,
		Platform:             req.Platform,
		ContentType:          req.ContentType,
		Content:              result.Content,
		EstimatedReach:       result.EstimatedReach,
		EngagementPrediction: result.EngagementPrediction,
		ViralScore:           result.ViralScore,
		CreatedAt:            time.Now(),
	}

	st.RecordGeneratedContent(content)
	st.SetGenerating(false)

	if err := s.contentRepo.Create(c.Context(), &content); err != nil {
		// Session history already holds the result; the durable copy failing
		// should not cost the creator their generation.
		middleware.Logger.ErrorContext(c.UserContext(),
			"failed to persist generated content", "error", err)
	}
	s.persistState(c)

	st.EnqueueNotification(appstate.KindSuccess, "Content generated!")

	return c.Status(fiber.StatusCreated).JSON(content)
}

// GetContentHistory returns the caller's generation history, newest first.
// Session history is authoritative for this window; the database backfills
// when the session is fresh.
func (s *Server) GetContentHistory(c *fiber.Ctx) error {
	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	history := st.History()
	if len(history) == 0 {
		stored, err := s.contentRepo.ListByUser(c.Context(), currentUserID(c), 50)
		if err != nil {
			return models.RespondWithError(c, statusForError(err), err)
		}
		history = stored
	}

	return c.JSON(fiber.Map{
		"history": history,
	})
}
