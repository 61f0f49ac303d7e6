package server

import (
	"trenai/internal/appstate"
	"trenai/internal/models"

	"github.com/gofiber/fiber/v2"
)

// EnqueueNotificationRequest lets clients raise their own toasts, e.g. for
// purely client-side outcomes that still want the shared queue semantics.
type EnqueueNotificationRequest struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// GetNotifications returns the caller's active toast queue in enqueue order.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"notifications": st.Notifications(),
	})
}

// EnqueueNotification adds a toast to the caller's queue and returns its id.
func (s *Server) EnqueueNotification(c *fiber.Ctx) error {
	var req EnqueueNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Message == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Message is required"))
	}

	kind := appstate.NotificationKind(req.Kind)
	switch kind {
	case appstate.KindSuccess, appstate.KindError, appstate.KindInfo:
	case "":
		kind = appstate.KindInfo
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown notification kind"))
	}

	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	id := st.EnqueueNotification(kind, req.Message)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": id,
	})
}

// DismissNotification removes a toast by id. Dismissing an id that already
// expired is not an error.
func (s *Server) DismissNotification(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Notification id is required"))
	}

	st, err := s.store(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	st.DismissNotification(id)

	return c.SendStatus(fiber.StatusNoContent)
}
