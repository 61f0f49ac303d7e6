package server

import (
	"trenai/internal/middleware"
	"trenai/internal/models"
	"trenai/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for credential verification.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued session token and the identity the
// dashboard renders from.
type AuthResponse struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

// Register handles new account creation and signs the first session in.
func (s *Server) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	s.signIn(c, user)

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Token: token,
		User:  user.Identity(),
	})
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same response so account existence is never
// disclosed.
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	user, err := s.authService.Verify(c.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrNoSuchUser, service.ErrInvalidPassword:
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid credentials"))
		}
		return models.RespondWithError(c, statusForError(err), err)
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	s.signIn(c, user)

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Token: token,
		User:  user.Identity(),
	})
}

// Logout marks the session signed out and persists the snapshot so bookmarks
// and history survive the next login. Tokens are stateless; the client
// discards its copy and the token lapses at expiry.
func (s *Server) Logout(c *fiber.Ctx) error {
	userID := currentUserID(c)

	st, err := s.store(c)
	if err == nil {
		st.SetIdentity(nil)
		s.persistState(c)
	}
	s.states.Drop(userID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}

// signIn mirrors the fresh identity into the user's state store. Hydration
// failures are not fatal to authentication.
func (s *Server) signIn(c *fiber.Ctx, user *models.User) {
	st, err := s.states.Get(c.Context(), user.ID)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(),
			"failed to hydrate state", "user_id", user.ID, "error", err)
		return
	}
	identity := user.Identity()
	st.SetIdentity(&identity)
}
