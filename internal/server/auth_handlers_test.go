package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesAccountAndIssuesToken(t *testing.T) {
	s := newTestServer(t)
	app := fiber.New()
	app.Post("/api/auth/register", s.Register)

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Name:     "Sarah Johnson",
		Email:    "Sarah@Example.com",
		Password: "password123",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body AuthResponse
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "Sarah Johnson", body.User.Name)
	assert.Equal(t, "Sarah@Example.com", body.User.Email, "email keeps the casing as entered")

	sess, err := s.sessions.Resolve(body.Token)
	require.NoError(t, err)
	assert.Equal(t, body.User.ID, sess.UserID)

	// The session store mirrors the fresh identity.
	st, err := s.states.Get(req.Context(), body.User.ID)
	require.NoError(t, err)
	identity, authenticated := st.Identity()
	assert.True(t, authenticated)
	assert.Equal(t, "Sarah Johnson", identity.Name)
}

func TestRegister_ShortPasswordRoundTrip(t *testing.T) {
	s := newTestServer(t)
	app := fiber.New()
	app.Post("/api/auth/register", s.Register)
	app.Post("/api/auth/login", s.Login)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Name:     "Sarah",
		Email:    "sarah@example.com",
		Password: "pw123",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "sarah@example.com",
		Password: "pw123",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	s := newTestServer(t)
	user := createTestUser(t, s, "Sarah", "Sarah@Example.com", "password123")
	assert.Equal(t, "Sarah@Example.com", user.Email)

	app := fiber.New()
	app.Post("/api/auth/login", s.Login)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "SARAH@example.COM",
		Password: "password123",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body AuthResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, user.ID, body.User.ID)
	assert.Equal(t, "Sarah@Example.com", body.User.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	createTestUser(t, s, "Sarah", "sarah@example.com", "password123")

	app := fiber.New()
	app.Post("/api/auth/register", s.Register)

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Name:     "Other Sarah",
		Email:    "SARAH@example.com",
		Password: "password456",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegister_ValidationFailures(t *testing.T) {
	s := newTestServer(t)
	app := fiber.New()
	app.Post("/api/auth/register", s.Register)

	tests := []struct {
		name    string
		payload RegisterRequest
	}{
		{"missing name", RegisterRequest{Email: "a@b.com", Password: "password123"}},
		{"bad email", RegisterRequest{Name: "A", Email: "not-an-email", Password: "password123"}},
		{"empty password", RegisterRequest{Name: "A", Email: "a@b.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", tt.payload))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	s := newTestServer(t)
	user := createTestUser(t, s, "Sarah", "sarah@example.com", "password123")

	app := fiber.New()
	app.Post("/api/auth/login", s.Login)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "sarah@example.com",
		Password: "password123",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body AuthResponse
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, user.ID, body.User.ID)
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)
	createTestUser(t, s, "Sarah", "sarah@example.com", "password123")

	app := fiber.New()
	app.Post("/api/auth/login", s.Login)

	tests := []struct {
		name    string
		payload LoginRequest
	}{
		{"unknown email", LoginRequest{Email: "nobody@example.com", Password: "password123"}},
		{"wrong password", LoginRequest{Email: "sarah@example.com", Password: "wrong-password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", tt.payload))
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var body map[string]string
			decodeBody(t, resp, &body)
			assert.Equal(t, "Invalid credentials", body["error"],
				"response must not disclose whether the account exists")
		})
	}
}

func TestLogin_MissingFields(t *testing.T) {
	s := newTestServer(t)
	app := fiber.New()
	app.Post("/api/auth/login", s.Login)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{Email: "a@b.com"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogout_DropsStoreButKeepsSnapshot(t *testing.T) {
	s := newTestServer(t)
	user := createTestUser(t, s, "Sarah", "sarah@example.com", "password123")

	st, err := s.states.Get(context.Background(), user.ID)
	require.NoError(t, err)
	st.ToggleBookmark("1")

	app := authedApp(user.ID)
	app.Post("/api/auth/logout", s.Logout)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A fresh access rehydrates the persisted bookmarks, unauthenticated.
	st2, err := s.states.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotSame(t, st, st2)
	assert.True(t, st2.Bookmarked("1"))
	_, authenticated := st2.Identity()
	assert.False(t, authenticated)
}
