package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"trenai/internal/appstate"
	"trenai/internal/generator"
	"trenai/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent_FromTrend(t *testing.T) {
	s := newTestServer(t)
	user := createTestUser(t, s, "Sarah", "sarah@example.com", "password123")

	app := authedApp(user.ID)
	app.Get("/api/trends", s.GetTrends)
	app.Post("/api/content/generate", s.GenerateContent)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/trends", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/content/generate", GenerateRequest{
		Platform:    "Instagram",
		ContentType: "reel",
		TrendID:     "1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var content models.GeneratedContent
	decodeBody(t, resp, &content)
	assert.NotEmpty(t, content.ID)
	assert.Equal(t, "1", content.TrendID)
	assert.NotEmpty(t, content.Content.Hook)
	assert.GreaterOrEqual(t, content.ViralScore, 60)

	st, err := s.states.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, st.History(), 1)
	assert.Equal(t, content.ID, st.History()[0].ID)
	assert.False(t, st.Generating(), "flag clears after completion")

	notifs := st.Notifications()
	require.Len(t, notifs, 1)
	assert.Equal(t, appstate.KindSuccess, notifs[0].Kind)

	// The durable copy exists too.
	stored, err := s.contentRepo.ListByUser(context.Background(), user.ID, 10)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestGenerateContent_FreeFormTopic(t *testing.T) {
	s := newTestServer(t)
	app := authedApp(3)
	app.Post("/api/content/generate", s.GenerateContent)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/content/generate", GenerateRequest{
		Platform:    "Blog",
		ContentType: "article",
		Topic:       "sourdough starters",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var content models.GeneratedContent
	decodeBody(t, resp, &content)
	assert.Equal(t, models.FreeFormTopic, content.TrendID)
	assert.NotEmpty(t, content.Content.Title)
	assert.NotEmpty(t, content.Content.Outline)
}

func TestGenerateContent_UnknownTrend(t *testing.T) {
	s := newTestServer(t)
	app := authedApp(3)
	app.Get("/api/trends", s.GetTrends)
	app.Post("/api/content/generate", s.GenerateContent)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/trends", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/content/generate", GenerateRequest{
		Platform:    "Instagram",
		ContentType: "reel",
		TrendID:     "no-such-trend",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGenerateContent_ValidationLeavesNoTrace(t *testing.T) {
	s := newTestServer(t)
	app := authedApp(3)
	app.Post("/api/content/generate", s.GenerateContent)

	// No platform.
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/content/generate", GenerateRequest{
		ContentType: "reel",
		Topic:       "anything",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	st, err := s.states.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, st.History(), "failed generation never reaches history")
	assert.False(t, st.Generating())
	assert.Empty(t, st.Notifications(), "bad input is not an engine failure")
}

type failingGenerator struct{}

func (failingGenerator) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	return nil, models.NewExternalServiceError("content generator", errors.New("engine offline"))
}

func TestGenerateContent_EngineFailureEnqueuesErrorToast(t *testing.T) {
	s := newTestServer(t)
	s.gen = failingGenerator{}

	app := authedApp(4)
	app.Post("/api/content/generate", s.GenerateContent)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/content/generate", GenerateRequest{
		Platform:    "Instagram",
		ContentType: "reel",
		Topic:       "anything",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	st, err := s.states.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, st.Generating(), "flag clears on failure")
	assert.Empty(t, st.History(), "failed generation never reaches history")

	notifs := st.Notifications()
	require.Len(t, notifs, 1)
	assert.Equal(t, appstate.KindError, notifs[0].Kind)
}

func TestGetContentHistory_FallsBackToStoredRecords(t *testing.T) {
	s := newTestServer(t)
	user := createTestUser(t, s, "Sarah", "sarah@example.com", "password123")

	stored := models.GeneratedContent{
		ID:       "persisted-1",
		UserID:   user.ID,
		TrendID:  "1",
		Platform: "Instagram",
	}
	require.NoError(t, s.contentRepo.Create(context.Background(), &stored))

	app := authedApp(user.ID)
	app.Get("/api/content/history", s.GetContentHistory)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/content/history", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		History []models.GeneratedContent `json:"history"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.History, 1)
	assert.Equal(t, "persisted-1", body.History[0].ID)
}
