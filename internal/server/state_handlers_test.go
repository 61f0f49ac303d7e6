package server

import (
	"context"
	"net/http"
	"testing"

	"trenai/internal/models"
	"trenai/internal/trends"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetState_FreshSession(t *testing.T) {
	s := newTestServer(t)
	app := authedApp(1)
	app.Get("/api/state", s.GetState)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/state", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body StateResponse
	decodeBody(t, resp, &body)
	assert.False(t, body.Authenticated)
	assert.Nil(t, body.Identity)
	assert.Empty(t, body.Trends)
	assert.True(t, body.Filter.IsNeutral())
	assert.Empty(t, body.History)
	assert.False(t, body.Generating)
}

func TestGetState_ReflectsSessionActivity(t *testing.T) {
	s := newTestServer(t)
	user := createTestUser(t, s, "Sarah", "sarah@example.com", "password123")

	st, err := s.states.Get(context.Background(), user.ID)
	require.NoError(t, err)
	identity := user.Identity()
	st.SetIdentity(&identity)

	app := authedApp(user.ID)
	app.Get("/api/trends", s.GetTrends)
	app.Post("/api/trends/filter", s.ApplyTrendFilter)
	app.Post("/api/trends/:id/bookmark", s.ToggleBookmark)
	app.Post("/api/content/generate", s.GenerateContent)
	app.Get("/api/state", s.GetState)

	for _, step := range []struct {
		method, path string
		payload      any
	}{
		{http.MethodGet, "/api/trends", nil},
		{http.MethodPost, "/api/trends/filter", models.TrendFilter{Category: "Health & Fitness", Momentum: models.FilterAll}},
		{http.MethodPost, "/api/trends/2/bookmark", nil},
		{http.MethodPost, "/api/content/generate", GenerateRequest{Platform: "Instagram", ContentType: "reel", TrendID: "2"}},
	} {
		resp, err := app.Test(jsonRequest(t, step.method, step.path, step.payload))
		require.NoError(t, err)
		require.Less(t, resp.StatusCode, 300, "%s %s", step.method, step.path)
		_ = resp.Body.Close()
	}

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/state", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body StateResponse
	decodeBody(t, resp, &body)
	assert.True(t, body.Authenticated)
	require.NotNil(t, body.Identity)
	assert.Equal(t, "sarah@example.com", body.Identity.Email)
	assert.Len(t, body.Trends, len(trends.Canonical()))
	require.Len(t, body.Filtered, 1)
	assert.Equal(t, "2", body.Filtered[0].ID)
	assert.Equal(t, []string{"2"}, body.Bookmarks)
	require.Len(t, body.History, 1)
	assert.Equal(t, "2", body.History[0].TrendID)
	require.Len(t, body.Notifications, 1)
	assert.False(t, body.Generating)
}
