package server

import (
	"context"
	"net/http"
	"testing"

	"trenai/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeProfile_RecordsResult(t *testing.T) {
	s := newTestServer(t)
	user := createTestUser(t, s, "Sarah", "sarah@example.com", "password123")

	app := authedApp(user.ID)
	app.Post("/api/analyses", s.AnalyzeProfile)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/analyses", AnalyzeRequest{
		Platform: "Instagram",
		URL:      "instagram.com/sarahfit",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var analysis models.UserAnalysis
	decodeBody(t, resp, &analysis)
	assert.NotEmpty(t, analysis.ID)
	assert.NotEmpty(t, analysis.Niche)
	assert.Len(t, analysis.BrandVoice, 4)
	assert.InDelta(t, 0.86, analysis.Confidence, 0.12)

	st, err := s.states.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, st.Analyses(), 1)

	stored, err := s.analysisRepo.ListByUser(context.Background(), user.ID, 10)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAnalyzeProfile_Validation(t *testing.T) {
	s := newTestServer(t)
	app := authedApp(1)
	app.Post("/api/analyses", s.AnalyzeProfile)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/analyses", AnalyzeRequest{
		Platform: "Instagram",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	st, err := s.states.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, st.Analyses())
	assert.Empty(t, st.Notifications())
}

func TestGetAnalyses_NewestFirst(t *testing.T) {
	s := newTestServer(t)
	app := authedApp(2)
	app.Post("/api/analyses", s.AnalyzeProfile)
	app.Get("/api/analyses", s.GetAnalyses)

	for _, url := range []string{"instagram.com/first", "instagram.com/second"} {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/analyses", AnalyzeRequest{
			Platform: "Instagram",
			URL:      url,
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/analyses", nil))
	require.NoError(t, err)

	var body struct {
		Analyses []models.UserAnalysis `json:"analyses"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Analyses, 2)
	assert.Equal(t, "instagram.com/second", body.Analyses[0].URL)
	assert.Equal(t, "instagram.com/first", body.Analyses[1].URL)
}
