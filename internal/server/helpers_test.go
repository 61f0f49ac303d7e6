package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trenai/internal/appstate"
	"trenai/internal/config"
	"trenai/internal/database"
	"trenai/internal/featureflags"
	"trenai/internal/generator"
	"trenai/internal/models"
	"trenai/internal/repository"
	"trenai/internal/service"
	"trenai/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a Server over an in-memory database and miniredis with
// zero-latency generators. Constructed as a literal so tests never touch the
// global metrics registry.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	userRepo := repository.NewUserRepository(db)

	s := &Server{
		config: &config.Config{
			Port:              "0",
			JWTSecret:         "test-secret-that-is-long-enough-for-hs256",
			SessionTTL:        1,
			NotificationTTLMs: 5000,
		},
		db:           db,
		redis:        rdb,
		userRepo:     userRepo,
		contentRepo:  repository.NewContentRepository(db),
		analysisRepo: repository.NewAnalysisRepository(db),
		authService:  service.NewAuthService(userRepo),
		userService:  service.NewUserService(userRepo),
		sessions:     session.NewManager("test-secret-that-is-long-enough-for-hs256", time.Hour),
		gen:          generator.NewMock(0),
		analyzer:     generator.NewMockAnalyzer(0),
		featureFlags: featureflags.NewManager(""),
	}
	s.states = appstate.NewManager(appstate.NewSnapshotStore(rdb), 0, nil)

	return s
}

// authedApp returns a fiber app whose requests carry the given user identity,
// standing in for the auth middleware.
func authedApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}

// createTestUser registers an account through the real service so the stored
// password hash and normalization match production behavior.
func createTestUser(t *testing.T, s *Server, name, email, password string) *models.User {
	t.Helper()
	user, err := s.authService.Register(context.Background(), service.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func jsonRequest(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
