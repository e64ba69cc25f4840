package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"aurex/internal/ai"
	"aurex/internal/config"
	"aurex/internal/database"
	"aurex/internal/notify"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "Str0ngPass!234"

type testGenerator struct {
	analysis *ai.Analysis
	err      error
}

func (g *testGenerator) GenerateAnalysis(_ context.Context, _ ai.AnalysisRequest) (*ai.Analysis, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.analysis != nil {
		return g.analysis, nil
	}
	return &ai.Analysis{
		SkillGaps: []ai.SkillGap{
			{Skill: "SQL", Type: "technical", Importance: "critical"},
		},
		TimelineMonths: 24,
		Summary:        "Focus on data skills",
	}, nil
}

type testStore struct {
	uploadErr error
}

func (s *testStore) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	return "https://cdn.test/" + key, nil
}

func (s *testStore) DownloadURL(_ context.Context, key string) (string, error) {
	return "https://cdn.test/" + key + "?sig=test", nil
}

type testSender struct {
	sent []notify.Message
	err  error
}

func (s *testSender) Send(_ context.Context, _ uint, msg notify.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type testHarness struct {
	server *Server
	app    *fiber.App
	sender *testSender
}

func newTestHarness(t *testing.T) *testHarness {
	return newTestHarnessWithRedis(t, nil)
}

// newTestHarnessWithRedis builds the app against an explicit redis client so
// jti-blacklist behavior can be exercised with miniredis.
func newTestHarnessWithRedis(t *testing.T, rdb *redis.Client) *testHarness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, derr := db.DB(); derr == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		JWTSecret:        "test-secret-key-for-handler-tests",
		Port:             "0",
		Env:              "test",
		AITimeoutSeconds: 15,
	}

	sender := &testSender{}
	srv := NewServerWithDeps(cfg, Deps{
		DB:        db,
		Redis:     rdb,
		Generator: &testGenerator{},
		Store:     &testStore{},
		Sender:    sender,
	})

	app := fiber.New()
	srv.registerRoutes(app)

	return &testHarness{server: srv, app: app, sender: sender}
}

// doJSON issues a request against the test app and decodes the JSON body.
func (h *testHarness) doJSON(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// signup registers a user and returns their bearer token.
func (h *testHarness) signup(t *testing.T, email string) string {
	t.Helper()

	resp, body := h.doJSON(t, "POST", "/api/auth/signup", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "signup failed: %v", body)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createPlan creates a plan for the token holder and returns its ID.
func (h *testHarness) createPlan(t *testing.T, token string) uint {
	t.Helper()

	resp, body := h.doJSON(t, "POST", "/api/plans", token, map[string]any{
		"name":            "Test User",
		"education_level": "bachelors",
		"education_field": "computer science",
		"career_goals":    "Become a staff engineer",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "create plan failed: %v", body)

	id, ok := body["id"].(float64)
	require.True(t, ok)
	return uint(id)
}
