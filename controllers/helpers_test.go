package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/attendance-portal/config"
	"github.com/yeremiapane/attendance-portal/database"
	"github.com/yeremiapane/attendance-portal/models"
	"github.com/yeremiapane/attendance-portal/router"
	"github.com/yeremiapane/attendance-portal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *utils.TokenIssuer
}

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		GinMode:        gin.TestMode,
		DBDriver:       "sqlite",
		DBDSN:          ":memory:",
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		CORSOrigins:    "*",
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		Timezone:       "UTC",
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SilenceLoggers()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := testConfig()
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL())
	return &testServer{
		db:     db,
		router: router.SetupRouter(db, cfg, tokens),
		tokens: tokens,
	}
}

// seedUser inserts a user directly and returns it with a bearer token.
func (s *testServer) seedUser(t *testing.T, name, role string) (models.User, string) {
	t.Helper()
	u := models.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, s.db.Create(&u).Error)
	token, err := s.tokens.GenerateToken(u.ID, u.Role)
	require.NoError(t, err)
	return u, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var resp envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
