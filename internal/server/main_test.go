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

	"momentzero/internal/config"
	"momentzero/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(database.SQLiteDSN(":memory:")))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.RunMigrations(context.Background(), db))
	return db
}

// newTestApp wires a full server against a fresh in-memory database without Redis.
func newTestApp(t *testing.T, flags string) (*Server, *fiber.App) {
	t.Helper()

	cfg := &config.Config{
		Port:                  "0",
		RequestTimeoutSeconds: 5,
		FeatureFlags:          flags,
		PublicBaseURL:         "https://momentzero.test",
	}
	s, err := NewServerWithDeps(cfg, setupSQLiteDB(t), nil)
	require.NoError(t, err)
	s.WithClock(func() time.Time { return testNow })
	return s, s.NewApp()
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
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
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
