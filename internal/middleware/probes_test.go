package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsProbePath(t *testing.T) {
	tests := []struct {
		path  string
		probe bool
	}{
		{"/wp-admin/install.php", true},
		{"/WordPress/", true},
		{"/.env", true},
		{"/.git/config", true},
		{"/phpMyAdmin/index.php", true},
		{"/dump.sql", true},
		{"/site.bak", true},
		{"/backup.tar.gz", true},
		{"/robots.txt", false},
		{"/sitemap.xml", false},
		{"/u/demo2026", false},
		{"/health/live", false},
		{"/api/moments/backup", false},
		{"/api/usernames/my-old-name", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.probe, IsProbePath(tt.path))
		})
	}
}

func TestBlockProbes(t *testing.T) {
	app := fiber.New()
	app.Use(BlockProbes())
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/.env", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Forbidden", string(body))

	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}
