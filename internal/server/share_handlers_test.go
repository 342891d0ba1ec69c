package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareMoment(t *testing.T) {
	_, app := newTestApp(t, "")

	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/moments", demoPayload()).StatusCode)

	resp := doJSON(t, app, http.MethodGet, "/api/u/demo2026", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	assert.Equal(t, "demo2026", body["username"])
	assert.Equal(t, "Ready for the future!", body["message"])
	assert.Equal(t, "https://momentzero.test/u/demo2026", body["url"])

	cd, ok := body["countdown"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(75), cd["days"])
	assert.Equal(t, float64(12), cd["hours"])
	assert.Equal(t, false, cd["done"])
}

func TestShareMoment_PrivateIsNotFound(t *testing.T) {
	_, app := newTestApp(t, "")

	payload := demoPayload()
	payload["isPublic"] = false
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/moments", payload).StatusCode)

	resp := doJSON(t, app, http.MethodGet, "/api/u/demo2026", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner can still read it.
	resp = doJSON(t, app, http.MethodGet, "/api/moments/demo2026", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestShareMoment_Demo(t *testing.T) {
	t.Run("flag on", func(t *testing.T) {
		_, app := newTestApp(t, "demo_moment=on")

		resp := doJSON(t, app, http.MethodGet, "/api/u/demo", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["demo"])
		assert.Equal(t, "aurora", body["theme"])
		assert.Equal(t, "serif", body["typography"])
		assert.Equal(t, float64(2027), body["targetYear"])
	})

	t.Run("flag off", func(t *testing.T) {
		_, app := newTestApp(t, "demo_moment=off")

		resp := doJSON(t, app, http.MethodGet, "/api/u/demo", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCountdown(t *testing.T) {
	_, app := newTestApp(t, "")

	resp := doJSON(t, app, http.MethodGet, "/api/countdown", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(2027), body["year"])
	assert.Equal(t, "2027-01-01T00:00:00Z", body["target"])

	resp = doJSON(t, app, http.MethodGet, "/api/countdown?year=2026", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	cd := body["countdown"].(map[string]any)
	assert.Equal(t, true, cd["done"])

	resp = doJSON(t, app, http.MethodGet, "/api/countdown?year=1999", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
