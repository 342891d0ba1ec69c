package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoPayload() map[string]any {
	return map[string]any{
		"username":   "demo2026",
		"theme":      "aurora",
		"atmosphere": "aurora",
		"typography": "serif",
		"message":    "Ready for the future!",
	}
}

func TestMomentLifecycle(t *testing.T) {
	_, app := newTestApp(t, "demo_moment=on,public_feed=on")

	resp := doJSON(t, app, http.MethodPost, "/api/moments", demoPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "demo2026", body["username"])

	resp = doJSON(t, app, http.MethodPost, "/api/moments", demoPayload())
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Username already taken", decodeBody(t, resp)["error"])

	resp = doJSON(t, app, http.MethodPut, "/api/moments", map[string]any{
		"username": "demo2026",
		"message":  "Updated wish",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "Updated wish", body["message"])
	assert.Equal(t, "aurora", body["theme"])
	assert.Equal(t, "demo2026", body["username"])

	resp = doJSON(t, app, http.MethodGet, "/api/moments/demo2026", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "Updated wish", body["message"])
	assert.Equal(t, float64(2027), body["targetYear"])
	assert.Equal(t, true, body["isPublic"])

	resp = doJSON(t, app, http.MethodDelete, "/api/moments/demo2026", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["success"])

	resp = doJSON(t, app, http.MethodGet, "/api/moments/demo2026", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", decodeBody(t, resp)["error"])
}

func TestDeleteMoment_IsIdempotentAndKeepsUsername(t *testing.T) {
	_, app := newTestApp(t, "")

	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/moments", demoPayload()).StatusCode)

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, http.MethodDelete, "/api/moments/demo2026", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/moments", demoPayload())
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/moments/nobody", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdateMoment_RecreatesDeletedMomentWithDefaults(t *testing.T) {
	_, app := newTestApp(t, "")

	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/moments", demoPayload()).StatusCode)
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodDelete, "/api/moments/demo2026", nil).StatusCode)

	resp := doJSON(t, app, http.MethodPut, "/api/moments", map[string]any{
		"username": "demo2026",
		"message":  "Second wish",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Second wish", body["message"])
	assert.Equal(t, "default", body["theme"])
	assert.Equal(t, "void", body["atmosphere"])
	assert.Equal(t, "sans", body["typography"])
}

func TestUpdateMoment_UnknownAccount(t *testing.T) {
	_, app := newTestApp(t, "")

	resp := doJSON(t, app, http.MethodPut, "/api/moments", map[string]any{
		"username": "ghost",
		"message":  "hello",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPatchMoment_UsesPathUsername(t *testing.T) {
	_, app := newTestApp(t, "")

	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/moments", demoPayload()).StatusCode)

	resp := doJSON(t, app, http.MethodPatch, "/api/moments/demo2026", map[string]any{
		"isPublic": false,
		"theme":    "ember",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["isPublic"])
	assert.Equal(t, "ember", body["theme"])
	assert.Equal(t, "Ready for the future!", body["message"])
}

func TestCreateMoment_Validation(t *testing.T) {
	_, app := newTestApp(t, "")

	tests := []struct {
		name  string
		patch map[string]any
		field string
	}{
		{"short username", map[string]any{"username": "ab"}, "username"},
		{"long username", map[string]any{"username": strings.Repeat("a", 21)}, "username"},
		{"bad characters", map[string]any{"username": "bad name!"}, "username"},
		{"long message", map[string]any{"message": strings.Repeat("x", 281)}, "message"},
		{"missing theme", map[string]any{"theme": ""}, "theme"},
		{"year too early", map[string]any{"targetYear": 2024}, "targetYear"},
		{"year too late", map[string]any{"targetYear": 2101}, "targetYear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := demoPayload()
			for k, v := range tt.patch {
				payload[k] = v
			}
			resp := doJSON(t, app, http.MethodPost, "/api/moments", payload)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, "VALIDATION_ERROR", body["code"])
			fields, ok := body["fields"].([]any)
			require.True(t, ok)
			require.NotEmpty(t, fields)
			assert.Equal(t, tt.field, fields[0].(map[string]any)["field"])
		})
	}
}

func TestCreateMoment_MalformedBody(t *testing.T) {
	_, app := newTestApp(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/moments", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", decodeBody(t, resp)["error"])
}

func TestCreateMoment_ReservedDemoUsername(t *testing.T) {
	_, app := newTestApp(t, "demo_moment=on")

	payload := demoPayload()
	payload["username"] = "Demo"
	resp := doJSON(t, app, http.MethodPost, "/api/moments", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCheckUsername(t *testing.T) {
	_, app := newTestApp(t, "")

	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/moments", demoPayload()).StatusCode)

	tests := []struct {
		username  string
		valid     bool
		available bool
	}{
		{"demo2026", true, false},
		{"fresh_name", true, true},
		{"x", false, false},
		{"demo", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodGet, "/api/usernames/"+tt.username, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, tt.valid, body["valid"])
			assert.Equal(t, tt.available, body["available"])
		})
	}
}

func TestDeleteAccount_FreesUsername(t *testing.T) {
	_, app := newTestApp(t, "")

	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/moments", demoPayload()).StatusCode)

	resp := doJSON(t, app, http.MethodDelete, "/api/accounts/demo2026", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/moments/demo2026", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/moments", demoPayload())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestListPublicMoments(t *testing.T) {
	_, app := newTestApp(t, "public_feed=on")

	for _, name := range []string{"alice", "bob", "carol"} {
		payload := demoPayload()
		payload["username"] = name
		payload["isPublic"] = name != "bob"
		require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/moments", payload).StatusCode)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/moments?limit=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["total"])
	assert.Equal(t, float64(1), body["limit"])
	assert.Len(t, body["moments"], 1)
}

func TestListPublicMoments_FlagOff(t *testing.T) {
	_, app := newTestApp(t, "public_feed=off")

	resp := doJSON(t, app, http.MethodGet, "/api/moments", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
