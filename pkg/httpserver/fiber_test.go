package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFiberServer_Health(t *testing.T) {
	app := InitFiberServer(Options{AppName: "test-app"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/manage/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = uuid.Parse(resp.Header.Get(fiber.HeaderXRequestID))
	assert.NoError(t, err, "request id should be a uuid")
}

func TestInitFiberServer_UnknownRoute(t *testing.T) {
	app := InitFiberServer(Options{AppName: "test-app"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.NotEmpty(t, payload["error"])
}

func TestInitFiberServer_RecoversPanics(t *testing.T) {
	app := InitFiberServer(Options{AppName: "test-app"})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestInitFiberServer_ReadinessProbe(t *testing.T) {
	ready := false
	app := InitFiberServer(Options{
		AppName:        "test-app",
		ReadinessProbe: func(*fiber.Ctx) bool { return ready },
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/manage/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	ready = true
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/manage/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
