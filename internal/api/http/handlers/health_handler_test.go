package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/caelum-portal/internal/observability"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthHandler_Ready(t *testing.T) {
	healthy := map[string]Pinger{"postgres": pingerFunc(func(context.Context) error { return nil })}
	app := fiber.New()
	app.Get("/ready", NewHealthHandler("svc", "v1", healthy, nil).Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, map[string]any{"postgres": "ok"}, body["dependencies"])
}

func TestHealthHandler_NotReady(t *testing.T) {
	deps := map[string]Pinger{
		"postgres": pingerFunc(func(context.Context) error { return nil }),
		"redis":    pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
	}
	app := fiber.New()
	app.Get("/ready", NewHealthHandler("svc", "v1", deps, nil).Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, map[string]any{"postgres": "ok", "redis": "connection refused"}, body["result"])
}

func TestHealthHandler_Metrics(t *testing.T) {
	metrics := observability.NewMetrics()
	metrics.RecordGateRedirect("user-protected", "/login?callbackUrl=%2Fdashboard")

	app := fiber.New()
	app.Get("/metrics", NewHealthHandler("svc", "v1", nil, metrics).Metrics)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body := decode(t, resp)
	assert.Equal(t, map[string]any{"user-protected|/login": 1.0}, body["gateRedirects"])
}
