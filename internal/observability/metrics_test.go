package observability

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetrics_CountsAreSafeForConcurrentUse(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("/api/auth/me", http.MethodGet, http.StatusUnauthorized, time.Millisecond)
			m.RecordError("/api/auth/me", http.MethodGet, "Unauthorized")
			m.RecordGateRedirect("user-protected", "/login?callbackUrl=%2Fdashboard")
		}()
	}
	wg.Wait()

	snap := m.Snapshot()
	assert.Equal(t, int64(50), snap.Requests["/api/auth/me|GET|401"])
	assert.Equal(t, int64(50), snap.Errors["/api/auth/me|GET|Unauthorized"])
	assert.Equal(t, int64(50), snap.GateRedirects["user-protected|/login"])
	assert.Equal(t, int64(50), snap.TotalLatencyMsec)
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", http.MethodGet, http.StatusOK, time.Second)
	m.RecordError("/", http.MethodGet, "x")
	m.RecordGateRedirect("public", "/")
	assert.Empty(t, m.Snapshot().Requests)
}

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	metrics := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), metrics))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(RequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "client-supplied", resp.Header.Get(RequestIDHeader))

	assert.Equal(t, int64(2), metrics.Snapshot().Requests["/ping|GET|200"])
}
