package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devfolio/portfolio-backend/config"
	"github.com/devfolio/portfolio-backend/internal/store"
	"github.com/devfolio/portfolio-backend/services"
	"github.com/devfolio/portfolio-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHealthRouter(t *testing.T, st store.ContactStore) *gin.Engine {
	t.Helper()
	notifier := services.NewEmailNotifierWithRegistry(&config.EmailConfig{SendTimeoutSeconds: 10}, prometheus.NewRegistry())
	h := NewHealthHandler(services.NewHealthService(st, config.DriverFile, notifier, "test"))

	r := gin.New()
	r.GET("/health", h.DetailedHealth)
	r.GET("/health/liveness", h.LivenessCheck)
	r.GET("/health/readiness", h.ReadinessCheck)
	return r
}

func getHealth(t *testing.T, r *gin.Engine, path string) (int, types.HealthCheck) {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var hc types.HealthCheck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hc))
	return w.Code, hc
}

func TestLivenessCheck(t *testing.T) {
	r := setupHealthRouter(t, failingStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health/liveness", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP"}`, w.Body.String())
}

func TestReadinessCheck(t *testing.T) {
	t.Run("reachable store", func(t *testing.T) {
		code, hc := getHealth(t, setupHealthRouter(t, newFileStore(t)), "/health/readiness")
		assert.Equal(t, http.StatusOK, code)
		// notifications are off in tests
		assert.Equal(t, types.HealthStatusDegraded, hc.Status)
		assert.Equal(t, types.HealthStatusUp, hc.Components["store"].Status)
		assert.Equal(t, "test", hc.Version)
	})

	t.Run("unreachable store", func(t *testing.T) {
		code, hc := getHealth(t, setupHealthRouter(t, failingStore{}), "/health/readiness")
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, types.HealthStatusDown, hc.Status)
		assert.Equal(t, types.HealthStatusDown, hc.Components["store"].Status)
	})
}

func TestDetailedHealthAlwaysOK(t *testing.T) {
	code, hc := getHealth(t, setupHealthRouter(t, failingStore{}), "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, types.HealthStatusDown, hc.Status)
	assert.Contains(t, hc.Components, "email")
	assert.NotEmpty(t, hc.Timestamp)
}
