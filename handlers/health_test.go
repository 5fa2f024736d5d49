package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tripmart/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performHealthCheck(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", HealthCheck)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheckHealthySnapshot(t *testing.T) {
	utils.RecordHealth(utils.HealthStatus{
		Mongo:     true,
		Redis:     []bool{true, true},
		CheckedAt: time.Now(),
	})
	defer utils.RecordHealth(utils.HealthStatus{})

	w := performHealthCheck(t)
	require.Equal(t, http.StatusOK, w.Code)

	var status utils.HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Mongo)
	assert.Equal(t, []bool{true, true}, status.Redis)
	assert.False(t, status.CheckedAt.IsZero())
}

func TestHealthCheckDegradedRedis(t *testing.T) {
	utils.RecordHealth(utils.HealthStatus{
		Mongo:     true,
		Redis:     []bool{true, false},
		CheckedAt: time.Now(),
	})
	defer utils.RecordHealth(utils.HealthStatus{})

	w := performHealthCheck(t)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthCheckBeforeFirstProbe(t *testing.T) {
	utils.RecordHealth(utils.HealthStatus{})

	w := performHealthCheck(t)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
