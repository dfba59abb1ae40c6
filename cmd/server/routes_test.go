package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/honeybee-human/Chatroom/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             "3000",
		Environment:      "test",
		WelcomeText:      "hi",
		TimeFormat:       "15:04",
		SendBuffer:       8,
		HistoryCapacity:  3,
		MaxMessageLength: 500,
	}
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := NewServer(testConfig())

	tests := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v1/ping", http.StatusOK},
		{"/api/v1/messages", http.StatusOK},
		{"/api/v1/stats", http.StatusOK},
		{"/api/v1/sessions", http.StatusOK},
		{"/api/v1/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestStatsReflectConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := NewServer(testConfig())

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, float64(3), stats["capacity"])
	assert.Equal(t, float64(0), stats["active_users"])
}

func TestCORSAllowsAnyOriginOutsideProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := NewServer(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
