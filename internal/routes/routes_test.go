package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"teamtask-api/internal/handlers"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRoutes(handlers.New(nil, nil, nil, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ok")
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRoutes(handlers.New(nil, nil, nil, nil, nil))

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRoutes(handlers.New(nil, nil, nil, nil, nil))

	for _, path := range []string{"/api/tasks", "/api/projects", "/api/notifications", "/api/staff"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
