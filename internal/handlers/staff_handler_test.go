package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"teamtask-api/internal/middleware"
)

func staffRouter(api *API) *gin.Engine {
	r := gin.New()
	authed := r.Group("/api")
	authed.Use(middleware.JWTAuthMiddleware())
	authed.GET("/staff", api.GetStaff)
	return r
}

func TestGetStaff_VisibilityByRole(t *testing.T) {
	api, db := setupAPI(t)
	r := staffRouter(api)

	// admin sees everyone
	w := doJSON(t, r, http.MethodGet, "/api/staff", tokenFor(t, db, 1), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 4, decodeBody(t, w)["count"])

	// staff sees only their own department
	w = doJSON(t, r, http.MethodGet, "/api/staff", tokenFor(t, db, 4), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.EqualValues(t, 1, body["count"])
	member := body["staff"].([]any)[0].(map[string]any)
	require.Equal(t, "seller", member["name"])
	require.NotContains(t, member, "password")
}
