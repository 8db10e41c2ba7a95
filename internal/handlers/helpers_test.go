package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"teamtask-api/internal/auth"
	"teamtask-api/internal/database"
	"teamtask-api/internal/models"
	"teamtask-api/internal/notify"
	"teamtask-api/internal/realtime"
	"teamtask-api/internal/store"
	"teamtask-api/internal/tasks"
	"teamtask-api/internal/testutil"
	"teamtask-api/internal/visibility"
)

// setupAPI builds a handler set backed by a fresh in-memory database with
// one department and three staff members:
//
//	1 admin, 2 manager, 3 staff (all in department 1)
//	4 staff in department 2
func setupAPI(t *testing.T) (*API, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	_, err = testutil.SeedDepartment(db, 1, "Engineering", nil)
	require.NoError(t, err)
	_, err = testutil.SeedDepartment(db, 2, "Sales", nil)
	require.NoError(t, err)
	_, err = testutil.SeedStaff(db, 1, "admin", models.RoleAdmin, 1)
	require.NoError(t, err)
	_, err = testutil.SeedStaff(db, 2, "manager", models.RoleManager, 1)
	require.NoError(t, err)
	_, err = testutil.SeedStaff(db, 3, "dev", models.RoleStaff, 1)
	require.NoError(t, err)
	_, err = testutil.SeedStaff(db, 4, "seller", models.RoleStaff, 2)
	require.NoError(t, err)

	dispatcher := notify.NewDispatcher(db, nil, nil, nil, nil)
	taskService := tasks.NewService(store.NewGormStore(db), dispatcher, nil)
	resolver := visibility.NewResolver(db, 0)

	return New(nil, taskService, dispatcher, resolver, realtime.NewHub()), db
}

func tokenFor(t *testing.T, db *gorm.DB, staffID uint) string {
	t.Helper()
	var s models.Staff
	require.NoError(t, db.First(&s, staffID).Error)
	token, err := auth.GenerateToken(s.ID, s.Name, s.Role)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
