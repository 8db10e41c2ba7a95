package visibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"teamtask-api/internal/models"
	"teamtask-api/internal/testutil"
	"gorm.io/gorm"
)

// seedHierarchy builds:
//
//	Engineering (1)
//	├── Backend (2)
//	└── Frontend (3)
//	Sales (4)
func seedHierarchy(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	eng, err := testutil.SeedDepartment(db, 1, "Engineering", nil)
	require.NoError(t, err)
	_, err = testutil.SeedDepartment(db, 2, "Backend", &eng.ID)
	require.NoError(t, err)
	_, err = testutil.SeedDepartment(db, 3, "Frontend", &eng.ID)
	require.NoError(t, err)
	_, err = testutil.SeedDepartment(db, 4, "Sales", nil)
	require.NoError(t, err)

	_, err = testutil.SeedStaff(db, 10, "admin", models.RoleAdmin, 1)
	require.NoError(t, err)
	_, err = testutil.SeedStaff(db, 11, "engmanager", models.RoleManager, 1)
	require.NoError(t, err)
	_, err = testutil.SeedStaff(db, 12, "backenddev", models.RoleStaff, 2)
	require.NoError(t, err)
	_, err = testutil.SeedStaff(db, 13, "frontenddev", models.RoleStaff, 3)
	require.NoError(t, err)
	_, err = testutil.SeedStaff(db, 14, "seller", models.RoleStaff, 4)
	require.NoError(t, err)
	return db
}

func staffByID(t *testing.T, db *gorm.DB, id uint) *models.Staff {
	t.Helper()
	var s models.Staff
	require.NoError(t, db.First(&s, id).Error)
	return &s
}

func TestVisibleStaff_Roles(t *testing.T) {
	db := seedHierarchy(t)
	r := NewResolver(db, time.Minute)

	admin := staffByID(t, db, 10)
	ids, err := r.VisibleStaff(admin)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{10, 11, 12, 13, 14}, ids)

	manager := staffByID(t, db, 11)
	ids, err = r.VisibleStaff(manager)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{10, 11, 12, 13}, ids, "manager sees the department subtree")

	dev := staffByID(t, db, 12)
	ids, err = r.VisibleStaff(dev)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{12}, ids, "staff sees own department only")
}

func TestVisibleStaff_Cached(t *testing.T) {
	db := seedHierarchy(t)
	r := NewResolver(db, time.Minute)

	manager := staffByID(t, db, 11)
	first, err := r.VisibleStaff(manager)
	require.NoError(t, err)

	// a new hire appears only after invalidation while the TTL holds
	_, err = testutil.SeedStaff(db, 15, "newdev", models.RoleStaff, 2)
	require.NoError(t, err)

	cached, err := r.VisibleStaff(manager)
	require.NoError(t, err)
	require.ElementsMatch(t, first, cached)

	r.Invalidate()
	fresh, err := r.VisibleStaff(manager)
	require.NoError(t, err)
	require.Contains(t, fresh, uint(15))
}

func TestTaskVisibleTo(t *testing.T) {
	db := seedHierarchy(t)
	r := NewResolver(db, 0)

	task := &models.Task{ID: "t-1", Title: "T", CreatorID: 12}
	assignees := []models.TaskAssignee{{TaskID: "t-1", AssignedToStaffID: 13, AssignedByStaffID: 12, IsActive: true}}

	creator := staffByID(t, db, 12)
	ok, err := r.TaskVisibleTo(creator, task, assignees)
	require.NoError(t, err)
	require.True(t, ok)

	assignee := staffByID(t, db, 13)
	ok, err = r.TaskVisibleTo(assignee, task, assignees)
	require.NoError(t, err)
	require.True(t, ok)

	manager := staffByID(t, db, 11)
	ok, err = r.TaskVisibleTo(manager, task, assignees)
	require.NoError(t, err)
	require.True(t, ok, "assignee is inside the manager's subtree")

	seller := staffByID(t, db, 14)
	ok, err = r.TaskVisibleTo(seller, task, assignees)
	require.NoError(t, err)
	require.False(t, ok, "no department overlap with any assignee")
}
