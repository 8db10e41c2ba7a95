package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"teamtask-api/internal/models"
	"teamtask-api/internal/testutil"
)

func TestGormStore_CreateAndDelete(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	s := NewGormStore(db)
	ctx := context.Background()

	task := &models.Task{ID: "t-1", Title: "T", Status: models.StatusNotStarted, CreatorID: 1}
	require.NoError(t, s.CreateTask(ctx, task))
	require.NoError(t, s.CreateAssignees(ctx, []models.TaskAssignee{
		{TaskID: "t-1", AssignedToStaffID: 2, AssignedByStaffID: 1, IsActive: true},
	}))

	require.NoError(t, s.DeleteAssigneesByTaskID(ctx, "t-1"))
	require.NoError(t, s.DeleteTaskByID(ctx, "t-1"))

	var taskCount, assigneeCount int64
	require.NoError(t, db.Unscoped().Model(&models.Task{}).Count(&taskCount).Error)
	require.NoError(t, db.Unscoped().Model(&models.TaskAssignee{}).Count(&assigneeCount).Error)
	require.Zero(t, taskCount)
	require.Zero(t, assigneeCount)
}

func TestGormStore_DeleteIsIdempotent(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	s := NewGormStore(db)
	ctx := context.Background()

	// Deleting rows that do not exist must not raise an error.
	require.NoError(t, s.DeleteTaskByID(ctx, "missing"))
	require.NoError(t, s.DeleteAssigneesByTaskID(ctx, "missing"))
}
