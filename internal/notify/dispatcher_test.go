package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"teamtask-api/internal/models"
	"teamtask-api/internal/testutil"
)

type fakeSender struct {
	sent []string // recipients
	fail bool
}

func (f *fakeSender) Send(to, subject, htmlBody, textBody string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, to)
	return nil
}

func seedDispatcherDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	_, err = testutil.SeedDepartment(db, 1, "Engineering", nil)
	require.NoError(t, err)
	for id, name := range map[uint]string{1: "alice", 2: "bob", 3: "carol"} {
		_, err = testutil.SeedStaff(db, id, name, models.RoleStaff, 1)
		require.NoError(t, err)
	}
	return db
}

func TestTaskAssigned_ExcludesActor(t *testing.T) {
	db := seedDispatcherDB(t)
	sender := &fakeSender{}
	d := NewDispatcher(db, nil, sender, nil, nil)

	task := &models.Task{ID: "t-1", Title: "Ship it", CreatorID: 1}
	require.NoError(t, db.Create(task).Error)

	d.TaskAssigned(context.Background(), task, []uint{1, 2, 3}, 1)

	var rows []models.Notification
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 2, "the actor must not be notified")
	for _, n := range rows {
		require.NotEqual(t, uint(1), n.StaffID)
		require.Equal(t, models.NotifyTaskAssigned, n.Type)
		require.Contains(t, n.Message, "alice")
		require.Contains(t, n.Message, "Ship it")
		require.True(t, n.IsEmailSent)
	}
	require.Len(t, sender.sent, 2)
}

func TestTaskAssigned_EmailFailureIsSwallowed(t *testing.T) {
	db := seedDispatcherDB(t)
	d := NewDispatcher(db, nil, &fakeSender{fail: true}, nil, nil)

	task := &models.Task{ID: "t-1", Title: "Ship it", CreatorID: 1}
	require.NoError(t, db.Create(task).Error)

	d.TaskAssigned(context.Background(), task, []uint{2}, 1)

	var n models.Notification
	require.NoError(t, db.First(&n).Error)
	require.False(t, n.IsEmailSent, "row persists, email flag stays unset")
}

func TestCommentAdded_TruncatesLongContent(t *testing.T) {
	db := seedDispatcherDB(t)
	d := NewDispatcher(db, nil, nil, nil, nil)

	task := &models.Task{ID: "t-1", Title: "Ship it", CreatorID: 1}
	require.NoError(t, db.Create(task).Error)
	long := strings.Repeat("x", 150)
	comment := &models.Comment{ID: "c-1", TaskID: task.ID, StaffID: 1, Content: long}

	d.CommentAdded(context.Background(), task, comment, []uint{2}, 1)

	var n models.Notification
	require.NoError(t, db.First(&n).Error)
	require.Contains(t, n.Message, strings.Repeat("x", 100)+"...")
	require.NotContains(t, n.Message, strings.Repeat("x", 101))
}

func TestDeadlineSweep(t *testing.T) {
	db := seedDispatcherDB(t)
	d := NewDispatcher(db, nil, nil, nil, nil)

	tomorrow := time.Now().AddDate(0, 0, 1)
	nextWeek := time.Now().AddDate(0, 0, 7)

	dueTomorrow := &models.Task{ID: "t-1", Title: "Due soon", Status: models.StatusInProgress, DueDate: &tomorrow, CreatorID: 1}
	doneTomorrow := &models.Task{ID: "t-2", Title: "Already done", Status: models.StatusCompleted, DueDate: &tomorrow, CreatorID: 1}
	dueLater := &models.Task{ID: "t-3", Title: "Due later", Status: models.StatusNotStarted, DueDate: &nextWeek, CreatorID: 1}
	for _, task := range []*models.Task{dueTomorrow, doneTomorrow, dueLater} {
		require.NoError(t, db.Create(task).Error)
		require.NoError(t, db.Create(&models.TaskAssignee{
			TaskID: task.ID, AssignedToStaffID: 2, AssignedByStaffID: 1, IsActive: true,
		}).Error)
	}
	// inactive assignee on the due task must not be notified
	require.NoError(t, db.Create(&models.TaskAssignee{
		TaskID: "t-1", AssignedToStaffID: 3, AssignedByStaffID: 1, IsActive: false,
	}).Error)

	created, err := d.DeadlineSweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, created)

	var n models.Notification
	require.NoError(t, db.First(&n).Error)
	require.Equal(t, models.NotifyDeadlineReminder, n.Type)
	require.Equal(t, uint(2), n.StaffID)
	require.Equal(t, "t-1", *n.RelatedTaskID)
	require.NotNil(t, n.ScheduledFor)
}

func TestTruncate_ShortContentUntouched(t *testing.T) {
	require.Equal(t, "hello", truncate("hello", 100))
}
