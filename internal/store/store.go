// Package store is the persistence gateway used by the task creation
// workflow. It deliberately mirrors the shape of a remote table API:
// single-purpose insert and delete calls, no multi-statement transactions.
// The workflow's compensating-delete rollback depends on that constraint
// staying visible at this seam.
package store

import (
	"context"

	"gorm.io/gorm"

	"teamtask-api/internal/models"
)

// Store exposes the writes the task creation workflow performs. Deletes are
// by key-equality predicate and succeed when zero rows match, which keeps
// rollback idempotent.
type Store interface {
	CreateTask(ctx context.Context, task *models.Task) error
	CreateAssignees(ctx context.Context, rows []models.TaskAssignee) error
	DeleteTaskByID(ctx context.Context, id string) error
	DeleteAssigneesByTaskID(ctx context.Context, taskID string) error
}

// GormStore is the gorm-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CreateTask inserts a single task row.
func (s *GormStore) CreateTask(ctx context.Context, task *models.Task) error {
	return s.db.WithContext(ctx).Create(task).Error
}

// CreateAssignees inserts assignee rows for a task.
func (s *GormStore) CreateAssignees(ctx context.Context, rows []models.TaskAssignee) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

// DeleteTaskByID physically removes a task row. Unscoped because rollback
// must erase a row that never should have existed, not soft-delete it.
func (s *GormStore) DeleteTaskByID(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&models.Task{}).Error
}

// DeleteAssigneesByTaskID physically removes all assignee rows of a task.
func (s *GormStore) DeleteAssigneesByTaskID(ctx context.Context, taskID string) error {
	return s.db.WithContext(ctx).Unscoped().Where("task_id = ?", taskID).Delete(&models.TaskAssignee{}).Error
}

var _ Store = (*GormStore)(nil)
