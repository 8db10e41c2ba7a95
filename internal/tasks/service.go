package tasks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamtask-api/internal/apperror"
	"teamtask-api/internal/models"
	"teamtask-api/internal/store"
)

// Notifier receives best-effort side effects after a successful creation.
// Implementations must swallow their own failures.
type Notifier interface {
	TaskAssigned(ctx context.Context, task *models.Task, assigneeIDs []uint, actorID uint)
}

// Service runs the task creation workflow. The store exposes no
// transactions, so a failure after the first insert is cleaned up with
// compensating deletes: assignees before their task, subtasks before the
// parent. The sequence is strictly ordered; the rollback relies on knowing
// exactly what has been committed when a step fails. A crash between steps
// can still leave orphans - best-effort cleanup, not a transactional
// guarantee.
type Service struct {
	store    store.Store
	notifier Notifier
	log      *zap.Logger
}

// NewService wires the workflow. notifier may be nil.
func NewService(st store.Store, notifier Notifier, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, notifier: notifier, log: log}
}

// CreateResult is the success payload of the creation workflow.
type CreateResult struct {
	Task     *models.Task   `json:"task"`
	Subtasks []*models.Task `json:"subtasks,omitempty"`
}

// Create validates and persists a task with its assignees and nested
// subtasks. On any write failure every row created so far is deleted before
// the original error is returned.
func (s *Service) Create(ctx context.Context, creatorID uint, req CreateTaskRequest) (*CreateResult, error) {
	// Top-level validation happens before any write; no rollback needed.
	if err := req.validate(); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Notes:     normalizeNotes(req.Notes),
		StartDate: parseDateFlexible(req.StartDate),
		DueDate:   parseDateFlexible(req.DueDate),
		Status:    normalizeStatus(req.Status),
		Priority:  req.Priority.Value,
		Tags:      req.Tags,
		ProjectID: req.ProjectID,
		CreatorID: creatorID,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, apperror.Internal("Failed to create task", err)
	}

	rows := assigneeRows(task.ID, req.AssigneeIDs, creatorID)
	if err := s.store.CreateAssignees(ctx, rows); err != nil {
		s.rollbackTask(ctx, task.ID)
		return nil, apperror.Internal("Failed to assign task", err)
	}
	task.Assignees = rows

	var committed []*models.Task
	for i, sub := range req.Subtasks {
		if err := validateSubtaskAssignees(i, sub.AssigneeIDs); err != nil {
			s.rollbackAll(ctx, task.ID, committed)
			return nil, err
		}

		subtask := &models.Task{
			ID:           uuid.NewString(),
			Title:        sub.Title,
			Notes:        normalizeNotes(sub.Notes),
			StartDate:    parseDateFlexible(sub.StartDate),
			DueDate:      parseDateFlexible(sub.DueDate),
			Status:       normalizeStatus(sub.Status),
			Priority:     sub.Priority.Value,
			Tags:         sub.Tags,
			ProjectID:    req.ProjectID,
			CreatorID:    creatorID,
			ParentTaskID: &task.ID,
		}
		if err := s.store.CreateTask(ctx, subtask); err != nil {
			s.rollbackAll(ctx, task.ID, committed)
			return nil, apperror.Internal(fmt.Sprintf("Failed to create subtask %d", i+1), err)
		}

		subRows := assigneeRows(subtask.ID, sub.AssigneeIDs, creatorID)
		if err := s.store.CreateAssignees(ctx, subRows); err != nil {
			s.rollbackTask(ctx, subtask.ID)
			s.rollbackAll(ctx, task.ID, committed)
			return nil, apperror.Internal(fmt.Sprintf("Failed to assign subtask %d", i+1), err)
		}
		subtask.Assignees = subRows
		committed = append(committed, subtask)
	}

	// Side effects only after the full write succeeded; the dispatcher logs
	// and swallows its own failures.
	if s.notifier != nil {
		s.notifier.TaskAssigned(ctx, task, req.AssigneeIDs, creatorID)
		for i, subtask := range committed {
			s.notifier.TaskAssigned(ctx, subtask, req.Subtasks[i].AssigneeIDs, creatorID)
		}
	}

	return &CreateResult{Task: task, Subtasks: committed}, nil
}

func assigneeRows(taskID string, ids IDList, assignedBy uint) []models.TaskAssignee {
	rows := make([]models.TaskAssignee, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.TaskAssignee{
			TaskID:            taskID,
			AssignedToStaffID: id,
			AssignedByStaffID: assignedBy,
			IsActive:          true,
		})
	}
	return rows
}

// rollbackTask deletes one task and its assignee rows, assignees first to
// respect the conceptual foreign key. Delete-by-predicate is idempotent at
// zero rows; failures are logged and never mask the original error.
func (s *Service) rollbackTask(ctx context.Context, taskID string) {
	if err := s.store.DeleteAssigneesByTaskID(ctx, taskID); err != nil {
		s.log.Error("rollback: failed to delete assignees", zap.String("task_id", taskID), zap.Error(err))
	}
	if err := s.store.DeleteTaskByID(ctx, taskID); err != nil {
		s.log.Error("rollback: failed to delete task", zap.String("task_id", taskID), zap.Error(err))
	}
}

// rollbackAll removes committed subtasks in reverse creation order, then the
// parent task.
func (s *Service) rollbackAll(ctx context.Context, parentID string, committed []*models.Task) {
	for i := len(committed) - 1; i >= 0; i-- {
		s.rollbackTask(ctx, committed[i].ID)
	}
	s.rollbackTask(ctx, parentID)
}
