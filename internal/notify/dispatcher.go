// Package notify creates in-app notifications and mirrors them by email and
// websocket push. Everything here is best-effort with at most one attempt:
// a failure is logged and swallowed, it never propagates to the mutation
// that triggered it.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"teamtask-api/internal/models"
	"teamtask-api/internal/realtime"
)

// commentPreviewLimit caps the comment excerpt embedded in a notification.
const commentPreviewLimit = 100

// Dispatcher fans out notifications to affected staff members.
type Dispatcher struct {
	db    *gorm.DB
	hub   *realtime.Hub
	email Sender
	loc   *time.Location
	log   *zap.Logger
}

// NewDispatcher wires the dispatcher. hub and email may be nil; loc is the
// fixed timezone for deadline reminders and defaults to UTC.
func NewDispatcher(db *gorm.DB, hub *realtime.Hub, email Sender, loc *time.Location, log *zap.Logger) *Dispatcher {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{db: db, hub: hub, email: email, loc: loc, log: log}
}

// TaskAssigned notifies each assignee of a newly created task, except the
// actor who created it.
func (d *Dispatcher) TaskAssigned(ctx context.Context, task *models.Task, assigneeIDs []uint, actorID uint) {
	actor := d.staffName(ctx, actorID)
	message := fmt.Sprintf("%s assigned you to %q", actor, task.Title)
	if project := d.projectName(ctx, task.ProjectID); project != "" {
		message += fmt.Sprintf(" in project %q", project)
	}
	for _, staffID := range assigneeIDs {
		if staffID == actorID {
			continue
		}
		d.create(ctx, &models.Notification{
			StaffID:            staffID,
			Type:               models.NotifyTaskAssigned,
			Title:              "New Task Assignment",
			Message:            message,
			RelatedTaskID:      &task.ID,
			RelatedProjectID:   task.ProjectID,
			TriggeredByStaffID: &actorID,
		})
	}
}

// TaskUpdated notifies assignees about a change to a task.
func (d *Dispatcher) TaskUpdated(ctx context.Context, task *models.Task, assigneeIDs []uint, actorID uint) {
	message := fmt.Sprintf("%s updated %q", d.staffName(ctx, actorID), task.Title)
	for _, staffID := range assigneeIDs {
		if staffID == actorID {
			continue
		}
		d.create(ctx, &models.Notification{
			StaffID:            staffID,
			Type:               models.NotifyTaskUpdated,
			Title:              "Task Updated",
			Message:            message,
			RelatedTaskID:      &task.ID,
			RelatedProjectID:   task.ProjectID,
			TriggeredByStaffID: &actorID,
		})
	}
}

// TaskDeleted notifies assignees that a task was deleted.
func (d *Dispatcher) TaskDeleted(ctx context.Context, task *models.Task, assigneeIDs []uint, actorID uint) {
	message := fmt.Sprintf("%s deleted %q", d.staffName(ctx, actorID), task.Title)
	for _, staffID := range assigneeIDs {
		if staffID == actorID {
			continue
		}
		d.create(ctx, &models.Notification{
			StaffID:            staffID,
			Type:               models.NotifyTaskDeleted,
			Title:              "Task Deleted",
			Message:            message,
			RelatedTaskID:      &task.ID,
			RelatedProjectID:   task.ProjectID,
			TriggeredByStaffID: &actorID,
		})
	}
}

// CommentAdded notifies the given recipients about a new comment, embedding
// a truncated excerpt.
func (d *Dispatcher) CommentAdded(ctx context.Context, task *models.Task, comment *models.Comment, recipientIDs []uint, actorID uint) {
	message := fmt.Sprintf("%s commented on %q: %s",
		d.staffName(ctx, actorID), task.Title, truncate(comment.Content, commentPreviewLimit))
	for _, staffID := range recipientIDs {
		if staffID == actorID {
			continue
		}
		d.create(ctx, &models.Notification{
			StaffID:            staffID,
			Type:               models.NotifyCommentAdded,
			Title:              "New Comment",
			Message:            message,
			RelatedTaskID:      &task.ID,
			RelatedProjectID:   task.ProjectID,
			TriggeredByStaffID: &actorID,
		})
	}
}

// DeadlineSweep creates one reminder per active assignee of every
// non-completed task due tomorrow in the configured timezone. Triggered
// externally; returns the number of notifications created.
func (d *Dispatcher) DeadlineSweep(ctx context.Context) (int, error) {
	now := time.Now().In(d.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, d.loc).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 1)

	var due []models.Task
	if err := d.db.WithContext(ctx).
		Where("due_date >= ? AND due_date < ?", start, end).
		Where("status <> ?", models.StatusCompleted).
		Find(&due).Error; err != nil {
		return 0, err
	}

	created := 0
	for i := range due {
		task := &due[i]
		var assignees []models.TaskAssignee
		if err := d.db.WithContext(ctx).
			Where("task_id = ? AND is_active = ?", task.ID, true).
			Find(&assignees).Error; err != nil {
			d.log.Warn("deadline sweep: failed to load assignees",
				zap.String("task_id", task.ID), zap.Error(err))
			continue
		}
		for _, a := range assignees {
			d.create(ctx, &models.Notification{
				StaffID:       a.AssignedToStaffID,
				Type:          models.NotifyDeadlineReminder,
				Title:         "Deadline Reminder",
				Message:       fmt.Sprintf("%q is due tomorrow", task.Title),
				RelatedTaskID: &task.ID,
				ScheduledFor:  task.DueDate,
			})
			created++
		}
	}
	return created, nil
}

// create persists one notification row, pushes it to connected clients and
// attempts email delivery. Any failure is logged and swallowed.
func (d *Dispatcher) create(ctx context.Context, n *models.Notification) {
	n.ID = uuid.NewString()
	if err := d.db.WithContext(ctx).Create(n).Error; err != nil {
		d.log.Warn("notify: failed to create notification",
			zap.Uint("staff_id", n.StaffID), zap.String("type", string(n.Type)), zap.Error(err))
		return
	}

	if d.hub != nil {
		if payload, err := json.Marshal(n); err == nil {
			d.hub.Push(n.StaffID, payload)
		}
	}

	if d.email == nil {
		return
	}
	var recipient models.Staff
	if err := d.db.WithContext(ctx).First(&recipient, n.StaffID).Error; err != nil {
		d.log.Warn("notify: recipient lookup failed", zap.Uint("staff_id", n.StaffID), zap.Error(err))
		return
	}
	html := fmt.Sprintf("<p>%s</p>", n.Message)
	if err := d.email.Send(recipient.Email, n.Title, html, n.Message); err != nil {
		d.log.Warn("notify: email delivery failed",
			zap.Uint("staff_id", n.StaffID), zap.String("notification_id", n.ID), zap.Error(err))
		return
	}
	if err := d.db.WithContext(ctx).Model(n).Update("is_email_sent", true).Error; err != nil {
		d.log.Warn("notify: failed to mark email sent", zap.String("notification_id", n.ID), zap.Error(err))
	}
}

func (d *Dispatcher) staffName(ctx context.Context, staffID uint) string {
	var s models.Staff
	if err := d.db.WithContext(ctx).First(&s, staffID).Error; err != nil {
		return "Someone"
	}
	return s.Name
}

func (d *Dispatcher) projectName(ctx context.Context, projectID *string) string {
	if projectID == nil {
		return ""
	}
	var p models.Project
	if err := d.db.WithContext(ctx).Where("id = ?", *projectID).First(&p).Error; err != nil {
		return ""
	}
	return p.Name
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
