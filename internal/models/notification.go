package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationType represents the kind of event a notification describes
type NotificationType string

const (
	NotifyTaskAssigned     NotificationType = "task_assigned"
	NotifyTaskUpdated      NotificationType = "task_updated"
	NotifyTaskDeleted      NotificationType = "task_deleted"
	NotifyCommentAdded     NotificationType = "comment_added"
	NotifyDeadlineReminder NotificationType = "deadline_reminder"
	NotifyProjectUpdated   NotificationType = "project_updated"
)

// Notification is an in-app message for a staff member, optionally mirrored
// by email. Created best-effort as a side effect of mutations.
type Notification struct {
	ID                 string           `json:"id" gorm:"primaryKey"`
	StaffID            uint             `json:"staff_id" gorm:"column:staff_id;index;not null"`
	Type               NotificationType `json:"type" gorm:"not null"`
	Title              string           `json:"title" gorm:"not null"`
	Message            string           `json:"message"`
	RelatedTaskID      *string          `json:"related_task_id" gorm:"column:related_task_id;index"`
	RelatedProjectID   *string          `json:"related_project_id" gorm:"column:related_project_id"`
	TriggeredByStaffID *uint            `json:"triggered_by_staff_id" gorm:"column:triggered_by_staff_id"`
	IsRead             bool             `json:"is_read" gorm:"column:is_read;default:false"`
	IsEmailSent        bool             `json:"is_email_sent" gorm:"column:is_email_sent;default:false"`
	ScheduledFor       *time.Time       `json:"scheduled_for" gorm:"column:scheduled_for"`
	gorm.Model
}

// TableName specifies the table name for Notification Model
func (Notification) TableName() string {
	return "notifications"
}
