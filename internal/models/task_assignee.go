package models

import (
	"gorm.io/gorm"
)

// TaskAssignee links a staff member to a task they are responsible for.
// An active task must have between 1 and 5 active assignee rows; this is
// enforced by the creation workflow, not by a database constraint.
type TaskAssignee struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	TaskID            string `json:"task_id" gorm:"column:task_id;index;not null"`
	AssignedToStaffID uint   `json:"assigned_to_staff_id" gorm:"column:assigned_to_staff_id;index;not null"`
	AssignedByStaffID uint   `json:"assigned_by_staff_id" gorm:"column:assigned_by_staff_id;not null"`
	IsActive          bool   `json:"is_active" gorm:"column:is_active;default:true"`
	gorm.Model        `json:"-"`
}

// TableName specifies the table name for TaskAssignee Model
func (TaskAssignee) TableName() string {
	return "task_assignees"
}
