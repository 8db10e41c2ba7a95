package models

import (
	"gorm.io/gorm"
)

// MaxCommentLength caps comment content size.
const MaxCommentLength = 2000

// Comment is a remark left on a task. Visibility follows the task's
// department-based visibility.
type Comment struct {
	ID      string `json:"id" gorm:"primaryKey"`
	TaskID  string `json:"task_id" gorm:"column:task_id;index;not null"`
	StaffID uint   `json:"staff_id" gorm:"column:staff_id;index;not null"`
	Content string `json:"content" gorm:"not null"`
	gorm.Model
}

// TableName specifies the table name for Comment Model
func (Comment) TableName() string {
	return "comments"
}
