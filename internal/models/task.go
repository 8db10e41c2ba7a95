package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not-started"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusBlocked    TaskStatus = "blocked"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

// StringList stores a slice of strings as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	}
	return errors.New("unsupported type for StringList")
}

// Task represents a task in the system. A task with a non-nil ParentTaskID is
// a subtask of that parent; a task with a nil ProjectID is a personal task.
// Soft deletion goes through gorm.Model.DeletedAt; rollback after a partial
// creation failure is the only path that physically removes rows.
type Task struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title" gorm:"not null"`
	Notes        string     `json:"notes"`
	StartDate    *time.Time `json:"start_date" gorm:"column:start_date"`
	DueDate      *time.Time `json:"due_date" gorm:"column:due_date"`
	Status       TaskStatus `json:"status" gorm:"not null;default:'not-started'"`
	Priority     *int       `json:"priority"`
	Tags         StringList `json:"tags" gorm:"type:text"`
	ProjectID    *string    `json:"project_id" gorm:"column:project_id;index"`
	CreatorID    uint       `json:"creator_id" gorm:"column:creator_id;index"`
	ParentTaskID *string    `json:"parent_task_id" gorm:"column:parent_task_id;index"`
	gorm.Model

	// Populated for responses; not a database column.
	Assignees []TaskAssignee `json:"assignees,omitempty" gorm:"-"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}
