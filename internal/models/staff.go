package models

import (
	"gorm.io/gorm"
)

// Role represents a staff member's role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Staff represents a staff member
type Staff struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"unique;not null"`
	Password     string `json:"-" gorm:"not null"`
	Role         Role   `json:"role" gorm:"not null;default:'staff'"`
	DepartmentID uint   `json:"department_id" gorm:"column:department_id;index"`
	gorm.Model   `json:"-"`
}

// TableName specifies the table name for Staff Model
func (Staff) TableName() string {
	return "staff"
}

// Department is a node in the organisational hierarchy. ParentID is nil for
// top-level departments.
type Department struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"not null"`
	ParentID *uint  `json:"parent_id" gorm:"column:parent_id;index"`
}

// TableName specifies the table name for Department Model
func (Department) TableName() string {
	return "departments"
}
