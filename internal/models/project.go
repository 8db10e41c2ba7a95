package models

import (
	"gorm.io/gorm"
)

// Project groups tasks; tasks without a project are personal tasks.
type Project struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	OwnerID     uint   `json:"owner_id" gorm:"column:owner_id;index"`
	gorm.Model
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
