package testutil

import (
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"teamtask-api/internal/database"
	"teamtask-api/internal/models"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// SeedStaff creates a staff member with a bcrypt-hashed password.
func SeedStaff(db *gorm.DB, id uint, name string, role models.Role, departmentID uint) (*models.Staff, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	s := &models.Staff{
		ID:           id,
		Name:         name,
		Email:        name + "@example.com",
		Password:     string(hash),
		Role:         role,
		DepartmentID: departmentID,
	}
	if err := db.Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// SeedDepartment creates a department, optionally under a parent.
func SeedDepartment(db *gorm.DB, id uint, name string, parentID *uint) (*models.Department, error) {
	d := &models.Department{ID: id, Name: name, ParentID: parentID}
	if err := db.Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}
