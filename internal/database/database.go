package database

import (
	"log"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"teamtask-api/internal/models"
)

var DB *gorm.DB

// InitDB initializes the database connection and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required).
func InitDB(path string) {
	var err error

	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	seedDefaults(DB)
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Department{},
		&models.Staff{},
		&models.Project{},
		&models.Task{},
		&models.TaskAssignee{},
		&models.Comment{},
		&models.Notification{},
	)
}

// seedDefaults creates a root department and an admin account on an empty
// database so the API is usable out of the box.
func seedDefaults(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Staff{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	dept := models.Department{Name: "General"}
	if err := db.Create(&dept).Error; err != nil {
		log.Println("seed: failed to create default department:", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Println("seed: failed to hash default password:", err)
		return
	}
	admin := models.Staff{
		Name:         "Administrator",
		Email:        "admin@teamtask.local",
		Password:     string(hash),
		Role:         models.RoleAdmin,
		DepartmentID: dept.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Println("seed: failed to create default admin:", err)
	}
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
