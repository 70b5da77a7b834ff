package config

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the pooled Postgres connection.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.DBLogSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.InspectionForm{},
		&models.Guideline{},
		&models.InspectionReport{},
		&models.ReportStatusHistory{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedAdmin bootstraps the first administrator. It is a no-op when a user with
// the configured email already exists.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password, name string) (bool, error) {
	if email == "" || password == "" {
		return false, errors.New("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("Admin user %s already exists", email)
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, err
	}
	log.Printf("Admin user %s created", email)
	return true, nil
}
