package db

import (
	"booking_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate creates or updates the users and payments tables with their unique indexes
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&domain.User{}, &domain.Payment{}); err != nil {
		return err
	}
	logrus.Info("Migration completed.")
	return nil
}
