package main

import (
	"booking_system/internal/config" // Configuration
	"booking_system/internal/db"     // Database connection and migration

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}
}
