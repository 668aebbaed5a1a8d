package main

import (
	"context" // Seed run context

	"booking_system/internal/config"     // Configuration
	"booking_system/internal/db"         // Database connection and migration
	"booking_system/internal/repository" // Storage layer
	"booking_system/internal/seed"       // Sample data
	"booking_system/internal/service"    // Business logic

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for loading sample users and payments
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	validate := service.NewValidator()
	users := service.NewUserService(
		repository.NewUserRepository(gdb),
		validate,
		service.TokenConfig{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL}, // Seeding never issues tokens
		nil,
	)
	payments := service.NewPaymentService(repository.NewPaymentRepository(gdb), validate)

	res, err := seed.Run(context.Background(), users, payments)
	if err != nil {
		logrus.Fatalf("seed failed: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"users_created":    res.UsersCreated,
		"users_skipped":    res.UsersSkipped,
		"payments_created": res.PaymentsCreated,
		"payments_skipped": res.PaymentsSkipped,
	}).Info("Seed completed.")
}
