package main

import (
	"event_management/internal/config" // Custom import path (Config)
	"event_management/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect using the configured driver (mysql, postgres or sqlite)
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
}
