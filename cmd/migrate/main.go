package main

import (
	"quantum_financial_system/internal/config" // Custom import path (Config)
	"quantum_financial_system/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig()
	if !cfg.ArchiveEnabled() {
		logrus.Fatal("DB_HOST is not set, nothing to migrate")
	}

	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
}
