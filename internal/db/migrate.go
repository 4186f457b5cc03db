package db

import (
	"quantum_financial_system/internal/domain" // Importing domain models

	"github.com/pkg/errors"      // Error wrapping
	"github.com/sirupsen/logrus" // Logging

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to the archive database
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "connecting to archive database")
	}
	return db, nil
}

// Migrate creates or updates the archive schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing columns and indexes
	if err := db.AutoMigrate(&domain.TransactionRecord{}); err != nil {
		return errors.Wrap(err, "migrating transaction records")
	}
	logrus.Info("Migration completed.")
	return nil
}
