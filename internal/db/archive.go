package db

import (
	"context" // Request scoping for GORM calls
	"time"    // Settlement timestamps

	"quantum_financial_system/internal/domain" // Importing domain models

	"github.com/pkg/errors"      // Error wrapping
	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Upsert clauses
)

// Archive writes settled transactions to MySQL. It is write-only; nothing is
// loaded back into the in-memory ledger.
type Archive struct {
	db *gorm.DB
}

// NewArchive wraps an open connection
func NewArchive(db *gorm.DB) *Archive {
	return &Archive{db: db}
}

// Save stores a settled transaction; saving the same id twice keeps the first row
func (a *Archive) Save(ctx context.Context, tx domain.Transaction, settledAt time.Time) error {
	if !tx.Status.IsTerminal() {
		return errors.Errorf("transaction %s is %s, only settled transactions are archived", tx.ID, tx.Status)
	}
	rec := domain.NewTransactionRecord(tx, settledAt)
	err := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec).Error
	return errors.Wrapf(err, "archiving transaction %s", tx.ID)
}

// Settle is a settlement hook for the simulator; failures are logged and dropped
func (a *Archive) Settle(ctx context.Context, tx domain.Transaction, settledAt time.Time) {
	if err := a.Save(ctx, tx, settledAt); err != nil {
		logrus.WithFields(logrus.Fields{
			"id":     tx.ID,
			"status": tx.Status,
			"error":  err.Error(),
		}).Error("Archive failed")
		return
	}
	logrus.WithFields(logrus.Fields{
		"id":     tx.ID,
		"status": tx.Status,
	}).Debug("Transaction archived")
}
