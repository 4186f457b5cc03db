package domain

import "time" // Archive timestamps

// TransactionRecord Model, the archived copy of a settled transaction
type TransactionRecord struct {
	ID               string `gorm:"primaryKey;size:64"`
	Network          string `gorm:"size:8;index;not null"`
	Amount           string `gorm:"size:64;not null"` // Decimal amount as text
	Recipient        string `gorm:"size:128;not null"`
	Status           string `gorm:"size:16;index;not null"`
	QuantumSignature float64
	EnergyEfficiency float64
	Hash             string    `gorm:"size:64"`
	SubmittedAt      time.Time // Creation time of the transaction
	SettledAt        time.Time // Time the terminal status was observed
}

// NewTransactionRecord maps a settled transaction into its archive row
func NewTransactionRecord(tx Transaction, settledAt time.Time) TransactionRecord {
	return TransactionRecord{
		ID:               tx.ID,
		Network:          string(tx.Network),
		Amount:           tx.Amount.String(),
		Recipient:        tx.Recipient,
		Status:           string(tx.Status),
		QuantumSignature: tx.QuantumSignature,
		EnergyEfficiency: tx.EnergyEfficiency,
		Hash:             tx.Hash,
		SubmittedAt:      tx.Timestamp,
		SettledAt:        settledAt,
	}
}
