package domain

import (
	"time" // Creation and completion timestamps

	"github.com/shopspring/decimal" // Exact decimal amounts
)

func init() {
	// Amounts are rendered as JSON numbers, the way the dashboard sends them
	decimal.MarshalJSONWithoutQuotes = true
}

// Status is the lifecycle state of a simulated transaction
type Status string

const (
	StatusPending    Status = "pending"    // Submitted, waiting for the simulator
	StatusProcessing Status = "processing" // Picked up by the simulator
	StatusCompleted  Status = "completed"  // Terminal
	StatusFailed     Status = "failed"     // Terminal, never produced by the simulator
)

// Statuses lists every status in lifecycle order
var Statuses = []Status{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}

// ParseStatus converts a raw status string into a Status
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// IsTerminal reports whether the status can no longer change
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// Transaction Model
type Transaction struct {
	ID                  string          `json:"id"`                            // tx_ prefixed token
	Network             Network         `json:"network"`                       // Ledger the transaction targets
	Amount              decimal.Decimal `json:"amount"`                        // Positive amount
	Recipient           string          `json:"recipient"`                     // Opaque address, not validated
	Status              Status          `json:"status"`                        // Lifecycle state
	QuantumSignature    float64         `json:"quantumSignature"`              // Decorative score, set once
	EnergyEfficiency    float64         `json:"energyEfficiency"`              // Decorative score, set once
	Hash                string          `json:"hash"`                          // Hex digest, set once
	Timestamp           time.Time       `json:"timestamp"`                     // Creation time
	EstimatedCompletion *time.Time      `json:"estimatedCompletion,omitempty"` // Only for non-terminal submissions
}

// Clone returns a copy that shares no pointers with t
func (t Transaction) Clone() Transaction {
	if t.EstimatedCompletion != nil {
		eta := *t.EstimatedCompletion
		t.EstimatedCompletion = &eta
	}
	return t
}
