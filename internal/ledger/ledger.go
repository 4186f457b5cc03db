// Package ledger holds the in-memory collection of simulated transactions
// and moves them through their lifecycle.
package ledger

import (
	"encoding/hex"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"quantum_financial_system/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/blake2b"
)

const (
	scoreFloor = 85.0 // Lowest quantum signature / energy efficiency score
	scoreSpan  = 10.0 // Scores are sampled from [scoreFloor, scoreFloor+scoreSpan)

	minCompletion  = 5 * time.Minute  // Earliest estimated completion after submission
	completionSpan = 10 * time.Minute // Added on top of minCompletion at random

	// DefaultProcessingDelay is how long a transaction stays pending
	DefaultProcessingDelay = time.Minute
)

// Filter narrows List results; zero fields match everything
type Filter struct {
	Status  domain.Status
	Network domain.Network
	Search  string // Case-insensitive substring of id or recipient
}

func (f Filter) matches(tx domain.Transaction, search string) bool {
	if f.Status != "" && tx.Status != f.Status {
		return false
	}
	if f.Network != "" && tx.Network != f.Network {
		return false
	}
	if search != "" &&
		!strings.Contains(strings.ToLower(tx.ID), search) &&
		!strings.Contains(strings.ToLower(tx.Recipient), search) {
		return false
	}
	return true
}

// Summary aggregates the ledger the way the dashboard metric cards do
type Summary struct {
	Total         int             `json:"total"`
	Pending       int             `json:"pending"`
	Processing    int             `json:"processing"`
	Completed     int             `json:"completed"`
	Failed        int             `json:"failed"`
	Active        int             `json:"active"`        // Pending plus processing
	Volume        decimal.Decimal `json:"volume"`        // Sum of all amounts
	AvgEfficiency float64         `json:"avgEfficiency"` // Mean energy efficiency, 0 when empty
	SuccessRate   float64         `json:"successRate"`   // Completed share of terminal transactions, in percent
}

// Option configures a Ledger
type Option func(*Ledger)

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithRand replaces the random source used for scores and completion estimates
func WithRand(r *rand.Rand) Option {
	return func(l *Ledger) { l.rng = r }
}

// WithProcessingDelay sets how long a transaction stays pending before processing starts
func WithProcessingDelay(d time.Duration) Option {
	return func(l *Ledger) { l.processingDelay = d }
}

// Ledger is safe for concurrent use. Records are never removed.
type Ledger struct {
	instance        string // Distinguishes ledgers of different processes
	mu              sync.RWMutex
	txs             []domain.Transaction // Oldest first; readers reverse
	index           map[string]int
	rng             *rand.Rand
	now             func() time.Time
	processingDelay time.Duration
	version         uint64
}

// New creates an empty ledger
func New(opts ...Option) *Ledger {
	l := &Ledger{
		instance:        uuid.NewString(),
		index:           make(map[string]int),
		rng:             rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:             time.Now,
		processingDelay: DefaultProcessingDelay,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now returns the ledger's notion of the current time
func (l *Ledger) Now() time.Time {
	return l.now()
}

// Submit records a new pending transaction. Input is assumed to be validated by the caller.
func (l *Ledger) Submit(network domain.Network, amount decimal.Decimal, recipient string) domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	eta := now.Add(minCompletion + time.Duration(l.rng.Float64()*float64(completionSpan)))
	tx := domain.Transaction{
		ID:                  "tx_" + uuid.NewString(),
		Network:             network,
		Amount:              amount,
		Recipient:           recipient,
		Status:              domain.StatusPending,
		QuantumSignature:    l.score(),
		EnergyEfficiency:    l.score(),
		Timestamp:           now,
		EstimatedCompletion: &eta,
	}
	tx.Hash = digest(tx)
	l.insert(tx)
	return tx.Clone()
}

// List returns the matching transactions, newest first
func (l *Ledger) List(f Filter) []domain.Transaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Transaction, 0, len(l.txs))
	for i := len(l.txs) - 1; i >= 0; i-- {
		if f.matches(l.txs[i], search) {
			out = append(out, l.txs[i].Clone())
		}
	}
	return out
}

// Get looks up a transaction by id
func (l *Ledger) Get(id string) (domain.Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return domain.Transaction{}, false
	}
	return l.txs[i].Clone(), true
}

// Advance moves every transaction as far as the elapsed time allows and
// returns the ones whose status changed
func (l *Ledger) Advance(now time.Time) []domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	var changed []domain.Transaction
	for i := range l.txs {
		tx := &l.txs[i]
		moved := false
		for {
			next, ok := l.nextStatus(*tx, now)
			if !ok || !tx.Status.CanTransitionTo(next) {
				break
			}
			tx.Status = next
			moved = true
		}
		if moved {
			changed = append(changed, tx.Clone())
		}
	}
	if len(changed) > 0 {
		l.version++
	}
	return changed
}

// nextStatus is the status tx is due for at now, if any
func (l *Ledger) nextStatus(tx domain.Transaction, now time.Time) (domain.Status, bool) {
	switch tx.Status {
	case domain.StatusPending:
		if now.Sub(tx.Timestamp) >= l.processingDelay {
			return domain.StatusProcessing, true
		}
	case domain.StatusProcessing:
		if tx.EstimatedCompletion != nil {
			if !now.Before(*tx.EstimatedCompletion) {
				return domain.StatusCompleted, true
			}
		} else if now.Sub(tx.Timestamp) >= 2*l.processingDelay {
			return domain.StatusCompleted, true
		}
	}
	return "", false
}

// Summary computes aggregate figures over every transaction
func (l *Ledger) Summary() Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Summary{Total: len(l.txs), Volume: decimal.Zero}
	var efficiency float64
	for _, tx := range l.txs {
		switch tx.Status {
		case domain.StatusPending:
			s.Pending++
		case domain.StatusProcessing:
			s.Processing++
		case domain.StatusCompleted:
			s.Completed++
		case domain.StatusFailed:
			s.Failed++
		}
		s.Volume = s.Volume.Add(tx.Amount)
		efficiency += tx.EnergyEfficiency
	}
	s.Active = s.Pending + s.Processing
	if s.Total > 0 {
		s.AvgEfficiency = efficiency / float64(s.Total)
	}
	s.SuccessRate = 100
	if settled := s.Completed + s.Failed; settled > 0 {
		s.SuccessRate = float64(s.Completed) / float64(settled) * 100
	}
	return s
}

// InstanceID is unique per ledger; shared caches use it to keep processes apart
func (l *Ledger) InstanceID() string {
	return l.instance
}

// Version changes whenever the ledger content changes
func (l *Ledger) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// SeedSamples adds the sample transactions shown on a fresh dashboard
func (l *Ledger) SeedSamples() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}
	samples := []domain.Transaction{
		{
			ID:               "tx_001",
			Network:          domain.NetworkXRP,
			Amount:           decimal.RequireFromString("1250.5"),
			Recipient:        "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH",
			Status:           domain.StatusCompleted,
			QuantumSignature: 94.2,
			EnergyEfficiency: 96.8,
			Timestamp:        now.Add(-15 * time.Minute),
		},
		{
			ID:                  "tx_002",
			Network:             domain.NetworkXLM,
			Amount:              decimal.RequireFromString("5000"),
			Recipient:           "GDQP2KPQGKIHYJGXNUIYOMHARUARCA7DJT5FO2FFOOKY3B2WSQHG4W37",
			Status:              domain.StatusProcessing,
			QuantumSignature:    89.7,
			EnergyEfficiency:    91.3,
			Timestamp:           now.Add(-5 * time.Minute),
			EstimatedCompletion: at(2 * time.Minute),
		},
		{
			ID:                  "tx_003",
			Network:             domain.NetworkHBAR,
			Amount:              decimal.RequireFromString("750.25"),
			Recipient:           "0.0.123456",
			Status:              domain.StatusPending,
			QuantumSignature:    88.9,
			EnergyEfficiency:    89.1,
			Timestamp:           now.Add(-2 * time.Minute),
			EstimatedCompletion: at(8 * time.Minute),
		},
	}
	for _, tx := range samples {
		if _, exists := l.index[tx.ID]; exists {
			continue
		}
		tx.Hash = digest(tx)
		l.insert(tx)
	}
}

// insert appends tx; callers hold the write lock
func (l *Ledger) insert(tx domain.Transaction) {
	l.index[tx.ID] = len(l.txs)
	l.txs = append(l.txs, tx)
	l.version++
}

func (l *Ledger) score() float64 {
	return scoreFloor + l.rng.Float64()*scoreSpan
}

// digest fingerprints the immutable fields of a transaction
func digest(tx domain.Transaction) string {
	sum := blake2b.Sum256([]byte(strings.Join([]string{
		tx.ID,
		string(tx.Network),
		tx.Amount.String(),
		tx.Recipient,
		tx.Timestamp.UTC().Format(time.RFC3339Nano),
	}, "|")))
	return hex.EncodeToString(sum[:])
}
