package ledger

import (
	"context"
	"time"

	"quantum_financial_system/internal/domain"

	"github.com/sirupsen/logrus"
)

// DefaultTick is how often the simulator advances the ledger
const DefaultTick = 5 * time.Second

// SettlementHook receives every transaction that reaches a terminal status
type SettlementHook func(ctx context.Context, tx domain.Transaction, settledAt time.Time)

// Simulator advances a Ledger on a timer in place of a real confirmation source
type Simulator struct {
	ledger   *Ledger
	interval time.Duration
	hooks    []SettlementHook
}

// NewSimulator creates a simulator ticking every interval
func NewSimulator(l *Ledger, interval time.Duration, hooks ...SettlementHook) *Simulator {
	if interval <= 0 {
		interval = DefaultTick
	}
	return &Simulator{ledger: l, interval: interval, hooks: hooks}
}

// Run blocks until ctx is cancelled
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logrus.WithField("interval", s.interval.String()).Info("Transaction simulator started")
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Transaction simulator stopped")
			return
		case <-ticker.C:
			s.Step(ctx)
		}
	}
}

// Step performs a single advance and returns the transactions that changed
func (s *Simulator) Step(ctx context.Context) []domain.Transaction {
	now := s.ledger.Now()
	changed := s.ledger.Advance(now)
	for _, tx := range changed {
		logrus.WithFields(logrus.Fields{
			"id":      tx.ID,
			"network": tx.Network,
			"amount":  tx.Amount.String(),
			"status":  tx.Status,
		}).Info("Transaction status changed")
		if !tx.Status.IsTerminal() {
			continue
		}
		for _, hook := range s.hooks {
			hook(ctx, tx, now)
		}
	}
	return changed
}

// Backfill hands every transaction that is already settled to the hooks.
// Records seeded in a terminal status never pass through Step, so this runs once at startup.
func (s *Simulator) Backfill(ctx context.Context) int {
	if len(s.hooks) == 0 {
		return 0
	}
	now := s.ledger.Now()
	n := 0
	for _, tx := range s.ledger.List(Filter{}) {
		if !tx.Status.IsTerminal() {
			continue
		}
		for _, hook := range s.hooks {
			hook(ctx, tx, now)
		}
		n++
	}
	return n
}
