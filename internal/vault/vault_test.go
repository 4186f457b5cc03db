package vault

import (
	"strings"
	"testing"
	"time"

	"quantum_financial_system/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := New([]byte("test-seed"))
	require.NoError(t, err)
	return v
}

func sampleTx() domain.Transaction {
	return domain.Transaction{
		ID:        "tx_002",
		Network:   domain.NetworkXLM,
		Amount:    decimal.NewFromInt(5000),
		Recipient: "GDQP2KPQGKIHYJGXNUIYOMHARUARCA7DJT5FO2FFOOKY3B2WSQHG4W37",
		Status:    domain.StatusProcessing,
		Timestamp: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestVault_SignVerify(t *testing.T) {
	v := newTestVault(t)
	tx := sampleTx()

	sig, err := v.Sign(tx)
	require.NoError(t, err)

	assert.Equal(t, "tx_002", sig.TransactionID)
	assert.Equal(t, domain.NetworkXLM, sig.Network)
	assert.Equal(t, Algorithm, sig.Algorithm)
	assert.Len(t, sig.Signature, 128)
	assert.True(t, strings.HasPrefix(sig.KeyID, "qfs-xlm-"))
	assert.True(t, v.Verify(tx, sig.Signature))

	// Status changes do not invalidate the signature
	tx.Status = domain.StatusCompleted
	assert.True(t, v.Verify(tx, sig.Signature))
}

func TestVault_VerifyRejectsTampering(t *testing.T) {
	v := newTestVault(t)
	sig, err := v.Sign(sampleTx())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(tx *domain.Transaction)
	}{
		{name: "amount", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.NewFromInt(5001) }},
		{name: "recipient", mutate: func(tx *domain.Transaction) { tx.Recipient = "GATTACKER" }},
		{name: "network", mutate: func(tx *domain.Transaction) { tx.Network = domain.NetworkXRP }},
		{name: "timestamp", mutate: func(tx *domain.Transaction) { tx.Timestamp = tx.Timestamp.Add(time.Second) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := sampleTx()
			tt.mutate(&tx)
			assert.False(t, v.Verify(tx, sig.Signature))
		})
	}
}

func TestVault_VerifyMalformedSignature(t *testing.T) {
	v := newTestVault(t)
	assert.False(t, v.Verify(sampleTx(), "not-hex"))
	assert.False(t, v.Verify(sampleTx(), ""))

	unknown := sampleTx()
	unknown.Network = "BTC"
	assert.False(t, v.Verify(unknown, "00"))
	_, err := v.Sign(unknown)
	assert.Error(t, err)
}

func TestVault_KeysPerSeedAndNetwork(t *testing.T) {
	a := newTestVault(t)
	b := newTestVault(t)
	other, err := New([]byte("other-seed"))
	require.NoError(t, err)

	sigA, err := a.Sign(sampleTx())
	require.NoError(t, err)
	sigB, err := b.Sign(sampleTx())
	require.NoError(t, err)
	assert.Equal(t, sigA, sigB)
	assert.False(t, other.Verify(sampleTx(), sigA.Signature))

	xrp, _ := a.KeyID(domain.NetworkXRP)
	xlm, _ := a.KeyID(domain.NetworkXLM)
	assert.NotEqual(t, xrp, xlm)
	_, ok := a.KeyID("BTC")
	assert.False(t, ok)
}

func TestNew_EmptySeed(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	v, err := NewRandom()
	require.NoError(t, err)
	_, ok := v.KeyID(domain.NetworkHBAR)
	assert.True(t, ok)
}
