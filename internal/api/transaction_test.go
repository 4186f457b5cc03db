package api

import (
	"net/http"
	"testing"
	"time"

	"quantum_financial_system/internal/config"
	"quantum_financial_system/internal/domain"
	"quantum_financial_system/internal/ledger"
	"quantum_financial_system/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitTransactionHandler(t *testing.T) {
	r, l := newTestRouter(t, testConfig())

	w := doJSON(t, r, http.MethodPost, "/api/transactions", `{"network":"XRP","amount":100,"recipient":"rABC"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var tx domain.Transaction
	decode(t, w, &tx)
	assert.Equal(t, domain.StatusPending, tx.Status)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, domain.NetworkXRP, tx.Network)
	assert.NotNil(t, tx.EstimatedCompletion)
	assert.GreaterOrEqual(t, tx.QuantumSignature, 85.0)
	assert.Less(t, tx.QuantumSignature, 100.0)

	matches := 0
	for _, existing := range l.List(ledger.Filter{}) {
		if existing.ID == tx.ID {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
	stored, ok := l.Get(tx.ID)
	require.True(t, ok)
	assert.Equal(t, tx.Hash, stored.Hash)
}

func TestSubmitTransactionHandler_AcceptsStringAmountAndLowercaseNetwork(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doJSON(t, r, http.MethodPost, "/api/transactions", `{"network":"hbar","amount":"750.25","recipient":"0.0.123456"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var tx domain.Transaction
	decode(t, w, &tx)
	assert.Equal(t, domain.NetworkHBAR, tx.Network)
	assert.Equal(t, "750.25", tx.Amount.String())
}

func TestSubmitTransactionHandler_Invalid(t *testing.T) {
	r, l := newTestRouter(t, testConfig())
	before := len(l.List(ledger.Filter{}))

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{name: "malformed", body: `{"network":`, wantError: "Invalid request"},
		{name: "empty amount", body: `{"network":"XRP","amount":"","recipient":"r"}`, wantError: "Invalid request"},
		{name: "unknown network", body: `{"network":"BTC","amount":1,"recipient":"r"}`, wantError: "Unknown network"},
		{name: "missing recipient", body: `{"network":"XRP","amount":1}`, wantError: "Recipient is required"},
		{name: "blank recipient", body: `{"network":"XRP","amount":1,"recipient":"  "}`, wantError: "Recipient is required"},
		{name: "missing amount", body: `{"network":"XRP","recipient":"r"}`, wantError: "Amount must be positive"},
		{name: "negative amount", body: `{"network":"XRP","amount":-5,"recipient":"r"}`, wantError: "Amount must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/transactions", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]string
			decode(t, w, &resp)
			assert.Equal(t, tt.wantError, resp["error"])
		})
	}
	assert.Len(t, l.List(ledger.Filter{}), before)
}

func TestListTransactionsHandler(t *testing.T) {
	r, l := newTestRouter(t, testConfig())
	l.Submit(domain.NetworkXRP, decimal.NewFromInt(100), "rABC")
	l.Submit(domain.NetworkXLM, decimal.NewFromInt(200), "GXYZ")

	tests := []struct {
		name      string
		query     string
		wantTotal int
		check     func(t *testing.T, tx domain.Transaction)
	}{
		{name: "all", query: "", wantTotal: 5},
		{name: "all keyword", query: "?status=all&network=all", wantTotal: 5},
		{
			name: "network XRP", query: "?network=XRP", wantTotal: 2,
			check: func(t *testing.T, tx domain.Transaction) { assert.Equal(t, domain.NetworkXRP, tx.Network) },
		},
		{
			name: "status pending", query: "?status=pending", wantTotal: 3,
			check: func(t *testing.T, tx domain.Transaction) { assert.Equal(t, domain.StatusPending, tx.Status) },
		},
		{name: "search", query: "?search=rabc", wantTotal: 1},
		{name: "no results", query: "?network=XDC", wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, "/api/transactions"+tt.query, "")

			require.Equal(t, http.StatusOK, w.Code)
			var resp TransactionListResponse
			decode(t, w, &resp)
			assert.Equal(t, tt.wantTotal, resp.Total)
			assert.Len(t, resp.Transactions, tt.wantTotal)
			assert.NotNil(t, resp.Transactions)
			assert.False(t, resp.Cached)
			for _, tx := range resp.Transactions {
				if tt.check != nil {
					tt.check(t, tx)
				}
			}
		})
	}
}

func TestListTransactionsHandler_EmptyIsArray(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doJSON(t, r, http.MethodGet, "/api/transactions?search=nothing-matches", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"transactions":[]`)
}

func TestListTransactionsHandler_BadFilter(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doJSON(t, r, http.MethodGet, "/api/transactions?status=settled", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown status")

	w = doJSON(t, r, http.MethodGet, "/api/transactions?network=DOGE", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown network")
}

func TestGetTransactionHandler(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doJSON(t, r, http.MethodGet, "/api/transactions/tx_002", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tx domain.Transaction
	decode(t, w, &tx)
	assert.Equal(t, domain.StatusProcessing, tx.Status)

	w = doJSON(t, r, http.MethodGet, "/api/transactions/tx_404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Transaction not found")
}

func TestTransactionSummaryHandler(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doJSON(t, r, http.MethodGet, "/api/transactions/summary", "")

	require.Equal(t, http.StatusOK, w.Code)
	var s ledger.Summary
	decode(t, w, &s)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, "7000.75", s.Volume.String())
}

func TestRequireAuth(t *testing.T) {
	cfg := testConfig()
	cfg.TokenMode = config.TokenModeJWT
	cfg.JWTSecret = "secret"
	cfg.RequireAuth = true
	cfg.Operators = []string{"ops"}
	r, _ := newTestRouter(t, cfg)

	opsToken, err := utils.GenerateJWT("ops", "secret", time.Hour)
	require.NoError(t, err)
	userToken, err := utils.GenerateJWT("alice", "secret", time.Hour)
	require.NoError(t, err)

	body := `{"network":"XLM","amount":5,"recipient":"G"}`
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodPost, "/api/transactions", body).Code)
	assert.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/transactions", body, "Authorization", "Bearer "+userToken).Code)

	// Reads stay public
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/transactions", "").Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/transactions/tx_001/iso20022", "").Code)

	// Signing is a write, verification is not
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodGet, "/api/transactions/tx_001/signature", "").Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/transactions/tx_001/signature", "", "Authorization", "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/api/transactions/tx_001/verify", `{"signature":"00"}`).Code)

	cmd := `{"command":"status"}`
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodPost, "/api/terminal", cmd).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodPost, "/api/terminal", cmd, "Authorization", "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/api/terminal", cmd, "Authorization", "Bearer "+opsToken).Code)
}

func TestListTransactionsHandler_RedisCache(t *testing.T) {
	l := ledger.New()
	l.SeedSamples()
	r := newRouterFor(testConfig(), l, newTestRedis(t))

	list := func(query string) TransactionListResponse {
		w := doJSON(t, r, http.MethodGet, "/api/transactions"+query, "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp TransactionListResponse
		decode(t, w, &resp)
		return resp
	}

	first := list("?network=XRP")
	assert.False(t, first.Cached)
	assert.Equal(t, 1, first.Total)

	second := list("?network=XRP")
	assert.True(t, second.Cached)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Transactions[0].ID, second.Transactions[0].ID)

	// Another filter is a different page
	assert.False(t, list("?network=XLM").Cached)

	// A write bumps the version, so the cached page is not reused
	w := doJSON(t, r, http.MethodPost, "/api/transactions", `{"network":"XRP","amount":1,"recipient":"rNew"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	fresh := list("?network=XRP")
	assert.False(t, fresh.Cached)
	assert.Equal(t, 2, fresh.Total)
	assert.True(t, list("?network=XRP").Cached)
}

func TestListTransactionsHandler_CacheIsPerInstance(t *testing.T) {
	rdb := newTestRedis(t)

	seeded := ledger.New()
	seeded.SeedSamples()
	other := ledger.New()
	for i := 0; i < 3; i++ {
		other.Submit(domain.NetworkXDC, decimal.NewFromInt(1), "xdc")
	}
	require.Equal(t, seeded.Version(), other.Version())

	w := doJSON(t, newRouterFor(testConfig(), seeded, rdb), http.MethodGet, "/api/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, newRouterFor(testConfig(), other, rdb), http.MethodGet, "/api/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp TransactionListResponse
	decode(t, w, &resp)
	assert.False(t, resp.Cached)
	require.Len(t, resp.Transactions, 3)
	for _, tx := range resp.Transactions {
		assert.Equal(t, domain.NetworkXDC, tx.Network)
	}
}
