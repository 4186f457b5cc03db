package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Version formatting for cache keys
	"strings"  // String manipulation
	"time"     // Cache TTL

	"quantum_financial_system/internal/domain" // Importing domain models
	"quantum_financial_system/internal/ledger" // Transaction lifecycle
	"quantum_financial_system/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Decimal amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// SubmitTransactionRequest represents a new transaction from the dashboard form
type SubmitTransactionRequest struct {
	Network   string          `json:"network"`
	Amount    decimal.Decimal `json:"amount"`
	Recipient string          `json:"recipient"`
}

// TransactionListResponse is the body of the list endpoint
type TransactionListResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
	Cached       bool                 `json:"cached"`
}

// SubmitTransactionHandler validates the form and records a pending transaction
func SubmitTransactionHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		network, ok := domain.ParseNetwork(req.Network)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown network"})
			return
		}
		if strings.TrimSpace(req.Recipient) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient is required"})
			return
		}
		if !req.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
			return
		}

		tx := l.Submit(network, req.Amount, req.Recipient)
		logrus.WithFields(logrus.Fields{
			"id":        tx.ID,
			"network":   tx.Network,
			"amount":    tx.Amount.String(),
			"recipient": tx.Recipient,
			"timestamp": tx.Timestamp.Format(time.RFC3339),
		}).Info("Transaction submitted")
		c.JSON(http.StatusCreated, tx)
	}
}

// ListTransactionsHandler returns transactions, optionally filtered by status, network or search text
func ListTransactionsHandler(l *ledger.Ledger, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, errMsg := parseFilter(c)
		if errMsg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
			return
		}

		// Instance and version are part of the key, so neither writes nor other
		// processes sharing the Redis ever serve a stale page
		ctx := context.Background()
		cacheKey := "txs:" + l.InstanceID() + ":v" + strconv.FormatUint(l.Version(), 10) +
			":status=" + string(filter.Status) +
			":network=" + string(filter.Network) +
			":search=" + strings.ToLower(filter.Search)
		var cached TransactionListResponse
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err != nil {
			logrus.WithFields(logrus.Fields{"key": cacheKey, "error": err.Error()}).Warn("Cache read failed")
		}
		if err == nil && found {
			cached.Cached = true
			c.JSON(http.StatusOK, cached)
			return
		}

		txs := l.List(filter)
		resp := TransactionListResponse{Transactions: txs, Total: len(txs)}
		if err := utils.SetCache(ctx, rdb, cacheKey, resp, ttl); err != nil {
			logrus.WithFields(logrus.Fields{"key": cacheKey, "error": err.Error()}).Warn("Cache write failed")
		}
		c.JSON(http.StatusOK, resp)
	}
}

// parseFilter reads the list query; "all" is the dashboard's no-filter value
func parseFilter(c *gin.Context) (ledger.Filter, string) {
	var f ledger.Filter
	if s := c.Query("status"); s != "" && s != "all" {
		st, ok := domain.ParseStatus(s)
		if !ok {
			return f, "Unknown status"
		}
		f.Status = st
	}
	if n := c.Query("network"); n != "" && n != "all" {
		network, ok := domain.ParseNetwork(n)
		if !ok {
			return f, "Unknown network"
		}
		f.Network = network
	}
	f.Search = strings.TrimSpace(c.Query("search"))
	return f, ""
}

// GetTransactionHandler returns a single transaction by id
func GetTransactionHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx, ok := l.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusOK, tx)
	}
}

// TransactionSummaryHandler returns the aggregate figures behind the metric cards
func TransactionSummaryHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, l.Summary())
	}
}
