package api

import (
	"net/http" // HTTP status codes

	"quantum_financial_system/internal/compliance" // ISO 20022 mapping and reports
	"quantum_financial_system/internal/ledger"     // Transaction lifecycle
	"quantum_financial_system/internal/vault"      // Transaction signatures

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// VerifyRequest carries a detached signature to check
type VerifyRequest struct {
	Signature string `json:"signature" binding:"required"`
}

// ISO20022Handler returns the ISO 20022 message of a transaction
func ISO20022Handler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx, ok := l.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusOK, compliance.ToISO20022(tx, l.Now()))
	}
}

// ComplianceReportHandler returns the compliance report for the whole ledger
func ComplianceReportHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, compliance.NewReport(l.Summary(), l.Now()))
	}
}

// SignTransactionHandler signs a transaction with its network key
func SignTransactionHandler(l *ledger.Ledger, v *vault.Vault) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx, ok := l.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		sig, err := v.Sign(tx)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"id":    tx.ID,
				"error": err,
			}).Error("Failed to sign transaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign transaction"})
			return
		}
		c.JSON(http.StatusOK, sig)
	}
}

// VerifyTransactionHandler checks a signature against a transaction
func VerifyTransactionHandler(l *ledger.Ledger, v *vault.Vault) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing signature"})
			return
		}
		tx, ok := l.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": tx.ID, "valid": v.Verify(tx, req.Signature)})
	}
}
