package api

import (
	"math"     // Rounding
	"net/http" // HTTP status codes
	"runtime"  // Process statistics
	"strings"  // Network keys
	"time"     // Uptime and timestamps

	"quantum_financial_system/internal/domain" // Network catalog
	"quantum_financial_system/internal/ledger" // Transaction figures

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// MemoryStats is a subset of runtime.MemStats in bytes
type MemoryStats struct {
	HeapAlloc uint64 `json:"heapAlloc"`
	HeapSys   uint64 `json:"heapSys"`
	Sys       uint64 `json:"sys"`
	NumGC     uint32 `json:"numGC"`
}

// SystemMetrics describes the running process
type SystemMetrics struct {
	Uptime     float64     `json:"uptime"` // Seconds
	Memory     MemoryStats `json:"memory"`
	Goroutines int         `json:"goroutines"`
}

// ApplicationMetrics are fixed figures shown on the dashboard
type ApplicationMetrics struct {
	ActiveConnections   int     `json:"activeConnections"`
	RequestsPerSecond   int     `json:"requestsPerSecond"`
	AverageResponseTime int     `json:"averageResponseTime"` // Milliseconds
	ErrorRate           float64 `json:"errorRate"`
}

// NetworkMetrics is the per-network status line
type NetworkMetrics struct {
	Status  string `json:"status"`
	Latency int    `json:"latency"` // Milliseconds
}

// TransactionMetrics is derived from the ledger
type TransactionMetrics struct {
	Processed   int     `json:"processed"`
	Pending     int     `json:"pending"` // Pending plus processing
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"successRate"`
}

// MetricsResponse is the full metrics document
type MetricsResponse struct {
	Timestamp    string                    `json:"timestamp"`
	System       SystemMetrics             `json:"system"`
	Application  ApplicationMetrics        `json:"application"`
	Networks     map[string]NetworkMetrics `json:"networks"`
	Transactions TransactionMetrics        `json:"transactions"`
}

// MetricsHandler reports process figures, fixed application figures and ledger counts
func MetricsHandler(l *ledger.Ledger, startedAt time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("panic", r).Error("Metrics collection failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve metrics"})
			}
		}()

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		networks := make(map[string]NetworkMetrics, len(domain.Networks))
		for _, n := range domain.Networks {
			networks[strings.ToLower(string(n))] = NetworkMetrics{Status: "operational", Latency: n.Info().LatencyMs}
		}

		s := l.Summary()
		c.JSON(http.StatusOK, MetricsResponse{
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			System: SystemMetrics{
				Uptime:     time.Since(startedAt).Seconds(),
				Memory:     MemoryStats{HeapAlloc: mem.HeapAlloc, HeapSys: mem.HeapSys, Sys: mem.Sys, NumGC: mem.NumGC},
				Goroutines: runtime.NumGoroutine(),
			},
			Application: ApplicationMetrics{
				ActiveConnections:   42,
				RequestsPerSecond:   125,
				AverageResponseTime: 45,
				ErrorRate:           0.02,
			},
			Networks: networks,
			Transactions: TransactionMetrics{
				Processed:   s.Completed,
				Pending:     s.Active,
				Failed:      s.Failed,
				SuccessRate: math.Round(s.SuccessRate*100) / 100,
			},
		})
	}
}
