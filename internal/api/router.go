package api

import (
	"time" // Process start time

	"quantum_financial_system/internal/config"     // Configuration
	"quantum_financial_system/internal/ledger"     // Transaction lifecycle
	"quantum_financial_system/internal/middleware" // Auth and logging middleware
	"quantum_financial_system/internal/terminal"   // Mock console
	"quantum_financial_system/internal/vault"      // Transaction signatures

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Deps are the collaborators the HTTP layer needs
type Deps struct {
	Config    *config.Config
	Ledger    *ledger.Ledger
	Console   *terminal.Console
	Redis     *redis.Client // Optional response cache
	Vault     *vault.Vault  // Optional, disables the signature routes when nil
	StartedAt time.Time
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// Only a local reverse proxy is trusted
	_ = r.SetTrustedProxies([]string{"127.0.0.1"})

	apiGroup := r.Group("/api")
	apiGroup.POST("/auth", AuthHandler(d.Config))
	apiGroup.GET("/health", HealthHandler(d.Config, d.StartedAt))
	apiGroup.GET("/metrics", MetricsHandler(d.Ledger, d.StartedAt))
	apiGroup.GET("/compliance", ComplianceReportHandler(d.Ledger))
	apiGroup.GET("/networks", ListNetworksHandler())
	apiGroup.GET("/networks/:network/resonance", NetworkResonanceHandler(d.Ledger.Now))

	// Writes and the console are protected only when REQUIRE_AUTH is set
	guarded := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		if !d.Config.RequireAuth {
			return handlers
		}
		return append([]gin.HandlerFunc{middleware.JWTAuthMiddleware(d.Config.JWTSecret)}, handlers...)
	}

	txGroup := apiGroup.Group("/transactions")
	txGroup.GET("", ListTransactionsHandler(d.Ledger, d.Redis, d.Config.CacheTTL))
	txGroup.GET("/summary", TransactionSummaryHandler(d.Ledger))
	txGroup.GET("/:id", GetTransactionHandler(d.Ledger))
	txGroup.GET("/:id/iso20022", ISO20022Handler(d.Ledger))
	txGroup.POST("", guarded(SubmitTransactionHandler(d.Ledger))...)
	if d.Vault != nil {
		txGroup.GET("/:id/signature", guarded(SignTransactionHandler(d.Ledger, d.Vault))...)
		txGroup.POST("/:id/verify", VerifyTransactionHandler(d.Ledger, d.Vault))
	}

	if d.Config.RequireAuth {
		apiGroup.POST("/terminal", guarded(middleware.OperatorOnlyMiddleware(d.Config.Operators), TerminalHandler(d.Console))...)
	} else {
		apiGroup.POST("/terminal", TerminalHandler(d.Console))
	}

	return r
}
