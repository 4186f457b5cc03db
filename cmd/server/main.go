package main

import (
	"context"   // Context for Redis operations and shutdown
	"errors"    // Server close detection
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Shutdown timeout

	"quantum_financial_system/internal/api"      // Custom package for API handlers
	"quantum_financial_system/internal/config"   // Custom package for configuration
	"quantum_financial_system/internal/db"       // Settlement archive
	"quantum_financial_system/internal/ledger"   // Transaction lifecycle
	"quantum_financial_system/internal/terminal" // Mock console
	"quantum_financial_system/internal/vault"    // Transaction signatures

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

func main() {
	cfg := config.LoadConfig()

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional; without it list responses are not cached
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}

	l := ledger.New(ledger.WithProcessingDelay(cfg.ProcessingDelay))
	if cfg.SeedSamples {
		l.SeedSamples()
	}

	var hooks []ledger.SettlementHook
	if cfg.ArchiveEnabled() {
		gdb, err := db.Open(cfg.DSN())
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err)
		}
		hooks = append(hooks, db.NewArchive(gdb).Settle)
	}
	sim := ledger.NewSimulator(l, cfg.SimTick, hooks...)
	if n := sim.Backfill(ctx); n > 0 {
		logrus.WithField("count", n).Info("Archived settled transactions")
	}
	go sim.Run(ctx)

	// Without a seed, signatures only verify until the process restarts
	var v *vault.Vault
	var err error
	if cfg.VaultSeed != "" {
		v, err = vault.New([]byte(cfg.VaultSeed))
	} else {
		logrus.Warn("VAULT_SEED not set, using a random signing seed")
		v, err = vault.NewRandom()
	}
	if err != nil {
		logrus.Fatalf("failed to initialise vault: %v", err)
	}

	srv := &http.Server{
		Addr: ":" + cfg.AppPort,
		Handler: api.NewRouter(api.Deps{
			Config:    cfg,
			Ledger:    l,
			Console:   terminal.NewConsole(l),
			Redis:     redisClient,
			Vault:     v,
			StartedAt: time.Now(),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("graceful shutdown failed: %v", err)
		}
	}()

	logrus.WithFields(logrus.Fields{
		"port":    cfg.AppPort,
		"archive": cfg.ArchiveEnabled(),
		"cache":   redisClient != nil,
		"auth":    cfg.TokenMode,
	}).Info("Server running")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("server failed: %v", err)
	}
	logrus.Info("Server stopped")
}
