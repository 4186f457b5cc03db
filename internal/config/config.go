package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
	"github.com/pkg/errors"    // For error wrapping
)

// Token modes accepted by AUTH_TOKEN_MODE
const (
	TokenModeBasic = "basic" // base64(username:millis), not signed
	TokenModeJWT   = "jwt"   // HS256 signed JWT
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	AppEnv     string // Environment name reported by health
	AppVersion string // Version reported by health
	IsProd     bool   // Is production environment

	TokenMode   string   // basic or jwt
	JWTSecret   string   // JWT secret key
	RequireAuth bool     // Protect write routes and the terminal with JWT
	Operators   []string // Usernames allowed to use the terminal, empty means everyone

	RedisAddr string        // Redis server address, empty disables caching
	RedisPass string        // Redis password
	RedisDB   int           // Redis database number
	CacheTTL  time.Duration // TTL of cached list responses

	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host, empty disables the archive
	DBPort     string // Database port
	DBName     string // Database name

	SimTick         time.Duration // Simulator tick interval
	ProcessingDelay time.Duration // Time a transaction stays pending
	SeedSamples     bool          // Insert the sample transactions at startup

	VaultSeed string // Seed of the signing keys, empty means random per process
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		IsProd:     os.Getenv("IS_PROD") == "true",

		TokenMode:   strings.ToLower(getEnv("AUTH_TOKEN_MODE", TokenModeBasic)),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RequireAuth: os.Getenv("REQUIRE_AUTH") == "true",
		Operators:   splitList(os.Getenv("OPERATORS")),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASS"),
		RedisDB:   redisDB,
		CacheTTL:  getDuration("CACHE_TTL", 5*time.Second),

		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),

		SimTick:         getDuration("SIM_TICK", 5*time.Second),
		ProcessingDelay: getDuration("SIM_PROCESSING_DELAY", time.Minute),
		SeedSamples:     getEnv("SEED_SAMPLES", "true") == "true",

		VaultSeed: os.Getenv("VAULT_SEED"),
	}
}

// Validate checks combinations LoadConfig cannot catch on its own
func (c *Config) Validate() error {
	switch c.TokenMode {
	case TokenModeBasic:
		if c.RequireAuth {
			return errors.New("REQUIRE_AUTH needs AUTH_TOKEN_MODE=jwt")
		}
	case TokenModeJWT:
		if c.JWTSecret == "" {
			return errors.New("AUTH_TOKEN_MODE=jwt needs JWT_SECRET")
		}
	default:
		return errors.Errorf("unknown AUTH_TOKEN_MODE %q", c.TokenMode)
	}
	if c.SimTick <= 0 {
		return errors.Errorf("SIM_TICK must be positive, got %s", c.SimTick)
	}
	if c.ProcessingDelay < 0 {
		return errors.Errorf("SIM_PROCESSING_DELAY must not be negative, got %s", c.ProcessingDelay)
	}
	return nil
}

// DSN builds the MySQL data source name for the archive
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// ArchiveEnabled reports whether settled transactions are written to MySQL
func (c *Config) ArchiveEnabled() bool {
	return c.DBHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration falls back on missing or malformed values
func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
