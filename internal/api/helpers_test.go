package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quantum_financial_system/internal/config"
	"quantum_financial_system/internal/ledger"
	"quantum_financial_system/internal/terminal"
	"quantum_financial_system/internal/vault"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var testStart = time.Now()

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:          "test",
		AppVersion:      "1.0.0",
		TokenMode:       config.TokenModeBasic,
		CacheTTL:        time.Second,
		SimTick:         time.Second,
		ProcessingDelay: time.Minute,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *ledger.Ledger) {
	t.Helper()
	l := ledger.New()
	l.SeedSamples()
	return newRouterFor(cfg, l, nil), l
}

func newRouterFor(cfg *config.Config, l *ledger.Ledger, rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	v, _ := vault.New([]byte("test-seed")) // Only an empty seed fails
	return NewRouter(Deps{
		Config:    cfg,
		Ledger:    l,
		Console:   terminal.NewConsole(l),
		Redis:     rdb,
		Vault:     v,
		StartedAt: time.Now(),
	})
}

// newTestRedis starts an in-process Redis that lives for the test
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func doJSON(t *testing.T, r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}
