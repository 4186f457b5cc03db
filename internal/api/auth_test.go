package api

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"quantum_financial_system/internal/config"
	"quantum_financial_system/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Basic(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doJSON(t, r, http.MethodPost, "/api/auth", `{"username":"alice","password":"pw"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp AuthResponse
	decode(t, w, &resp)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, 3600, resp.ExpiresIn)

	raw, err := base64.StdEncoding.DecodeString(resp.Token)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "alice:"))
}

func TestAuthHandler_JWT(t *testing.T) {
	cfg := testConfig()
	cfg.TokenMode = config.TokenModeJWT
	cfg.JWTSecret = "secret"
	r, _ := newTestRouter(t, cfg)

	w := doJSON(t, r, http.MethodPost, "/api/auth", `{"username":"alice","password":"pw"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp AuthResponse
	decode(t, w, &resp)
	claims, err := utils.ParseJWT(resp.Token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestAuthHandler_Errors(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "missing password", body: `{"username":"alice"}`, wantStatus: http.StatusBadRequest, wantError: "Missing credentials"},
		{name: "missing username", body: `{"password":"pw"}`, wantStatus: http.StatusBadRequest, wantError: "Missing credentials"},
		{name: "empty strings", body: `{"username":"","password":""}`, wantStatus: http.StatusBadRequest, wantError: "Missing credentials"},
		{name: "malformed json", body: `{"username":`, wantStatus: http.StatusUnauthorized, wantError: "Authentication failed"},
		{name: "empty body", body: "", wantStatus: http.StatusUnauthorized, wantError: "Authentication failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/auth", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp map[string]string
			decode(t, w, &resp)
			assert.Equal(t, tt.wantError, resp["error"])
		})
	}
}
