package api

import (
	"net/http" // HTTP status codes
	"time"     // Token issue time

	"quantum_financial_system/internal/config" // Token mode and secret
	"quantum_financial_system/internal/utils"  // Token helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// tokenLifetime is reported to the client as expiresIn
const tokenLifetime = 3600 * time.Second

// AuthRequest is the login body
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthUser echoes the authenticated identity
type AuthUser struct {
	Username string `json:"username"`
}

// AuthResponse carries the issued token
type AuthResponse struct {
	Token     string   `json:"token"`
	User      AuthUser `json:"user"`
	ExpiresIn int      `json:"expiresIn"` // Seconds
}

// AuthHandler issues a session token for any non-empty credentials
func AuthHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AuthRequest
		// An unreadable body is an authentication failure, not a validation one
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
			return
		}
		if req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing credentials"})
			return
		}

		token := utils.BasicToken(req.Username, time.Now())
		if cfg.TokenMode == config.TokenModeJWT {
			var err error
			token, err = utils.GenerateJWT(req.Username, cfg.JWTSecret, tokenLifetime)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"username": req.Username,
					"error":    err.Error(),
				}).Error("Token generation failed")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
				return
			}
		}

		logrus.WithFields(logrus.Fields{
			"username": req.Username,
			"mode":     cfg.TokenMode,
		}).Info("Session issued")
		c.JSON(http.StatusOK, AuthResponse{
			Token:     token,
			User:      AuthUser{Username: req.Username},
			ExpiresIn: int(tokenLifetime.Seconds()),
		})
	}
}
