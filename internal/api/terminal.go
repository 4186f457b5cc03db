package api

import (
	"net/http" // HTTP status codes

	"quantum_financial_system/internal/middleware" // Authenticated username key
	"quantum_financial_system/internal/terminal"   // Mock console

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// TerminalRequest is one command line typed into the console
type TerminalRequest struct {
	Command string `json:"command" binding:"required"`
}

// TerminalHandler runs a mock terminal command
func TerminalHandler(console *terminal.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TerminalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		res := console.Execute(req.Command)
		logrus.WithFields(logrus.Fields{
			"command":  req.Command,
			"username": c.GetString(middleware.UsernameKey),
		}).Debug("Terminal command")
		c.JSON(http.StatusOK, res)
	}
}
