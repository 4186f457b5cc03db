package api

import (
	"net/http" // HTTP status codes
	"time"     // Peak timing

	"quantum_financial_system/internal/domain" // Network catalog

	"github.com/gin-gonic/gin" // Gin web framework
)

// NetworkListResponse is the body of the networks endpoint
type NetworkListResponse struct {
	Networks []domain.NetworkInfo `json:"networks"`
	Count    int                  `json:"count"`
}

// ResonanceResponse describes the wave of one network and its next peak
type ResonanceResponse struct {
	Network       domain.Network `json:"network"`
	Resonance     domain.Wave    `json:"resonance"`
	OptimalTiming time.Time      `json:"optimalTiming"`
}

// ListNetworksHandler returns the catalog entry of every supported network
func ListNetworksHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		infos := make([]domain.NetworkInfo, 0, len(domain.Networks))
		for _, n := range domain.Networks {
			infos = append(infos, n.Info())
		}
		c.JSON(http.StatusOK, NetworkListResponse{Networks: infos, Count: len(infos)})
	}
}

// NetworkResonanceHandler returns the wave of a network and when it next peaks
func NetworkResonanceHandler(now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, ok := domain.ParseNetwork(c.Param("network"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Network not supported"})
			return
		}
		wave := n.Info().Wave
		c.JSON(http.StatusOK, ResonanceResponse{
			Network:       n,
			Resonance:     wave,
			OptimalTiming: wave.NextPeak(now()),
		})
	}
}
