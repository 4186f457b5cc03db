package domain

import (
	"math"
	"strings"
	"time"
)

// Network identifies one of the supported ledgers
type Network string

const (
	NetworkXRP  Network = "XRP"
	NetworkXLM  Network = "XLM"
	NetworkXDC  Network = "XDC"
	NetworkHBAR Network = "HBAR"
)

// Networks lists the supported ledgers in display order
var Networks = []Network{NetworkXRP, NetworkXLM, NetworkXDC, NetworkHBAR}

// Wave is the decorative resonance pattern of a network
type Wave struct {
	Frequency float64 `json:"frequency"` // Hz
	Amplitude float64 `json:"amplitude"`
	Phase     float64 `json:"phase"` // Radians
}

// NextPeak returns the first instant at or after now where the wave peaks
func (w Wave) NextPeak(now time.Time) time.Time {
	if w.Frequency <= 0 {
		return now
	}
	delta := math.Mod(math.Pi/2-w.Phase, 2*math.Pi)
	if delta < 0 {
		delta += 2 * math.Pi
	}
	seconds := delta / (2 * math.Pi * w.Frequency)
	return now.Add(time.Duration(seconds * float64(time.Second)))
}

// NetworkInfo is the static status card shown for a network
type NetworkInfo struct {
	Network     Network `json:"network"`
	Status      string  `json:"status"`      // ONLINE or DEGRADED
	Resonance   float64 `json:"resonance"`   // Percentage, decorative
	Nodes       int     `json:"nodes"`       // Simulated participant count
	LatencyMs   int     `json:"latency"`     // Milliseconds
	Placeholder string  `json:"placeholder"` // Example recipient address
	Wave        Wave    `json:"wave"`
}

var networkCatalog = map[Network]NetworkInfo{
	NetworkXRP:  {Network: NetworkXRP, Status: "ONLINE", Resonance: 94.2, Nodes: 150, LatencyMs: 120, Placeholder: "rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH", Wave: Wave{Frequency: 3.5, Amplitude: 0.8, Phase: 0.1}},
	NetworkXLM:  {Network: NetworkXLM, Status: "ONLINE", Resonance: 89.7, Nodes: 89, LatencyMs: 95, Placeholder: "GDQP2KPQGKIHYJGXNUIYOMHARUARCA7DJT5FO2FFOOKY3B2WSQHG4W37", Wave: Wave{Frequency: 4.2, Amplitude: 0.7, Phase: 0.3}},
	NetworkXDC:  {Network: NetworkXDC, Status: "DEGRADED", Resonance: 78.5, Nodes: 45, LatencyMs: 110, Placeholder: "xdc1234567890abcdef1234567890abcdef12345678", Wave: Wave{Frequency: 2.8, Amplitude: 0.9, Phase: 0.2}},
	NetworkHBAR: {Network: NetworkHBAR, Status: "ONLINE", Resonance: 88.9, Nodes: 39, LatencyMs: 105, Placeholder: "0.0.123456", Wave: Wave{Frequency: 5.1, Amplitude: 0.85, Phase: 0.4}},
}

// ParseNetwork resolves a network name, ignoring case and surrounding spaces
func ParseNetwork(s string) (Network, bool) {
	n := Network(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := networkCatalog[n]
	return n, ok
}

// Info returns the catalog entry for n
func (n Network) Info() NetworkInfo {
	return networkCatalog[n]
}
