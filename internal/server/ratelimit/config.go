package ratelimit

import (
	"strings"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Allowlist       map[string]bool
	Denylist        map[string]bool
	EndpointConfigs []EndpointConfig
}

// EndpointConfig is the limit for one route.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // requests per window
	Window time.Duration
	Burst  int           // bucket capacity; Limit when 0
}

// DefaultConfig returns an enabled limiter config with the endpoint tiers.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Allowlist:       map[string]bool{},
		Denylist:        map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route tiers.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: analysis and PDF compilation
		{Path: "/analyze", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/analyze/stream", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/sample", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/report.pdf", Method: "GET", Limit: 20, Window: time.Hour, Burst: 3},

		// Tier 2: writes
		{Path: "/results", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},

		// Tier 3: reads use the default limit
		// Tier 4: GET /health is unlimited, see MatchEndpoint
	}
}

// ParseIPList turns a comma-separated list into a lookup set.
func ParseIPList(list string) map[string]bool {
	return toSet(strings.Split(list, ","))
}

func toSet(items []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result[item] = true
		}
	}
	return result
}

// WithLists returns a copy of c with the given allow and deny entries.
func (c Config) WithLists(allow, deny []string) *Config {
	c.Allowlist = toSet(allow)
	c.Denylist = toSet(deny)
	return &c
}
