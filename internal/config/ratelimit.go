package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// RateLimitConfig tunes the Redis token bucket guarding the anonymous write
// endpoints (filing complaints, posting comments) and the login endpoint.
type RateLimitConfig struct {
	Enabled        bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Capacity       int           `envconfig:"RATE_LIMIT_CAPACITY" default:"10"`
	RefillTokens   int           `envconfig:"RATE_LIMIT_REFILL_TOKENS" default:"1"`
	RefillInterval time.Duration `envconfig:"RATE_LIMIT_REFILL_INTERVAL" default:"6s"`
	TTL            time.Duration `envconfig:"RATE_LIMIT_TTL" default:"10m"`
	KeyStrategy    string        `envconfig:"RATE_LIMIT_KEY_STRATEGY" default:"ip_route"`
	Prefix         string        `envconfig:"RATE_LIMIT_PREFIX" default:"rl"`
	Debug          bool          `envconfig:"RATE_LIMIT_DEBUG" default:"false"`
}

// LoadRateLimitConfig reads the RATE_LIMIT_* variables and clamps the values
// to something the limiter script can work with.
func LoadRateLimitConfig() (RateLimitConfig, error) {
	var def RateLimitConfig
	if err := envconfig.Process("", &def); err != nil {
		return RateLimitConfig{}, err
	}
	return def.normalize(), nil
}

func (def RateLimitConfig) normalize() RateLimitConfig {
	if def.Capacity < 1 {
		def.Capacity = 1
	}
	if def.RefillTokens < 1 {
		def.RefillTokens = 1
	}
	if def.RefillInterval <= 0 {
		def.RefillInterval = time.Second
	}
	minTTL := 5 * def.RefillInterval
	if def.TTL < minTTL {
		def.TTL = minTTL
	}
	return def
}
