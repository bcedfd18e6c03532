package config

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %v)", c.Auth.TokenTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be within [%d, %d] (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be within [1, 65535] (got %d)", c.Server.Port)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}

	if err := c.Activity.validate(); err != nil {
		return fmt.Errorf("activity: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (r RateLimitConfig) validate() error {
	if r.AuthPerMinute <= 0 {
		return fmt.Errorf("auth_per_minute must be > 0 (got %d)", r.AuthPerMinute)
	}
	if r.RedisURL != "" {
		u, err := url.Parse(r.RedisURL)
		if err != nil {
			return fmt.Errorf("redis_url: %w", err)
		}
		if u.Scheme != "redis" && u.Scheme != "rediss" {
			return fmt.Errorf("redis_url must use redis:// or rediss:// (got %q)", u.Scheme)
		}
	}
	return nil
}

func (a ActivityConfig) validate() error {
	if a.MaxLimit <= 0 {
		return fmt.Errorf("max_limit must be > 0 (got %d)", a.MaxLimit)
	}
	if a.DefaultLimit <= 0 || a.DefaultLimit > a.MaxLimit {
		return fmt.Errorf("default_limit must be within [1, %d] (got %d)", a.MaxLimit, a.DefaultLimit)
	}
	return nil
}
