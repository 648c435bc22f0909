package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optifuel/api/internal/middleware"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"API_PORT", "JWT_TTL_MINUTES", "ANALYTICS_CACHE_TTL_SECONDS", "EVENTS_ENABLED", "RATE_LIMIT_LOGIN_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, 8080, cfg.APIPort)
	assert.Equal(t, 180*time.Minute, cfg.JWTTTL)
	assert.Equal(t, time.Minute, cfg.AnalyticsCacheTTL)
	assert.True(t, cfg.EventsEnabled)

	rules := cfg.RateLimitRules()
	require.NotEmpty(t, rules)
	assert.Equal(t, "/api/auth/login", rules[0].PathPrefix)
	assert.Equal(t, 5, rules[0].Limit)
	assert.Equal(t, middleware.FixedWindow, rules[0].Algorithm)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9191")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("ML_SERVICE_URL", "http://ml:8000")
	t.Setenv("RATE_LIMIT_LOGIN_LIMIT", "2")
	t.Setenv("ANALYTICS_CACHE_TTL_SECONDS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 9191, cfg.APIPort)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.False(t, cfg.EventsEnabled)
	assert.Equal(t, "http://ml:8000", cfg.MLServiceURL)
	assert.Equal(t, 2, cfg.RateLimitRules()[0].Limit)
	assert.Equal(t, time.Minute, cfg.AnalyticsCacheTTL)
}

func TestRateLimitRulesPointIntoConfig(t *testing.T) {
	cfg := Load()
	rules := cfg.RateLimitRules()
	rules[0].Limit = 42
	assert.Equal(t, 42, cfg.RateLimit.SpecificRules[0].Limit)
}
