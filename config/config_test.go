package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeErrorMessage(t *testing.T) {
	fallback := "operation failed"
	testErr := errors.New("internal database error")

	// nil error always yields the fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release mode hides details
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug mode exposes the real error
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))

	// nil config is treated as a development environment
	GlobalConfig = nil
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	defer func() { GlobalConfig = nil }()

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 15, cfg.RateLimit.WindowMinutes)
	assert.Equal(t, "reports", cfg.Reports.Dir)
	assert.False(t, cfg.FinanceAPI.Enabled())
	assert.Equal(t, 10*time.Second, cfg.FinanceAPI.Timeout())
}

func TestFinanceAPIConfig(t *testing.T) {
	c := FinanceAPIConfig{}
	assert.False(t, c.Enabled())

	c = FinanceAPIConfig{BaseURL: "https://api.example.com/recommend"}
	assert.False(t, c.Enabled())

	c = FinanceAPIConfig{BaseURL: "https://api.example.com/recommend", APIKey: "k"}
	assert.True(t, c.Enabled())

	c.TimeoutSeconds = 3
	assert.Equal(t, 3*time.Second, c.Timeout())
}
