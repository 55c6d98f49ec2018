package redis

import (
	"context"
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_FromEnv(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_READ_TIMEOUT", "7")

	var cfg Config
	require.NoError(t, envconfig.Process("redis", &cfg))
	assert.True(t, cfg.Enabled())
	assert.Equal(t, 7, cfg.ReadTimeout)
	assert.Equal(t, 3, cfg.WriteTimeout)
	assert.Equal(t, 5, cfg.DialTimeout)
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, (&Config{}).Enabled())
}

func TestConfig_NewRejectsBadURL(t *testing.T) {
	_, err := (&Config{URL: "http://not-redis"}).New(context.Background())
	assert.Error(t, err)
}
