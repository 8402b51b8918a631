package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should fail fast without api key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")

		cfg, err := LoadConfig()

		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY is missing")
	})

	t.Run("should load defaults with api key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test-1234567890")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "sk-test-1234567890", cfg.OpenAI.APIKey)
		assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
		assert.InDelta(t, 0.6, cfg.OpenAI.Temperature, 1e-9)
		assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
		assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
		assert.Equal(t, time.Second, cfg.DedupWindow)
		assert.False(t, cfg.App.Debug)
	})

	t.Run("should apply environment overrides", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test-1234567890")
		t.Setenv("OPENAI_MODEL", "gpt-4o")
		t.Setenv("OPENAI_BASE_URL", "http://localhost:11434/v1")
		t.Setenv("APP_SERVER_PORT", "9090")
		t.Setenv("RATE_LIMIT_REQUESTS", "5")
		t.Setenv("SESSION_TTL", "2h")
		t.Setenv("APP_DEBUG", "true")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
		assert.Equal(t, "http://localhost:11434/v1", cfg.OpenAI.BaseURL)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 5, cfg.RateLimit.Requests)
		assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
		assert.True(t, cfg.App.Debug)
	})

	t.Run("should reject unknown session backend", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test-1234567890")
		t.Setenv("SESSION_BACKEND", "memcached")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown session backend")
	})
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080},
			OpenAI: OpenAIConfig{APIKey: "sk-x", Model: "gpt-4o-mini", Temperature: 0.6},
			Session: SessionConfig{
				Backend:         SessionBackendMemory,
				TTL:             time.Hour,
				MaxSize:         10,
				CleanupInterval: time.Minute,
			},
			RateLimit: RateLimitConfig{Enabled: true, Requests: 10, Window: time.Minute},
		}
	}

	require.NoError(t, validateConfig(valid()))

	cfg := valid()
	cfg.OpenAI.APIKey = "   "
	assert.ErrorIs(t, validateConfig(cfg), ErrMissingAPIKey)

	cfg = valid()
	cfg.OpenAI.Temperature = 3
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Session.Backend = SessionBackendRedis
	cfg.Session.Redis.Addr = ""
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.RateLimit.Requests = 0
	assert.Error(t, validateConfig(cfg))

	cfg.RateLimit.Enabled = false
	assert.NoError(t, validateConfig(cfg))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "sk-a...wxyz", MaskAPIKey("sk-abcdefghijklmnopqrstuvwxyz"))
}
