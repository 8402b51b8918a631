package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey 缺少 OpenAI 憑證時的啟動錯誤
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is missing. Put it into .env as: OPENAI_API_KEY=sk-...")

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	OpenAI      OpenAIConfig    `mapstructure:"openai"`
	Session     SessionConfig   `mapstructure:"session"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
	LogFile     string          `mapstructure:"log_file"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// OpenAIConfig 文字生成服務配置
type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// SessionConfig 會話儲存設定（保存最後一次生成的食譜）
type SessionConfig struct {
	Backend         string        `mapstructure:"backend"`
	TTL             time.Duration `mapstructure:"ttl"`
	MaxSize         int           `mapstructure:"max_size"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Redis           RedisConfig   `mapstructure:"redis"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 為選用；不存在時直接使用環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"openai.api_key":         "OPENAI_API_KEY",
		"openai.base_url":        "OPENAI_BASE_URL",
		"openai.model":           "OPENAI_MODEL",
		"openai.temperature":     "OPENAI_TEMPERATURE",
		"openai.max_tokens":      "OPENAI_MAX_TOKENS",
		"openai.timeout":         "OPENAI_TIMEOUT",
		"session.backend":        "SESSION_BACKEND",
		"session.ttl":            "SESSION_TTL",
		"session.redis.addr":     "REDIS_ADDR",
		"session.redis.password": "REDIS_PASSWORD",
		"session.redis.db":       "REDIS_DB",
		"rate_limit.enabled":     "RATE_LIMIT_ENABLED",
		"rate_limit.requests":    "RATE_LIMIT_REQUESTS",
		"rate_limit.window":      "RATE_LIMIT_WINDOW",
		"dedup_window":           "DEDUP_WINDOW",
		"log_level":              "LOG_LEVEL",
		"log_file":               "LOG_FILE",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// 選用的 config.yaml
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "gastroguide")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "150s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "120s")
	v.SetDefault("server.max_body_bytes", 64<<10)

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.temperature", 0.6)
	v.SetDefault("openai.max_tokens", 0)
	v.SetDefault("openai.timeout", "90s")

	v.SetDefault("session.backend", SessionBackendMemory)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.max_size", 1000)
	v.SetDefault("session.cleanup_interval", "10m")
	v.SetDefault("session.redis.addr", "localhost:6379")
	v.SetDefault("session.redis.password", "")
	v.SetDefault("session.redis.db", 0)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 30)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "logs/app.log")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.OpenAI.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if config.OpenAI.Model == "" {
		return fmt.Errorf("openai model is required")
	}
	if config.OpenAI.Temperature < 0 || config.OpenAI.Temperature > 2 {
		return fmt.Errorf("invalid openai temperature: %v", config.OpenAI.Temperature)
	}

	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	switch config.Session.Backend {
	case SessionBackendMemory:
		if config.Session.MaxSize <= 0 {
			return fmt.Errorf("invalid session max size")
		}
		if config.Session.CleanupInterval <= 0 {
			return fmt.Errorf("invalid session cleanup interval")
		}
	case SessionBackendRedis:
		if config.Session.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", config.Session.Backend)
	}
	if config.Session.TTL <= 0 {
		return fmt.Errorf("invalid session ttl")
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	return nil
}
