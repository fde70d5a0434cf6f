package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var (
	ErrMissingLLMKey   = errors.New("OPENROUTER_API_KEY is required for provider openrouter")
	ErrMissingSynthKey = errors.New("FLUX_API_KEY is required for provider flux")
	ErrBadProvider     = errors.New("unknown provider")
)

type Config struct {
	LLM       LLMConfig
	Synth     SynthConfig
	Database  DatabaseConfig
	Log       LogConfig
	Pipeline  PipelineConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type LLMConfig struct {
	Provider   string // "openrouter" | "mock"
	OpenRouter OpenRouterConfig
}

type OpenRouterConfig struct {
	APIKey      string
	Model       string
	VisionModel string
	BaseURL     string
}

type SynthConfig struct {
	Provider string // "flux" | "mock"
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// DatabaseConfig.URL пустой - история прогонов не персистится
type DatabaseConfig struct {
	URL string
}

type LogConfig struct {
	Level string
}

type PipelineConfig struct {
	ConcurrencyLimit int
}

type CacheConfig struct {
	TTL time.Duration
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

func Load() (*Config, error) {
	cfg := &Config{
		LLM: LLMConfig{
			Provider: getEnvOrDefault("LLM_PROVIDER", "mock"),
			OpenRouter: OpenRouterConfig{
				APIKey:      os.Getenv("OPENROUTER_API_KEY"),
				Model:       getEnvOrDefault("OPENROUTER_MODEL", "deepseek/deepseek-chat"),
				VisionModel: getEnvOrDefault("OPENROUTER_VISION_MODEL", "google/gemini-2.0-flash-001"),
				BaseURL:     getEnvOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			},
		},
		Synth: SynthConfig{
			Provider: getEnvOrDefault("SYNTH_PROVIDER", "mock"),
			APIKey:   os.Getenv("FLUX_API_KEY"),
			Model:    getEnvOrDefault("FLUX_MODEL", "flux-pro-1.1"),
			BaseURL:  getEnvOrDefault("FLUX_BASE_URL", "https://api.bfl.ml/v1"),
			Timeout:  time.Duration(getEnvIntOrDefault("FLUX_TIMEOUT_SEC", 120)) * time.Second,
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Pipeline: PipelineConfig{
			ConcurrencyLimit: getEnvIntOrDefault("CONCURRENCY_LIMIT", 2),
		},
		Cache: CacheConfig{
			TTL: time.Duration(getEnvIntOrDefault("CACHE_TTL_SEC", 3600)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 30),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openrouter":
		if c.LLM.OpenRouter.APIKey == "" {
			return ErrMissingLLMKey
		}
	case "mock":
	default:
		return ErrBadProvider
	}

	switch c.Synth.Provider {
	case "flux":
		if c.Synth.APIKey == "" {
			return ErrMissingSynthKey
		}
	case "mock":
	default:
		return ErrBadProvider
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
