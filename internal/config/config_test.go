package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LLM.Provider != "mock" {
		t.Errorf("LLM provider = %q, expected mock by default", cfg.LLM.Provider)
	}
	if cfg.Synth.Provider != "mock" {
		t.Errorf("synth provider = %q, expected mock by default", cfg.Synth.Provider)
	}
	if cfg.Pipeline.ConcurrencyLimit != 2 {
		t.Errorf("concurrency limit = %d, expected 2", cfg.Pipeline.ConcurrencyLimit)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("cache TTL = %v, expected 1h", cfg.Cache.TTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONCURRENCY_LIMIT", "4")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pipeline.ConcurrencyLimit != 4 {
		t.Errorf("concurrency limit = %d, expected 4", cfg.Pipeline.ConcurrencyLimit)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, expected debug", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	t.Run("openrouter requires api key", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "openrouter")
		t.Setenv("OPENROUTER_API_KEY", "")

		if _, err := Load(); !errors.Is(err, ErrMissingLLMKey) {
			t.Errorf("expected ErrMissingLLMKey, got %v", err)
		}
	})

	t.Run("flux requires api key", func(t *testing.T) {
		t.Setenv("SYNTH_PROVIDER", "flux")
		t.Setenv("FLUX_API_KEY", "")

		if _, err := Load(); !errors.Is(err, ErrMissingSynthKey) {
			t.Errorf("expected ErrMissingSynthKey, got %v", err)
		}
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "skynet")

		if _, err := Load(); !errors.Is(err, ErrBadProvider) {
			t.Errorf("expected ErrBadProvider, got %v", err)
		}
	})

	t.Run("bad int falls back to default", func(t *testing.T) {
		t.Setenv("CONCURRENCY_LIMIT", "many")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Pipeline.ConcurrencyLimit != 2 {
			t.Errorf("concurrency limit = %d, expected default 2", cfg.Pipeline.ConcurrencyLimit)
		}
	})
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		t.Run(level, func(t *testing.T) {
			logger, err := NewLogger(LogConfig{Level: level})
			if err != nil {
				t.Fatalf("NewLogger(%q) error: %v", level, err)
			}
			if logger == nil {
				t.Fatal("NewLogger returned nil")
			}
		})
	}
}
