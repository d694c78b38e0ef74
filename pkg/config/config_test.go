package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8089" {
		t.Errorf("Expected Port to be 8089, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Cache.PriceTTL != time.Hour {
		t.Errorf("Expected PriceTTL to be 1h, got %s", cfg.Cache.PriceTTL)
	}

	if cfg.FinMind.Token != "" && os.Getenv("FINMIND_TOKEN") == "" {
		t.Errorf("Expected empty FinMind token by default, got %s", cfg.FinMind.Token)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("FINMIND_TOKEN", "token-123")
	os.Setenv("CACHE_PRICE_TTL", "30m")
	os.Setenv("LOG_LEVEL", "info")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("FINMIND_TOKEN")
		os.Unsetenv("CACHE_PRICE_TTL")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.FinMind.Token != "token-123" {
		t.Errorf("Expected FinMind token to be token-123, got %s", cfg.FinMind.Token)
	}

	if cfg.Cache.PriceTTL != 30*time.Minute {
		t.Errorf("Expected PriceTTL to be 30m, got %s", cfg.Cache.PriceTTL)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be info, got %s", cfg.LogLevel)
	}
}

func TestValidateRejectsUnknownEnv(t *testing.T) {
	os.Setenv("ENV", "sandbox")
	defer os.Unsetenv("ENV")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for unknown ENV")
	}
}
