package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.API.Token != "token-123" {
		t.Fatalf("unexpected token %q", cfg.API.Token)
	}
	if cfg.API.BaseURL != "https://api.cloudflare.com/client/v4" {
		t.Fatalf("expected default base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("expected default timeout 30s, got %v", cfg.API.Timeout)
	}
	if cfg.App.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.App.LogLevel)
	}
}

func TestLoad_MissingRequiredReportsAll(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvAPIToken, "")
	t.Setenv(EnvAccountID, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected missing required env to return an error")
	}
	// Both problems should be reported in one pass.
	if !strings.Contains(err.Error(), EnvAPIToken) || !strings.Contains(err.Error(), EnvAccountID) {
		t.Fatalf("expected combined validation error, got %v", err)
	}
}

func TestLoad_RejectsNonHTTPBaseURL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvBaseURL, "ftp://example.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-http base URL to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAPIToken, "token-123")
	t.Setenv(EnvAccountID, "acc-456")
}
