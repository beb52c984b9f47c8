package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppName != "oracle-linker" {
		t.Fatalf("unexpected app name %q", cfg.AppName)
	}
	if cfg.OracleBaseURL != "http://oracleofbacon.org/cgi-bin/xml" {
		t.Fatalf("unexpected base url %q", cfg.OracleBaseURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTPTimeout)
	}
	if cfg.PublishersFile != "" {
		t.Fatalf("expected publishing disabled by default, got %q", cfg.PublishersFile)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ORACLE_API_KEY", "secret")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PUBLISHERS_FILE", " ./configs/publishers.yaml ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OracleAPIKey != "secret" || cfg.LogLevel != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTPTimeout)
	}
	if cfg.PublishersFile != "./configs/publishers.yaml" {
		t.Fatalf("unexpected publishers file %q", cfg.PublishersFile)
	}
	if cfg.Redacted().OracleAPIKey != "***" {
		t.Fatalf("expected redacted api key")
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}
