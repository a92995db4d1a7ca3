package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Cache.TTL.Std() != time.Hour {
		t.Errorf("expected default cache TTL 1h, got %v", cfg.Cache.TTL)
	}
	if cfg.Survey.CashLevel != 4.5 {
		t.Errorf("expected default cash level 4.5, got %v", cfg.Survey.CashLevel)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
providers:
  fred:
    api_key: from-file
cache:
  ttl: 30m
series:
  equity_tickers: ["^GSPC"]
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FRED_API_KEY", "from-env")
	t.Setenv("EQUITY_TICKERS", "^GSPC,^HSI")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Providers.Fred.APIKey != "from-env" {
		t.Errorf("env must override file, got %q", cfg.Providers.Fred.APIKey)
	}
	if cfg.Cache.TTL.Std() != 30*time.Minute {
		t.Errorf("expected file ttl 30m, got %v", cfg.Cache.TTL)
	}
	if len(cfg.Series.EquityTickers) != 2 {
		t.Errorf("expected env ticker list, got %v", cfg.Series.EquityTickers)
	}
}

func TestValidate_RequiresFredKey(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure without fred api key")
	}

	cfg.Providers.UseMock = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock providers need no fred key: %v", err)
	}
}

func TestValidate_RedisAddr(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Providers.UseMock = true
	cfg.Cache.Redis.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure for enabled redis without addr")
	}
}

func TestValidate_LoggingEnum(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Providers.UseMock = true
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure for unknown log level")
	}
}
