package config

import (
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.ShooterAPIURL != "https://www.shooter.cn/api/subapi.php" {
		t.Errorf("ShooterAPIURL = %q", cfg.ShooterAPIURL)
	}
	if cfg.ZimukuDomain != "https://zimuku.org" {
		t.Errorf("ZimukuDomain = %q", cfg.ZimukuDomain)
	}
	if cfg.ClientTimeout != "30s" {
		t.Errorf("ClientTimeout = %q, want %q", cfg.ClientTimeout, "30s")
	}
	if cfg.ClientRetries != 2 {
		t.Errorf("ClientRetries = %d, want 2", cfg.ClientRetries)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "memory")
	}
	if cfg.Cache.Size != 256 {
		t.Errorf("Cache.Size = %d, want 256", cfg.Cache.Size)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default", cfg.UserAgent)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be disabled by default")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_CLIENT_TIMEOUT", "5s")
	t.Setenv("APP_CACHE_BACKEND", "redis")
	t.Setenv("APP_USER_AGENT", "custom-agent/2.0")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.ClientTimeout != "5s" {
		t.Errorf("ClientTimeout = %q, want env override %q", cfg.ClientTimeout, "5s")
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want env override %q", cfg.Cache.Backend, "redis")
	}
	if cfg.UserAgent != "custom-agent/2.0" {
		t.Errorf("UserAgent = %q, want env override", cfg.UserAgent)
	}
}

func TestGetUserAgent_FallsBackToDefault(t *testing.T) {
	if got := GetUserAgent(); got == "" {
		t.Error("GetUserAgent must never return an empty string")
	}
}
