package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Redis.URL != "" {
		t.Errorf("Redis.URL = %q, want empty", cfg.Redis.URL)
	}
	if cfg.Ledger.BalancePolicy != "to_date" {
		t.Errorf("Ledger.BalancePolicy = %q, want to_date", cfg.Ledger.BalancePolicy)
	}
	if cfg.Ledger.LockTTL != 30*time.Second {
		t.Errorf("Ledger.LockTTL = %v, want 30s", cfg.Ledger.LockTTL)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("Database.AutoMigrate = false, want true")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("LEDGER_BALANCE_POLICY", "all")
	t.Setenv("LEDGER_LOCK_TTL", "2m")
	t.Setenv("LEDGER_IMPORT_RATE_LIMIT", "0")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Redis.URL != "redis://cache:6379/1" {
		t.Errorf("Redis.URL = %q", cfg.Redis.URL)
	}
	if cfg.Ledger.BalancePolicy != "all" {
		t.Errorf("Ledger.BalancePolicy = %q, want all", cfg.Ledger.BalancePolicy)
	}
	if cfg.Ledger.LockTTL != 2*time.Minute {
		t.Errorf("Ledger.LockTTL = %v, want 2m", cfg.Ledger.LockTTL)
	}
	if cfg.Ledger.ImportRateLimit != 0 {
		t.Errorf("Ledger.ImportRateLimit = %d, want 0", cfg.Ledger.ImportRateLimit)
	}
	if cfg.Database.AutoMigrate {
		t.Error("Database.AutoMigrate = true, want false")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("LEDGER_LOCK_TTL", "soon")
	t.Setenv("DB_AUTO_MIGRATE", "maybe")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Ledger.LockTTL != 30*time.Second {
		t.Errorf("Ledger.LockTTL = %v, want 30s", cfg.Ledger.LockTTL)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("Database.AutoMigrate = false, want true")
	}
}

func TestServerConfig_IsTest(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"test", true},
		{"e2e", true},
		{"development", false},
		{"production", false},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := ServerConfig{Environment: tt.env}
			if got := cfg.IsTest(); got != tt.want {
				t.Errorf("IsTest() = %v, want %v", got, tt.want)
			}
		})
	}
}
