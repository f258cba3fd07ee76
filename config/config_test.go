package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DB", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("STORAGE_TIMEOUT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.MongoDB != "socialfeed" {
		t.Errorf("MongoDB = %q", cfg.MongoDB)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d", cfg.BcryptCost)
	}
	if cfg.JWTTTL != 0 {
		t.Errorf("JWTTTL = %v, want 0 (unbounded)", cfg.JWTTTL)
	}
	if cfg.StorageTimeout != 5*time.Second {
		t.Errorf("StorageTimeout = %v", cfg.StorageTimeout)
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Error("CORSOrigins empty")
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without JWT_SECRET")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("STORAGE_TIMEOUT", "250ms")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d", cfg.BcryptCost)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("JWTTTL = %v", cfg.JWTTTL)
	}
	if cfg.StorageTimeout != 250*time.Millisecond {
		t.Errorf("StorageTimeout = %v", cfg.StorageTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://app.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Setenv("BCRYPT_COST", "high")
	if _, err := Load(); err == nil {
		t.Error("Load accepted non-numeric BCRYPT_COST")
	}
	t.Setenv("BCRYPT_COST", "")

	t.Setenv("JWT_TTL", "never")
	if _, err := Load(); err == nil {
		t.Error("Load accepted malformed JWT_TTL")
	}
}
