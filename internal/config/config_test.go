package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Bucket != "candidate-photos" {
		t.Errorf("Storage.Bucket = %q, want candidate-photos", cfg.Storage.Bucket)
	}
	if cfg.Server.PublicOrigin != "http://localhost:8080" {
		t.Errorf("Server.PublicOrigin = %q, want http://localhost:8080", cfg.Server.PublicOrigin)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte("server:\n  port: \"9090\"\n  public_origin: https://castlink.app\nstorage:\n  bucket: other-bucket\n")
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.Bucket != "other-bucket" {
		t.Errorf("Storage.Bucket = %q, want other-bucket", cfg.Storage.Bucket)
	}
	// Untouched sections keep their defaults.
	if cfg.Database.DBName != "castlink" {
		t.Errorf("Database.DBName = %q, want castlink", cfg.Database.DBName)
	}
}

func TestEnvOverridesWin(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("STORAGE_USE_SSL", "true")
	t.Setenv("DB_MAX_IDLE_CONNS", "11")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %q, want env override 7070", cfg.Server.Port)
	}
	if !cfg.Storage.UseSSL {
		t.Error("Storage.UseSSL = false, want env override true")
	}
	if cfg.Database.MaxIdleConns != 11 {
		t.Errorf("Database.MaxIdleConns = %d, want env override 11", cfg.Database.MaxIdleConns)
	}
}

func TestEnvOverrideRejectsMalformedValue(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadConfig accepted a malformed integer env value")
	}
}
