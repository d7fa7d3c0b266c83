package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.OutDir != "data/seed" {
		t.Errorf("Expected out_dir to be 'data/seed', got '%s'", cfg.OutDir)
	}

	if cfg.Seed != 42 {
		t.Errorf("Expected seed to be 42, got %d", cfg.Seed)
	}

	if !cfg.Truncate {
		t.Error("Expected truncate to default to true")
	}

	if cfg.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", cfg.Database.URLEnv)
	}

	if cfg.Database.Schema != "public" {
		t.Errorf("Expected database schema to be 'public', got '%s'", cfg.Database.Schema)
	}
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	viper.Set("out_dir", "tmp/out")
	viper.Set("seed", 7)
	viper.Set("truncate", false)
	viper.Set("database.schema", "hotel")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.OutDir != "tmp/out" {
		t.Errorf("Expected out_dir to be 'tmp/out', got '%s'", cfg.OutDir)
	}
	if cfg.Seed != 7 {
		t.Errorf("Expected seed to be 7, got %d", cfg.Seed)
	}
	if cfg.Truncate {
		t.Error("Expected truncate to be false")
	}
	if cfg.Database.Schema != "hotel" {
		t.Errorf("Expected database schema to be 'hotel', got '%s'", cfg.Database.Schema)
	}
}

func TestLoadExplicitZeroSeed(t *testing.T) {
	viper.Reset()
	viper.Set("seed", 0)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Seed != 0 {
		t.Errorf("Expected explicit seed 0 to be kept, got %d", cfg.Seed)
	}
}

func TestGetDatabaseURL(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	os.Unsetenv("DATABASE_URL")
	if _, err := cfg.GetDatabaseURL(); err == nil {
		t.Error("Expected error when DATABASE_URL is unset, got nil")
	}

	os.Setenv("DATABASE_URL", "postgres://localhost:5432/hotel_oltp")
	defer os.Unsetenv("DATABASE_URL")

	url, err := cfg.GetDatabaseURL()
	if err != nil {
		t.Fatalf("Failed to get database URL: %v", err)
	}
	if url != "postgres://localhost:5432/hotel_oltp" {
		t.Errorf("Unexpected database URL: %s", url)
	}
}
