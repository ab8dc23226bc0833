package config_test

import (
	"testing"

	"github.com/jeffturcotte/jest/framework/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load("testdata/missing.env")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"App.Name", cfg.App.Name, "jest"},
		{"App.Env", cfg.App.Env, "local"},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Server.Port", cfg.Server.Port, "8000"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if !cfg.App.Debug {
		t.Error("App.Debug should default to true")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "widgets")
	t.Setenv("APP_DEBUG", "false")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SERVER_PORT", "9090")

	cfg := config.Load("testdata/missing.env")

	if cfg.App.Name != "widgets" {
		t.Errorf("App.Name = %q, want env override", cfg.App.Name)
	}
	if cfg.App.Debug {
		t.Error("App.Debug should be overridden to false")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("Addr() = %q, want :9090", cfg.Addr())
	}
}

func TestGetInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("MAX_WORKERS", "not-a-number")
	if got := config.GetInt("MAX_WORKERS", 4); got != 4 {
		t.Errorf("GetInt = %d, want fallback 4", got)
	}

	t.Setenv("MAX_WORKERS", "16")
	if got := config.GetInt("MAX_WORKERS", 4); got != 16 {
		t.Errorf("GetInt = %d, want 16", got)
	}
}

func TestGetBool_ParsesCommonForms(t *testing.T) {
	t.Setenv("FEATURE_ON", "1")
	if !config.GetBool("FEATURE_ON", false) {
		t.Error(`GetBool("1") should be true`)
	}
	t.Setenv("FEATURE_ON", "maybe")
	if !config.GetBool("FEATURE_ON", true) {
		t.Error("unparseable value should fall back")
	}
}
