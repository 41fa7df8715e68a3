package main

import (
	"os"
	"strings"
	"testing"
)

func TestSetupConfig(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"loghound-mcp"}

	t.Run("missing base URL", func(t *testing.T) {
		t.Setenv("LOGHOUND_BASE_URL", "")
		t.Setenv("LOGHOUND_AUTH_TOKEN", "tok")
		_, err := setupConfig()
		if err == nil || !strings.Contains(err.Error(), "backend URL") {
			t.Fatalf("expected base URL error, got %v", err)
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Setenv("LOGHOUND_BASE_URL", "https://search.example.com:8089")
		t.Setenv("LOGHOUND_AUTH_TOKEN", "")
		t.Setenv("LOGHOUND_USERNAME", "")
		t.Setenv("LOGHOUND_PASSWORD", "")
		_, err := setupConfig()
		if err == nil {
			t.Fatal("expected credentials error, got nil")
		}
	})

	t.Run("token auth from env", func(t *testing.T) {
		t.Setenv("LOGHOUND_BASE_URL", "https://search.example.com:8089")
		t.Setenv("LOGHOUND_AUTH_TOKEN", "tok")
		cfg, err := setupConfig()
		if err != nil {
			t.Fatalf("setupConfig: %v", err)
		}
		if cfg.BaseURL != "https://search.example.com:8089" || cfg.AuthToken != "tok" {
			t.Errorf("cfg = %+v, want env values applied", cfg)
		}
		if cfg.Port != "" {
			t.Errorf("Port = %q, want stdio default", cfg.Port)
		}
	})

	t.Run("session credentials from env", func(t *testing.T) {
		t.Setenv("LOGHOUND_BASE_URL", "https://search.example.com:8089")
		t.Setenv("LOGHOUND_AUTH_TOKEN", "")
		t.Setenv("LOGHOUND_USERNAME", "searcher")
		t.Setenv("LOGHOUND_PASSWORD", "hunter2")
		cfg, err := setupConfig()
		if err != nil {
			t.Fatalf("setupConfig: %v", err)
		}
		if cfg.Username != "searcher" || cfg.Password != "hunter2" {
			t.Errorf("cfg = %+v, want session credentials applied", cfg)
		}
	})
}
