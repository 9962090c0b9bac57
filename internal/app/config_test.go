package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.RequestTimeoutSec != 60 {
		t.Errorf("RequestTimeoutSec = %d, want 60", cfg.RequestTimeoutSec)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "base_url: https://api.example.com/\ndownload_dir: /tmp/dl\nrequest_timeout_seconds: 10\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.DownloadDir != "/tmp/dl" {
		t.Errorf("DownloadDir = %q", cfg.DownloadDir)
	}
	if cfg.RequestTimeoutSec != 10 {
		t.Errorf("RequestTimeoutSec = %d, want 10", cfg.RequestTimeoutSec)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PENSIEVE_BASE_URL", "http://override:9000/")
	t.Setenv("PENSIEVE_DOWNLOAD_DIR", "/tmp/override")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "http://override:9000" {
		t.Errorf("BaseURL = %q, want env override trimmed", cfg.BaseURL)
	}
	if cfg.DownloadDir != "/tmp/override" {
		t.Errorf("DownloadDir = %q, want env override", cfg.DownloadDir)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yml")
	want := Config{BaseURL: "http://localhost:8000", DownloadDir: "downloads", RequestTimeoutSec: 30}

	if err := SaveConfig(want, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.BaseURL != want.BaseURL || got.DownloadDir != want.DownloadDir || got.RequestTimeoutSec != want.RequestTimeoutSec {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
