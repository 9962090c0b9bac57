package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL           string `yaml:"base_url"`
	DownloadDir       string `yaml:"download_dir"`
	RequestTimeoutSec int    `yaml:"request_timeout_seconds"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:           "http://localhost:8000",
		DownloadDir:       ".",
		RequestTimeoutSec: 60,
	}
}

// LoadConfig reads the yaml config, tolerating a missing file, then applies
// environment overrides so PENSIEVE_BASE_URL works without a config file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	if v := os.Getenv("PENSIEVE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("PENSIEVE_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = v
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8000"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = "."
	}
	if cfg.RequestTimeoutSec <= 0 {
		cfg.RequestTimeoutSec = 60
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "pensieve", "config.yml")
}
