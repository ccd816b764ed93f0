package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"secreport/internal/types"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the configuration from the given path.
// An empty path skips the file and relies on environment and defaults.
func LoadConfig(path string) (*types.Config, error) {
	var cfg types.Config

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	// .env is optional, local development only
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	validateConfig(&cfg)
	return &cfg, nil
}

// validateConfig applies defaults and hard rules
func validateConfig(cfg *types.Config) {
	if cfg.Input.AuthLogPath == "" {
		cfg.Input.AuthLogPath = "auth.log"
	}
	if cfg.Input.FirewallLogPath == "" {
		cfg.Input.FirewallLogPath = "firewall.log"
	}
	if cfg.Input.IDSLogPath == "" {
		cfg.Input.IDSLogPath = "ids.log"
	}

	if cfg.Detection.BruteForceThreshold <= 0 {
		cfg.Detection.BruteForceThreshold = types.DefaultBruteForceThreshold
	}

	if cfg.Output.ReportPath == "" {
		cfg.Output.ReportPath = "security_report.json"
	}

	if cfg.Logging.Path == "" {
		cfg.Logging.Path = "script.log"
	}
	if cfg.Logging.MaxSizeMB <= 0 {
		cfg.Logging.MaxSizeMB = 10
	}
	if cfg.Logging.MaxBackups < 0 {
		cfg.Logging.MaxBackups = 0
	}
}
