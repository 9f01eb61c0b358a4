package client

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL matches the backend the storefront ships against.
const DefaultBaseURL = "http://localhost:5000/api"

const defaultTimeout = 30 * time.Second

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: defaultTimeout,
	}
}

// LoadConfig reads configuration from a YAML file, then applies the
// CANTON_API_URL environment override. A missing file yields the defaults;
// an unreadable or malformed file is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			var raw struct {
				BaseURL string `yaml:"base_url"`
				Timeout string `yaml:"timeout"`
			}
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("failed to parse config: %w", err)
			}
			if raw.BaseURL != "" {
				cfg.BaseURL = raw.BaseURL
			}
			if raw.Timeout != "" {
				d, err := time.ParseDuration(raw.Timeout)
				if err != nil {
					return Config{}, fmt.Errorf("invalid timeout in config: %w", err)
				}
				cfg.Timeout = d
			}
		}
	}

	if v := os.Getenv("CANTON_API_URL"); v != "" {
		cfg.BaseURL = v
	}

	return cfg, nil
}
