// Package config loads the service configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Port         int    `yaml:"port"`
	MetricsPort  int    `yaml:"metrics_port"`
	DatabasePath string `yaml:"database_path"`

	OpenAI struct {
		Key            string `yaml:"key"`
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"openai"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{
		Port:         8080,
		MetricsPort:  9090,
		DatabasePath: "rasoimate.db",
	}
	cfg.OpenAI.Model = "gpt-4o-mini"
	cfg.OpenAI.TimeoutSeconds = 30
	return cfg
}

// Load reads the YAML configuration at path, falling back to defaults when
// the file does not exist. The OpenAI key may also come from the
// OPENAI_API_KEY environment variable, which wins over the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.Key = key
	}
	if cfg.OpenAI.TimeoutSeconds <= 0 {
		cfg.OpenAI.TimeoutSeconds = 30
	}
	return cfg, nil
}

// Timeout returns the model-call timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.OpenAI.TimeoutSeconds) * time.Second
}
