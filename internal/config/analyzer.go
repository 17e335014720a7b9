package config

import (
	"fmt"
	"os"
)

const (
	EnvAnalyzerAPIKey  = "CLAUSEGUARD_ANALYZER_API_KEY"
	EnvAnalyzerBaseURL = "CLAUSEGUARD_ANALYZER_BASE_URL"
	EnvAnalyzerModel   = "CLAUSEGUARD_ANALYZER_MODEL"
)

// AnalyzerConfig holds the remote analysis model connection settings.
type AnalyzerConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AnalyzerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AnalyzerConfig) Merge(overlay *AnalyzerConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
}

func (c *AnalyzerConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
}

func (c *AnalyzerConfig) loadEnv() {
	if v := os.Getenv(EnvAnalyzerAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvAnalyzerBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvAnalyzerModel); v != "" {
		c.Model = v
	}
}

func (c *AnalyzerConfig) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key required")
	}
	return nil
}
