// Package models defines data structures shared across the pipeline.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration loaded from config.yaml.
// Credentials never live in the file; they are read from the
// environment variables named by the *_api_key_env fields.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	LLM      LLMConfig      `yaml:"llm"`

	DownloadDir string          `yaml:"download_dir"`
	TextCache   TextCacheConfig `yaml:"text_cache"`

	OCRLanguages []string `yaml:"ocr_languages"`
}

// RegistryConfig configures the EDINET API client.
type RegistryConfig struct {
	BaseURL         string  `yaml:"base_url"`
	APIKeyEnv       string  `yaml:"api_key_env"`
	TimeoutList     float64 `yaml:"timeout_list_seconds"`
	TimeoutDownload float64 `yaml:"timeout_download_seconds"`
}

// LLMConfig configures the text-completion collaborator.
type LLMConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
	RPM       int    `yaml:"rpm"`
}

// TextCacheConfig configures the extracted-text cache.
type TextCacheConfig struct {
	Dir    string `yaml:"dir"`
	MaxAge string `yaml:"max_age"`
}

// LoadConfig reads and parses the YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.ApplyDefaults()
	return &config, nil
}

// DefaultConfig returns a config usable without a config.yaml on disk.
func DefaultConfig() *Config {
	config := &Config{}
	config.ApplyDefaults()
	return config
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Registry.BaseURL == "" {
		c.Registry.BaseURL = "https://api.edinet-fsa.go.jp/api/v2"
	}
	if c.Registry.APIKeyEnv == "" {
		c.Registry.APIKeyEnv = "EDINET_API_KEY"
	}
	if c.Registry.TimeoutList == 0 {
		c.Registry.TimeoutList = 30
	}
	if c.Registry.TimeoutDownload == 0 {
		c.Registry.TimeoutDownload = 120
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.RPM == 0 {
		c.LLM.RPM = 60
	}
	if c.DownloadDir == "" {
		c.DownloadDir = "downloads"
	}
	if c.TextCache.Dir == "" {
		c.TextCache.Dir = "text-cache"
	}
	if c.TextCache.MaxAge == "" {
		c.TextCache.MaxAge = "720h"
	}
	if len(c.OCRLanguages) == 0 {
		c.OCRLanguages = []string{"jpn", "eng"}
	}
}

// RegistryAPIKey resolves the registry credential from the environment.
func (c *Config) RegistryAPIKey() string {
	return os.Getenv(c.Registry.APIKeyEnv)
}

// LLMAPIKey resolves the LLM credential from the environment.
func (c *Config) LLMAPIKey() string {
	return os.Getenv(c.LLM.APIKeyEnv)
}
