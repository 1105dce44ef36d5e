package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Registry.BaseURL != "https://api.edinet-fsa.go.jp/api/v2" {
		t.Errorf("Registry.BaseURL = %s", config.Registry.BaseURL)
	}
	if config.Registry.APIKeyEnv != "EDINET_API_KEY" {
		t.Errorf("Registry.APIKeyEnv = %s", config.Registry.APIKeyEnv)
	}
	if config.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM.Model = %s", config.LLM.Model)
	}
	if config.LLM.RPM != 60 {
		t.Errorf("LLM.RPM = %d", config.LLM.RPM)
	}
	if config.DownloadDir != "downloads" {
		t.Errorf("DownloadDir = %s", config.DownloadDir)
	}
	if len(config.OCRLanguages) != 2 || config.OCRLanguages[0] != "jpn" {
		t.Errorf("OCRLanguages = %v", config.OCRLanguages)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
registry:
  timeout_list_seconds: 10
llm:
  model: gpt-4o
download_dir: /data/filings
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	// Explicit values survive.
	if config.Registry.TimeoutList != 10 {
		t.Errorf("TimeoutList = %v, want 10", config.Registry.TimeoutList)
	}
	if config.LLM.Model != "gpt-4o" {
		t.Errorf("LLM.Model = %s, want gpt-4o", config.LLM.Model)
	}
	if config.DownloadDir != "/data/filings" {
		t.Errorf("DownloadDir = %s", config.DownloadDir)
	}
	// Omitted values fall back to defaults.
	if config.Registry.BaseURL == "" || config.LLM.RPM != 60 {
		t.Errorf("defaults not applied: %+v", config)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadConfig() error = nil, want read failure")
	}
}

func TestAPIKeysComeFromEnvironment(t *testing.T) {
	config := DefaultConfig()
	t.Setenv("EDINET_API_KEY", "registry-secret")
	t.Setenv("OPENAI_API_KEY", "llm-secret")

	if got := config.RegistryAPIKey(); got != "registry-secret" {
		t.Errorf("RegistryAPIKey() = %s", got)
	}
	if got := config.LLMAPIKey(); got != "llm-secret" {
		t.Errorf("LLMAPIKey() = %s", got)
	}
}

func TestDocTypeName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"120", "有価証券報告書"},
		{"140", "四半期報告書"},
		{"999", "その他"},
		{"", "その他"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := DocTypeName(tt.code); got != tt.want {
				t.Errorf("DocTypeName(%q) = %s, want %s", tt.code, got, tt.want)
			}
		})
	}
}
