// Package common holds helpers shared by the CLI actions.
package common

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/edinet-research-agent/models"
)

// NewLogger builds the JSON logger the actions share. Logs go to
// stderr so stdout stays clean for piped output.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads the config file named by --config, falling back to
// defaults when the flag is unset and no config.yaml exists.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	path := c.String("config")
	if path != "" {
		return models.LoadConfig(path)
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return models.LoadConfig("config.yaml")
	}
	return models.DefaultConfig(), nil
}

// TextCacheTTL parses the configured text-cache max age.
func TextCacheTTL(config *models.Config) (time.Duration, error) {
	ttl, err := time.ParseDuration(config.TextCache.MaxAge)
	if err != nil {
		return 0, fmt.Errorf("invalid text_cache.max_age %q: %w", config.TextCache.MaxAge, err)
	}
	return ttl, nil
}

// WriteOutput marshals v as JSON or YAML and writes it to the path
// named by --output, or stdout when the flag is empty.
func WriteOutput(c *cli.Context, v any) error {
	var (
		data []byte
		err  error
	)
	if c.String("format") == "yaml" {
		data, err = yaml.Marshal(v)
	} else {
		data, err = marshalJSONIndent(v)
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	out := c.String("output")
	if out == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}
