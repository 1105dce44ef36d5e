// Package markdown implements the markdown command: convert a local
// filing PDF to text without running any analysis.
package markdown

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/edinet-research-agent/internal/common"
	"github.com/dtnitsch/edinet-research-agent/pkg/cache"
	"github.com/dtnitsch/edinet-research-agent/pkg/extract"
	"github.com/dtnitsch/edinet-research-agent/pkg/llm"
)

func Action(c *cli.Context) error {
	logger := common.NewLogger(c)

	config, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	path := c.String("file")
	if path == "" && c.String("doc-id") != "" {
		index := cache.NewIndex(config.DownloadDir, logger)
		entry, err := index.FindByID(c.String("doc-id"))
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("filing %s not in the local cache; run download first", c.String("doc-id"))
		}
		path = entry.FilePath
	}
	if path == "" {
		return fmt.Errorf("no input provided; set --file or --doc-id")
	}

	strategies := []extract.Strategy{
		extract.TextStrategy{},
		extract.LayoutStrategy{},
		extract.OCRStrategy{Languages: config.OCRLanguages},
	}
	// Vision needs a model; only wire it when a key is available so the
	// cheaper strategies keep working offline.
	if config.LLMAPIKey() != "" {
		llmClient, err := llm.NewOpenAIClient(config, logger)
		if err != nil {
			return err
		}
		strategies = append(strategies, extract.VisionStrategy{Client: llmClient})
	}

	extractor := extract.NewExtractor(strategies, logger)

	strategy := extract.StrategyName(c.String("strategy"))
	if strategy == "" {
		strategy = extract.StrategyAuto
	}

	result, err := extractor.Extract(c.Context, path, strategy, c.Int("start-page"), c.Int("end-page"))
	if err != nil {
		return err
	}
	logger.Info("converted", "path", path, "strategy", result.Strategy, "pages", result.Pages)

	out := c.String("output")
	if out == "" {
		_, err = os.Stdout.WriteString(result.Text)
		return err
	}
	if err := os.WriteFile(out, []byte(result.Text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}
