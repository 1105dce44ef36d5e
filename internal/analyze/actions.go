// Package analyze implements the analyze command: run the full
// analysis pipeline for one filing id.
package analyze

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/edinet-research-agent/internal/common"
	"github.com/dtnitsch/edinet-research-agent/pkg/cache"
	"github.com/dtnitsch/edinet-research-agent/pkg/extract"
	"github.com/dtnitsch/edinet-research-agent/pkg/llm"
	"github.com/dtnitsch/edinet-research-agent/pkg/registry"
	"github.com/dtnitsch/edinet-research-agent/pkg/workflow"
)

// Output is the analyze command's result envelope: the report plus the
// run's error and completion trail.
type Output struct {
	Report         any      `json:"report" yaml:"report"`
	CompletedNodes []string `json:"completed_nodes" yaml:"completed_nodes"`
	Errors         []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func Action(c *cli.Context) error {
	logger := common.NewLogger(c)

	docID := c.String("doc-id")
	if docID == "" {
		return fmt.Errorf("no filing id provided via --doc-id flag")
	}

	config, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	llmClient, err := llm.NewOpenAIClient(config, logger)
	if err != nil {
		return err
	}

	ttl, err := common.TextCacheTTL(config)
	if err != nil {
		return err
	}
	textCache, err := extract.NewTextCache(config.TextCache.Dir, ttl)
	if err != nil {
		return err
	}

	extractor := extract.NewExtractor([]extract.Strategy{
		extract.TextStrategy{},
		extract.LayoutStrategy{},
		extract.OCRStrategy{Languages: config.OCRLanguages},
		extract.VisionStrategy{Client: llmClient},
	}, logger)

	deps := workflow.Deps{
		Registry:  registry.NewHTTPClient(config, logger),
		Index:     cache.NewIndex(config.DownloadDir, logger),
		Extractor: extractor,
		TextCache: textCache,
		LLM:       llmClient,
		Logger:    logger,
	}

	opts := workflow.RunOptions{
		DocID:      docID,
		PriorDocID: c.String("prior-doc-id"),
		Strategy:   extract.StrategyName(c.String("strategy")),
		StartPage:  c.Int("start-page"),
		EndPage:    c.Int("end-page"),
	}

	logger.Info("starting analysis",
		"doc_id", opts.DocID, "prior_doc_id", opts.PriorDocID, "model", llmClient.ModelName())

	state, err := workflow.Run(c.Context, deps, opts)
	if err != nil {
		// Per-node failures are already in state.Errors; reaching here
		// means the run produced nothing usable.
		return fmt.Errorf("analysis failed: %w", err)
	}

	return common.WriteOutput(c, Output{
		Report:         state.Report,
		CompletedNodes: state.CompletedNodes,
		Errors:         state.Errors,
	})
}
