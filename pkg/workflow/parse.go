package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/edinet-research-agent/pkg/extract"
)

// ParseNode turns the acquired PDF into text through the extraction
// cascade, consulting the text cache first. The Prior flag selects the
// prior-period branch.
type ParseNode struct {
	Extractor *extract.Extractor
	TextCache *extract.TextCache
	Strategy  extract.StrategyName
	StartPage int
	EndPage   int
	Logger    *slog.Logger
	Prior     bool
}

func (n *ParseNode) Name() string {
	if n.Prior {
		return NodeParsePrior
	}
	return NodeParse
}

func (n *ParseNode) Execute(ctx context.Context, state State) (Patch, error) {
	docID, path := state.DocID, state.FilePath
	if n.Prior {
		docID, path = state.PriorDocID, state.PriorFilePath
	}
	if path == "" {
		return Patch{}, fmt.Errorf("no file to parse for %s", docID)
	}

	strategy := n.Strategy
	if strategy == "" {
		strategy = extract.StrategyAuto
	}

	if n.TextCache != nil {
		if cached, ok := n.TextCache.Get(docID, strategy, n.StartPage, n.EndPage); ok {
			n.Logger.Debug("text cache hit", "doc_id", docID, "strategy", cached.Strategy)
			return n.patch(cached.Text), nil
		}
	}

	result, err := n.Extractor.Extract(ctx, path, strategy, n.StartPage, n.EndPage)
	if err != nil {
		return Patch{}, err
	}
	n.Logger.Info("filing parsed",
		"doc_id", docID, "strategy", result.Strategy, "pages", result.Pages, "chars", len(result.Text))

	if n.TextCache != nil {
		if err := n.TextCache.Set(docID, strategy, n.StartPage, n.EndPage, result); err != nil {
			n.Logger.Warn("failed to cache extracted text", "doc_id", docID, "error", err)
		}
	}
	return n.patch(result.Text), nil
}

func (n *ParseNode) patch(text string) Patch {
	if n.Prior {
		return Patch{PriorText: text}
	}
	return Patch{Text: text}
}
