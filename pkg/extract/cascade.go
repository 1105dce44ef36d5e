// Package extract pulls text out of filing PDFs. Four strategies are
// available, from cheapest to most expensive: the embedded text layer,
// layout-aware rendering to markdown, OCR, and vision-model reading.
// Auto mode runs them in that order until one passes the quality gate.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// StrategyName identifies an extraction strategy.
type StrategyName string

const (
	StrategyText   StrategyName = "text"
	StrategyLayout StrategyName = "layout"
	StrategyOCR    StrategyName = "ocr"
	StrategyVision StrategyName = "vision"
	// StrategyAuto is not a strategy itself; it selects the fallback
	// cascade.
	StrategyAuto StrategyName = "auto"
)

// Strategy is one way of turning a PDF into text.
type Strategy interface {
	Name() StrategyName
	// Extract reads pages [startPage, endPage] (1-based, endPage 0 means
	// last page) from the PDF at path.
	Extract(ctx context.Context, path string, startPage, endPage int) (string, int, error)
}

// Result is one extraction attempt's output. GatePassed records the
// quality-gate verdict; in auto mode only gate-passing results are
// returned, while an explicit strategy returns its output either way.
type Result struct {
	Strategy   StrategyName `json:"strategy"`
	Pages      int          `json:"pages"`
	Text       string       `json:"text"`
	GatePassed bool         `json:"gate_passed"`
}

// ParseFailureError reports that every attempted strategy failed, with
// each failure preserved in attempt order.
type ParseFailureError struct {
	Path     string
	Attempts []AttemptError
}

// AttemptError is one strategy's failure.
type AttemptError struct {
	Strategy StrategyName
	Err      error
}

func (e *ParseFailureError) Error() string {
	var parts []string
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Strategy, a.Err))
	}
	return fmt.Sprintf("all extraction strategies failed for %s: %s", e.Path, strings.Join(parts, "; "))
}

// Extractor runs strategies against PDFs. Strategies are injected so
// tests can substitute fakes.
type Extractor struct {
	strategies map[StrategyName]Strategy
	order      []StrategyName
	logger     *slog.Logger
}

// NewExtractor builds an extractor over the given strategies. The
// cascade order follows increasing cost; strategies missing from the
// map are skipped in auto mode and an error in explicit mode.
func NewExtractor(strategies []Strategy, logger *slog.Logger) *Extractor {
	byName := make(map[StrategyName]Strategy, len(strategies))
	for _, s := range strategies {
		byName[s.Name()] = s
	}
	return &Extractor{
		strategies: byName,
		order:      []StrategyName{StrategyText, StrategyLayout, StrategyOCR, StrategyVision},
		logger:     logger,
	}
}

// Extract runs the requested strategy, or the full cascade for
// StrategyAuto. In explicit mode the strategy's failure is surfaced
// directly, but its output is returned as-is even when it flunks the
// quality gate; the gate only decides fallback in auto mode.
func (e *Extractor) Extract(ctx context.Context, path string, name StrategyName, startPage, endPage int) (*Result, error) {
	if name != StrategyAuto {
		strategy, ok := e.strategies[name]
		if !ok {
			return nil, fmt.Errorf("unknown extraction strategy %q", name)
		}
		result, err := e.runStrategy(ctx, strategy, path, startPage, endPage)
		if err != nil {
			return nil, err
		}
		if gateErr := CheckQuality(result.Text, result.Pages); gateErr != nil {
			e.logger.Warn("extraction output failed quality gate",
				"strategy", name, "path", path, "error", gateErr)
			return result, nil
		}
		result.GatePassed = true
		return result, nil
	}

	failure := &ParseFailureError{Path: path}
	for _, candidate := range e.order {
		strategy, ok := e.strategies[candidate]
		if !ok {
			continue
		}
		result, err := e.runStrategy(ctx, strategy, path, startPage, endPage)
		if err == nil {
			if gateErr := CheckQuality(result.Text, result.Pages); gateErr == nil {
				result.GatePassed = true
				e.logger.Debug("extraction succeeded",
					"strategy", candidate, "pages", result.Pages, "chars", len(result.Text))
				return result, nil
			} else {
				err = gateErr
			}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.logger.Info("extraction strategy failed, falling back",
			"strategy", candidate, "path", path, "error", err)
		failure.Attempts = append(failure.Attempts, AttemptError{Strategy: candidate, Err: err})
	}
	return nil, failure
}

func (e *Extractor) runStrategy(ctx context.Context, strategy Strategy, path string, startPage, endPage int) (*Result, error) {
	text, pages, err := strategy.Extract(ctx, path, startPage, endPage)
	if err != nil {
		return nil, err
	}
	return &Result{Strategy: strategy.Name(), Pages: pages, Text: text}, nil
}

// pageRange clamps a requested 1-based page window to a document of
// total pages and returns the inclusive bounds.
func pageRange(startPage, endPage, total int) (int, int, error) {
	if startPage <= 0 {
		startPage = 1
	}
	if endPage <= 0 || endPage > total {
		endPage = total
	}
	if startPage > total {
		return 0, 0, fmt.Errorf("start page %d beyond document end (%d pages)", startPage, total)
	}
	if startPage > endPage {
		return 0, 0, fmt.Errorf("invalid page range %d-%d", startPage, endPage)
	}
	return startPage, endPage, nil
}
