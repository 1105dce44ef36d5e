package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/dtnitsch/edinet-research-agent/pkg/llm"
)

const visionPrompt = "Transcribe all text visible in this document page. " +
	"Preserve headings, tables, and reading order. Output plain text only, " +
	"with no commentary. The document is a Japanese regulatory filing."

// VisionStrategy sends rendered pages to a vision-capable model. Last
// resort in the cascade: most expensive but handles layouts that defeat
// OCR.
type VisionStrategy struct {
	Client llm.Client
}

func (VisionStrategy) Name() StrategyName { return StrategyVision }

func (s VisionStrategy) Extract(ctx context.Context, path string, startPage, endPage int) (string, int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	first, last, err := pageRange(startPage, endPage, doc.NumPage())
	if err != nil {
		return "", 0, err
	}

	var b strings.Builder
	for i := first; i <= last; i++ {
		image, err := renderPagePNG(doc, i-1)
		if err != nil {
			return "", 0, fmt.Errorf("failed to render page %d: %w", i, err)
		}
		text, err := s.Client.CompleteVision(ctx, visionPrompt, image, "image/png")
		if err != nil {
			return "", 0, fmt.Errorf("vision transcription failed on page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	return b.String(), last - first + 1, nil
}
