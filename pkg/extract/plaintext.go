package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextStrategy reads the PDF's embedded text layer. Fastest option;
// yields nothing on scanned documents.
type TextStrategy struct{}

func (TextStrategy) Name() StrategyName { return StrategyText }

func (TextStrategy) Extract(ctx context.Context, path string, startPage, endPage int) (string, int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	first, last, err := pageRange(startPage, endPage, reader.NumPage())
	if err != nil {
		return "", 0, err
	}

	var b strings.Builder
	for i := first; i <= last; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("failed to read page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	return b.String(), last - first + 1, nil
}
