package extract

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// OCRStrategy rasterizes each page and runs Tesseract over it. Needed
// for scanned filings where no text layer exists.
type OCRStrategy struct {
	// Languages are Tesseract language codes, typically jpn and eng.
	Languages []string
}

func (OCRStrategy) Name() StrategyName { return StrategyOCR }

func (s OCRStrategy) Extract(ctx context.Context, path string, startPage, endPage int) (string, int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	first, last, err := pageRange(startPage, endPage, doc.NumPage())
	if err != nil {
		return "", 0, err
	}

	client := gosseract.NewClient()
	defer client.Close()
	if len(s.Languages) > 0 {
		if err := client.SetLanguage(s.Languages...); err != nil {
			return "", 0, fmt.Errorf("failed to set ocr languages: %w", err)
		}
	}

	var b strings.Builder
	for i := first; i <= last; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		image, err := renderPagePNG(doc, i-1)
		if err != nil {
			return "", 0, fmt.Errorf("failed to render page %d: %w", i, err)
		}
		if err := client.SetImageFromBytes(image); err != nil {
			return "", 0, fmt.Errorf("failed to load page %d image: %w", i, err)
		}
		text, err := client.Text()
		if err != nil {
			return "", 0, fmt.Errorf("ocr failed on page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	return b.String(), last - first + 1, nil
}

// renderPagePNG rasterizes one 0-based page to PNG bytes.
func renderPagePNG(doc *fitz.Document, page int) ([]byte, error) {
	img, err := doc.Image(page)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
