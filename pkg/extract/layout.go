package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gen2brain/go-fitz"
)

// LayoutStrategy renders each page to HTML and converts the result to
// markdown. Slower than the raw text layer but preserves headings and
// tables, which matters for financial statements.
type LayoutStrategy struct{}

func (LayoutStrategy) Name() StrategyName { return StrategyLayout }

func (LayoutStrategy) Extract(ctx context.Context, path string, startPage, endPage int) (string, int, error) {
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
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		// go-fitz pages are 0-based.
		html, err := doc.HTML(i-1, false)
		if err != nil {
			return "", 0, fmt.Errorf("failed to render page %d: %w", i, err)
		}
		md, err := htmlToMarkdown(html)
		if err != nil {
			return "", 0, fmt.Errorf("failed to convert page %d: %w", i, err)
		}
		b.WriteString(md)
		b.WriteString("\n\n")
	}

	return b.String(), last - first + 1, nil
}

// htmlToMarkdown flattens rendered page HTML into markdown. Headings,
// list items, and table rows keep their structure; everything else
// becomes paragraphs.
func htmlToMarkdown(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, tr").Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "h1":
			writeLine(&b, "# "+cleanText(sel.Text()))
		case "h2":
			writeLine(&b, "## "+cleanText(sel.Text()))
		case "h3", "h4", "h5", "h6":
			writeLine(&b, "### "+cleanText(sel.Text()))
		case "li":
			writeLine(&b, "- "+cleanText(sel.Text()))
		case "tr":
			var cells []string
			sel.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, cleanText(cell.Text()))
			})
			if len(cells) > 0 {
				writeLine(&b, "| "+strings.Join(cells, " | ")+" |")
			}
		default:
			writeLine(&b, cleanText(sel.Text()))
		}
	})

	return b.String(), nil
}

func writeLine(b *strings.Builder, line string) {
	if strings.TrimSpace(line) == "" || strings.TrimSpace(strings.TrimLeft(line, "#-| ")) == "" {
		return
	}
	b.WriteString(line)
	b.WriteString("\n")
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
