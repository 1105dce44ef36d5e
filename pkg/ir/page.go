package ir

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Page is the distilled result of scraping one IR page.
type Page struct {
	URL      string         `json:"url"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	DocLinks []DocumentLink `json:"doc_links,omitempty"`
}

// DocumentLink points at a disclosure document linked from the page.
type DocumentLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// docExtensions mark links worth harvesting from an IR page.
var docExtensions = []string{".pdf", ".xlsx", ".xls", ".zip"}

// Scrape fetches an IR page, extracts its main readable content, and
// collects links to disclosure documents.
func Scrape(ctx context.Context, fetcher *Fetcher, rawURL string) (*Page, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	doc, html, err := fetcher.GetHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	page := &Page{URL: rawURL, DocLinks: harvestDocLinks(doc, parsedURL)}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		// Readability chokes on some sparse IR portals; the link
		// harvest is still worth returning.
		page.Title = doc.Find("title").First().Text()
		return page, nil
	}

	page.Title = article.Title
	page.Text = strings.TrimSpace(article.TextContent)
	return page, nil
}

// harvestDocLinks finds anchors pointing at document files and resolves
// them against the page URL.
func harvestDocLinks(doc *goquery.Document, base *url.URL) []DocumentLink {
	var links []DocumentLink
	seen := map[string]struct{}{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !isDocumentHref(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}

		title := strings.TrimSpace(sel.Text())
		if title == "" {
			title = resolved
		}
		links = append(links, DocumentLink{Title: title, URL: resolved})
	})

	return links
}

func isDocumentHref(href string) bool {
	lower := strings.ToLower(href)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	for _, ext := range docExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
