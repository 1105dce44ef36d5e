// Package ir scrapes an issuer's investor-relations pages: the main
// readable content for context, plus links to disclosure documents
// hosted outside the registry.
package ir

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves IR pages over plain HTTP.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{}}
}

// GetHTML fetches a URL and parses the body into a goquery document.
func (f *Fetcher) GetHTML(ctx context.Context, url string) (*goquery.Document, string, error) {
	body, err := f.GetBytes(ctx, url)
	if err != nil {
		return nil, "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, string(body), nil
}

// GetBytes fetches a URL's raw body.
func (f *Fetcher) GetBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch page, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
