// Package registry talks to the EDINET disclosure registry: listing
// filings per date and downloading filing content by document id.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dtnitsch/edinet-research-agent/models"
)

// FetchKind selects the download format for Fetch.
type FetchKind int

const (
	KindXBRL        FetchKind = 1
	KindPDF         FetchKind = 2
	KindAttachments FetchKind = 3
	KindEnglish     FetchKind = 4
	KindCSV         FetchKind = 5
)

// Ext returns the file extension the registry serves for this kind.
func (k FetchKind) Ext() string {
	if k == KindPDF {
		return ".pdf"
	}
	return ".zip"
}

// Client is the registry collaborator used by the rest of the pipeline.
type Client interface {
	// List returns all filings disclosed on the given date. A date with
	// no data yields an empty slice, not an error.
	List(ctx context.Context, day time.Time) ([]models.Filing, error)
	// Fetch downloads the binary content of one filing.
	Fetch(ctx context.Context, docID string, kind FetchKind) ([]byte, error)
}

const (
	maxAttempts  = 3
	retryBackoff = 2 * time.Second
)

// HTTPClient is the production Client backed by the EDINET v2 API.
// Server errors are retried with exponential backoff; authentication
// and not-found errors surface immediately.
type HTTPClient struct {
	baseURL         string
	apiKey          string
	httpClient      *http.Client
	logger          *slog.Logger
	listTimeout     time.Duration
	downloadTimeout time.Duration
}

// NewHTTPClient builds a client from config. The API key comes from
// the environment variable the config names.
func NewHTTPClient(config *models.Config, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:         strings.TrimRight(config.Registry.BaseURL, "/"),
		apiKey:          config.RegistryAPIKey(),
		httpClient:      &http.Client{},
		logger:          logger,
		listTimeout:     time.Duration(config.Registry.TimeoutList * float64(time.Second)),
		downloadTimeout: time.Duration(config.Registry.TimeoutDownload * float64(time.Second)),
	}
}

// List implements Client.
func (c *HTTPClient) List(ctx context.Context, day time.Time) ([]models.Filing, error) {
	endpoint := "/documents.json"
	params := url.Values{}
	params.Set("date", day.Format("2006-01-02"))
	params.Set("type", "2") // include document details
	params.Set("Subscription-Key", c.apiKey)

	var body []byte
	err := c.withRetry(ctx, endpoint, func() error {
		var err error
		body, err = c.get(ctx, endpoint, params, c.listTimeout)
		return err
	})
	if err != nil {
		return nil, err
	}

	var resp documentListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode document list: %w", err)
	}
	if err := checkInternalStatus(&resp, endpoint); err != nil {
		return nil, err
	}

	filings := make([]models.Filing, 0, len(resp.Results))
	for _, entry := range resp.Results {
		// Withdrawn filings are listed but no longer fetchable.
		if entry.WithdrawalStatus == "1" || entry.WithdrawalStatus == "2" {
			continue
		}
		filings = append(filings, entry.toFiling())
	}
	return filings, nil
}

// Fetch implements Client.
func (c *HTTPClient) Fetch(ctx context.Context, docID string, kind FetchKind) ([]byte, error) {
	endpoint := "/documents/" + docID
	params := url.Values{}
	params.Set("type", strconv.Itoa(int(kind)))
	params.Set("Subscription-Key", c.apiKey)

	var body []byte
	var contentType string
	err := c.withRetry(ctx, endpoint, func() error {
		var err error
		body, contentType, err = c.getWithContentType(ctx, endpoint, params, c.downloadTimeout)
		return err
	})
	if err != nil {
		return nil, err
	}

	// The registry reports some errors as HTTP 200 with a JSON body.
	if strings.Contains(contentType, "application/json") {
		var resp documentListResponse
		if err := json.Unmarshal(body, &resp); err == nil {
			if err := checkInternalStatus(&resp, endpoint); err != nil {
				return nil, err
			}
		}
		return nil, &APIError{
			StatusCode: 0,
			Message:    "unexpected JSON response for document download",
			Endpoint:   endpoint,
		}
	}

	return body, nil
}

func (c *HTTPClient) withRetry(ctx context.Context, endpoint string, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = call()
		if lastErr == nil || !isRetryable(lastErr) {
			return lastErr
		}
		if attempt == maxAttempts {
			break
		}
		delay := retryBackoff * time.Duration(1<<(attempt-1))
		c.logger.Warn("registry server error, retrying",
			"endpoint", endpoint, "attempt", attempt, "delay", delay.String(), "error", lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}

func (c *HTTPClient) get(ctx context.Context, endpoint string, params url.Values, timeout time.Duration) ([]byte, error) {
	body, _, err := c.getWithContentType(ctx, endpoint, params, timeout)
	return body, err
}

func (c *HTTPClient) getWithContentType(ctx context.Context, endpoint string, params url.Values, timeout time.Duration) ([]byte, string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read registry response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := "HTTP " + strconv.Itoa(resp.StatusCode)
		var errBody struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &errBody) == nil && errBody.Message != "" {
			message = errBody.Message
		}
		return nil, "", classifyStatus(resp.StatusCode, message, endpoint)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// checkInternalStatus handles EDINET's HTTP-200-but-failed responses,
// in both the top-level statusCode and nested metadata.status formats.
func checkInternalStatus(resp *documentListResponse, endpoint string) error {
	if resp.StatusCode != 0 && resp.StatusCode != 200 {
		message := resp.Message
		if message == "" {
			message = "unknown error"
		}
		return classifyStatus(resp.StatusCode, message, endpoint)
	}

	status := resp.Metadata.Status
	if status == "" || status == "200" {
		return nil
	}
	code, err := strconv.Atoi(status)
	if err != nil {
		code = 0
	}
	message := resp.Metadata.Message
	if message == "" {
		message = "unknown error"
	}
	return classifyStatus(code, message, endpoint)
}
