package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/dtnitsch/edinet-research-agent/models"
)

const (
	llmMaxAttempts  = 3
	llmRetryBackoff = 2 * time.Second
)

// OpenAIClient talks to an OpenAI-compatible chat completion endpoint.
// All requests pass through a shared rate limiter sized from config.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewOpenAIClient builds a client from config. The API key is resolved
// once here, not per request.
func NewOpenAIClient(config *models.Config, logger *slog.Logger) (*OpenAIClient, error) {
	apiKey := config.LLMAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("missing LLM API key: set %s", config.LLM.APIKeyEnv)
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if config.LLM.BaseURL != "" {
		clientConfig.BaseURL = config.LLM.BaseURL
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   config.LLM.Model,
		limiter: rate.NewLimiter(rate.Limit(float64(config.LLM.RPM)/60.0), 1),
		logger:  logger,
	}, nil
}

// ModelName implements Client.
func (c *OpenAIClient) ModelName() string { return c.model }

// CompleteStructured implements Client. JSON mode is requested from
// the provider, and markdown fences are stripped anyway since some
// models wrap the payload regardless.
func (c *OpenAIClient) CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, out any) error {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	content, err := c.complete(ctx, req)
	if err != nil {
		return err
	}

	cleaned := StripMarkdownFences(content)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return c.wrap(fmt.Errorf("failed to decode model response: %w", err))
	}
	return nil
}

// CompleteVision implements Client. The image is inlined as a data URL.
func (c *OpenAIClient) CompleteVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	}

	return c.complete(ctx, req)
}

func (c *OpenAIClient) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= llmMaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", c.wrap(errors.New("empty completion response"))
			}
			return resp.Choices[0].Message.Content, nil
		}

		lastErr = err
		if !isRetryableAPIError(err) || attempt == llmMaxAttempts {
			break
		}
		delay := llmRetryBackoff * time.Duration(1<<(attempt-1))
		c.logger.Warn("llm request failed, retrying",
			"model", c.model, "attempt", attempt, "delay", delay.String(), "error", err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return "", c.wrap(lastErr)
}

func (c *OpenAIClient) wrap(err error) error {
	return &ProviderError{Provider: "openai", Model: c.model, Err: err}
}

// isRetryableAPIError matches rate limiting and transient server
// failures; auth and bad-request errors surface immediately.
func isRetryableAPIError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	// Transport-level failures (timeouts, resets) are worth retrying.
	return true
}

// StripMarkdownFences removes a surrounding ```json ... ``` block if
// the model wrapped its answer in one.
func StripMarkdownFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
