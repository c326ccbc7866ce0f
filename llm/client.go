// Package llm wraps the hosted Gemini text-generation service.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// TextGenerator defines the generation operations the services depend on.
// Use this interface for dependency injection to enable mocking in tests.
type TextGenerator interface {
	// GenerateText generates a free-text completion.
	GenerateText(ctx context.Context, system, prompt string, temperature float32) (string, error)

	// GenerateJSON generates a completion with a JSON response MIME type.
	// The returned string is the raw model output; callers parse it with
	// ParseJSONResponse.
	GenerateJSON(ctx context.Context, system, prompt string, temperature float32) (string, error)
}

// Config holds configuration for creating a Gemini client.
type Config struct {
	APIKey string
	Model  string // e.g. "gemini-2.0-flash"
}

// Client is the Gemini-backed TextGenerator.
type Client struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a Gemini client. The API key must be present at process
// start for any analysis, guidance, or generation call to succeed.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("gemini model is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  cfg.Model,
		logger: logger.Named("llm"),
	}, nil
}

// Close releases the underlying client connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateText implements TextGenerator.
func (c *Client) GenerateText(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	return c.generate(ctx, system, prompt, temperature, "")
}

// GenerateJSON implements TextGenerator.
func (c *Client) GenerateJSON(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	return c.generate(ctx, system, prompt, temperature, "application/json")
}

func (c *Client) generate(ctx context.Context, system, prompt string, temperature float32, mimeType string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(temperature)
	if mimeType != "" {
		model.ResponseMIMEType = mimeType
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	c.logger.Debug("generation request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float32("temperature", temperature))

	start := time.Now()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.Error("generation request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	content := sb.String()
	if content == "" {
		return "", errors.New("empty content in response")
	}

	c.logger.Info("generation request completed",
		zap.Int("response_len", len(content)),
		zap.Duration("elapsed", time.Since(start)))

	return content, nil
}

// Ensure Client implements TextGenerator at compile time.
var _ TextGenerator = (*Client)(nil)
