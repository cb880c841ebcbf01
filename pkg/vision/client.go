// Package vision sends page screenshots to an OpenAI-compatible
// chat-completions endpoint for visual analysis.
package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o"

// Client answers questions about screenshots via a multimodal model.
type Client struct {
	client  openai.Client
	model   string
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the model used for analysis.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint, such as
// a local model server or a proxy.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a vision client. An empty apiKey falls back to the
// OPENAI_API_KEY environment variable; the base URL falls back to
// OPENAI_BASE_URL when not set by an option.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("vision API key is required (provide via parameter or OPENAI_API_KEY environment variable)")
	}

	c := &Client{model: DefaultModel}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		c.baseURL = os.Getenv("OPENAI_BASE_URL")
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if c.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(c.baseURL))
	}
	c.client = openai.NewClient(clientOpts...)

	return c, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Analyze sends a PNG screenshot and a question about it to the model and
// returns the model's answer.
func (c *Client) Analyze(ctx context.Context, png []byte, prompt string) (string, error) {
	if len(png) == 0 {
		return "", fmt.Errorf("screenshot is empty")
	}
	if prompt == "" {
		prompt = "Describe what is visible on this page."
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("vision response contained no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
