package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BradenHooton/refusebot/internal/config"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client generates refusal responses through Gemini. It is the only consumer
// of the generative backend; everything else treats it as text in, text out.
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  *slog.Logger
}

func NewClient(ctx context.Context, cfg *config.LLMConfig, logger *slog.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create generative client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(refuseBotSystemPrompt)},
	}
	model.SetTemperature(0.9)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(150)

	logger.Info("generative backend initialized", slog.String("model", cfg.Model))

	return &Client{
		client:  client,
		model:   model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// RefusalResponse returns the bot's in-character refusal for a message.
// The call is bounded by the configured timeout and fails closed into a
// canned response; a degraded chat turn beats a hard error here.
func (c *Client) RefusalResponse(ctx context.Context, message string) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		c.logger.Error("generative backend call failed", slog.Any("error", err))
		return errorFallbackResponse
	}

	text := extractText(resp)
	if text == "" {
		c.logger.Warn("generative backend returned no text")
		return emptyFallbackResponse
	}

	return text
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}
