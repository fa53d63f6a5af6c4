package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"chart-insight-api/config"
)

// the original keeps answers short on purpose
const maxCompletionTokens = 300

var ErrEmptyCompletion = errors.New("vision model returned no choices")

// Client asks a vision-capable chat model about an image. The image goes
// over the wire as a base64 data URL next to the prompt text.
type Client struct {
	logger *zap.Logger
	api    *openai.Client
	model  string
}

func New(logger *zap.Logger, cfg config.OpenAI) *Client {
	return &Client{
		logger: logger,
		api:    openai.NewClient(cfg.APIKey),
		model:  cfg.Model,
	}
}

func (c *Client) AnalyzeImage(ctx context.Context, imageData []byte, prompt, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxCompletionTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURL,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}
