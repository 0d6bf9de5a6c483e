package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/msreeharshitha/multimodal-chatbot/internal/models"
)

// OpenAI provides an implementation of the Completer interface for any
// OpenAI-compatible chat completion API via the go-openai client.
type OpenAI struct {
	apiKey      string
	model       string
	temperature float32

	client *goopenai.Client

	logger *slog.Logger
}

// NewOpenAI creates a new OpenAI instance with the specified API key, model
// name, and sampling temperature. A non-empty baseURL redirects the client to
// a compatible third-party endpoint.
func NewOpenAI(apiKey, model string, temperature float32, baseURL string, logger *slog.Logger) OpenAI {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return OpenAI{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		client:      goopenai.NewClientWithConfig(cfg),
		logger:      logger.With(slog.String("module", "openai")),
	}
}

func openAIMessages(messages []models.Message) []goopenai.ChatCompletionMessage {
	msgs := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
			Name:    msg.Name,
		})
	}
	return msgs
}

// Complete is a wrapper around the OpenAI chat completion API. Error mapping
// follows the Completer contract: ErrMissingCredential before any network
// call, ErrEmptyCompletion for a 2xx response without content.
func (o OpenAI) Complete(ctx context.Context, messages []models.Message) (models.Message, error) {
	if o.apiKey == "" {
		return models.Message{}, ErrMissingCredential
	}

	req := goopenai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    openAIMessages(messages),
		Temperature: o.temperature,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return models.Message{}, fmt.Errorf("error sending request: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return models.Message{}, ErrEmptyCompletion
	}

	return models.Message{
		Role:    models.RoleAssistant,
		Content: strings.TrimSpace(resp.Choices[0].Message.Content),
	}, nil
}
