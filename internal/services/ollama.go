package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/msreeharshitha/multimodal-chatbot/internal/models"
)

// Ollama provides an implementation of the Completer interface for a local
// Ollama server, so the chat pipeline can run without a hosted provider.
type Ollama struct {
	host        string
	model       string
	temperature float32

	client *api.Client
}

// NewOllama creates a new Ollama instance with the specified host URL and
// model name. The host parameter should be a valid URL pointing to an Ollama
// server. If the provided host URL is invalid, the function will panic.
func NewOllama(host, model string, temperature float32) Ollama {
	u, err := url.Parse(host)
	if err != nil {
		panic(err)
	}

	return Ollama{
		host:        host,
		model:       model,
		temperature: temperature,
		client:      api.NewClient(u, &http.Client{}),
	}
}

// Complete sends the conversation to the Ollama server and returns the final
// assistant message. Streaming is disabled, so the response callback fires
// once with the whole completion.
func (o Ollama) Complete(ctx context.Context, messages []models.Message) (models.Message, error) {
	msgs := make([]api.Message, len(messages))
	for i, msg := range messages {
		msgs[i] = api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	stream := false
	req := api.ChatRequest{
		Model:    o.model,
		Messages: msgs,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": o.temperature,
		},
	}

	var content string
	if err := o.client.Chat(ctx, &req, func(res api.ChatResponse) error {
		content = res.Message.Content
		return nil
	}); err != nil {
		return models.Message{}, fmt.Errorf("error sending request: %w", err)
	}

	if strings.TrimSpace(content) == "" {
		return models.Message{}, ErrEmptyCompletion
	}

	return models.Message{
		Role:    models.RoleAssistant,
		Content: strings.TrimSpace(content),
	}, nil
}
