package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/msreeharshitha/multimodal-chatbot/internal/models"
)

// Groq provides an implementation of the Completer interface against Groq's
// OpenAI-compatible chat completion endpoint.
type Groq struct {
	apiKey      string
	model       string
	temperature float32
	baseURL     string

	client *http.Client

	logger *slog.Logger
}

type groqChatRequest struct {
	Model       string           `json:"model"`
	Messages    []models.Message `json:"messages"`
	Temperature float32          `json:"temperature"`
}

type groqChatResponse struct {
	Choices []groqChoice `json:"choices"`
}

type groqChoice struct {
	Message models.Message `json:"message"`
}

const groqAPIEndpoint = "https://api.groq.com/openai/v1"

// NewGroq creates a new Groq instance with the specified API key, model name,
// and sampling temperature. An empty baseURL falls back to the public Groq
// endpoint; tests point it at a local server.
func NewGroq(apiKey, model string, temperature float32, baseURL string, logger *slog.Logger) Groq {
	if baseURL == "" {
		baseURL = groqAPIEndpoint
	}
	return Groq{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		baseURL:     baseURL,
		client:      &http.Client{},
		logger:      logger.With(slog.String("module", "groq")),
	}
}

// Complete sends the full ordered conversation to the Groq API and returns
// the assistant message from the first choice. It returns ErrMissingCredential
// without touching the network when no API key is configured, an
// *UpstreamError on a non-2xx status, and ErrEmptyCompletion when the body
// carries no completion text.
func (g Groq) Complete(ctx context.Context, messages []models.Message) (models.Message, error) {
	if g.apiKey == "" {
		return models.Message{}, ErrMissingCredential
	}

	reqBody := groqChatRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: g.temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return models.Message{}, fmt.Errorf("error marshaling request: %w", err)
	}

	g.logger.Debug("Request Body", slog.String("body", string(jsonBody)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return models.Message{}, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return models.Message{}, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return models.Message{}, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var res groqChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return models.Message{}, fmt.Errorf("error decoding response: %w", err)
	}

	if len(res.Choices) == 0 || strings.TrimSpace(res.Choices[0].Message.Content) == "" {
		return models.Message{}, ErrEmptyCompletion
	}

	return models.Message{
		Role:    models.RoleAssistant,
		Content: strings.TrimSpace(res.Choices[0].Message.Content),
	}, nil
}
