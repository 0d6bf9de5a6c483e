package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/msreeharshitha/multimodal-chatbot/internal/handlers"
	"github.com/msreeharshitha/multimodal-chatbot/internal/services"
)

type llmConfig interface {
	completer(logger *slog.Logger) (handlers.Completer, error)
}

// BaseLLMConfig contains the common fields for all LLM configurations.
type BaseLLMConfig struct {
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	Temperature *float32 `yaml:"temperature"`
}

type config struct {
	Port         string    `yaml:"port"`
	LLM          llmConfig `yaml:"llm"`
	Documents    []string  `yaml:"documents"`
	CachePath    string    `yaml:"cachePath"`
	OCRLanguages []string  `yaml:"ocrLanguages"`
}

type groqConfig struct {
	BaseLLMConfig `yaml:",inline"`
	APIKey        string `yaml:"apiKey"`
	BaseURL       string `yaml:"baseURL"`
}

type openAIConfig struct {
	BaseLLMConfig `yaml:",inline"`
	APIKey        string `yaml:"apiKey"`
	BaseURL       string `yaml:"baseURL"`
}

type ollamaConfig struct {
	BaseLLMConfig `yaml:",inline"`
	Host          string `yaml:"host"`
}

const (
	defaultPort        = "8080"
	defaultModel       = "llama3-8b-8192"
	defaultTemperature = float32(0.7)
)

// defaultConfig is used when no config file exists: the Groq provider with
// its credential resolved from the environment.
func defaultConfig() config {
	return config{
		Port: defaultPort,
		LLM:  &groqConfig{BaseLLMConfig: BaseLLMConfig{Provider: "groq", Model: defaultModel}},
	}
}

func loadConfig(path string) (config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return config{}, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	cfg := config{}
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return config{}, fmt.Errorf("error decoding config file: %w", err)
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	return cfg, nil
}

func (c *config) UnmarshalYAML(value *yaml.Node) error {
	var rawConfig struct {
		Port         string         `yaml:"port"`
		LLM          map[string]any `yaml:"llm"`
		Documents    []string       `yaml:"documents"`
		CachePath    string         `yaml:"cachePath"`
		OCRLanguages []string       `yaml:"ocrLanguages"`
	}

	if err := value.Decode(&rawConfig); err != nil {
		return err
	}

	c.Port = rawConfig.Port
	c.Documents = rawConfig.Documents
	c.CachePath = rawConfig.CachePath
	c.OCRLanguages = rawConfig.OCRLanguages

	if rawConfig.LLM == nil {
		c.LLM = defaultConfig().LLM
		return nil
	}

	llmProvider, ok := rawConfig.LLM["provider"].(string)
	if !ok {
		return fmt.Errorf("llm provider is required")
	}

	llmRawYAML, err := yaml.Marshal(rawConfig.LLM)
	if err != nil {
		return err
	}

	var llm llmConfig
	switch llmProvider {
	case "groq":
		llm = &groqConfig{}
	case "openai":
		llm = &openAIConfig{}
	case "ollama":
		llm = &ollamaConfig{}
	default:
		return fmt.Errorf("unknown llm provider: %s", llmProvider)
	}

	if err := yaml.Unmarshal(llmRawYAML, llm); err != nil {
		return err
	}

	c.LLM = llm

	return nil
}

func (b BaseLLMConfig) temperature() float32 {
	if b.Temperature == nil {
		return defaultTemperature
	}
	return *b.Temperature
}

func (g groqConfig) completer(logger *slog.Logger) (handlers.Completer, error) {
	model := g.Model
	if model == "" {
		model = defaultModel
	}

	apiKey := g.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	return services.NewGroq(apiKey, model, g.temperature(), g.BaseURL, logger), nil
}

func (o openAIConfig) completer(logger *slog.Logger) (handlers.Completer, error) {
	if o.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	apiKey := o.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return services.NewOpenAI(apiKey, o.Model, o.temperature(), o.BaseURL, logger), nil
}

func (o ollamaConfig) completer(*slog.Logger) (handlers.Completer, error) {
	if o.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	host := o.Host
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = "http://localhost:11434"
	}
	return services.NewOllama(host, o.Model, o.temperature()), nil
}
