package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	// DefaultChatModel is the default generation model.
	DefaultChatModel = "llama3.2"

	// DefaultChatTimeout bounds a single generation call.
	DefaultChatTimeout = 120 * time.Second

	// DefaultTemperature keeps answers close to the grounding context.
	DefaultTemperature = 0.2
)

// OllamaGenerator generates completions through a local Ollama server.
type OllamaGenerator struct {
	model       string
	temperature float64
	timeout     time.Duration
	llm         llms.Model
}

// GeneratorOption configures an OllamaGenerator.
type GeneratorOption func(*OllamaGenerator)

// WithChatModel sets the generation model.
func WithChatModel(model string) GeneratorOption {
	return func(g *OllamaGenerator) { g.model = model }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) GeneratorOption {
	return func(g *OllamaGenerator) { g.temperature = t }
}

// WithChatTimeout bounds a single generation call.
func WithChatTimeout(d time.Duration) GeneratorOption {
	return func(g *OllamaGenerator) { g.timeout = d }
}

// NewOllamaGenerator creates a generator backed by an Ollama server at
// serverURL. An empty serverURL uses the langchaingo default.
func NewOllamaGenerator(serverURL string, opts ...GeneratorOption) (*OllamaGenerator, error) {
	g := &OllamaGenerator{
		model:       DefaultChatModel,
		temperature: DefaultTemperature,
		timeout:     DefaultChatTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}

	ollamaOpts := []ollama.Option{ollama.WithModel(g.model)}
	if serverURL != "" {
		ollamaOpts = append(ollamaOpts, ollama.WithServerURL(serverURL))
	}

	model, err := ollama.New(ollamaOpts...)
	if err != nil {
		return nil, fmt.Errorf("initializing generation model: %w", err)
	}
	g.llm = model
	return g, nil
}

// Generate returns the completion for the given system and user prompts.
// Backend failures are reported as ErrUnavailable.
func (g *OllamaGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := g.llm.GenerateContent(ctx, content,
		llms.WithTemperature(g.temperature))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	return resp.Choices[0].Content, nil
}

// ModelName returns the name of the generation model.
func (g *OllamaGenerator) ModelName() string {
	return g.model
}
