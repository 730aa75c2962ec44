// Package openai implements chat completion and embedding providers
// backed by the OpenAI API.
package openai

import (
	"context"
	"strings"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/sashabaranov/go-openai"
)

// Default model names. The LLM_MODEL and EMBEDDING_MODEL environment
// variables override them at wiring time.
const (
	DefaultCompletionModel = "gpt-4o-mini"
	DefaultEmbeddingModel  = "text-embedding-3-small"
)

// Ensure Provider implements both LLM interfaces at compile time.
var (
	_ ultravox.Completer = (*Provider)(nil)
	_ ultravox.Embedder  = (*Provider)(nil)
)

// Provider implements ultravox.Completer and ultravox.Embedder using the
// OpenAI API.
type Provider struct {
	client          *openai.Client
	completionModel string
	embeddingModel  string
	dimensions      int
}

// Option configures a Provider.
type Option func(*Provider)

// WithCompletionModel overrides the default chat completion model.
func WithCompletionModel(model string) Option {
	return func(p *Provider) {
		if model != "" {
			p.completionModel = model
		}
	}
}

// WithEmbeddingModel overrides the default embedding model.
func WithEmbeddingModel(model string) Option {
	return func(p *Provider) {
		if model != "" {
			p.embeddingModel = model
		}
	}
}

// WithDimensions overrides the embedding vector size requested from the
// model.
func WithDimensions(dimensions int) Option {
	return func(p *Provider) {
		if dimensions > 0 {
			p.dimensions = dimensions
		}
	}
}

// NewProvider creates a Provider backed by the given client.
func NewProvider(client *openai.Client, opts ...Option) *Provider {
	p := &Provider{
		client:          client,
		completionModel: DefaultCompletionModel,
		embeddingModel:  DefaultEmbeddingModel,
		dimensions:      ultravox.DefaultEmbeddingDimensions,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ValidateAPIKey checks that an OpenAI API key has the expected shape. It
// does not verify the key against the API.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ultravox.Errorf(ultravox.EINVALID, "OpenAI API key required")
	}
	if !strings.HasPrefix(key, "sk-") {
		return ultravox.Errorf(ultravox.EINVALID, "OpenAI API key must start with sk-")
	}
	if len(key) <= 40 {
		return ultravox.Errorf(ultravox.EINVALID, "OpenAI API key is too short")
	}
	return nil
}

// Complete sends the system and user prompts to the chat completions API
// and returns the raw response text. The model is instructed to reply
// with a JSON object.
func (p *Provider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.completionModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", ultravox.Errorf(ultravox.EUNAVAILABLE, "chat completion failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", ultravox.Errorf(ultravox.EINTERNAL, "chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector for the given text.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model:      openai.EmbeddingModel(p.embeddingModel),
		Input:      []string{text},
		Dimensions: p.dimensions,
	})
	if err != nil {
		return nil, ultravox.Errorf(ultravox.EUNAVAILABLE, "embedding request failed: %v", err)
	}
	if len(resp.Data) == 0 {
		return nil, ultravox.Errorf(ultravox.EINTERNAL, "embedding response contained no data")
	}
	return resp.Data[0].Embedding, nil
}
