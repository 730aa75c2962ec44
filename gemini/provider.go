// Package gemini implements chat completion and embedding providers
// backed by Google Gemini.
package gemini

import (
	"context"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"google.golang.org/genai"
)

// Default model names. The LLM_MODEL and EMBEDDING_MODEL environment
// variables override them at wiring time.
const (
	DefaultCompletionModel = "gemini-2.5-flash"
	DefaultEmbeddingModel  = "gemini-embedding-001"
)

// Ensure Provider implements both LLM interfaces at compile time.
var (
	_ ultravox.Completer = (*Provider)(nil)
	_ ultravox.Embedder  = (*Provider)(nil)
)

// Provider implements ultravox.Completer and ultravox.Embedder using
// Google Gemini.
type Provider struct {
	client          *genai.Client
	completionModel string
	embeddingModel  string
	dimensions      int32
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
			p.dimensions = int32(dimensions)
		}
	}
}

// NewProvider creates a Provider backed by the given client.
func NewProvider(client *genai.Client, opts ...Option) *Provider {
	p := &Provider{
		client:          client,
		completionModel: DefaultCompletionModel,
		embeddingModel:  DefaultEmbeddingModel,
		dimensions:      int32(ultravox.DefaultEmbeddingDimensions),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Complete sends the system and user prompts to Gemini and returns the
// raw response text. The model is instructed to reply with JSON.
func (p *Provider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if systemPrompt == "" {
		return "", ultravox.Errorf(ultravox.EINVALID, "system prompt required")
	}
	if userPrompt == "" {
		return "", ultravox.Errorf(ultravox.EINVALID, "user prompt required")
	}

	result, err := p.client.Models.GenerateContent(ctx, p.completionModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: userPrompt}},
		}},
		BuildConfig(systemPrompt),
	)
	if err != nil {
		return "", ultravox.Errorf(ultravox.EUNAVAILABLE, "chat completion failed: %v", err)
	}
	if result == nil {
		return "", ultravox.Errorf(ultravox.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// Embed returns the embedding vector for the given text.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ultravox.Errorf(ultravox.EINVALID, "text required")
	}

	dims := p.dimensions
	result, err := p.client.Models.EmbedContent(ctx, p.embeddingModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		&genai.EmbedContentConfig{OutputDimensionality: &dims},
	)
	if err != nil {
		return nil, ultravox.Errorf(ultravox.EUNAVAILABLE, "embedding request failed: %v", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, ultravox.Errorf(ultravox.EINTERNAL, "gemini returned no embeddings")
	}

	return result.Embeddings[0].Values, nil
}

// BuildConfig returns the GenerateContentConfig for enrichment calls.
func BuildConfig(systemPrompt string) *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
