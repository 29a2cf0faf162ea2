package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/carson-networks/spend-tracker/internal/config"
)

// Gemini completes prompts with the hosted Gemini API.
type Gemini struct {
	client *genai.Client
	cfg    config.LLMConfig
}

// NewGemini builds the client. An empty BaseURL uses the public endpoint.
func NewGemini(ctx context.Context, cfg config.LLMConfig, httpClient *http.Client) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: gemini requires LLM_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create genai client: %w", err)
	}

	return &Gemini{client: client, cfg: cfg}, nil
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(g.cfg.Temperature)),
	})
	if err != nil {
		return "", &UnavailableError{Provider: ProviderGemini, Err: err}
	}

	// A response without candidates, such as a blocked prompt, reads as empty
	// text and is reported by the extractor as unparseable.
	return resp.Text(), nil
}
