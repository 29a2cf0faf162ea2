package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/carson-networks/spend-tracker/internal/config"
)

// Ollama completes prompts against a local ollama server.
type Ollama struct {
	client *api.Client
	cfg    config.LLMConfig
}

func NewOllama(cfg config.LLMConfig, httpClient *http.Client) (*Ollama, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("llm: ollama base url %q: %w", cfg.BaseURL, err)
	}

	return &Ollama{
		client: api.NewClient(base, httpClient),
		cfg:    cfg,
	}, nil
}

func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	stream := false
	req := &api.GenerateRequest{
		Model:  o.cfg.Model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": o.cfg.Temperature,
		},
	}

	var out strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", &UnavailableError{Provider: ProviderOllama, Err: err}
	}

	return out.String(), nil
}
