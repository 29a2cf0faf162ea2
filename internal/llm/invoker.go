package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/carson-networks/spend-tracker/internal/config"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// ErrModelUnavailable covers every way a completion can fail: the endpoint is
// unreachable, times out, or answers with an error status.
var ErrModelUnavailable = errors.New("language model unavailable")

// UnavailableError wraps the provider failure and matches ErrModelUnavailable.
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Provider, ErrModelUnavailable, e.Err)
}

func (e *UnavailableError) Unwrap() []error {
	return []error{ErrModelUnavailable, e.Err}
}

// Invoker sends a prompt to a language model and returns the raw completion
// text. Implementations do not retry.
type Invoker interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// New builds the Invoker for the configured provider.
func New(ctx context.Context, cfg config.LLMConfig) (Invoker, error) {
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllama(cfg, &http.Client{Timeout: cfg.Timeout})
	case ProviderGemini:
		return NewGemini(ctx, cfg, &http.Client{Timeout: cfg.Timeout})
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

// withTimeout bounds one model call when the caller has no earlier deadline.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
