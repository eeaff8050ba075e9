package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	NameGemini     = "gemini"
	NameOpenRouter = "openrouter"
)

// ErrEmptyResponse is returned when the provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// Options are the per-request generation settings.
type Options struct {
	// Schema, when set, constrains the reply to JSON matching it.
	Schema      map[string]interface{}
	Temperature float32
}

// Completer issues a single completion request and returns the model's text.
// The credential is passed on every call and never stored.
type Completer interface {
	Name() string
	Complete(ctx context.Context, credential, modelID, instruction string, opts Options) (string, error)
}

// New returns the completer registered under name. An empty baseURL selects
// the provider's public endpoint; a nil httpClient uses a client without a
// timeout.
func New(name, baseURL string, httpClient *http.Client) (Completer, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	switch strings.ToLower(name) {
	case NameGemini, "":
		return NewGemini(baseURL, httpClient), nil
	case NameOpenRouter:
		return NewOpenRouter(baseURL, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: %s, %s)", name, NameGemini, NameOpenRouter)
	}
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(name string) string {
	switch strings.ToLower(name) {
	case NameOpenRouter:
		return DefaultOpenRouterModel
	default:
		return DefaultGeminiModel
	}
}

// Available lists the supported provider names.
func Available() []string {
	return []string{NameGemini, NameOpenRouter}
}
