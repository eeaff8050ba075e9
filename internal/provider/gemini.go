package provider

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini calls the Gemini API through the genai SDK. A genai client is built
// per call because the credential arrives with each request.
type Gemini struct {
	baseURL string
	client  *http.Client
}

func NewGemini(baseURL string, httpClient *http.Client) *Gemini {
	return &Gemini{baseURL: baseURL, client: httpClient}
}

func (g *Gemini) Name() string {
	return NameGemini
}

func (g *Gemini) Complete(ctx context.Context, credential, modelID, instruction string, opts Options) (string, error) {
	cfg := &genai.ClientConfig{
		APIKey:     credential,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.client,
	}
	if g.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	if modelID == "" {
		modelID = DefaultGeminiModel
	}

	resp, err := client.Models.GenerateContent(ctx, modelID, genai.Text(instruction), generationConfig(opts))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func generationConfig(opts Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
	}
	if opts.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGenAISchema(opts.Schema)
	}
	return cfg
}

// toGenAISchema converts a JSON-schema map into the SDK's schema type.
// Only the keywords used by the enhance schema are carried over.
func toGenAISchema(m map[string]interface{}) *genai.Schema {
	if m == nil {
		return nil
	}

	s := &genai.Schema{}

	if t, ok := m["type"].(string); ok {
		s.Type = genai.Type(strings.ToUpper(t))
	}
	if d, ok := m["description"].(string); ok {
		s.Description = d
	}

	if props, ok := m["properties"].(map[string]interface{}); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if child, ok := raw.(map[string]interface{}); ok {
				s.Properties[name] = toGenAISchema(child)
			}
		}
	}

	if req, ok := m["required"].([]interface{}); ok {
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
		// Keep the reply's key order stable: required fields first, in
		// declaration order, then the rest alphabetically.
		s.PropertyOrdering = propertyOrdering(s.Required, s.Properties)
	}

	if items, ok := m["items"].(map[string]interface{}); ok {
		s.Items = toGenAISchema(items)
	}

	if v, ok := m["minimum"].(float64); ok {
		s.Minimum = genai.Ptr(v)
	}
	if v, ok := m["maximum"].(float64); ok {
		s.Maximum = genai.Ptr(v)
	}

	return s
}

func propertyOrdering(required []string, props map[string]*genai.Schema) []string {
	if len(props) == 0 {
		return nil
	}

	order := make([]string, 0, len(props))
	seen := make(map[string]bool, len(props))
	for _, name := range required {
		if _, ok := props[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}

	var rest []string
	for name := range props {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}
