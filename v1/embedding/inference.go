package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type inferenceProvider struct {
	baseURL    string
	apiKey     string
	model      string
	dimension  int
	costPerTok float64
	httpClient *http.Client
}

func newInferenceProvider(cfg *Config) (*inferenceProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference: missing EMBEDDING_ENDPOINT: %w", ErrMissingCredentials)
	}

	// Remove trailing slash if the caller added it.
	base := strings.TrimRight(cfg.Endpoint, "/")

	return &inferenceProvider{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimension:  cfg.Dimension,
		costPerTok: cfg.CostPerMillionTokens / 1e6,
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
	}, nil
}

// Create generates embeddings for the given texts in one request against the
// OpenAI-compatible /embeddings endpoint. Empty texts are rejected before
// any request is sent.
func (p *inferenceProvider) Create(ctx context.Context, texts ...string) ([][]float32, Usage, error) {
	if len(texts) == 0 {
		return nil, Usage{}, fmt.Errorf("inference: no texts provided: %w", ErrEmptyInput)
	}
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, Usage{}, fmt.Errorf("inference: text %d is empty: %w", i, ErrEmptyInput)
		}
	}

	reqBody := map[string]any{
		"model": p.model,
		"input": texts,
	}

	url := fmt.Sprintf("%s/embeddings", p.baseURL)

	var parsed struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
		Usage struct {
			PromptTokens int `json:"prompt_tokens"`
		} `json:"usage"`
	}

	if err := p.postJSON(ctx, url, reqBody, &parsed); err != nil {
		return nil, Usage{Requests: 1}, err
	}

	if len(parsed.Data) != len(texts) {
		return nil, Usage{Requests: 1}, fmt.Errorf("inference: got %d embeddings for %d texts", len(parsed.Data), len(texts))
	}

	out := make([][]float32, len(parsed.Data))
	for i, d := range parsed.Data {
		if p.dimension > 0 && len(d.Embedding) != p.dimension {
			return nil, Usage{Requests: 1}, fmt.Errorf("inference: embedding %d has size %d, want %d: %w",
				i, len(d.Embedding), p.dimension, ErrDimensionMismatch)
		}
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		out[i] = vec
	}

	usage := Usage{
		PromptTokens: parsed.Usage.PromptTokens,
		Requests:     1,
		CostUSD:      float64(parsed.Usage.PromptTokens) * p.costPerTok,
	}

	return out, usage, nil
}
