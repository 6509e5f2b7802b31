package embedding

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Logger defines the logging operations the embedding package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Client is the public entrypoint for computing embeddings.
//
// It hides provider details (inference endpoint, HTTP, pacing) from the
// application layer. A single Client is safe for concurrent use; usage
// accounting goes through the atomic UsageMeter.
type Client struct {
	provider Provider
	cfg      *Config
	retry    RetryConfig
	limiter  *rate.Limiter
	meter    *UsageMeter
	logger   Logger
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the inference provider.
// Application code should depend on *Client, not on Provider.
func NewClient(cfg *Config, logger Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return newClientWithProvider(cfg, p, logger), nil
}

// newClientWithProvider wires a Client around an arbitrary Provider.
// Split out so tests can substitute a fake provider.
func newClientWithProvider(cfg *Config, p Provider, logger Logger) *Client {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}

	return &Client{
		provider: p,
		cfg:      cfg,
		retry:    DefaultRetryConfig(),
		// Burst 1: chunk requests are strictly paced, never bunched.
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		meter:   &UsageMeter{},
		logger:  logger,
	}
}

// Dimension returns the vector size this client produces.
func (c *Client) Dimension() int {
	return c.cfg.Dimension
}

// TotalUsage returns the usage accumulated across all calls on this client.
func (c *Client) TotalUsage() Usage {
	return c.meter.Total()
}

// CreateEmbedding generates a vector for a single text. The input is
// truncated to the provider's maximum length before the request is sent.
func (c *Client) CreateEmbedding(ctx context.Context, text string) ([]float32, Usage, error) {
	vecs, usage, err := c.createChunk(ctx, []string{truncate(text, c.cfg.MaxInputChars)})
	if err != nil {
		return nil, usage, err
	}
	return vecs[0], usage, nil
}

// CreateBatch generates vectors for texts, splitting the input into
// provider-sized chunks and pacing chunk requests under the configured
// requests-per-minute ceiling. Usage is accumulated across chunks.
//
// The whole batch fails on the first failed chunk: a partial embedding run
// would leave the caller with vectors it cannot match back to sections.
func (c *Client) CreateBatch(ctx context.Context, texts []string) ([][]float32, Usage, error) {
	if len(texts) == 0 {
		return nil, Usage{}, fmt.Errorf("embedding: no texts provided: %w", ErrEmptyInput)
	}

	truncated := make([]string, len(texts))
	for i, t := range texts {
		truncated[i] = truncate(t, c.cfg.MaxInputChars)
	}

	batchSize := c.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = len(truncated)
	}

	out := make([][]float32, 0, len(truncated))
	var total Usage

	for start := 0; start < len(truncated); start += batchSize {
		end := min(start+batchSize, len(truncated))

		// Pace every chunk request under the provider RPM ceiling. The
		// limiter starts with a full burst-1 bucket, so the first Wait of
		// an idle client returns immediately and later ones keep the gap.
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, total, err
		}

		vecs, usage, err := c.createChunk(ctx, truncated[start:end])
		total.Add(usage)
		if err != nil {
			return nil, total, fmt.Errorf("embedding: chunk [%d:%d] failed: %w", start, end, err)
		}

		out = append(out, vecs...)
		c.logger.Debug("embedded chunk", nil, map[string]interface{}{
			"from": start, "to": end, "tokens": usage.PromptTokens,
		})
	}

	return out, total, nil
}

// createChunk issues one provider request under the retry policy and
// records the usage of every attempt on the meter.
func (c *Client) createChunk(ctx context.Context, texts []string) ([][]float32, Usage, error) {
	var vecs [][]float32
	var total Usage

	err := Retry(ctx, c.retry, func(ctx context.Context) error {
		v, usage, err := c.provider.Create(ctx, texts...)
		c.meter.Record(usage)
		total.Add(usage)
		if err != nil {
			return err
		}
		vecs = v
		return nil
	})
	if err != nil {
		return nil, total, err
	}
	return vecs, total, nil
}

// Close releases any internal resources used by the provider.
// Currently a no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
