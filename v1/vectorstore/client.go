package vectorstore

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// A thin wrapper around the official Qdrant Go client providing the
// engine-level operations: collection bootstrap with payload indexes,
// idempotent upserts, filtered similarity search and hybrid ranking.
//

// Logger defines the logging operations the vectorstore package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// State is the client lifecycle state.
type State int

const (
	// Disconnected: no verified connectivity.
	Disconnected State = iota
	// Connected: health check passed, collection not yet verified.
	Connected
	// CollectionReady: collection exists with indexes; reads/writes allowed.
	CollectionReady
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	case CollectionReady:
		return "collection_ready"
	default:
		return "disconnected"
	}
}

// Client wraps the official Qdrant Go client with engine-level operations.
// Not safe for concurrent Initialize/Close, but all read/write operations
// are safe for concurrent use once CollectionReady.
type Client struct {
	api    *qdrant.Client
	cfg    *Config
	logger Logger
	state  State
}

const defaultBatchSize = 200 // chunk size for batch upserts

// NewClient constructs a Client and validates connectivity via a health
// check. The Qdrant SDK creates lightweight gRPC connections, so the check
// runs immediately to fail fast when the service is unreachable.
//
// Example:
//
//	client, err := vectorstore.NewClient(cfg, log)
func NewClient(cfg *Config, logger Logger) (*Client, error) {
	logger.Info("connecting to qdrant", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint, "port": cfg.Port,
	})

	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("vectorstore: failed to initialize client: %w", err)
	}

	c := &Client{
		api:    api,
		cfg:    cfg,
		logger: logger,
		state:  Disconnected,
	}

	if err := c.healthCheck(); err != nil {
		return nil, err
	}
	c.state = Connected

	logger.Info("qdrant client connected", nil, nil)
	return c, nil
}

// healthCheck verifies the availability of the Qdrant service.
// Lightweight and fast; used during startup and readiness probing.
func (c *Client) healthCheck() error {
	if c.api == nil {
		return fmt.Errorf("vectorstore: client not initialized: %w", ErrNotConnected)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("vectorstore: health check failed: %v: %w", err, ErrUnavailable)
	}

	c.logger.Debug("qdrant health check passed", nil, map[string]interface{}{
		"title": resp.Title, "version": resp.Version,
	})
	return nil
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	return c.state
}

// ready guards every read/write operation.
func (c *Client) ready() error {
	if c.state != CollectionReady {
		return fmt.Errorf("vectorstore: state is %s: %w", c.state, ErrNotConnected)
	}
	return nil
}

// opContext applies the configured request timeout.
func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// Client returns the underlying Qdrant SDK client for low-level access.
func (c *Client) Client() *qdrant.Client {
	return c.api
}

// Close shuts down the client. Idempotent; the Qdrant SDK does not hold
// persistent connections, so this mainly marks the client unusable.
func (c *Client) Close() error {
	if c.state == Disconnected {
		return nil
	}
	c.state = Disconnected
	c.logger.Debug("qdrant client closed", nil, nil)
	return c.api.Close()
}
