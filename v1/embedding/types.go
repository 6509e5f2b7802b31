package embedding

import (
	"context"
	"math"
	"sync/atomic"
)

// Provider contract
type Provider interface {
	// Create generates embeddings for the given texts in a single request.
	Create(ctx context.Context, texts ...string) ([][]float32, Usage, error)
}

// Usage is the token and cost accounting for one or more provider requests.
// Returned per call so callers can account without shared state.
type Usage struct {
	// PromptTokens counted by the provider.
	PromptTokens int `json:"promptTokens"`

	// Requests is the number of HTTP requests issued.
	Requests int `json:"requests"`

	// CostUSD is the estimated cost of the requests.
	CostUSD float64 `json:"costUSD"`
}

// Add accumulates another usage record into u.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.Requests += other.Requests
	u.CostUSD += other.CostUSD
}

// UsageMeter accumulates usage atomically, for adapters shared across
// concurrent callers. Cost is stored in micro-dollars to stay integral.
type UsageMeter struct {
	promptTokens atomic.Int64
	requests     atomic.Int64
	costMicroUSD atomic.Int64
}

// Record adds a usage sample to the meter.
func (m *UsageMeter) Record(u Usage) {
	m.promptTokens.Add(int64(u.PromptTokens))
	m.requests.Add(int64(u.Requests))
	m.costMicroUSD.Add(int64(math.Round(u.CostUSD * 1e6)))
}

// Total returns the accumulated usage.
func (m *UsageMeter) Total() Usage {
	return Usage{
		PromptTokens: int(m.promptTokens.Load()),
		Requests:     int(m.requests.Load()),
		CostUSD:      float64(m.costMicroUSD.Load()) / 1e6,
	}
}
