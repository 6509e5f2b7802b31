// Package embedding converts text into fixed-dimension vectors through an
// OpenAI-compatible inference endpoint.
//
// # Overview
//
// The package exposes a single public entrypoint, Client, which hides the
// HTTP details, truncation, request pacing and usage accounting.
//
//	client, err := embedding.NewClient(cfg, log)
//	vec, usage, err := client.CreateEmbedding(ctx, "some text")
//	vecs, usage, err := client.CreateBatch(ctx, texts)
//
// CreateBatch splits its input into provider-sized chunks and paces chunk
// requests with a token-bucket limiter so a whole-corpus indexing run stays
// under the provider's requests-per-minute ceiling. Token and cost usage is
// accumulated across chunks and returned per call; when a client is shared
// across goroutines the injectable UsageMeter accumulates atomically.
//
// # Metadata enrichment
//
// EnrichText renders a section into the text that actually gets embedded,
// prefixed with its type, entity and industry plus a high-performance
// annotation for strong historical content. This deliberately biases the
// embedding space toward metadata-aware retrieval: a query mentioning the
// section type and industry lands closer to sections labeled the same way.
//
// # Errors
//
// Provider failures map to sentinel errors: ErrUnauthorized and
// ErrQuotaExceeded for auth/quota, ErrTransient for network and 5xx
// failures, ErrEmptyInput for malformed input. IsRetryable reports whether
// the calling layer should retry; Retry implements the exponential-backoff
// policy with a per-attempt timeout.
package embedding
