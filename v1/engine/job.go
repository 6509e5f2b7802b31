package engine

import (
	"context"

	"github.com/partnerforge/ragengine/v1/retriever"
)

// Job is a caller-owned work item the engine can enrich with content
// suggestions. The engine never interprets the caller's fields, it only
// fills Suggestions when asked to.
type Job struct {
	Entity          string `json:"entity"`
	Industry        string `json:"industry,omitempty"`
	PartnershipType string `json:"partnership_type,omitempty"`

	// UseSuggestions is the explicit opt-in. Without it EnrichJob is a
	// pass-through.
	UseSuggestions bool `json:"use_suggestions,omitempty"`

	// Suggestions is filled by EnrichJob on success, nil otherwise.
	Suggestions *retriever.SuggestionBundle `json:"suggestions,omitempty"`
}

// EnrichJob merges a suggestion bundle into job when it opts in via
// UseSuggestions. On any internal failure the input comes back unchanged;
// EnrichJob never panics and never returns an error.
func (e *Engine) EnrichJob(ctx context.Context, job Job) (enriched Job) {
	enriched = job
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("job enrichment panicked, returning job unchanged", nil, map[string]interface{}{
				"panic": r,
			})
			enriched = job
		}
	}()

	if !job.UseSuggestions {
		return job
	}

	report := e.GetSuggestions(ctx, retriever.QueryContext{
		Entity:          job.Entity,
		Industry:        job.Industry,
		PartnershipType: job.PartnershipType,
	})
	if !report.Success {
		e.logger.Warn("job enrichment skipped, suggestions unavailable", nil, map[string]interface{}{
			"entity": job.Entity,
			"cause":  report.Error,
		})
		return job
	}

	bundle := report.Bundle
	if len(bundle.Suggestions) == 0 {
		e.logger.Warn("job enrichment skipped, no suggestions found", nil, map[string]interface{}{
			"entity": job.Entity,
		})
		return job
	}

	enriched.Suggestions = &bundle
	return enriched
}
