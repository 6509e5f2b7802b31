package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/partnerforge/ragengine/v1/section"
)

// HybridSearch ranks candidates by semantic similarity plus additive
// keyword, performance and recency boosts:
//
//	finalScore = semanticScore + keywordBoost + performanceBoost + recencyBoost
//
// The store does the heavy lifting: it fetches limit*2 candidates above a
// conservative similarity threshold, with the section-type and
// minimum-performance constraints applied as hard filters (excluded
// candidates never appear). The client then re-ranks the oversampled set
// and truncates to the requested limit.
func (c *Client) HybridSearch(ctx context.Context, params HybridParams) ([]HybridResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if err := c.validateQuery(params.Vector, params.Limit); err != nil {
		return nil, err
	}

	candidates, err := c.Search(ctx, SearchParams{
		Vector:         params.Vector,
		Limit:          params.Limit * oversampleFactor,
		Filter:         hybridFilter(params),
		ScoreThreshold: hybridScoreThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("vectorstore: hybrid candidate fetch failed: %w", err)
	}

	ranked := rankCandidates(candidates, params, time.Now())
	if len(ranked) > params.Limit {
		ranked = ranked[:params.Limit]
	}

	c.logger.Debug("hybrid search ranked", nil, map[string]interface{}{
		"candidates": len(candidates), "returned": len(ranked),
	})
	return ranked, nil
}

// hybridFilter builds the hard store-side filter for a hybrid search.
func hybridFilter(params HybridParams) *FilterSet {
	var conditions []FilterCondition

	if len(params.SectionTypes) > 0 {
		values := make([]string, len(params.SectionTypes))
		for i, t := range params.SectionTypes {
			values[i] = t.String()
		}
		conditions = append(conditions, TextAnyCondition{Key: section.FieldSectionType, Values: values})
	}
	if params.MinPerformanceScore > 0 {
		gte := params.MinPerformanceScore
		conditions = append(conditions, NumericRangeCondition{
			Key:   section.FieldPerformanceScore,
			Value: NumericRange{Gte: &gte},
		})
	}

	if len(conditions) == 0 {
		return nil
	}
	return &FilterSet{Must: &ConditionSet{Conditions: conditions}}
}

// rankCandidates computes the additive final score for every candidate and
// sorts descending. Pure function of its inputs; `now` is passed in so the
// recency boundary is testable.
func rankCandidates(candidates []SearchResult, params HybridParams, now time.Time) []HybridResult {
	ranked := make([]HybridResult, 0, len(candidates))

	for _, cand := range candidates {
		content := asPayloadString(cand.Payload[section.FieldContent])
		perf := asPayloadFloat(cand.Payload[section.FieldPerformanceScore])

		r := HybridResult{
			SearchResult:     cand,
			SemanticScore:    cand.Score,
			KeywordBoost:     keywordBoost(content, params.Keywords),
			PerformanceBoost: perf * performanceBoostWeight,
		}
		if params.BoostRecency {
			if date, ok := payloadDate(cand.Payload); ok {
				r.RecencyBoost = recencyBoost(date, now)
			}
		}
		r.FinalScore = r.SemanticScore + r.KeywordBoost + r.PerformanceBoost + r.RecencyBoost

		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	return ranked
}

// keywordBoost is (matched keywords / total keywords) * 0.2. Matching is
// lowercase substring on both sides so it mirrors the classifier's
// normalization.
func keywordBoost(content string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(content)
	matched := 0
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords)) * keywordBoostWeight
}

// recencyBoost is max(0, 1 - age/365d) * 0.1. A document dated exactly 365
// days ago gets 0; one dated now gets the full 0.1.
func recencyBoost(date time.Time, now time.Time) float64 {
	age := now.Sub(date)
	if age < 0 {
		age = 0
	}
	fraction := 1 - float64(age)/float64(recencyHorizon)
	if fraction < 0 {
		return 0
	}
	return fraction * recencyBoostWeight
}

// payloadDate extracts the document date from a stored payload.
func payloadDate(payload map[string]any) (time.Time, bool) {
	raw := asPayloadString(payload[section.FieldDocumentDate])
	if raw == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
