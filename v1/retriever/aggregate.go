package retriever

import (
	"sort"
	"strings"

	"github.com/partnerforge/ragengine/v1/section"
)

// Usage tiers map overall confidence to editorial guidance.
const (
	TierDirect      = "use directly with minor edits"
	TierInspiration = "use as inspiration"
	TierReference   = "use only as loose reference"
)

// Attribution points a suggestion back at the section it came from.
// Score is the ranking score of this retrieval; PerformanceScore is the
// stored quality label of the source document.
type Attribution struct {
	Entity           string  `json:"entity"`
	FileName         string  `json:"file_name,omitempty"`
	Page             int     `json:"page,omitempty"`
	Score            float64 `json:"score"`
	PerformanceScore float64 `json:"performance_score"`
}

// Suggestion is the aggregated recommendation for one section type.
type Suggestion struct {
	SectionType  section.Type  `json:"section_type"`
	Recommended  string        `json:"recommended"`
	Alternatives []string      `json:"alternatives,omitempty"`
	Confidence   float64       `json:"confidence"`
	Sources      []Attribution `json:"sources"`
}

// SuggestionBundle is the final retrieval product: one suggestion per
// section type that produced results, plus an overall confidence and tier.
type SuggestionBundle struct {
	Suggestions       map[section.Type]Suggestion `json:"suggestions"`
	OverallConfidence float64                     `json:"overall_confidence"`
	UsageTier         string                      `json:"usage_tier"`
}

// Aggregate folds per-type results into a SuggestionBundle. Types with no
// results are skipped; an empty input yields an empty bundle with the
// lowest tier.
func (r *Retriever) Aggregate(perType map[section.Type]TypeResult) SuggestionBundle {
	bundle := SuggestionBundle{
		Suggestions: make(map[section.Type]Suggestion, len(perType)),
	}

	var confidenceSum float64
	var confidenceCount int
	for t, result := range perType {
		if len(result.Results) == 0 {
			continue
		}

		suggestion := Suggestion{
			SectionType: t,
			Recommended: clipToSentence(content(result.Results[0].Payload), r.cfg.MaxSnippetChars),
			Confidence:  result.Confidence,
		}
		for _, res := range result.Results[1:] {
			suggestion.Alternatives = append(suggestion.Alternatives,
				clipToSentence(content(res.Payload), r.cfg.MaxSnippetChars))
		}
		for _, res := range result.Results {
			suggestion.Sources = append(suggestion.Sources, attribution(res.Payload, res.FinalScore))
		}

		bundle.Suggestions[t] = suggestion
		confidenceSum += result.Confidence
		confidenceCount++
	}

	if confidenceCount > 0 {
		bundle.OverallConfidence = confidenceSum / float64(confidenceCount)
	}
	bundle.UsageTier = usageTier(bundle.OverallConfidence)
	return bundle
}

// SortedTypes returns the bundle's section types ordered by descending
// confidence, for stable presentation.
func (b SuggestionBundle) SortedTypes() []section.Type {
	types := make([]section.Type, 0, len(b.Suggestions))
	for t := range b.Suggestions {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		si, sj := b.Suggestions[types[i]], b.Suggestions[types[j]]
		if si.Confidence != sj.Confidence {
			return si.Confidence > sj.Confidence
		}
		return types[i] < types[j]
	})
	return types
}

func usageTier(confidence float64) string {
	switch {
	case confidence >= 0.85:
		return TierDirect
	case confidence >= 0.70:
		return TierInspiration
	default:
		return TierReference
	}
}

// clipToSentence truncates text to at most max characters, preferring the
// last sentence boundary before the cut; when no boundary exists it falls
// back to the last word boundary.
func clipToSentence(text string, max int) string {
	text = strings.TrimSpace(text)
	if max <= 0 || len(text) <= max {
		return text
	}

	cut := text[:max]
	boundary := -1
	for _, punct := range []string{". ", "! ", "? ", ".\n", "!\n", "?\n"} {
		if idx := strings.LastIndex(cut, punct); idx > boundary {
			boundary = idx
		}
	}
	if boundary > 0 {
		return strings.TrimSpace(cut[:boundary+1])
	}

	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}

func content(payload map[string]any) string {
	s, _ := payload[section.FieldContent].(string)
	return s
}

func attribution(payload map[string]any, score float64) Attribution {
	a := Attribution{Score: score}
	if entity, ok := payload[section.FieldEntity].(string); ok {
		a.Entity = entity
	}
	switch perf := payload[section.FieldPerformanceScore].(type) {
	case float64:
		a.PerformanceScore = perf
	case float32:
		a.PerformanceScore = float64(perf)
	case int:
		a.PerformanceScore = float64(perf)
	}
	if meta, ok := payload[section.FieldMetadata].(map[string]any); ok {
		if name, ok := meta["fileName"].(string); ok {
			a.FileName = name
		}
		switch page := meta["page"].(type) {
		case float64:
			a.Page = int(page)
		case int64:
			a.Page = int(page)
		case int:
			a.Page = page
		}
	}
	return a
}
