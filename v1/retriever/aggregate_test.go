package retriever

import (
	"strings"
	"testing"

	"github.com/partnerforge/ragengine/v1/section"
	"github.com/partnerforge/ragengine/v1/vectorstore"
)

// resultsWith builds one hybrid result per content string.
func resultsWith(contents ...string) []vectorstore.HybridResult {
	out := make([]vectorstore.HybridResult, len(contents))
	for i, c := range contents {
		out[i] = hybridResult(section.Metrics, c, 0.8)
	}
	return out
}

func TestAggregateBuildsBundle(t *testing.T) {
	ret, _ := newTestRetriever(&fakeStore{})

	perType := map[section.Type]TypeResult{
		section.Metrics: {
			SectionType: section.Metrics,
			Confidence:  0.9,
			Results: resultsWith(
				"10,000 students reached. Full details follow.",
				"450 teachers trained. More below.",
			),
		},
		section.CTA: {
			SectionType: section.CTA,
			Confidence:  0.8,
			Results:     resultsWith("Contact us to get started."),
		},
		section.About: {
			SectionType: section.About,
			Confidence:  0.2,
			Results:     nil, // no hits: dropped from the bundle
		},
	}

	bundle := ret.Aggregate(perType)

	if len(bundle.Suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(bundle.Suggestions))
	}
	if _, present := bundle.Suggestions[section.About]; present {
		t.Error("empty type must be dropped")
	}

	m := bundle.Suggestions[section.Metrics]
	if !strings.HasPrefix(m.Recommended, "10,000 students reached.") {
		t.Errorf("Recommended = %q", m.Recommended)
	}
	if len(m.Alternatives) != 1 {
		t.Errorf("got %d alternatives, want 1", len(m.Alternatives))
	}
	if len(m.Sources) != 2 {
		t.Errorf("got %d sources, want 2", len(m.Sources))
	}
	if m.Sources[0].Entity != "Acme Foundation" || m.Sources[0].FileName != "acme.pdf" || m.Sources[0].Page != 3 {
		t.Errorf("attribution = %+v", m.Sources[0])
	}
	// The source's stored quality label rides along next to the
	// retrieval score.
	if m.Sources[0].PerformanceScore != 0.9 {
		t.Errorf("PerformanceScore = %v, want 0.9", m.Sources[0].PerformanceScore)
	}

	// Overall confidence averages only the types with results.
	want := (0.9 + 0.8) / 2
	if diff := bundle.OverallConfidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("OverallConfidence = %v, want %v", bundle.OverallConfidence, want)
	}
	if bundle.UsageTier != TierDirect {
		t.Errorf("UsageTier = %q, want %q", bundle.UsageTier, TierDirect)
	}

	order := bundle.SortedTypes()
	if order[0] != section.Metrics || order[1] != section.CTA {
		t.Errorf("SortedTypes = %v", order)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	ret, _ := newTestRetriever(&fakeStore{})

	bundle := ret.Aggregate(nil)
	if len(bundle.Suggestions) != 0 {
		t.Errorf("got %d suggestions from empty input", len(bundle.Suggestions))
	}
	if bundle.OverallConfidence != 0 {
		t.Errorf("OverallConfidence = %v, want 0", bundle.OverallConfidence)
	}
	if bundle.UsageTier != TierReference {
		t.Errorf("UsageTier = %q, want %q", bundle.UsageTier, TierReference)
	}
}

func TestUsageTierBoundaries(t *testing.T) {
	cases := []struct {
		confidence float64
		want       string
	}{
		{0.95, TierDirect},
		{0.85, TierDirect},
		{0.849999, TierInspiration},
		{0.70, TierInspiration},
		{0.699999, TierReference},
		{0.0, TierReference},
	}

	for _, tc := range cases {
		if got := usageTier(tc.confidence); got != tc.want {
			t.Errorf("usageTier(%v) = %q, want %q", tc.confidence, got, tc.want)
		}
	}
}

func TestClipToSentence(t *testing.T) {
	cases := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"short text untouched", "Short sentence.", 100, "Short sentence."},
		{"clip at sentence boundary", "First point. Second point. Third point runs long.", 30, "First point. Second point."},
		{"no boundary falls back to word", "one two three four five six", 14, "one two three..."},
		{"zero max returns everything", "anything at all", 0, "anything at all"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clipToSentence(tc.text, tc.max); got != tc.want {
				t.Errorf("clipToSentence = %q, want %q", got, tc.want)
			}
		})
	}
}
