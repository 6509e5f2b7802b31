package vectorstore

import (
	"math"
	"testing"
	"time"

	"github.com/partnerforge/ragengine/v1/section"
)

func candidate(id string, score float64, payload map[string]any) SearchResult {
	return SearchResult{ID: id, Score: score, Payload: payload}
}

func TestRankCandidatesScoreComposition(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	payload := map[string]any{
		section.FieldContent:          "Impact: 10,000 students reached with measurable growth.",
		section.FieldPerformanceScore: 0.8,
		section.FieldDocumentDate:     now.Format(time.RFC3339),
	}

	params := HybridParams{
		Keywords:     []string{"impact", "students", "missing", "absent"},
		BoostRecency: true,
		Limit:        3,
	}

	ranked := rankCandidates([]SearchResult{candidate("a", 0.75, payload)}, params, now)
	if len(ranked) != 1 {
		t.Fatalf("got %d results, want 1", len(ranked))
	}

	r := ranked[0]
	if r.SemanticScore != 0.75 {
		t.Errorf("SemanticScore = %v, want 0.75", r.SemanticScore)
	}
	// 2 of 4 keywords matched.
	if math.Abs(r.KeywordBoost-0.1) > 1e-9 {
		t.Errorf("KeywordBoost = %v, want 0.1", r.KeywordBoost)
	}
	if math.Abs(r.PerformanceBoost-0.12) > 1e-9 {
		t.Errorf("PerformanceBoost = %v, want 0.12", r.PerformanceBoost)
	}
	if math.Abs(r.RecencyBoost-0.1) > 1e-9 {
		t.Errorf("RecencyBoost = %v, want 0.1", r.RecencyBoost)
	}

	wantFinal := 0.75 + 0.1 + 0.12 + 0.1
	if math.Abs(r.FinalScore-wantFinal) > 1e-9 {
		t.Errorf("FinalScore = %v, want %v", r.FinalScore, wantFinal)
	}
}

func TestRankCandidatesMonotonicity(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	base := map[string]any{
		section.FieldContent:          "plain content",
		section.FieldPerformanceScore: 0.5,
	}
	params := HybridParams{Keywords: []string{"impact"}, BoostRecency: true, Limit: 10}

	score := func(payload map[string]any, semantic float64) float64 {
		ranked := rankCandidates([]SearchResult{candidate("x", semantic, payload)}, params, now)
		return ranked[0].FinalScore
	}

	baseline := score(base, 0.7)

	// Raising any single additive term never lowers the final score.
	if score(base, 0.8) <= baseline {
		t.Error("higher semantic score must raise the final score")
	}

	withKeyword := map[string]any{
		section.FieldContent:          "impact content",
		section.FieldPerformanceScore: 0.5,
	}
	if score(withKeyword, 0.7) <= baseline {
		t.Error("a keyword match must raise the final score")
	}

	withPerf := map[string]any{
		section.FieldContent:          "plain content",
		section.FieldPerformanceScore: 0.9,
	}
	if score(withPerf, 0.7) <= baseline {
		t.Error("a higher performance score must raise the final score")
	}

	withDate := map[string]any{
		section.FieldContent:          "plain content",
		section.FieldPerformanceScore: 0.5,
		section.FieldDocumentDate:     now.AddDate(0, -1, 0).Format(time.RFC3339),
	}
	if score(withDate, 0.7) <= baseline {
		t.Error("a recent date must raise the final score")
	}
}

func TestRankCandidatesSortsDescending(t *testing.T) {
	now := time.Now()
	results := rankCandidates([]SearchResult{
		candidate("low", 0.6, map[string]any{section.FieldContent: "x"}),
		candidate("high", 0.9, map[string]any{section.FieldContent: "x"}),
		candidate("mid", 0.7, map[string]any{section.FieldContent: "x"}),
	}, HybridParams{Limit: 3}, now)

	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if results[i].ID != want {
			t.Errorf("position %d = %q, want %q", i, results[i].ID, want)
		}
	}
}

func TestKeywordBoost(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		keywords []string
		want     float64
	}{
		{"no keywords", "anything", nil, 0},
		{"no matches", "unrelated text", []string{"impact"}, 0},
		{"all match", "big impact on student growth", []string{"impact", "growth"}, 0.2},
		{"half match", "big impact here", []string{"impact", "growth"}, 0.1},
		{"case insensitive", "IMPACT report", []string{"impact"}, 0.2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := keywordBoost(tc.content, tc.keywords)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("keywordBoost = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRecencyBoostBoundaries(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// Dated today: the full boost.
	if got := recencyBoost(now, now); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("boost for today = %v, want 0.1", got)
	}

	// Exactly 365 days old: zero.
	if got := recencyBoost(now.Add(-recencyHorizon), now); got != 0 {
		t.Errorf("boost at horizon = %v, want 0", got)
	}

	// Older than the horizon stays zero, never negative.
	if got := recencyBoost(now.AddDate(-2, 0, 0), now); got != 0 {
		t.Errorf("boost past horizon = %v, want 0", got)
	}

	// Future dates clamp to the full boost.
	if got := recencyBoost(now.AddDate(0, 1, 0), now); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("boost for future date = %v, want 0.1", got)
	}

	// Halfway through the horizon: half the boost.
	if got := recencyBoost(now.Add(-recencyHorizon/2), now); math.Abs(got-0.05) > 1e-9 {
		t.Errorf("boost at half horizon = %v, want 0.05", got)
	}
}

func TestHybridFilter(t *testing.T) {
	// No constraints: no filter at all.
	if f := hybridFilter(HybridParams{}); f != nil {
		t.Errorf("expected nil filter, got %+v", f)
	}

	f := hybridFilter(HybridParams{
		SectionTypes:        []section.Type{section.Metrics, section.CTA},
		MinPerformanceScore: 0.6,
	})
	if f == nil || f.Must == nil {
		t.Fatal("expected a must clause")
	}
	if len(f.Must.Conditions) != 2 {
		t.Fatalf("got %d conditions, want 2", len(f.Must.Conditions))
	}

	types, ok := f.Must.Conditions[0].(TextAnyCondition)
	if !ok || types.Key != section.FieldSectionType || len(types.Values) != 2 {
		t.Errorf("unexpected type condition: %+v", f.Must.Conditions[0])
	}
	nr, ok := f.Must.Conditions[1].(NumericRangeCondition)
	if !ok || nr.Key != section.FieldPerformanceScore || nr.Value.Gte == nil || *nr.Value.Gte != 0.6 {
		t.Errorf("unexpected range condition: %+v", f.Must.Conditions[1])
	}
}
