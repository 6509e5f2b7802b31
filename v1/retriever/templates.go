package retriever

import (
	"fmt"
	"strings"

	"github.com/partnerforge/ragengine/v1/section"
)

// queryTemplate is the per-section-type retrieval recipe: the question the
// semantic query asks and the keywords the hybrid ranker boosts.
type queryTemplate struct {
	question string
	keywords []string
}

var queryTemplates = map[section.Type]queryTemplate{
	section.ValueProposition: {
		question: "what makes this partnership valuable",
		keywords: []string{"value", "benefits", "opportunity", "offer"},
	},
	section.ProgramDetails: {
		question: "what does the program include",
		keywords: []string{"program", "curriculum", "training", "workshop"},
	},
	section.Metrics: {
		question: "what impact has been achieved",
		keywords: []string{"impact", "results", "students", "growth"},
	},
	section.Testimonials: {
		question: "what do partners and participants say",
		keywords: []string{"testimonial", "feedback", "experience"},
	},
	section.CTA: {
		question: "how to get started with the partnership",
		keywords: []string{"contact", "get started", "next steps"},
	},
	section.About: {
		question: "who is the organization and what is its mission",
		keywords: []string{"about", "mission", "team"},
	},
}

// QueryContext describes the partner the suggestions are for.
type QueryContext struct {
	Entity          string `json:"entity"`
	Industry        string `json:"industry"`
	PartnershipType string `json:"partnership_type"`
}

// buildQuery renders the natural-language query for one section type.
// Empty context fields are left out rather than rendered blank.
func buildQuery(t section.Type, qc QueryContext) string {
	tmpl := queryTemplates[t]

	parts := []string{fmt.Sprintf("%s section", strings.ReplaceAll(string(t), "_", " "))}
	if qc.Entity != "" {
		parts = append(parts, fmt.Sprintf("for a partnership with %s", qc.Entity))
	}
	if qc.Industry != "" {
		parts = append(parts, fmt.Sprintf("in the %s industry", qc.Industry))
	}
	if qc.PartnershipType != "" {
		parts = append(parts, fmt.Sprintf("(%s partnership)", qc.PartnershipType))
	}
	parts = append(parts, "- "+tmpl.question)

	return strings.Join(parts, " ")
}
