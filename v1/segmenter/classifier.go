package segmenter

import (
	"regexp"
	"strings"

	"github.com/partnerforge/ragengine/v1/extraction"
	"github.com/partnerforge/ragengine/v1/section"
)

// metricFigure matches figures like "10,000+ students" or "1200 hours".
var metricFigure = regexp.MustCompile(`\b\d[\d,\.]*\+?\s+(students|teachers|schools|hours|partners|participants)\b`)

type classificationRule struct {
	sectionType section.Type
	matches     func(text string) bool
}

// Rules run in order; the first match wins. Keyword sets are deliberately
// narrow so ambiguous pages fall through to later rules: a closing
// call-to-action that mentions "partnership" must still land on CTA, so
// the value-proposition rule only fires on full phrases.
var classificationRules = []classificationRule{
	{
		sectionType: section.ValueProposition,
		matches: anyKeyword(
			"value proposition",
			"why partner",
			"why choose us",
			"we offer",
			"what we offer",
			"unique opportunity",
			"benefits of partnering",
		),
	},
	{
		sectionType: section.ProgramDetails,
		matches: anyKeyword(
			"program",
			"curriculum",
			"course",
			"workshop",
			"training",
			"module",
			"session",
		),
	},
	{
		sectionType: section.Metrics,
		matches: func(text string) bool {
			hasKeyword := anyKeyword("impact", "results", "outcomes", "reach", "growth", "metrics")(text)
			return hasKeyword && metricFigure.MatchString(text)
		},
	},
	{
		sectionType: section.Testimonials,
		matches: func(text string) bool {
			if anyKeyword("testimonial", "what people say", "feedback from", "said about")(text) {
				return true
			}
			return strings.ContainsAny(text, `"“”`)
		},
	},
	{
		sectionType: section.CTA,
		matches: anyKeyword(
			"contact",
			"get started",
			"reach out",
			"next steps",
			"let's talk",
			"schedule a call",
			"join us",
		),
	},
	{
		sectionType: section.About,
		matches: anyKeyword(
			"about us",
			"who we are",
			"our story",
			"our mission",
			"our team",
			"founded in",
		),
	},
}

func anyKeyword(keywords ...string) func(string) bool {
	return func(text string) bool {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}
}

// ClassifySectionType assigns a type to a page of text. The cover check
// runs before the keyword cascade: the first page with an oversized
// heading block is the cover regardless of its wording.
func (s *Segmenter) ClassifySectionType(text string, page int, blocks []extraction.TextBlock) section.Type {
	if page == 1 {
		for _, b := range blocks {
			if b.FontSize > s.cfg.HeadingFontSize {
				return section.Cover
			}
		}
	}

	lowered := strings.ToLower(text)
	for _, rule := range classificationRules {
		if rule.matches(lowered) {
			return rule.sectionType
		}
	}
	return section.ProgramDetails
}
