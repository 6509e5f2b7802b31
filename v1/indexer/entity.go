package indexer

import (
	"path/filepath"
	"regexp"
	"strings"
)

// noiseTokens are filename tokens that never belong to an organization
// name. Matching is case-insensitive after tokenization.
var noiseTokens = map[string]struct{}{
	"partnership": {},
	"partner":     {},
	"proposal":    {},
	"deck":        {},
	"pitch":       {},
	"overview":    {},
	"final":       {},
	"draft":       {},
	"copy":        {},
}

var (
	tokenSeparators = regexp.MustCompile(`[_\-\s]+`)
	versionToken    = regexp.MustCompile(`^v\d+$`)
	yearToken       = regexp.MustCompile(`^(19|20)\d\d$`)
)

// DeriveEntity produces a stable organization name from a source
// filename: the extension and known noise tokens (document-type words,
// version markers, years) are stripped and the rest is title-cased. The
// same filename always yields the same entity, so re-indexing a document
// maps onto the same point ids.
func DeriveEntity(fileName string) string {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))

	kept := make([]string, 0, 4)
	for _, tok := range tokenSeparators.Split(base, -1) {
		if tok == "" {
			continue
		}
		lowered := strings.ToLower(tok)
		if _, noise := noiseTokens[lowered]; noise {
			continue
		}
		if versionToken.MatchString(lowered) || yearToken.MatchString(lowered) {
			continue
		}
		kept = append(kept, titleCase(lowered))
	}

	if len(kept) == 0 {
		return "Unknown"
	}
	return strings.Join(kept, " ")
}

func titleCase(tok string) string {
	r := []rune(tok)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
