// Package retriever turns a partner profile into ranked content
// suggestions.
//
// # Flow
//
// RetrieveForQuery fans out over every retrievable section type: each type
// gets a natural-language query built from a type-specific template, the
// query is embedded and run through hybrid search with the template's
// keyword list, and the top results are kept. Types run concurrently and
// fail independently: one type erroring never loses the others.
//
// Aggregate folds the per-type results into a SuggestionBundle: one
// recommendation per type clipped at a sentence boundary, alternatives,
// source attributions and an overall usage tier.
//
// PlainSearch and FindSimilar bypass the per-type workflow for diagnostics
// and ad hoc querying.
package retriever
