// Package engine is the top-level façade over the suggestion pipeline.
//
// # Lifecycle
//
// An Engine moves Uninitialized -> Ready on Initialize, briefly through
// Indexing or Retrieving while an operation runs, and ends Closed. Closed
// is terminal.
//
// # Fail-safe contract
//
// Every operation degrades instead of propagating: Initialize returns
// false rather than an error, IndexCorpus and GetSuggestions return typed
// results with Success unset, and EnrichJob hands back the caller's job
// untouched on any internal failure. Callers embedding the engine in a
// larger workflow never have to guard against it.
package engine
