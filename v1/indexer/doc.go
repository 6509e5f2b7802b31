// Package indexer drives the indexing pipeline: extraction, segmentation,
// embedding and storage, for one document or a whole corpus.
//
// # Flow
//
// IndexDocument extracts positioned text blocks from a source file,
// segments them into typed sections, embeds the enriched text of all
// sections in a single batch call and batch-upserts the resulting points.
//
// IndexCorpus enumerates a CorpusSource and indexes its documents
// sequentially with a fixed inter-document delay. One document failing is
// recorded in the aggregate result and never aborts the run.
//
// Two sources ship with the package: DirectorySource globs a local
// directory, BucketSource lists and downloads objects from S3-compatible
// storage.
package indexer
