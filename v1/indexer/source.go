package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
)

// CorpusSource enumerates the documents of a corpus and materializes them
// as local files for the extraction collaborator.
type CorpusSource interface {
	// List returns the logical document names of the corpus.
	List(ctx context.Context) ([]string, error)

	// Fetch resolves a logical name to a local file path. The returned
	// cleanup func releases any temporary copy and is always safe to call.
	Fetch(ctx context.Context, name string) (string, func(), error)
}

// DirectorySource serves documents straight from a local directory.
type DirectorySource struct {
	Dir     string
	Pattern string
}

// NewDirectorySource creates a source over dir. An empty pattern falls
// back to the package default.
func NewDirectorySource(dir, pattern string) *DirectorySource {
	if pattern == "" {
		pattern = DefaultConfig().FilePattern
	}
	return &DirectorySource{Dir: dir, Pattern: pattern}
}

func (d *DirectorySource) List(_ context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(d.Dir, d.Pattern))
	if err != nil {
		return nil, fmt.Errorf("listing corpus directory %q: %w", d.Dir, err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	return names, nil
}

func (d *DirectorySource) Fetch(_ context.Context, name string) (string, func(), error) {
	path := filepath.Join(d.Dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", func() {}, fmt.Errorf("resolving corpus file %q: %w", name, err)
	}
	return path, func() {}, nil
}

// BucketSource serves documents from an S3-compatible bucket. Objects are
// downloaded to a temp file on Fetch and removed by the cleanup func.
type BucketSource struct {
	client *minio.Client
	bucket string
	prefix string
	suffix string
}

// NewBucketSource creates a source over bucket. prefix narrows the
// listing; only objects ending in suffix (default ".pdf") are returned.
func NewBucketSource(client *minio.Client, bucket, prefix, suffix string) *BucketSource {
	if suffix == "" {
		suffix = ".pdf"
	}
	return &BucketSource{client: client, bucket: bucket, prefix: prefix, suffix: suffix}
}

func (b *BucketSource) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{
		Prefix:    b.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("listing bucket %q: %w", b.bucket, obj.Err)
		}
		if strings.HasSuffix(strings.ToLower(obj.Key), b.suffix) {
			names = append(names, obj.Key)
		}
	}
	return names, nil
}

func (b *BucketSource) Fetch(ctx context.Context, name string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "corpus-*"+filepath.Ext(name))
	if err != nil {
		return "", func() {}, fmt.Errorf("creating temp file for %q: %w", name, err)
	}
	path := tmp.Name()
	_ = tmp.Close()

	cleanup := func() { _ = os.Remove(path) }

	if err := b.client.FGetObject(ctx, b.bucket, name, path, minio.GetObjectOptions{}); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("downloading object %q: %w", name, err)
	}
	return path, cleanup, nil
}
