package engine

import (
	"context"
	"reflect"
	"testing"

	"github.com/partnerforge/ragengine/v1/vectorstore"
)

func TestEnrichJobPassThroughWithoutOptIn(t *testing.T) {
	e := newTestEngine(&fakeStore{})
	if !e.Initialize(context.Background()) {
		t.Fatal("Initialize failed")
	}

	job := Job{Entity: "Acme Foundation", Industry: "education"}
	got := e.EnrichJob(context.Background(), job)

	if !reflect.DeepEqual(got, job) {
		t.Errorf("job without opt-in changed:\n got %+v\nwant %+v", got, job)
	}
}

func TestEnrichJobUnchangedWhenStoreUnreachable(t *testing.T) {
	e := newTestEngine(&fakeStore{hybridErr: vectorstore.ErrUnavailable})
	if !e.Initialize(context.Background()) {
		t.Fatal("Initialize failed")
	}

	job := Job{Entity: "Acme Foundation", UseSuggestions: true}
	got := e.EnrichJob(context.Background(), job)

	// Every per-type retrieval fails, so no evidence was gathered. The
	// job must come back exactly as it went in, no empty bundle attached.
	if !reflect.DeepEqual(got, job) {
		t.Errorf("job changed when store was unreachable:\n got %+v\nwant %+v", got, job)
	}
}

func TestEnrichJobUnchangedBeforeInitialize(t *testing.T) {
	e := newTestEngine(&fakeStore{})

	job := Job{Entity: "Acme Foundation", UseSuggestions: true}
	got := e.EnrichJob(context.Background(), job)

	if !reflect.DeepEqual(got, job) {
		t.Errorf("job changed despite engine not ready:\n got %+v\nwant %+v", got, job)
	}
}

func TestEnrichJobFillsSuggestions(t *testing.T) {
	e := newTestEngine(&fakeStore{})
	if !e.Initialize(context.Background()) {
		t.Fatal("Initialize failed")
	}

	job := Job{Entity: "Acme Foundation", UseSuggestions: true}
	got := e.EnrichJob(context.Background(), job)

	if got.Suggestions == nil {
		t.Fatal("Suggestions not filled")
	}
	if len(got.Suggestions.Suggestions) == 0 {
		t.Error("bundle is empty")
	}

	// The caller's fields are untouched.
	if got.Entity != job.Entity || !got.UseSuggestions {
		t.Errorf("caller fields changed: %+v", got)
	}
}

func TestEnrichJobNeverPanics(t *testing.T) {
	// An engine wired with nil collaborators panics internally on use;
	// EnrichJob must swallow that and hand the job back.
	e := New(&fakeEmbedder{}, &fakeStore{}, nil, nil, nil, nopLogger{})
	if !e.Initialize(context.Background()) {
		t.Fatal("Initialize failed")
	}

	job := Job{Entity: "Acme Foundation", UseSuggestions: true}
	got := e.EnrichJob(context.Background(), job)

	if !reflect.DeepEqual(got, job) {
		t.Errorf("job changed after internal panic:\n got %+v\nwant %+v", got, job)
	}
}
