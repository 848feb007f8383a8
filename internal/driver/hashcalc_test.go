package driver

import (
	"testing"

	"tint/internal/project"
)

func digest(b byte) project.Digest {
	var d project.Digest
	for i := range d {
		d[i] = b
	}
	return d
}

func TestCacheKeyDeterministic(t *testing.T) {
	opts := Options{RuntimeSemantics: true, MaxDiagnostics: 10}
	if cacheKey(digest('a'), opts) != cacheKey(digest('a'), opts) {
		t.Fatalf("cache key is not deterministic")
	}
	if cacheKey(digest('a'), opts) == cacheKey(digest('b'), opts) {
		t.Fatalf("content change must change the key")
	}
}

func TestCacheKeyOptions(t *testing.T) {
	base := cacheKey(digest('a'), Options{})

	if got := cacheKey(digest('a'), Options{RuntimeSemantics: true}); got == base {
		t.Fatalf("runtime semantics must change the key")
	}
	if got := cacheKey(digest('a'), Options{MaxDiagnostics: 5}); got == base {
		t.Fatalf("max diagnostics must change the key")
	}
	// 0 falls back to the default
	if got := cacheKey(digest('a'), Options{MaxDiagnostics: DefaultMaxDiagnostics}); got != base {
		t.Fatalf("default max diagnostics should match the zero value")
	}
	// applied after the cache lookup
	if got := cacheKey(digest('a'), Options{WarningsAsErrors: true, EnableTimings: true, Jobs: 4}); got != base {
		t.Fatalf("presentation options must not change the key")
	}
}
