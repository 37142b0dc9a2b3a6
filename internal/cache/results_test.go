package cache

import (
	"testing"

	"github.com/ErikMN/dnf-ui/internal/dnf"
)

func TestResultsEpochTagging(t *testing.T) {
	r := NewResults(8)
	key := KeyFor(dnf.Query{Term: "htop"})
	pkgs := []dnf.Package{{Name: "htop", Version: "3.3.0", Release: "2.fc40", Arch: "x86_64"}}

	r.Put(key, 0, pkgs)

	got, ok := r.Get(key, 0)
	if !ok || len(got) != 1 {
		t.Fatalf("Get at the insertion epoch missed (ok=%v, len=%d)", ok, len(got))
	}

	// The handle was rebuilt; the cached result no longer reflects reality.
	if _, ok := r.Get(key, 1); ok {
		t.Fatal("Get at a later epoch served a stale entry")
	}
	// The stale entry is evicted, not just skipped.
	if _, ok := r.Get(key, 0); ok {
		t.Fatal("stale entry survived its eviction")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after eviction", r.Len())
	}
}

func TestResultsKeyEncodesEveryFlag(t *testing.T) {
	r := NewResults(8)
	term := "bash"

	queries := []dnf.Query{
		{Term: term},
		{Term: term, Exact: true},
		{Term: term, InDescriptions: true},
		{Term: term, InDescriptions: true, Exact: true},
	}
	for i, q := range queries {
		r.Put(KeyFor(q), 0, []dnf.Package{{Name: term, Version: "1", Release: string(rune('a' + i)), Arch: "x86_64"}})
	}

	if r.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 distinct entries for 4 flag combinations", r.Len())
	}
	for i, q := range queries {
		got, ok := r.Get(KeyFor(q), 0)
		if !ok {
			t.Fatalf("query %d missed", i)
		}
		if want := string(rune('a' + i)); got[0].Release != want {
			t.Errorf("query %d returned entry %q, want %q", i, got[0].Release, want)
		}
	}
}

func TestResultsTermIsCaseSensitive(t *testing.T) {
	r := NewResults(8)
	r.Put(KeyFor(dnf.Query{Term: "bash"}), 0, []dnf.Package{{Name: "bash"}})

	if _, ok := r.Get(KeyFor(dnf.Query{Term: "Bash"}), 0); ok {
		t.Error("differently-cased term hit the same entry")
	}
}

func TestResultsClear(t *testing.T) {
	r := NewResults(8)
	r.Put(KeyFor(dnf.Query{Term: "a"}), 0, nil)
	r.Put(KeyFor(dnf.Query{Term: "b"}), 0, nil)

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", r.Len())
	}
	if _, ok := r.Get(KeyFor(dnf.Query{Term: "a"}), 0); ok {
		t.Error("entry survived Clear")
	}
}

func TestResultsEvictsLeastRecentlyUsed(t *testing.T) {
	r := NewResults(2)
	a := KeyFor(dnf.Query{Term: "a"})
	b := KeyFor(dnf.Query{Term: "b"})
	c := KeyFor(dnf.Query{Term: "c"})

	r.Put(a, 0, nil)
	r.Put(b, 0, nil)
	r.Put(c, 0, nil)

	if _, ok := r.Get(a, 0); ok {
		t.Error("oldest entry survived past the cache bound")
	}
	if _, ok := r.Get(b, 0); !ok {
		t.Error("recent entry evicted")
	}
	if _, ok := r.Get(c, 0); !ok {
		t.Error("newest entry evicted")
	}
}

func TestResultsSizeFallback(t *testing.T) {
	r := NewResults(0)
	r.Put(KeyFor(dnf.Query{Term: "a"}), 0, nil)
	if _, ok := r.Get(KeyFor(dnf.Query{Term: "a"}), 0); !ok {
		t.Error("cache built with a non-positive size is unusable")
	}
}
