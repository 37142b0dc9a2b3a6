package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ErikMN/dnf-ui/internal/dnf"
)

// Key identifies one search. Every flag that changes what a search returns
// is part of the key, and the term is kept case-sensitive, so two searches
// collide only when the engine would have produced identical results.
type Key struct {
	Term           string
	InDescriptions bool
	Exact          bool
}

// KeyFor builds the cache key for a query.
func KeyFor(q dnf.Query) Key {
	return Key{Term: q.Term, InDescriptions: q.InDescriptions, Exact: q.Exact}
}

type resultEntry struct {
	epoch uint64
	pkgs  []dnf.Package
}

// Results remembers recent search results so repeating a search does not
// touch the engine. Entries are tagged with the manager epoch at insertion:
// once the handle is rebuilt, old entries stop being served and fall out,
// which keeps a cached hit from showing pre-transaction installed state.
type Results struct {
	lru *lru.Cache[Key, resultEntry]
}

// DefaultResultCacheSize bounds the cache when the configuration does not.
const DefaultResultCacheSize = 128

// NewResults returns a result cache holding up to size searches. Sizes below
// one fall back to DefaultResultCacheSize.
func NewResults(size int) *Results {
	if size < 1 {
		size = DefaultResultCacheSize
	}
	// lru.New errors only on size < 1, which is handled above.
	c, _ := lru.New[Key, resultEntry](size)
	return &Results{lru: c}
}

// Get returns the cached result for key if one exists at the given epoch.
// An entry from an earlier epoch is evicted on sight and reported as a miss.
func (r *Results) Get(key Key, epoch uint64) ([]dnf.Package, bool) {
	entry, ok := r.lru.Get(key)
	if !ok {
		return nil, false
	}
	if entry.epoch != epoch {
		r.lru.Remove(key)
		return nil, false
	}
	return entry.pkgs, true
}

// Put stores a result computed at the given epoch.
func (r *Results) Put(key Key, epoch uint64, pkgs []dnf.Package) {
	r.lru.Add(key, resultEntry{epoch: epoch, pkgs: pkgs})
}

// Clear drops every entry.
func (r *Results) Clear() {
	r.lru.Purge()
}

// Len returns the number of cached searches.
func (r *Results) Len() int {
	return r.lru.Len()
}
