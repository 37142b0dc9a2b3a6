package cache

import (
	"sync"

	"github.com/ErikMN/dnf-ui/internal/dnf"
)

// InstalledSet answers "is this installed?" for highlighting and for
// deciding which actions a selected package offers. Lookups happen on every
// render, so they must be cheap and never wait on the engine.
//
// The set holds both exact NEVRAs and bare names: the exact form tells
// whether this very build is installed, the name form whether any build of
// the package is.
type InstalledSet struct {
	mu     sync.RWMutex
	nevras map[string]struct{}
	names  map[string]struct{}
}

// NewInstalledSet returns an empty set.
func NewInstalledSet() *InstalledSet {
	return &InstalledSet{
		nevras: make(map[string]struct{}),
		names:  make(map[string]struct{}),
	}
}

// Replace swaps in a new installed list in one step. Both maps are built
// outside the lock, so readers either see the complete old set or the
// complete new one, never a half-filled mix.
func (s *InstalledSet) Replace(pkgs []dnf.Package) {
	nevras := make(map[string]struct{}, len(pkgs))
	names := make(map[string]struct{}, len(pkgs))
	for _, p := range pkgs {
		nevras[p.NEVRA()] = struct{}{}
		names[p.Name] = struct{}{}
	}

	s.mu.Lock()
	s.nevras = nevras
	s.names = names
	s.mu.Unlock()
}

// HasNEVRA reports whether this exact build is installed.
func (s *InstalledSet) HasNEVRA(nevra string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nevras[nevra]
	return ok
}

// HasName reports whether any build of the named package is installed.
func (s *InstalledSet) HasName(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[name]
	return ok
}

// Len returns the number of installed builds.
func (s *InstalledSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nevras)
}
