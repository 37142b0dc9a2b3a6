package dnf

import (
	"sort"
	"strings"
)

// Index is an immutable in-memory snapshot of the package universe. It backs
// the read side of a Handle: every search and lookup runs against data
// captured at construction time, never against the live system.
//
// The universe has two overlapping subsets, mirroring how dnf models it:
// installed packages and packages available from enabled repositories.
// Searches run over the available subset; the installed listing over the
// installed one. A package present in both is reported once, with Installed
// set.
type Index struct {
	installed []Package // sorted by NEVRA
	available []Package // sorted by NEVRA
	byNEVRA   map[string]Package
}

// NewIndex builds an index from the installed and available package lists.
// Available packages whose exact NEVRA is also installed get their Installed
// flag set so callers see one coherent view.
func NewIndex(installed, available []Package) *Index {
	ix := &Index{
		byNEVRA: make(map[string]Package, len(installed)+len(available)),
	}

	installedSet := make(map[string]struct{}, len(installed))
	for _, p := range installed {
		p.Installed = true
		key := p.NEVRA()
		if _, ok := installedSet[key]; ok {
			continue
		}
		installedSet[key] = struct{}{}
		ix.installed = append(ix.installed, p)
		ix.byNEVRA[key] = p
	}

	seen := make(map[string]struct{}, len(available))
	for _, p := range available {
		key := p.NEVRA()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := installedSet[key]; ok {
			p.Installed = true
		}
		ix.available = append(ix.available, p)
		// The installed copy wins in lookups: it reflects system state.
		if _, ok := ix.byNEVRA[key]; !ok {
			ix.byNEVRA[key] = p
		}
	}

	sortByNEVRA(ix.installed)
	sortByNEVRA(ix.available)
	return ix
}

func sortByNEVRA(pkgs []Package) {
	sort.Slice(pkgs, func(i, j int) bool {
		return pkgs[i].NEVRA() < pkgs[j].NEVRA()
	})
}

// Len returns the number of distinct packages in the universe.
func (ix *Index) Len() int {
	return len(ix.byNEVRA)
}

// Get looks up a package by NEVRA, preferring the installed copy.
func (ix *Index) Get(nevra string) (Package, bool) {
	p, ok := ix.byNEVRA[nevra]
	return p, ok
}

// Installed returns the installed subset, ordered by NEVRA.
func (ix *Index) Installed() []Package {
	out := make([]Package, len(ix.installed))
	copy(out, ix.installed)
	return out
}

// Search applies q to the available subset and returns matches ordered by
// NEVRA.
//
// The flag combinations behave differently on purpose: plain name search is
// a case-sensitive substring match, Exact narrows it to the whole name, and
// InDescriptions switches both to case-insensitive and widens substring
// matching to description text, which is how users expect prose to match.
func (ix *Index) Search(q Query) []Package {
	match := matcher(q)
	var out []Package
	for _, p := range ix.available {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

func matcher(q Query) func(Package) bool {
	switch {
	case q.InDescriptions && q.Exact:
		term := strings.ToLower(q.Term)
		return func(p Package) bool {
			return strings.ToLower(p.Name) == term
		}
	case q.InDescriptions:
		term := strings.ToLower(q.Term)
		return func(p Package) bool {
			return strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.Description), term)
		}
	case q.Exact:
		return func(p Package) bool {
			return p.Name == q.Term
		}
	default:
		return func(p Package) bool {
			return strings.Contains(p.Name, q.Term)
		}
	}
}
