package dnf

import (
	"fmt"
	"strings"
	"time"
)

// Package describes one package as the engine knows it, either installed on
// the system or available from an enabled repository.
type Package struct {
	Name        string
	Epoch       string
	Version     string
	Release     string
	Arch        string
	Repo        string
	Summary     string
	Description string
	Installed   bool
}

// NEVRA renders the canonical package identity:
// name-[epoch:]version-release.arch. A zero epoch is omitted.
func (p Package) NEVRA() string {
	evr := p.Version
	if p.Epoch != "" && p.Epoch != "0" {
		evr = p.Epoch + ":" + p.Version
	}
	return p.Name + "-" + evr + "-" + p.Release + "." + p.Arch
}

// String returns the NEVRA so packages log and print usefully.
func (p Package) String() string {
	return p.NEVRA()
}

// ParseNEVRA splits name-[epoch:]version-release.arch back into its parts.
// Package names routinely contain dashes, so the string is taken apart from
// the right: the arch follows the last dot, the release the last dash, the
// version the dash before that. Whatever remains is the name.
func ParseNEVRA(s string) (Package, error) {
	dot := strings.LastIndex(s, ".")
	if dot < 0 {
		return Package{}, fmt.Errorf("parse nevra %q: missing arch", s)
	}
	arch := s[dot+1:]
	rest := s[:dot]

	relDash := strings.LastIndex(rest, "-")
	if relDash < 0 {
		return Package{}, fmt.Errorf("parse nevra %q: missing release", s)
	}
	release := rest[relDash+1:]
	rest = rest[:relDash]

	verDash := strings.LastIndex(rest, "-")
	if verDash < 0 {
		return Package{}, fmt.Errorf("parse nevra %q: missing version", s)
	}
	version := rest[verDash+1:]
	name := rest[:verDash]

	var epoch string
	if colon := strings.IndexByte(version, ':'); colon >= 0 {
		epoch, version = version[:colon], version[colon+1:]
	}

	if name == "" || version == "" || release == "" || arch == "" {
		return Package{}, fmt.Errorf("parse nevra %q: empty component", s)
	}

	return Package{
		Name:    name,
		Epoch:   epoch,
		Version: version,
		Release: release,
		Arch:    arch,
	}, nil
}

// Dependencies groups the relation lists shown for one package.
type Dependencies struct {
	Requires  []string
	Provides  []string
	Conflicts []string
	Obsoletes []string
}

// Empty reports whether no relations were recorded at all.
func (d Dependencies) Empty() bool {
	return len(d.Requires) == 0 && len(d.Provides) == 0 &&
		len(d.Conflicts) == 0 && len(d.Obsoletes) == 0
}

// ChangeEntry is a single changelog record for a package.
type ChangeEntry struct {
	Date   time.Time
	Author string
	Text   string
}

// TransactionResult reports what a completed transaction did.
type TransactionResult struct {
	Installed []string
	Removed   []string
}
