// Package ledger stages install and remove actions until the user applies
// them as one transaction.
//
// The ledger belongs to the coordinating thread alone. Workers get their
// inputs from Snapshot, which copies, so no lock is needed anywhere here.
package ledger

// Kind is the action staged for a package.
type Kind int

const (
	// Install stages the package for installation.
	Install Kind = iota + 1
	// Remove stages the package for removal.
	Remove
)

func (k Kind) String() string {
	switch k {
	case Install:
		return "install"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// Entry is one staged action.
type Entry struct {
	NEVRA string
	Kind  Kind
}

// Ledger holds at most one staged action per NEVRA, in staging order.
//
// The per-package state machine is small: toggling the staged kind again
// unstages it, toggling the opposite kind replaces the entry directly
// without passing through unstaged, and the replacement keeps the entry's
// position.
type Ledger struct {
	order []string
	kinds map[string]Kind
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{kinds: make(map[string]Kind)}
}

// ToggleInstall stages nevra for install, unstages it if install is already
// staged, or replaces a staged remove.
func (l *Ledger) ToggleInstall(nevra string) {
	l.toggle(nevra, Install)
}

// ToggleRemove stages nevra for removal, unstages it if removal is already
// staged, or replaces a staged install.
func (l *Ledger) ToggleRemove(nevra string) {
	l.toggle(nevra, Remove)
}

func (l *Ledger) toggle(nevra string, kind Kind) {
	current, staged := l.kinds[nevra]
	switch {
	case !staged:
		l.kinds[nevra] = kind
		l.order = append(l.order, nevra)
	case current == kind:
		delete(l.kinds, nevra)
		l.drop(nevra)
	default:
		l.kinds[nevra] = kind
	}
}

func (l *Ledger) drop(nevra string) {
	for i, n := range l.order {
		if n == nevra {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}

// Kind returns the staged action for nevra, if any.
func (l *Ledger) Kind(nevra string) (Kind, bool) {
	k, ok := l.kinds[nevra]
	return k, ok
}

// Len returns the number of staged actions.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Empty reports whether nothing is staged.
func (l *Ledger) Empty() bool {
	return len(l.order) == 0
}

// Entries returns the staged actions in staging order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, nevra := range l.order {
		out = append(out, Entry{NEVRA: nevra, Kind: l.kinds[nevra]})
	}
	return out
}

// Snapshot copies the staged actions into install and remove lists, both in
// staging order, for handing to a transaction worker.
func (l *Ledger) Snapshot() (installs, removes []string) {
	for _, nevra := range l.order {
		switch l.kinds[nevra] {
		case Install:
			installs = append(installs, nevra)
		case Remove:
			removes = append(removes, nevra)
		}
	}
	return installs, removes
}

// Clear unstages everything. Called only when a transaction fully succeeds.
func (l *Ledger) Clear() {
	l.order = l.order[:0]
	l.kinds = make(map[string]Kind)
}
