package dnf

import "context"

// Query is one search request against the package universe.
type Query struct {
	// Term is the user's search text.
	Term string
	// InDescriptions widens the match to summaries and descriptions and
	// makes name matching case-insensitive.
	InDescriptions bool
	// Exact requires the whole name to match instead of a substring.
	Exact bool
}

// Handle is one loaded generation of the package universe. Reads are served
// from state captured when the handle was opened, so results are internally
// consistent but go stale once the system changes. Apply mutates the system;
// afterwards the handle should be discarded and a fresh one opened.
//
// Handles are safe for concurrent readers. Callers must not retain a Handle
// beyond the call that granted access to it.
type Handle interface {
	// ListInstalled returns every installed package, ordered by NEVRA.
	ListInstalled(ctx context.Context) ([]Package, error)

	// Search returns the packages matching q, ordered by NEVRA.
	Search(ctx context.Context, q Query) ([]Package, error)

	// Describe returns full metadata for the package identified by nevra.
	// Returns ErrNotFound when nothing matches.
	Describe(ctx context.Context, nevra string) (Package, error)

	// Files lists the files owned by an installed package. Returns
	// ErrNotInstalled for packages that are merely available.
	Files(ctx context.Context, nevra string) ([]string, error)

	// Dependencies returns the relation lists recorded for the package.
	Dependencies(ctx context.Context, nevra string) (Dependencies, error)

	// Changelog returns the package changelog, newest entry first.
	Changelog(ctx context.Context, nevra string) ([]ChangeEntry, error)

	// Apply runs installs and removes as a single transaction. Failures are
	// distinguished: ErrUnresolved when resolution fails, ErrNothingToDo
	// when resolution produces an empty transaction, ErrTransactionFailed
	// when the resolved transaction fails to run. Partial application does
	// not occur.
	Apply(ctx context.Context, installs, removes []string) (TransactionResult, error)

	// Close releases whatever the handle holds. The handle must not be used
	// afterwards.
	Close() error
}

// Engine constructs Handles. Opening one is expensive: repository metadata
// for the whole package universe is loaded into memory. Engines are expected
// to be opened rarely and read from often.
type Engine interface {
	Open(ctx context.Context) (Handle, error)

	// CanApply reports whether the engine is privileged enough to run a
	// package transaction without prompting.
	CanApply() bool
}
