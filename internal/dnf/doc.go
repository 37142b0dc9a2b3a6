// Package dnf defines the package-manager engine contract and its two
// implementations: the production engine that drives the system dnf and rpm
// binaries, and the pure in-memory Index both engines build their reads on.
//
// # Overview
//
// Everything above this package talks to the package manager through two
// small interfaces. Engine opens Handles; a Handle is one loaded generation
// of the package universe that answers queries and runs transactions.
// Neither interface leaks how the data was obtained, so tests substitute an
// in-memory engine (see the dnftest subpackage) without touching any other
// layer.
//
// # The expensive Open
//
// Opening a Handle loads repository metadata for the entire universe,
// installed and available, into an Index. That can take seconds on a cold
// repo cache, which is exactly why the rest of the program caches a single
// Handle and guards it with a readers-writer lock instead of reopening per
// query. Once loaded, listing and searching are pure in-memory operations.
//
// # Search semantics
//
// Search runs over the available subset with four distinct modes:
//
//	name contains term         (case-sensitive)           default
//	name equals term           (case-sensitive)           Exact
//	name or description        (case-insensitive)         InDescriptions
//	name equals term           (case-insensitive)         both
//
// The modes keep two properties callers rely on: exact results are a subset
// of contains results, and description results are a superset of name-only
// results for the same term.
//
// # Transactions
//
// Apply runs all staged installs and removes as a single transaction via a
// dnf shell script, so dependency resolution sees the complete picture and
// partial application cannot occur. Failures come back as one of three
// sentinel errors: ErrUnresolved, ErrNothingToDo, or ErrTransactionFailed.
// Callers branch on errors.Is instead of parsing messages.
package dnf
