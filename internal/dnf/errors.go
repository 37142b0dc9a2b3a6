package dnf

import "errors"

var (
	// ErrNotFound reports that no package matches the requested identity.
	ErrNotFound = errors.New("package not found")

	// ErrNotInstalled reports an operation that only applies to installed
	// packages, such as listing files.
	ErrNotInstalled = errors.New("package not installed")

	// ErrUnresolved reports that the transaction could not be resolved:
	// missing packages, conflicts, or broken dependencies.
	ErrUnresolved = errors.New("transaction could not be resolved")

	// ErrNothingToDo reports that resolution produced an empty transaction.
	ErrNothingToDo = errors.New("nothing to do")

	// ErrTransactionFailed reports that a resolved transaction failed while
	// running.
	ErrTransactionFailed = errors.New("transaction failed")
)
