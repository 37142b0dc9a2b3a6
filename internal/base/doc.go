// Package base guards the one expensive resource in the application: the
// engine handle holding the loaded package universe.
//
// # Overview
//
// Opening a handle means reading repository metadata for every installed and
// available package, which takes seconds. Everything else in the application
// is cheap. The Manager therefore keeps exactly one handle alive, shares it
// across concurrent readers, and serializes the two operations that cannot
// overlap with reads: mutating transactions and rebuilds.
//
// # Access Modes
//
//	View(ctx, fn)    shared; many readers run fn in parallel
//	Update(ctx, fn)  exclusive; fn sees a quiescent handle
//	Rebuild(ctx)     exclusive; discard, bump epoch, reopen
//	Epoch()          lock-free snapshot of the current epoch
//
// All three accessors lazily open the handle on first use. Exactly one caller
// performs the open while the rest block, and an open failure leaves the
// manager empty so the next access simply retries.
//
// # The Epoch
//
// The epoch counts rebuilds. Background work snapshots it at dispatch time
// (View returns it alongside the result for exactly that purpose) and the
// completion side compares the snapshot against Epoch() before consuming
// anything:
//
//	worker:            epoch, err := mgr.View(ctx, query)
//	completion thread: if epoch != mgr.Epoch() { discard result }
//
// A mismatch means the handle the result was computed against has been
// discarded, usually because a transaction changed the installed set and
// forced a rebuild. Discarding is silent: it is not an error, the result is
// just no longer true.
//
// Rebuild increments the epoch exactly once per call, whether or not the
// reopen succeeds. The old handle is gone either way, so staleness of
// in-flight work does not depend on the outcome.
//
// # Rebuild Triggers
//
// Two places call Rebuild: a user-initiated repository refresh, and the tail
// of every successful transaction apply, because installing or removing
// packages changes what the loaded universe says about the system.
package base
