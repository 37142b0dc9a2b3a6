// Package task moves engine work off the coordinating thread and brings
// results back as completions.
//
// # Flow
//
//	coordinating thread          worker goroutine
//	─────────────────────────    ─────────────────────────────
//	id := d.Query(ctx, ...)  ──> mgr.View(ctx, fn)
//	                             fn queries the handle
//	                         <── done <- Completion{Epoch: e}
//	c := <-d.Completions()
//	switch d.Settle(c) { ... }
//
// Workers never touch presentation state. Everything the UI needs arrives in
// the Completion, and Settle decides on the coordinating thread whether the
// value is still worth showing: a completion whose epoch no longer matches
// the manager's was computed against a discarded handle and settles stale, a
// canceled context settles canceled, everything else is fresh. Stale and
// canceled completions release the busy count and nothing else.
//
// Exclusive work (transactions, repository refreshes) goes through Exec,
// which admits one task at a time and fails fast with ErrBusy instead of
// queueing. Cache hits skip workers entirely: Deliver pushes a prebuilt
// value through the same channel so the consuming code has one path.
package task
