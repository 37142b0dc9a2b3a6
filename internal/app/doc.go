// Package app provides the application core behind the dnf-ui TUI.
//
// # Overview
//
// This package wires the handle manager, the task dispatcher, the caches,
// and the pending-action ledger into one App value that the UI drives. The
// UI never touches the engine; it dispatches operations, drains the
// completion channel, and lets Settle decide what each completion means.
//
// # Components
//
//   - app.go: App construction, accessors, staging, shutdown
//   - operations.go: dispatched operations, completion payloads, Settle
//
// # Data Flow
//
//	┌────────────┐  Search/ListInstalled/Apply/...   ┌────────────┐
//	│  UI loop   │ ────────────────────────────────> │ dispatcher │
//	│ (one       │                                   │  workers   │
//	│  goroutine)│ <──────────────────────────────── │            │
//	└─────┬──────┘        Completions() channel      └─────┬──────┘
//	      │                                                │
//	      │ Settle(c)                                      │ View/Update/
//	      ▼                                                ▼ Rebuild
//	fresh: update caches, clear ledger,            ┌──────────────┐
//	       render payload                          │ base.Manager │
//	stale/canceled: drop silently                  └──────────────┘
//
// # Operations
//
// Queries (shared handle access): ListInstalled, Search, Describe, Files,
// Dependencies, Changelog. Exclusive operations (one at a time, fail fast
// with task.ErrBusy): RefreshRepos and Apply.
//
// Search consults the result cache first. A hit skips the worker and is
// injected as a cached completion; a miss dispatches a live search whose
// fresh result enters the cache at settle time, tagged with the epoch it was
// computed at. Either way the term lands in the persistent search history.
//
// Apply snapshots the ledger into install and remove lists, runs them as a
// single engine transaction under exclusive access, and rebuilds the handle
// afterwards so the new installed set becomes visible. The completion
// carries the post-rebuild installed listing; settling it clears the ledger
// and refreshes the installed-set cache in one step. Anything short of full
// success (unresolved packages, an empty resolved transaction, a run
// failure) leaves the ledger exactly as it was.
//
// # Error Handling
//
// Two failures never reach a worker: applying with an empty ledger returns
// ErrNothingStaged, and applying without privileges returns ErrPrivilege.
// Everything else is captured per task and arrives in the completion's Err
// field for the UI to report; no failure is fatal to the process, and every
// one is recoverable by retrying the action that caused it.
//
// # Construction
//
//	eng := dnf.NewCLI(dnf.CLIOptions{DNFBin: cfg.DNFBin, RPMBin: cfg.RPMBin})
//	core := app.New(app.Options{Config: cfg, Engine: eng, History: hist})
//	defer core.Close()
//
// New does no engine work; the first dispatched task pays for the initial
// universe load, so startup stays instant even on a cold dnf cache.
package app
