// Package ui provides the terminal user interface for dnf-ui.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program: a single Model value holds all view state,
// Update folds messages into the next state, and View renders the whole
// screen from scratch. The interface is a two-pane package browser with a
// search bar on top and a status/command bar at the bottom.
//
// # Package Structure
//
// The package is organized into focused modules:
//
//   - app.go: Model definition, Init/Update/View, key dispatch, and Run
//   - keys.go: key.Binding definitions for every command
//   - theme.go: named color palettes and derived lipgloss styles
//   - layout.go: pane geometry, split handling, and the titled-box renderer
//   - packages.go: package list state, cursor movement, and row rendering
//   - detail.go: detail tabs, per-selection fetch tracking, and pane rendering
//   - completions.go: routing of background task completions into the model
//   - format.go: pure text formatting for the detail tabs
//   - header.go: header, search bar, status line, and command bar
//   - history.go, pending.go, logview.go, help.go: modal overlays
//
// # Event Flow
//
//  1. Run() builds the Model and starts the Bubble Tea program.
//  2. Init() arms a command that blocks on the app completion channel.
//  3. Each completion arrives as a message, is folded into the model, and
//     the command is re-armed for the next one.
//  4. Key presses dispatch app operations; the returned IDs are recorded so
//     completions can be routed back to the state they belong to.
//  5. Context cancellation or q/ctrl+c quits the program.
//
// # Completion Routing
//
// Every dispatched operation returns an ID. The model keeps the IDs of the
// in-flight search, installed listing, refresh, and apply, plus the four IDs
// of the current selection's detail fetches. When a completion arrives it is
// settled against the current engine epoch; only fresh completions mutate
// view state, while stale and canceled ones just release their ID. Moving
// the cursor cancels the previous selection's fetches so a slow changelog
// for a package no longer selected is dropped on arrival.
//
// # Design Principles
//
//   - Single writer: only Update mutates the model, so no locks in the view
//   - Everything keyboard driven, vim-style where it does not conflict
//   - Status line mirrors what the background worker is doing at all times
package ui
