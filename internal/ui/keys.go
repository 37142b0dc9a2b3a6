package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Search
	Search      key.Binding
	Confirm     key.Binding
	ToggleDesc  key.Binding
	ToggleExact key.Binding

	// Package actions
	ListInstalled key.Binding
	Refresh       key.Binding
	ClearList     key.Binding
	ClearCache    key.Binding
	MarkInstall   key.Binding
	MarkRemove    key.Binding
	Apply         key.Binding

	// Overlays
	History key.Binding
	Pending key.Binding
	Logs    key.Binding

	// Detail pane
	NextTab    key.Binding
	PrevTab    key.Binding
	DetailUp   key.Binding
	DetailDown key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Layout
	ShrinkSplit key.Binding
	GrowSplit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close overlay / leave search"),
		),

		// Search
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search packages"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		ToggleDesc: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Search descriptions"),
		),
		ToggleExact: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "Exact match"),
		),

		// Package actions
		ListInstalled: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "List installed"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Refresh repositories"),
		),
		ClearList: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear list"),
		),
		ClearCache: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Clear result cache"),
		),
		MarkInstall: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Mark for install"),
		),
		MarkRemove: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Mark for removal"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Apply staged changes"),
		),

		// Overlays
		History: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Search history"),
		),
		Pending: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Pending changes"),
		),
		Logs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Application log"),
		),

		// Detail pane
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next detail tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous detail tab"),
		),
		DetailUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "Scroll details up"),
		),
		DetailDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "Scroll details down"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),

		// Layout
		ShrinkSplit: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Narrow package pane"),
		),
		GrowSplit: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Widen package pane"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Search
		{k.Search, k.Confirm, k.ToggleDesc, k.ToggleExact, k.History},
		// Packages
		{k.ListInstalled, k.Refresh, k.ClearList, k.ClearCache},
		{k.MarkInstall, k.MarkRemove, k.Pending, k.Apply},
		// Navigation
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.NextTab, k.PrevTab, k.DetailUp, k.DetailDown},
		// General
		{k.ShrinkSplit, k.GrowSplit, k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}
