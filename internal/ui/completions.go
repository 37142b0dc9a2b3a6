package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/ErikMN/dnf-ui/internal/app"
	"github.com/ErikMN/dnf-ui/internal/dnf"
	"github.com/ErikMN/dnf-ui/internal/task"
)

// handleCompletion settles one engine completion and folds fresh results
// into the model. Stale and canceled completions only clear bookkeeping.
// The await command is re-armed no matter what arrived.
func (m Model) handleCompletion(c task.Completion) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{awaitCompletion(m.app.Completions())}

	if m.app.Settle(c) == task.OutcomeFresh {
		if cmd := m.applyCompletion(c); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.noteSettled(c.ID)

	if m.app.Busy() == 0 {
		m.spinning = false
	}
	return m, tea.Batch(cmds...)
}

// noteSettled clears whatever in-flight marker the completion belonged to,
// fresh or not. A marker left behind would wedge its operation forever.
func (m *Model) noteSettled(id uuid.UUID) {
	switch id {
	case uuid.Nil:
	case m.searchID:
		m.searchID = uuid.Nil
	case m.listID:
		m.listID = uuid.Nil
	case m.refreshID:
		m.refreshID = uuid.Nil
	case m.applyID:
		m.applyID = uuid.Nil
	}
	m.fetch.forget(id)
}

// applyCompletion folds one fresh completion into the model.
func (m *Model) applyCompletion(c task.Completion) tea.Cmd {
	if c.Err != nil {
		m.applyFailure(c)
		return nil
	}

	switch v := c.Value.(type) {
	case app.InstalledListing:
		cmd := m.showListing(listInstalled, "Installed", v.Packages)
		m.setStatus(fmt.Sprintf("Found %d installed packages.", len(v.Packages)), statusGood)
		return cmd

	case app.SearchResult:
		cmd := m.showListing(listSearch, fmt.Sprintf("Results for '%s'", v.Query.Term), v.Packages)
		switch {
		case c.Cached:
			m.setStatus(fmt.Sprintf("Loaded %d cached results.", len(v.Packages)), statusNeutral)
		case len(v.Packages) == 0:
			m.setStatus("Error or no results.", statusBad)
		default:
			m.setStatus(fmt.Sprintf("Found %d packages.", len(v.Packages)), statusGood)
		}
		return cmd

	case app.PackageDetails:
		if v.NEVRA == m.detail.nevra {
			pkg := v.Package
			m.detail.pkg = &pkg
			m.setStatus("Package info loaded.", statusGood)
			m.refreshDetailIf(tabInfo)
		}

	case app.FileListing:
		if v.NEVRA == m.detail.nevra {
			m.detail.files = v.Files
			m.detail.filesLoaded = true
			m.refreshDetailIf(tabFiles)
		}

	case app.DependencyInfo:
		if v.NEVRA == m.detail.nevra {
			deps := v.Deps
			m.detail.deps = &deps
			m.refreshDetailIf(tabDeps)
		}

	case app.ChangelogInfo:
		if v.NEVRA == m.detail.nevra {
			m.detail.changes = v.Entries
			m.detail.changesLoaded = true
			m.refreshDetailIf(tabChangelog)
		}

	case app.RefreshDone:
		m.setStatus("Repositories refreshed.", statusGood)
		if m.listKind == listInstalled && v.InstalledNow != nil {
			return m.showListing(listInstalled, "Installed", v.InstalledNow)
		}

	case app.ApplyReport:
		m.setStatus(fmt.Sprintf("Transaction complete: %d installed, %d removed.",
			len(v.Result.Installed), len(v.Result.Removed)), statusGood)
		if m.listKind == listInstalled && v.InstalledNow != nil {
			return m.showListing(listInstalled, "Installed", v.InstalledNow)
		}
	}

	return nil
}

// applyFailure reports a failed operation, matched back to whatever started
// it by completion ID.
func (m *Model) applyFailure(c task.Completion) {
	err := c.Err
	switch c.ID {
	case m.searchID:
		// A failed search leaves an empty list, like a search with no
		// matches.
		_ = m.showListing(listSearch, "Results", nil)
		m.setStatus("Error or no results.", statusBad)

	case m.listID:
		m.setStatus("Error listing packages.", statusBad)

	case m.refreshID:
		m.setStatus("Error refreshing repositories.", statusBad)
		m.log.Warn("repository refresh failed", "error", err)

	case m.applyID:
		m.setStatus(applyErrorStatus(err), statusBad)
		m.log.Warn("transaction failed", "error", err)

	case m.fetch.info:
		if errors.Is(err, dnf.ErrNotFound) {
			m.detail.pkgMissing = true
			m.setStatus("No details found.", statusNeutral)
		} else {
			m.detail.pkgFailed = true
			m.setStatus("Error loading info.", statusBad)
		}
		m.refreshDetailIf(tabInfo)

	case m.fetch.files:
		if errors.Is(err, dnf.ErrNotInstalled) {
			m.detail.filesUnavailable = true
		} else {
			m.detail.filesFailed = true
		}
		m.refreshDetailIf(tabFiles)

	case m.fetch.deps:
		m.detail.depsFailed = true
		m.refreshDetailIf(tabDeps)

	case m.fetch.changelog:
		m.detail.changesFailed = true
		m.refreshDetailIf(tabChangelog)

	default:
		m.setStatus(strings.TrimSuffix(c.Label, "...")+" failed.", statusBad)
		m.log.Warn("operation failed", "label", c.Label, "error", err)
	}
}

// applyErrorStatus maps transaction failures to status line text.
func applyErrorStatus(err error) string {
	switch {
	case errors.Is(err, dnf.ErrUnresolved):
		return "Transaction could not be resolved."
	case errors.Is(err, dnf.ErrNothingToDo):
		return "Nothing to do."
	case errors.Is(err, dnf.ErrTransactionFailed):
		return "Transaction failed."
	default:
		return "Error applying changes."
	}
}
