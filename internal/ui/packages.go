package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ErikMN/dnf-ui/internal/dnf"
	"github.com/ErikMN/dnf-ui/internal/ledger"
)

// showListing replaces the package list and moves the selection to the top.
func (m *Model) showListing(kind listKind, title string, pkgs []dnf.Package) tea.Cmd {
	m.listKind = kind
	m.listTitle = title
	m.pkgs = pkgs
	m.cursor = 0
	m.scroll = 0
	return m.dispatchDetails()
}

// clearList drops the listing, and the detail pane with it.
func (m *Model) clearList() tea.Cmd {
	return m.showListing(listNone, "", nil)
}

// selectedPackage returns the package under the cursor.
func (m Model) selectedPackage() (dnf.Package, bool) {
	if m.cursor < 0 || m.cursor >= len(m.pkgs) {
		return dnf.Package{}, false
	}
	return m.pkgs[m.cursor], true
}

// moveCursor moves the selection by delta rows and refetches details when
// the selection actually changed.
func (m *Model) moveCursor(delta int) tea.Cmd {
	if len(m.pkgs) == 0 {
		return nil
	}
	return m.cursorTo(m.cursor + delta)
}

// cursorTo moves the selection to the given row.
func (m *Model) cursorTo(idx int) tea.Cmd {
	if len(m.pkgs) == 0 {
		return nil
	}
	idx = clampInt(idx, 0, len(m.pkgs)-1)
	if idx == m.cursor {
		return nil
	}
	m.cursor = idx
	m.ensureCursorVisible()
	return m.dispatchDetails()
}

// ensureCursorVisible scrolls the list window so the cursor stays on screen.
func (m *Model) ensureCursorVisible() {
	vis := m.maxVisibleRows()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+vis {
		m.scroll = m.cursor - vis + 1
	}
	maxScroll := len(m.pkgs) - vis
	if maxScroll < 0 {
		maxScroll = 0
	}
	m.scroll = clampInt(m.scroll, 0, maxScroll)
}

// markInstall stages the selected package for installation, or unstages it
// if it was already staged.
func (m *Model) markInstall() {
	p, ok := m.selectedPackage()
	if !ok {
		return
	}
	nevra := p.NEVRA()
	if m.app.Installed().HasNEVRA(nevra) {
		m.setStatus(p.Name+" is already installed.", statusNeutral)
		return
	}
	m.app.ToggleInstall(nevra)
	if kind, staged := m.app.StagedKind(nevra); staged && kind == ledger.Install {
		m.setStatus("Staged "+p.Name+" for install.", statusNeutral)
	} else {
		m.setStatus("Unstaged "+p.Name+".", statusNeutral)
	}
}

// markRemove stages the selected installed package for removal, or unstages
// it if it was already staged.
func (m *Model) markRemove() {
	p, ok := m.selectedPackage()
	if !ok {
		return
	}
	nevra := p.NEVRA()
	if !m.app.Installed().HasNEVRA(nevra) {
		m.setStatus(p.Name+" is not installed.", statusNeutral)
		return
	}
	m.app.ToggleRemove(nevra)
	if kind, staged := m.app.StagedKind(nevra); staged && kind == ledger.Remove {
		m.setStatus("Staged "+p.Name+" for removal.", statusNeutral)
	} else {
		m.setStatus("Unstaged "+p.Name+".", statusNeutral)
	}
}

// pkgState returns the display state for a row. A staged action wins over
// the installed flag so marks are visible immediately.
func (m Model) pkgState(p dnf.Package) string {
	nevra := p.NEVRA()
	if kind, ok := m.app.StagedKind(nevra); ok {
		return kind.String()
	}
	if m.app.Installed().HasNEVRA(nevra) {
		return "installed"
	}
	return "available"
}

// stateMarker is the one-character gutter symbol for a package state.
func stateMarker(state string) string {
	switch state {
	case "install":
		return "+"
	case "remove":
		return "-"
	case "installed":
		return "●"
	default:
		return "○"
	}
}

// renderPackagesPane renders the package list box.
func (m Model) renderPackagesPane(width, height int) string {
	title := "Packages"
	if m.listTitle != "" {
		title = fmt.Sprintf("%s (%d)", m.listTitle, len(m.pkgs))
	}

	innerWidth := width - 2
	if len(m.pkgs) == 0 {
		return m.renderTitledBox(title, m.renderEmptyList(innerWidth, height-2), width, height)
	}
	return m.renderTitledBox(title, m.renderPackageRows(innerWidth), width, height)
}

// renderEmptyList centers a hint inside an empty package pane.
func (m Model) renderEmptyList(width, height int) string {
	styles := m.theme.Styles()
	lines := []string{
		styles.MutedText.Render("No packages listed."),
		styles.FaintText.Render("Press / to search or L to list installed."),
	}
	msg := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// renderPackageRows renders the visible window of the package list.
func (m Model) renderPackageRows(width int) string {
	end := m.scroll + m.maxVisibleRows()
	if end > len(m.pkgs) {
		end = len(m.pkgs)
	}

	var lines []string
	for i := m.scroll; i < end; i++ {
		selected := i == m.cursor
		bgColor := m.theme.SurfaceAlt
		if selected {
			bgColor = m.theme.SelectionBg
		}
		content := m.formatPackageRow(m.pkgs[i], width, selected)
		line := lipgloss.NewStyle().
			Background(lipgloss.Color(bgColor)).
			Width(width).
			Render(content)
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// formatPackageRow formats one row: state marker, NEVRA, and the summary
// when there is room for it.
func (m Model) formatPackageRow(p dnf.Package, width int, selected bool) string {
	bgColor := m.theme.SurfaceAlt
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	state := m.pkgState(p)
	markerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StateColor(state)))

	var textStyle, sumStyle lipgloss.Style
	if selected {
		textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		sumStyle = textStyle
	} else {
		styles := m.theme.Styles()
		textStyle = styles.Text
		sumStyle = styles.MutedText
	}

	avail := width - 3 // marker, gutter space, right margin
	if avail < 8 {
		avail = 8
	}
	nevra := truncate(p.NEVRA(), avail)

	row := bg.Render(stateMarker(state), markerStyle) + bg.Space() +
		bg.Render(nevra, textStyle)

	rest := avail - len(nevra) - 3
	if summary := strings.TrimSpace(p.Summary); summary != "" && rest >= 12 {
		row += bg.Render(" · ", sumStyle) + bg.Render(truncate(summary, rest), sumStyle)
	}

	return row
}
