package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ErikMN/dnf-ui/internal/ledger"
)

// maxPendingRows caps how many staged entries the overlay lists before
// summarizing the rest.
const maxPendingRows = 14

// handlePendingKey processes keys while the pending changes overlay is open.
func (m Model) handlePendingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Pending), key.Matches(msg, m.keys.Confirm):
		m.overlay = overlayNone
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		m.overlay = overlayNone
		return m.startApply()
	}

	return m, nil
}

// renderPending renders the staged transaction overlay.
func (m Model) renderPending() string {
	styles := m.theme.Styles()
	entries := m.app.Pending()

	installStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StateColor("install")))
	removeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StateColor("remove")))

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("Pending Changes (%d)", len(entries))))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing staged."))
		b.WriteString("\n")
	}

	shown := entries
	if len(shown) > maxPendingRows {
		shown = shown[:maxPendingRows]
	}
	for _, e := range shown {
		if e.Kind == ledger.Install {
			b.WriteString(installStyle.Render("+ " + truncate(e.NEVRA, 44)))
		} else {
			b.WriteString(removeStyle.Render("- " + truncate(e.NEVRA, 44)))
		}
		b.WriteString("\n")
	}
	if rest := len(entries) - len(shown); rest > 0 {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("  +%d more", rest)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "a apply · esc close"
	if !m.privileged {
		hint = "apply requires elevated privileges · esc close"
	}
	b.WriteString(styles.FaintText.Render(hint))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(52)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
