package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// openHistory loads recent search terms and opens the overlay.
func (m Model) openHistory() (tea.Model, tea.Cmd) {
	terms, err := m.app.RecentSearches(m.ctx)
	if err != nil {
		m.setStatus("Error loading search history.", statusBad)
		m.log.Warn("history read failed", "error", err)
		return m, nil
	}
	if len(terms) == 0 {
		m.setStatus("No search history yet.", statusNeutral)
		return m, nil
	}
	m.historyTerms = terms
	m.historyCursor = 0
	m.overlay = overlayHistory
	return m, nil
}

// handleHistoryKey processes keys while the history overlay is open.
// Confirm re-runs the selected search with the current mode flags.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.History):
		m.overlay = overlayNone
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.historyCursor > 0 {
			m.historyCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.historyCursor < len(m.historyTerms)-1 {
			m.historyCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.historyCursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.historyCursor = len(m.historyTerms) - 1
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		term := m.historyTerms[m.historyCursor]
		m.overlay = overlayNone
		m.searchInput.SetValue(term)
		return m.startSearch()
	}

	return m, nil
}

// renderHistory renders the search history overlay.
func (m Model) renderHistory() string {
	styles := m.theme.Styles()

	const maxVisible = 12
	start := 0
	if m.historyCursor >= maxVisible {
		start = m.historyCursor - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(m.historyTerms) {
		end = len(m.historyTerms)
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Search History"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i := start; i < end; i++ {
		term := truncate(m.historyTerms[i], 40)
		if i == m.historyCursor {
			b.WriteString(styles.Selected.Render(" " + term + " "))
		} else {
			b.WriteString(styles.Text.Render(" " + term + " "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter run again · esc close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(48)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
