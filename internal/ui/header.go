package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ErikMN/dnf-ui/internal/ledger"
)

// renderHeader renders the top bar: logo, privilege mode, staged counts,
// and the busy indicator.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("dnf-ui", styles.Logo)}

	if m.privileged {
		parts = append(parts, bg.Render("● admin", styles.SuccessText))
	} else {
		parts = append(parts, bg.Render("● read-only", styles.MutedText))
	}

	if pending := m.app.Pending(); len(pending) > 0 {
		installs, removes := 0, 0
		for _, e := range pending {
			if e.Kind == ledger.Install {
				installs++
			} else {
				removes++
			}
		}
		installStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StateColor("install")))
		removeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StateColor("remove")))
		parts = append(parts,
			bg.Render("Staged:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("+%d", installs), installStyle)+bg.Space()+
				bg.Render(fmt.Sprintf("-%d", removes), removeStyle))
	}

	if m.spinning {
		parts = append(parts, m.spin.View())
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderSearchBar renders the search input line with the mode flags on the
// right.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	left := bg.Render("Search:", styles.MutedText) + bg.Space() + m.searchInput.View()

	descStyle := styles.FaintText
	if m.inDescriptions {
		descStyle = styles.AccentText
	}
	exactStyle := styles.FaintText
	if m.exact {
		exactStyle = styles.AccentText
	}
	right := bg.Render("desc", descStyle) + bg.Space() + bg.Render("exact", exactStyle)

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

// renderStatusLine renders the status text and the item count.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var st lipgloss.Style
	switch m.statusSev {
	case statusWorking:
		st = styles.InfoText
	case statusGood:
		st = styles.SuccessText
	case statusBad:
		st = styles.DangerText
	default:
		st = styles.MutedText
	}

	left := bg.Render(m.status, st)
	right := bg.Render(fmt.Sprintf("Items: %d", len(m.pkgs)), styles.MutedText)

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"/", "Search"},
		{"L", "Installed"},
		{"i/r", "Mark"},
		{"p", "Pending"},
		{"a", "Apply"},
		{"H", "History"},
		{"R", "Refresh"},
		{"l", "Log"},
		{"?", "More"},
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
