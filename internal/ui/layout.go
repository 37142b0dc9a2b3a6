package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants.
const (
	// chromeRows is the number of single-line bars around the panes:
	// header, search bar, status line, command bar.
	chromeRows = 4

	// splitStep is how far one [ or ] keypress moves the pane split.
	splitStep = 5

	// defaultSplitPercent is the package pane share of the width when no
	// preference is stored.
	defaultSplitPercent = 50

	minSplitPercent = 20
	maxSplitPercent = 80

	// minPaneWidth keeps both panes usable on narrow terminals.
	minPaneWidth = 24

	// logTailLines is how much of the log file the log overlay loads.
	logTailLines = 200
)

func clampSplit(v int) int {
	if v < minSplitPercent {
		return minSplitPercent
	}
	if v > maxSplitPercent {
		return maxSplitPercent
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// paneWidths returns the package and detail pane widths for the current
// terminal width and split preference.
func (m Model) paneWidths() (listWidth, detailWidth int) {
	listWidth = m.width * m.splitPercent / 100
	if listWidth < minPaneWidth {
		listWidth = minPaneWidth
	}
	if listWidth > m.width-minPaneWidth {
		listWidth = m.width - minPaneWidth
	}
	if listWidth < 0 {
		listWidth = 0
	}
	return listWidth, m.width - listWidth
}

// paneHeight returns the height available to the two panes.
func (m Model) paneHeight() int {
	h := m.height - chromeRows
	if h < 3 {
		h = 3
	}
	return h
}

// maxVisibleRows is how many package rows fit inside the list pane box.
func (m Model) maxVisibleRows() int {
	rows := m.paneHeight() - 2 // box borders
	if rows < 1 {
		rows = 1
	}
	return rows
}

// initDetailViewport creates the detail viewport once the first window size
// is known.
func (m *Model) initDetailViewport() {
	_, detailWidth := m.paneWidths()
	h := m.paneHeight() - 3
	if h < 1 {
		h = 1
	}
	m.detailVP = viewport.New(innerContentWidth(detailWidth), h)
}

// layout resizes the themed components after a window or split change.
func (m *Model) layout() {
	_, detailWidth := m.paneWidths()
	m.detailVP.Width = innerContentWidth(detailWidth)
	m.detailVP.Height = m.paneHeight() - 3 // borders and tab bar
	if m.detailVP.Height < 1 {
		m.detailVP.Height = 1
	}
	m.searchInput.Width = clampInt(m.width-30, 16, 96)
	m.ensureCursorVisible()
}

// innerContentWidth is the text width inside a titled box, leaving the
// borders and one space of margin on each side.
func innerContentWidth(boxWidth int) int {
	w := boxWidth - 4
	if w < 1 {
		w = 1
	}
	return w
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐. Content lines are padded to fill the box so
// the background is continuous.
func (m Model) renderTitledBox(title, content string, width, height int) string {
	bgColorStr := m.theme.SurfaceAlt
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	if innerWidth < 2 {
		innerWidth = 2
	}
	titleText := " " + truncate(title, innerWidth-4) + " "
	leftPad := (innerWidth - len(titleText)) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	rightPad := innerWidth - len(titleText) - leftPad
	if rightPad < 0 {
		rightPad = 0
	}

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(titleText, titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	var lines []string
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
