package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ErikMN/dnf-ui/internal/logtail"
)

// openLogs loads the tail of the application log and opens the overlay.
func (m Model) openLogs() (tea.Model, tea.Cmd) {
	if m.logPath == "" {
		m.setStatus("No log file configured.", statusNeutral)
		return m, nil
	}
	lines, err := logtail.Read(m.logPath, logTailLines)
	if err != nil {
		m.setStatus("Error reading log file.", statusBad)
		m.log.Warn("log tail failed", "path", m.logPath, "error", err)
		return m, nil
	}
	if len(lines) == 0 {
		m.setStatus("Log file is empty.", statusNeutral)
		return m, nil
	}
	m.logLines = lines
	m.logScroll = len(lines) - m.logPageSize()
	if m.logScroll < 0 {
		m.logScroll = 0
	}
	m.overlay = overlayLogs
	return m, nil
}

// logPageSize is how many log lines fit in the overlay.
func (m Model) logPageSize() int {
	page := m.height - 10
	if page < 5 {
		page = 5
	}
	return page
}

// handleLogsKey processes keys while the log overlay is open.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	maxScroll := len(m.logLines) - m.logPageSize()
	if maxScroll < 0 {
		maxScroll = 0
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs):
		m.overlay = overlayNone
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.logScroll = clampInt(m.logScroll-1, 0, maxScroll)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.logScroll = clampInt(m.logScroll+1, 0, maxScroll)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.logScroll = clampInt(m.logScroll-m.logPageSize(), 0, maxScroll)
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.logScroll = clampInt(m.logScroll+m.logPageSize(), 0, maxScroll)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.logScroll = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.logScroll = maxScroll
		return m, nil
	}

	return m, nil
}

// renderLogs renders the application log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	width := m.width - 8
	if width < 40 {
		width = 40
	}
	lineWidth := width - 6

	page := m.logPageSize()
	start := clampInt(m.logScroll, 0, max(len(m.logLines)-page, 0))
	end := min(start+page, len(m.logLines))

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Application Log"))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(truncateMiddle(m.logPath, lineWidth-18)))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", min(lineWidth, 60))))
	b.WriteString("\n")

	for i := start; i < end; i++ {
		line := formatLogLine(m.logLines[i])
		st := styles.Text
		switch line.level {
		case "DEBUG":
			st = styles.FaintText
		case "WARN":
			st = styles.WarningText
		case "ERROR":
			st = styles.DangerText
		}
		b.WriteString(st.Render(truncate(line.text, lineWidth)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d-%d of %d · esc close", start+1, end, len(m.logLines))))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// logLine is one display line of the log overlay.
type logLine struct {
	level string
	text  string
}

// formatLogLine flattens one JSON log record into a single display line:
// time, level, message, then the remaining attributes sorted by key. Lines
// that do not parse are shown as they are.
func formatLogLine(raw string) logLine {
	var rec map[string]any
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec == nil {
		return logLine{text: raw}
	}

	var parts []string
	if s, ok := rec["time"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			parts = append(parts, t.Local().Format("15:04:05"))
		}
	}
	level, _ := rec["level"].(string)
	level = strings.ToUpper(strings.TrimSpace(level))
	if level != "" {
		parts = append(parts, level)
	}
	if msg, ok := rec["msg"].(string); ok && msg != "" {
		parts = append(parts, msg)
	}

	attrs := make([]string, 0, len(rec))
	for k := range rec {
		switch k {
		case "time", "level", "msg":
			continue
		}
		attrs = append(attrs, k)
	}
	sort.Strings(attrs)
	for _, k := range attrs {
		parts = append(parts, fmt.Sprintf("%s=%v", k, rec[k]))
	}

	return logLine{level: level, text: strings.Join(parts, " ")}
}
