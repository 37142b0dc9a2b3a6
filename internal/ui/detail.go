package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ErikMN/dnf-ui/internal/dnf"
)

// detailTab identifies one tab of the detail pane.
type detailTab int

const (
	tabInfo detailTab = iota
	tabFiles
	tabDeps
	tabChangelog

	tabCount
)

func (t detailTab) String() string {
	switch t {
	case tabInfo:
		return "Info"
	case tabFiles:
		return "Files"
	case tabDeps:
		return "Deps"
	case tabChangelog:
		return "Changelog"
	default:
		return ""
	}
}

// detailData holds everything fetched so far for the selected package.
type detailData struct {
	nevra string

	pkg        *dnf.Package
	pkgFailed  bool
	pkgMissing bool

	files            []string
	filesLoaded      bool
	filesFailed      bool
	filesUnavailable bool

	deps       *dnf.Dependencies
	depsFailed bool

	changes       []dnf.ChangeEntry
	changesLoaded bool
	changesFailed bool
}

// detailFetch correlates in-flight detail queries with the selection that
// started them. Completions for an old selection miss every ID and fall
// through.
type detailFetch struct {
	cancel    context.CancelFunc
	info      uuid.UUID
	files     uuid.UUID
	deps      uuid.UUID
	changelog uuid.UUID
}

// stop cancels any in-flight fetches and forgets their IDs.
func (f *detailFetch) stop() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.info = uuid.Nil
	f.files = uuid.Nil
	f.deps = uuid.Nil
	f.changelog = uuid.Nil
}

// forget drops one ID once its completion arrived.
func (f *detailFetch) forget(id uuid.UUID) {
	switch id {
	case uuid.Nil:
	case f.info:
		f.info = uuid.Nil
	case f.files:
		f.files = uuid.Nil
	case f.deps:
		f.deps = uuid.Nil
	case f.changelog:
		f.changelog = uuid.Nil
	}
}

// dispatchDetails starts the four detail queries for the current selection,
// cancelling whatever the previous selection still had running.
func (m *Model) dispatchDetails() tea.Cmd {
	p, ok := m.selectedPackage()
	if !ok {
		m.fetch.stop()
		m.detail = detailData{}
		m.refreshDetail()
		return nil
	}

	nevra := p.NEVRA()
	if nevra == m.detail.nevra {
		return nil
	}

	m.fetch.stop()
	m.detail = detailData{nevra: nevra}

	ctx, cancel := context.WithCancel(m.ctx)
	m.fetch.cancel = cancel
	m.fetch.info = m.app.Describe(ctx, nevra)
	m.fetch.files = m.app.Files(ctx, nevra)
	m.fetch.deps = m.app.Dependencies(ctx, nevra)
	m.fetch.changelog = m.app.Changelog(ctx, nevra)

	m.setStatus("Fetching package info...", statusWorking)
	m.refreshDetail()
	return m.startSpinner()
}

// setTab switches the active detail tab.
func (m *Model) setTab(t detailTab) {
	if t == m.detailTab {
		return
	}
	m.detailTab = t
	m.refreshDetail()
}

// refreshDetail rebuilds the viewport content for the active tab.
func (m *Model) refreshDetail() {
	m.detailVP.SetContent(m.detailContent())
	m.detailVP.GotoTop()
}

// refreshDetailIf rebuilds the viewport only when the given tab is active,
// so data arriving for a background tab does not reset the scroll position.
func (m *Model) refreshDetailIf(t detailTab) {
	if m.detailTab == t {
		m.refreshDetail()
	}
}

// renderDetailPane renders the detail box: tab bar on top, then the
// viewport with the active tab's content.
func (m Model) renderDetailPane(width, height int) string {
	title := "Details"
	if m.detail.nevra != "" {
		title = truncateMiddle(m.detail.nevra, max(width-8, 8))
	}

	var body string
	if m.detail.nevra == "" {
		msg := m.theme.Styles().MutedText.Render("Select a package for details.")
		body = lipgloss.Place(width-2, m.paneHeight()-3, lipgloss.Center, lipgloss.Center, msg)
	} else {
		body = m.detailVP.View()
	}

	content := m.renderTabBar() + "\n" + body
	return m.renderTitledBox(title, content, width, height)
}

// renderTabBar renders the detail tab labels with the active one selected.
func (m Model) renderTabBar() string {
	styles := m.theme.Styles()
	parts := make([]string, 0, int(tabCount))
	for t := detailTab(0); t < tabCount; t++ {
		label := " " + t.String() + " "
		if t == m.detailTab {
			parts = append(parts, styles.Selected.Bold(true).Render(label))
		} else {
			parts = append(parts, styles.MutedText.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// detailContent builds the text for the active tab.
func (m Model) detailContent() string {
	if m.detail.nevra == "" {
		return ""
	}
	switch m.detailTab {
	case tabInfo:
		return m.infoContent()
	case tabFiles:
		return m.filesContent()
	case tabDeps:
		return m.depsContent()
	case tabChangelog:
		return m.changelogContent()
	default:
		return ""
	}
}

func (m Model) infoContent() string {
	d := m.detail
	styles := m.theme.Styles()
	switch {
	case d.pkgMissing:
		return styles.MutedText.Render("No details found for " + d.nevra + ".")
	case d.pkgFailed:
		return styles.DangerText.Render("Error loading info.")
	case d.pkg == nil:
		return styles.MutedText.Render("Loading...")
	}

	state := m.pkgState(*d.pkg)
	stateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StateColor(state)))

	var b strings.Builder
	for _, f := range infoFields(*d.pkg, state) {
		switch f.label {
		case "Status":
			b.WriteString(styles.MutedText.Render(padLabel(f.label)) + stateStyle.Render(f.value) + "\n")
		case "Description":
			b.WriteString(styles.MutedText.Render(f.label+":") + "\n")
			for _, line := range wrapText(f.value, max(m.detailVP.Width-2, 16)) {
				b.WriteString("  " + styles.Text.Render(line) + "\n")
			}
		default:
			b.WriteString(styles.MutedText.Render(padLabel(f.label)) + styles.Text.Render(f.value) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) filesContent() string {
	d := m.detail
	styles := m.theme.Styles()
	switch {
	case d.filesFailed:
		return styles.DangerText.Render("Error loading file list.")
	case d.filesUnavailable:
		return styles.MutedText.Render("File list available only for installed packages.")
	case !d.filesLoaded:
		return styles.MutedText.Render("Loading...")
	case len(d.files) == 0:
		return styles.MutedText.Render("No files recorded for this installed package.")
	}

	lines := make([]string, 0, len(d.files))
	for _, f := range d.files {
		lines = append(lines, styles.Text.Render(truncateMiddle(f, max(m.detailVP.Width, 16))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) depsContent() string {
	d := m.detail
	styles := m.theme.Styles()
	switch {
	case d.depsFailed:
		return styles.DangerText.Render("Error loading dependencies.")
	case d.deps == nil:
		return styles.MutedText.Render("Loading...")
	}

	var b strings.Builder
	for i, sec := range depSections(*d.deps) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.AccentText.Render(sec.title) + "\n")
		if len(sec.items) == 0 {
			b.WriteString("  " + styles.FaintText.Render("(none)") + "\n")
			continue
		}
		for _, item := range sec.items {
			b.WriteString("  " + styles.Text.Render(truncate(item, max(m.detailVP.Width-2, 16))) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) changelogContent() string {
	d := m.detail
	styles := m.theme.Styles()
	switch {
	case d.changesFailed:
		return styles.DangerText.Render("Error loading changelog.")
	case !d.changesLoaded:
		return styles.MutedText.Render("Loading...")
	case len(d.changes) == 0:
		return styles.MutedText.Render("No changelog entries.")
	}

	var b strings.Builder
	for i, entry := range d.changes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.AccentText.Render(changelogHeading(entry)) + "\n")
		for _, line := range changelogBody(entry) {
			b.WriteString(styles.Text.Render(truncate(line, max(m.detailVP.Width, 16))) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
