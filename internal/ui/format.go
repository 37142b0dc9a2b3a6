package ui

import (
	"fmt"
	"strings"

	"github.com/ErikMN/dnf-ui/internal/dnf"
)

// infoField is one labeled line of the info tab.
type infoField struct {
	label string
	value string
}

// infoFields lists the info tab fields for a package, in display order.
// Empty optional fields are left out.
func infoFields(p dnf.Package, state string) []infoField {
	fields := []infoField{
		{"Name", p.Name},
		{"Version", p.Version},
		{"Release", p.Release},
		{"Arch", p.Arch},
	}
	if p.Epoch != "" && p.Epoch != "0" {
		fields = append(fields, infoField{"Epoch", p.Epoch})
	}
	if p.Repo != "" {
		fields = append(fields, infoField{"Repo", p.Repo})
	}
	fields = append(fields, infoField{"Status", state})
	if s := strings.TrimSpace(p.Summary); s != "" {
		fields = append(fields, infoField{"Summary", s})
	}
	if d := strings.TrimSpace(p.Description); d != "" {
		fields = append(fields, infoField{"Description", d})
	}
	return fields
}

// padLabel renders "Name:" padded so the values line up in a column.
func padLabel(label string) string {
	return fmt.Sprintf("%-9s", label+":")
}

// depSection groups one relation list under its heading.
type depSection struct {
	title string
	items []string
}

// depSections orders the relation lists the way the deps tab shows them.
// All four sections are always present so the pane shape is stable.
func depSections(d dnf.Dependencies) []depSection {
	return []depSection{
		{"Requires:", d.Requires},
		{"Provides:", d.Provides},
		{"Conflicts:", d.Conflicts},
		{"Obsoletes:", d.Obsoletes},
	}
}

// changelogHeading renders the date and author line for one entry.
func changelogHeading(e dnf.ChangeEntry) string {
	date := "unknown date"
	if !e.Date.IsZero() {
		date = e.Date.Format("2006-01-02")
	}
	author := strings.TrimSpace(e.Author)
	if author == "" {
		return date
	}
	return date + " " + author
}

// changelogBody splits an entry's text into lines.
func changelogBody(e dnf.ChangeEntry) []string {
	text := strings.TrimRight(e.Text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// wrapText greedily wraps s into lines at most width wide, breaking on
// spaces. A word longer than width gets a line of its own.
func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// truncateMiddle truncates a string in the middle, preserving start and end.
func truncateMiddle(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 5 {
		return s[:max]
	}
	// Keep more of the end (file name) than the start
	endLen := (max - 3) * 2 / 3
	startLen := max - 3 - endLen
	return s[:startLen] + "..." + s[len(s)-endLen:]
}
