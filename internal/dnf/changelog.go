package dnf

import (
	"bufio"
	"bytes"
	"strings"
	"time"
)

// ParseChangelog reads rpm changelog output into entries. Each entry starts
// with a header line of the form
//
//	* Wed Sep 11 2024 Jane Doe <jane@example.org> - 2.1-3
//
// followed by free-form change text until the next header. Headers with
// unparseable dates still produce an entry; the date is just left zero.
func ParseChangelog(out []byte) []ChangeEntry {
	var entries []ChangeEntry
	var current *ChangeEntry
	var text []string

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimRight(strings.Join(text, "\n"), "\n")
		entries = append(entries, *current)
		current = nil
		text = nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "* ") {
			if current != nil {
				text = append(text, strings.TrimRight(line, " \t"))
			}
			continue
		}
		flush()
		entry := ChangeEntry{}
		fields := strings.Fields(line)
		// fields[0] is "*"; the next four are weekday, month, day, year.
		if len(fields) >= 5 {
			stamp := strings.Join(fields[1:5], " ")
			if date, err := time.Parse("Mon Jan 2 2006", stamp); err == nil {
				entry.Date = date
				entry.Author = strings.Join(fields[5:], " ")
			}
		}
		if entry.Date.IsZero() && len(fields) > 1 {
			entry.Author = strings.Join(fields[1:], " ")
		}
		current = &entry
	}
	flush()

	return entries
}
