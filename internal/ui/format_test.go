package ui

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ErikMN/dnf-ui/internal/dnf"
)

func TestInfoFields(t *testing.T) {
	p := dnf.Package{
		Name:        "htop",
		Epoch:       "0",
		Version:     "3.3.0",
		Release:     "5.fc41",
		Arch:        "x86_64",
		Repo:        "fedora",
		Summary:     "Interactive process viewer",
		Description: "htop is an interactive text-mode process viewer.",
	}

	fields := infoFields(p, "installed")

	want := []infoField{
		{"Name", "htop"},
		{"Version", "3.3.0"},
		{"Release", "5.fc41"},
		{"Arch", "x86_64"},
		{"Repo", "fedora"},
		{"Status", "installed"},
		{"Summary", "Interactive process viewer"},
		{"Description", "htop is an interactive text-mode process viewer."},
	}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("infoFields() = %v, want %v", fields, want)
	}
}

func TestInfoFieldsOptional(t *testing.T) {
	p := dnf.Package{
		Name:    "bash",
		Epoch:   "2",
		Version: "5.2.32",
		Release: "1.fc41",
		Arch:    "x86_64",
	}

	fields := infoFields(p, "available")

	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = f.label
	}
	want := []string{"Name", "Version", "Release", "Arch", "Epoch", "Status"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("infoFields() labels = %v, want %v", labels, want)
	}
}

func TestPadLabel(t *testing.T) {
	if got := padLabel("Name"); got != "Name:    " {
		t.Fatalf("padLabel(Name) = %q", got)
	}
	if got := padLabel("Version"); got != "Version: " {
		t.Fatalf("padLabel(Version) = %q", got)
	}
	if got := padLabel("Description"); got != "Description:" {
		t.Fatalf("padLabel(Description) = %q", got)
	}
}

func TestDepSections(t *testing.T) {
	d := dnf.Dependencies{
		Requires: []string{"libc.so.6"},
		Provides: []string{"htop"},
	}

	sections := depSections(d)
	if len(sections) != 4 {
		t.Fatalf("depSections() returned %d sections, want 4", len(sections))
	}

	titles := []string{"Requires:", "Provides:", "Conflicts:", "Obsoletes:"}
	for i, s := range sections {
		if s.title != titles[i] {
			t.Fatalf("section %d title = %q, want %q", i, s.title, titles[i])
		}
	}
	if len(sections[0].items) != 1 || len(sections[2].items) != 0 {
		t.Fatalf("depSections() items misplaced: %v", sections)
	}
}

func TestChangelogHeading(t *testing.T) {
	tests := []struct {
		name  string
		entry dnf.ChangeEntry
		want  string
	}{
		{
			name: "date and author",
			entry: dnf.ChangeEntry{
				Date:   time.Date(2024, 10, 8, 0, 0, 0, 0, time.UTC),
				Author: "Jane Doe <jane@example.org> - 3.3.0-5",
			},
			want: "2024-10-08 Jane Doe <jane@example.org> - 3.3.0-5",
		},
		{
			name:  "missing date",
			entry: dnf.ChangeEntry{Author: "Jane Doe"},
			want:  "unknown date Jane Doe",
		},
		{
			name: "missing author",
			entry: dnf.ChangeEntry{
				Date: time.Date(2024, 10, 8, 0, 0, 0, 0, time.UTC),
			},
			want: "2024-10-08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := changelogHeading(tt.entry); got != tt.want {
				t.Errorf("changelogHeading() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChangelogBody(t *testing.T) {
	e := dnf.ChangeEntry{Text: "- update to 3.3.0\n- drop stale patch\n"}
	want := []string{"- update to 3.3.0", "- drop stale patch"}
	if got := changelogBody(e); !reflect.DeepEqual(got, want) {
		t.Fatalf("changelogBody() = %v, want %v", got, want)
	}

	if got := changelogBody(dnf.ChangeEntry{}); got != nil {
		t.Fatalf("changelogBody(empty) = %v, want nil", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{
			name:  "simple wrap",
			input: "one two three four",
			width: 9,
			want:  []string{"one two", "three", "four"},
		},
		{
			name:  "fits on one line",
			input: "short",
			width: 40,
			want:  []string{"short"},
		},
		{
			name:  "long word gets its own line",
			input: "a verylongunbreakableword b",
			width: 10,
			want:  []string{"a", "verylongunbreakableword", "b"},
		},
		{
			name:  "paragraphs preserved",
			input: "first para\n\nsecond para",
			width: 40,
			want:  []string{"first para", "", "second para"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.input, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 8); got != "hello..." {
		t.Fatalf("truncate() = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate() = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate() = %q", got)
	}
	if got := truncate("anything", 0); got != "" {
		t.Fatalf("truncate() = %q", got)
	}
}

func TestTruncateMiddle(t *testing.T) {
	in := "/var/lib/dnf-ui/logs/dnf-ui.log"
	got := truncateMiddle(in, 20)
	if len(got) != 20 {
		t.Fatalf("truncateMiddle() length = %d, want 20", len(got))
	}
	if !strings.Contains(got, "...") {
		t.Fatalf("truncateMiddle() = %q, want ellipsis", got)
	}
	if !strings.HasSuffix(got, "dnf-ui.log"[len("dnf-ui.log")-5:]) {
		t.Fatalf("truncateMiddle() = %q, want end of input preserved", got)
	}
	if got := truncateMiddle("short", 20); got != "short" {
		t.Fatalf("truncateMiddle() = %q, want unchanged", got)
	}
}
