package dnf

import (
	"errors"
	"strings"
	"testing"
)

func record(fields ...string) string {
	return strings.Join(fields, fieldSep) + recordSep
}

func TestParseRepoquery(t *testing.T) {
	out := record("bash", "0", "5.2.26", "3.fc40", "x86_64", "fedora", "The GNU Bourne Again shell", "Bash is the shell.") +
		record("vim-enhanced", "2", "9.1.158", "1.fc40", "x86_64", "updates", "A version of the VIM editor", "VIM is an improved version of vi.\n\nIt adds many features.") +
		record("weird", "(none)", "1.0", "1", "noarch", "copr", "odd epoch", "rpm sometimes prints (none).")

	pkgs := parseRepoquery([]byte(out), false)
	if len(pkgs) != 3 {
		t.Fatalf("parsed %d packages, want 3", len(pkgs))
	}

	if pkgs[0].Epoch != "" {
		t.Errorf("zero epoch should normalize to empty, got %q", pkgs[0].Epoch)
	}
	if pkgs[1].Epoch != "2" {
		t.Errorf("epoch = %q, want 2", pkgs[1].Epoch)
	}
	if pkgs[2].Epoch != "" {
		t.Errorf("(none) epoch should normalize to empty, got %q", pkgs[2].Epoch)
	}

	// Descriptions keep interior newlines; only the edges are trimmed.
	wantDesc := "VIM is an improved version of vi.\n\nIt adds many features."
	if pkgs[1].Description != wantDesc {
		t.Errorf("description = %q, want %q", pkgs[1].Description, wantDesc)
	}

	for _, p := range pkgs {
		if p.Installed {
			t.Errorf("%s parsed with Installed=true from an available query", p.Name)
		}
	}
}

func TestParseRepoqueryInstalledFlag(t *testing.T) {
	out := record("bash", "0", "5.2.26", "3.fc40", "x86_64", "@System", "shell", "desc")
	pkgs := parseRepoquery([]byte(out), true)
	if len(pkgs) != 1 || !pkgs[0].Installed {
		t.Fatalf("installed query should mark packages installed, got %+v", pkgs)
	}
}

func TestParseRepoquerySkipsMalformed(t *testing.T) {
	out := record("bash", "0", "5.2.26", "3.fc40", "x86_64", "fedora", "shell", "desc") +
		"garbage without separators" + recordSep +
		record("", "0", "1.0", "1", "noarch", "fedora", "no name", "desc") +
		record("noversion", "0", "", "1", "noarch", "fedora", "no version", "desc") +
		record("short", "0", "1.0") +
		record("zsh", "0", "5.9", "5.fc40", "x86_64", "fedora", "shell", "desc") +
		"\n  \n"

	pkgs := parseRepoquery([]byte(out), false)
	if len(pkgs) != 2 {
		t.Fatalf("parsed %d packages, want 2 (malformed records skipped)", len(pkgs))
	}
	if pkgs[0].Name != "bash" || pkgs[1].Name != "zsh" {
		t.Errorf("parsed names %q, %q; want bash, zsh", pkgs[0].Name, pkgs[1].Name)
	}
}

func TestParseRepoqueryEmpty(t *testing.T) {
	if pkgs := parseRepoquery(nil, false); len(pkgs) != 0 {
		t.Errorf("empty output parsed to %d packages", len(pkgs))
	}
}

func TestNormalizeEpoch(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", ""},
		{"(none)", ""},
		{" 0 ", ""},
		{"1", "1"},
		{"2", "2"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeEpoch(tt.in); got != tt.want {
			t.Errorf("normalizeEpoch(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTransactionScript(t *testing.T) {
	tests := []struct {
		name     string
		installs []string
		removes  []string
		want     string
	}{
		{
			name:     "installs and removes",
			installs: []string{"htop-3.3.0-2.fc40.x86_64", "tmux-3.4-1.fc40.x86_64"},
			removes:  []string{"nano-7.2-7.fc40.x86_64"},
			want:     "install htop-3.3.0-2.fc40.x86_64\ninstall tmux-3.4-1.fc40.x86_64\nremove nano-7.2-7.fc40.x86_64\nrun\n",
		},
		{
			name:     "installs only",
			installs: []string{"htop-3.3.0-2.fc40.x86_64"},
			want:     "install htop-3.3.0-2.fc40.x86_64\nrun\n",
		},
		{
			name:    "removes only",
			removes: []string{"nano-7.2-7.fc40.x86_64"},
			want:    "remove nano-7.2-7.fc40.x86_64\nrun\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transactionScript(tt.installs, tt.removes); got != tt.want {
				t.Errorf("transactionScript() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyApply(t *testing.T) {
	exitErr := errors.New("exit status 1")

	tests := []struct {
		name   string
		out    string
		runErr error
		want   error
	}{
		{
			name: "clean run",
			out:  "Transaction complete.",
			want: nil,
		},
		{
			// dnf exits 0 for an empty transaction, so the text must win
			// over the exit status.
			name: "nothing to do with zero exit",
			out:  "Nothing to do.\nComplete!",
			want: ErrNothingToDo,
		},
		{
			name:   "nothing to do with nonzero exit",
			out:    "Nothing to do.",
			runErr: exitErr,
			want:   ErrNothingToDo,
		},
		{
			name:   "unknown package",
			out:    "No match for argument: notapackage\nError: Unable to find a match",
			runErr: exitErr,
			want:   ErrUnresolved,
		},
		{
			name:   "dependency conflict",
			out:    "Problem: conflicting requests\n  - nothing provides libfoo needed by bar",
			runErr: exitErr,
			want:   ErrUnresolved,
		},
		{
			name:   "cannot install both",
			out:    "Error: cannot install both foo-1 and foo-2",
			runErr: exitErr,
			want:   ErrUnresolved,
		},
		{
			name:   "other failure",
			out:    "Error: Failed to download metadata",
			runErr: exitErr,
			want:   ErrTransactionFailed,
		},
		{
			name:   "failure with no output",
			out:    "",
			runErr: exitErr,
			want:   ErrTransactionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyApply(tt.out, tt.runErr)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("classifyApply() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("classifyApply() = %v, want errors.Is %v", err, tt.want)
			}
		})
	}
}

func TestClassifyApplyKeepsDetail(t *testing.T) {
	err := classifyApply("Problem: conflicting requests\n  - package foo requires bar", errors.New("exit status 1"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "conflicting requests") {
		t.Errorf("error %q lost the dnf detail", err)
	}
}

func TestRPMName(t *testing.T) {
	tests := []struct {
		pkg  Package
		want string
	}{
		{
			pkg:  Package{Name: "bash", Version: "5.2.26", Release: "3.fc40", Arch: "x86_64"},
			want: "bash-5.2.26-3.fc40.x86_64",
		},
		{
			// rpm does not take the epoch in this form.
			pkg:  Package{Name: "vim-enhanced", Epoch: "2", Version: "9.1.158", Release: "1.fc40", Arch: "x86_64"},
			want: "vim-enhanced-9.1.158-1.fc40.x86_64",
		},
	}
	for _, tt := range tests {
		if got := rpmName(tt.pkg); got != tt.want {
			t.Errorf("rpmName(%s) = %q, want %q", tt.pkg.Name, got, tt.want)
		}
	}
}

func TestTailLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"fewer than n", "one\ntwo", 4, "one; two"},
		{"exactly n", "one\ntwo\nthree", 3, "one; two; three"},
		{"more than n", "one\ntwo\nthree\nfour", 2, "three; four"},
		{"blank lines skipped", "one\n\n  \ntwo\n", 2, "one; two"},
		{"empty", "", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tailLines(tt.in, tt.n); got != tt.want {
				t.Errorf("tailLines(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	in := []byte("/usr/bin/bash\n\n  /usr/share/doc/bash  \n")
	got := splitLines(in)
	want := []string{"/usr/bin/bash", "/usr/share/doc/bash"}
	if len(got) != len(want) {
		t.Fatalf("splitLines returned %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
