package dnf

import (
	"reflect"
	"sort"
	"testing"
)

func testUniverse() *Index {
	installed := []Package{
		{Name: "bash", Version: "5.2.26", Release: "3.fc40", Arch: "x86_64", Repo: "@System", Summary: "The GNU Bourne Again shell"},
		{Name: "zsh", Version: "5.9", Release: "5.fc40", Arch: "x86_64", Repo: "@System", Summary: "Powerful interactive shell"},
	}
	available := []Package{
		{Name: "bash", Version: "5.2.26", Release: "3.fc40", Arch: "x86_64", Repo: "fedora", Summary: "The GNU Bourne Again shell", Description: "Bash is the GNU Project's shell."},
		{Name: "bash-completion", Version: "2.11", Release: "12.fc40", Arch: "noarch", Repo: "fedora", Summary: "Programmable completion for Bash", Description: "Programmable completion functions for the bash shell."},
		{Name: "fish", Version: "3.7.1", Release: "1.fc40", Arch: "x86_64", Repo: "updates", Summary: "Friendly interactive shell", Description: "fish is a fully-equipped command line shell."},
		{Name: "Bashful", Version: "1.0", Release: "1.fc40", Arch: "noarch", Repo: "copr", Summary: "Terminal task runner", Description: "Run tasks concurrently with a pretty UI."},
		{Name: "zsh", Version: "5.9", Release: "5.fc40", Arch: "x86_64", Repo: "fedora", Summary: "Powerful interactive shell", Description: "The Z shell."},
	}
	return NewIndex(installed, available)
}

func names(pkgs []Package) []string {
	if len(pkgs) == 0 {
		return nil
	}
	out := make([]string, len(pkgs))
	for i, p := range pkgs {
		out[i] = p.Name
	}
	return out
}

func TestIndexSearchModes(t *testing.T) {
	ix := testUniverse()

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{
			name: "contains is case-sensitive",
			q:    Query{Term: "bash"},
			want: []string{"bash", "bash-completion"},
		},
		{
			name: "contains does not match different case",
			q:    Query{Term: "Bash"},
			want: []string{"Bashful"},
		},
		{
			name: "exact matches whole name only",
			q:    Query{Term: "bash", Exact: true},
			want: []string{"bash"},
		},
		{
			name: "exact misses substring",
			q:    Query{Term: "ba", Exact: true},
			want: nil,
		},
		{
			name: "descriptions are case-insensitive",
			q:    Query{Term: "SHELL", InDescriptions: true},
			want: []string{"bash", "bash-completion", "fish", "zsh"},
		},
		{
			name: "descriptions with exact ignores case on name",
			q:    Query{Term: "BASHFUL", InDescriptions: true, Exact: true},
			want: []string{"Bashful"},
		},
		{
			name: "impossible term returns empty",
			q:    Query{Term: "___definitely_not_a_real_package_123456___"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(ix.Search(tt.q))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%+v) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestIndexSearchExactSubsetOfContains(t *testing.T) {
	ix := testUniverse()
	for _, term := range []string{"bash", "zsh", "shell", "fish"} {
		contains := names(ix.Search(Query{Term: term}))
		exact := names(ix.Search(Query{Term: term, Exact: true}))
		if len(exact) > len(contains) {
			t.Fatalf("term %q: exact returned %d results, contains %d", term, len(exact), len(contains))
		}
		for _, name := range exact {
			if !containsString(contains, name) {
				t.Errorf("term %q: exact result %q missing from contains results", term, name)
			}
		}
	}
}

func TestIndexSearchDescriptionsSupersetOfNameOnly(t *testing.T) {
	ix := testUniverse()
	for _, term := range []string{"shell", "bash", "task"} {
		nameOnly := names(ix.Search(Query{Term: term}))
		wide := names(ix.Search(Query{Term: term, InDescriptions: true}))
		if len(wide) < len(nameOnly) {
			t.Fatalf("term %q: description search returned fewer results (%d) than name-only (%d)", term, len(wide), len(nameOnly))
		}
		for _, name := range nameOnly {
			if !containsString(wide, name) {
				t.Errorf("term %q: name-only result %q missing from description results", term, name)
			}
		}
	}
}

func TestIndexSearchResultsSorted(t *testing.T) {
	ix := testUniverse()
	got := ix.Search(Query{Term: "s", InDescriptions: true})
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].NEVRA() < got[j].NEVRA() }) {
		t.Errorf("results not sorted by NEVRA: %v", names(got))
	}
}

func TestIndexInstalledFlagMerging(t *testing.T) {
	ix := testUniverse()

	results := ix.Search(Query{Term: "bash"})
	for _, p := range results {
		switch p.Name {
		case "bash":
			if !p.Installed {
				t.Errorf("bash is installed but search result says otherwise")
			}
		case "bash-completion":
			if p.Installed {
				t.Errorf("bash-completion is not installed but search result says it is")
			}
		}
	}

	installed := ix.Installed()
	if got := names(installed); !reflect.DeepEqual(got, []string{"bash", "zsh"}) {
		t.Errorf("Installed() = %v, want [bash zsh]", got)
	}
	for _, p := range installed {
		if !p.Installed {
			t.Errorf("%s from Installed() has Installed=false", p.Name)
		}
	}
}

func TestIndexGetPrefersInstalledCopy(t *testing.T) {
	ix := testUniverse()

	p, ok := ix.Get("bash-5.2.26-3.fc40.x86_64")
	if !ok {
		t.Fatal("bash not found")
	}
	if p.Repo != "@System" {
		t.Errorf("Get returned repo %q, want the installed copy (@System)", p.Repo)
	}

	if _, ok := ix.Get("nope-1.0-1.x86_64"); ok {
		t.Error("Get returned a package for an unknown NEVRA")
	}
}

func TestIndexLenCountsDistinct(t *testing.T) {
	ix := testUniverse()
	// bash and zsh appear in both subsets; five distinct names, six entries.
	if ix.Len() != 5 {
		t.Errorf("Len() = %d, want 5", ix.Len())
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
