package cache

import (
	"sync"
	"testing"

	"github.com/ErikMN/dnf-ui/internal/dnf"
)

func TestInstalledSetReplace(t *testing.T) {
	s := NewInstalledSet()

	if s.HasNEVRA("bash-5.2-1.fc40.x86_64") || s.HasName("bash") {
		t.Fatal("empty set reported a member")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}

	s.Replace([]dnf.Package{
		{Name: "bash", Version: "5.2", Release: "1.fc40", Arch: "x86_64"},
		{Name: "zsh", Version: "5.9", Release: "5.fc40", Arch: "x86_64"},
	})

	if !s.HasNEVRA("bash-5.2-1.fc40.x86_64") {
		t.Error("exact build missing after Replace")
	}
	if !s.HasName("zsh") {
		t.Error("name missing after Replace")
	}
	if s.HasNEVRA("bash-9.9-1.fc40.x86_64") {
		t.Error("different build of an installed name reported as installed")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestInstalledSetReplaceDropsOldMembers(t *testing.T) {
	s := NewInstalledSet()
	s.Replace([]dnf.Package{{Name: "bash", Version: "5.2", Release: "1.fc40", Arch: "x86_64"}})
	s.Replace([]dnf.Package{{Name: "fish", Version: "3.7.1", Release: "1.fc40", Arch: "x86_64"}})

	if s.HasName("bash") {
		t.Error("bash survived a Replace that removed it")
	}
	if !s.HasName("fish") {
		t.Error("fish missing after Replace")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestInstalledSetNameVersusBuild(t *testing.T) {
	s := NewInstalledSet()
	s.Replace([]dnf.Package{{Name: "vim-enhanced", Epoch: "2", Version: "9.1.158", Release: "1.fc40", Arch: "x86_64"}})

	if !s.HasNEVRA("vim-enhanced-2:9.1.158-1.fc40.x86_64") {
		t.Error("epoch-qualified NEVRA missing")
	}
	if !s.HasName("vim-enhanced") {
		t.Error("name missing")
	}
	if s.HasName("vim") {
		t.Error("name lookup matched a prefix instead of the whole name")
	}
}

func TestInstalledSetConcurrentAccess(t *testing.T) {
	s := NewInstalledSet()
	pkgs := []dnf.Package{{Name: "bash", Version: "5.2", Release: "1.fc40", Arch: "x86_64"}}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.HasName("bash")
				s.HasNEVRA("bash-5.2-1.fc40.x86_64")
				s.Len()
			}
		}()
	}
	for i := 0; i < 100; i++ {
		s.Replace(pkgs)
	}
	wg.Wait()

	if !s.HasName("bash") {
		t.Error("bash missing after concurrent replaces")
	}
}
