package history

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func openStore(t *testing.T, limit int) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"), limit)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func addAll(t *testing.T, s *Store, terms ...string) {
	t.Helper()
	ctx := context.Background()
	for _, term := range terms {
		if err := s.Add(ctx, term); err != nil {
			t.Fatalf("Add(%q): %v", term, err)
		}
	}
}

func recent(t *testing.T, s *Store) []string {
	t.Helper()
	terms, err := s.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	return terms
}

func TestRecentOrdersMostRecentFirst(t *testing.T) {
	s := openStore(t, 10)
	addAll(t, s, "bash", "vim", "htop")

	if got, want := recent(t, s), []string{"htop", "vim", "bash"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Recent() = %v, want %v", got, want)
	}
}

func TestAddMovesRepeatedTermToFront(t *testing.T) {
	s := openStore(t, 10)
	addAll(t, s, "bash", "vim", "bash")

	got := recent(t, s)
	if want := []string{"bash", "vim"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Recent() = %v, want %v (no duplicates, repeated term first)", got, want)
	}
}

func TestAddIgnoresBlankTerms(t *testing.T) {
	s := openStore(t, 10)
	addAll(t, s, "", "   ", "bash")

	if got, want := recent(t, s), []string{"bash"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Recent() = %v, want %v", got, want)
	}
}

func TestTrimsToLimit(t *testing.T) {
	s := openStore(t, 3)
	addAll(t, s, "one", "two", "three", "four", "five")

	if got, want := recent(t, s), []string{"five", "four", "three"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Recent() = %v, want %v", got, want)
	}
}

func TestClear(t *testing.T) {
	s := openStore(t, 10)
	addAll(t, s, "bash", "vim")

	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := recent(t, s); len(got) != 0 {
		t.Errorf("Recent() = %v after Clear, want empty", got)
	}
}

func TestRecentSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(ctx, path, 10)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	addAll(t, s, "bash", "vim")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(ctx, path, 10)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if got, want := recent(t, s), []string{"vim", "bash"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Recent() after reopen = %v, want %v", got, want)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "", 10); err == nil {
		t.Fatal("Open with an empty path should fail")
	}
}
