// Package prefs handles dnf-ui user preferences persistence.
// Preferences are stored in ~/.config/dnf-ui/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds the settings the user changes from inside the application:
// the color theme, the list/detail pane split, and the search-mode flags,
// which come back in the state they were left in.
type Prefs struct {
	Theme          string `toml:"theme"`
	SplitPercent   int    `toml:"split_percent"`
	InDescriptions bool   `toml:"search_descriptions"`
	Exact          bool   `toml:"search_exact"`
}

const (
	defaultPrefsPath = "~/.config/dnf-ui/prefs.toml"
	defaultTheme     = "Dracula"
	defaultSplit     = 50
	minSplit         = 20
	maxSplit         = 80
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if
// missing or unreadable. Preferences are never worth failing startup over.
func Load(path string) (Prefs, error) {
	defaults := Prefs{Theme: defaultTheme, SplitPercent: defaultSplit}

	resolved, err := resolvePath(path)
	if err != nil {
		return defaults, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return defaults, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return defaults, nil // Graceful degradation
	}

	prefs := defaults
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return defaults, nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	prefs.SplitPercent = clampSplit(prefs.SplitPercent)

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	p.SplitPercent = clampSplit(p.SplitPercent)
	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// clampSplit keeps the pane split usable: zero means unset, anything else is
// pulled into range so a hand-edited file cannot hide a pane entirely.
func clampSplit(v int) int {
	switch {
	case v == 0:
		return defaultSplit
	case v < minSplit:
		return minSplit
	case v > maxSplit:
		return maxSplit
	default:
		return v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
