package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the runtime settings for dnf-ui.
type Config struct {
	DNFBin       string
	RPMBin       string
	CacheSize    int
	HistoryPath  string
	HistoryLimit int
	LogPath      string
	LogLevel     string
}

const (
	defaultConfigPath   = "~/.config/dnf-ui/config.toml"
	defaultDataDir      = "~/.local/share/dnf-ui"
	defaultDNFBin       = "dnf5"
	defaultRPMBin       = "rpm"
	defaultCacheSize    = 128
	defaultHistoryLimit = 50
	defaultLogLevel     = "info"
)

// Load locates and parses the dnf-ui config, falling back to defaults when
// the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DNFBin       string `toml:"dnf_bin"`
		RPMBin       string `toml:"rpm_bin"`
		CacheSize    int    `toml:"cache_size"`
		HistoryPath  string `toml:"history_path"`
		HistoryLimit int    `toml:"history_limit"`
		LogPath      string `toml:"log_path"`
		LogLevel     string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := defaults()

	if bin := strings.TrimSpace(raw.DNFBin); bin != "" {
		cfg.DNFBin = bin
	}
	if bin := strings.TrimSpace(raw.RPMBin); bin != "" {
		cfg.RPMBin = bin
	}
	if raw.CacheSize > 0 {
		cfg.CacheSize = raw.CacheSize
	}
	if p := strings.TrimSpace(raw.HistoryPath); p != "" {
		cfg.HistoryPath = mustExpand(p)
	}
	if raw.HistoryLimit > 0 {
		cfg.HistoryLimit = raw.HistoryLimit
	}
	if p := strings.TrimSpace(raw.LogPath); p != "" {
		cfg.LogPath = mustExpand(p)
	}
	if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}

	return cfg, nil
}

func defaults() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		DNFBin:       defaultDNFBin,
		RPMBin:       defaultRPMBin,
		CacheSize:    defaultCacheSize,
		HistoryPath:  filepath.Join(dataDir, "history.db"),
		HistoryLimit: defaultHistoryLimit,
		LogPath:      filepath.Join(dataDir, "dnf-ui.log"),
		LogLevel:     defaultLogLevel,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
