package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the bootstrap fields Etcher needs before the UI starts.
type Config struct {
	DaemonAddr   string
	SettingsPath string
	PrefsPath    string
	LogFile      string
	LogLevel     string
	PollInterval time.Duration
}

const (
	defaultConfigPath   = "~/.config/etcher/config.toml"
	defaultSettingsPath = "~/.config/etcher/settings.json"
	defaultPrefsPath    = "~/.config/etcher/prefs.toml"
	defaultLogFile      = "~/.local/state/etcher/etcher.log"
	defaultDaemonAddr   = "127.0.0.1:7489"
	defaultLogLevel     = "info"
	defaultPollInterval = time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DaemonAddr:   defaultDaemonAddr,
		SettingsPath: mustExpand(defaultSettingsPath),
		PrefsPath:    mustExpand(defaultPrefsPath),
		LogFile:      mustExpand(defaultLogFile),
		LogLevel:     defaultLogLevel,
		PollInterval: defaultPollInterval,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DaemonAddr   string `toml:"daemon_addr"`
		SettingsPath string `toml:"settings_path"`
		PrefsPath    string `toml:"prefs_path"`
		LogFile      string `toml:"log_file"`
		LogLevel     string `toml:"log_level"`
		PollInterval int    `toml:"poll_interval"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if addr := strings.TrimSpace(raw.DaemonAddr); addr != "" {
		cfg.DaemonAddr = addr
	}
	if p := strings.TrimSpace(raw.SettingsPath); p != "" {
		cfg.SettingsPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.PrefsPath); p != "" {
		cfg.PrefsPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.LogFile); p != "" {
		cfg.LogFile = mustExpand(p)
	}
	if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
		cfg.LogLevel = strings.ToLower(lvl)
	}
	if raw.PollInterval > 0 {
		cfg.PollInterval = time.Duration(raw.PollInterval) * time.Second
	}

	return cfg, nil
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

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
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
