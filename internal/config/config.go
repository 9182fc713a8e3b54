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

	"github.com/five82/prlogs/internal/buildlog"
)

// Config captures the user settings for prlogs.
type Config struct {
	Repo                string
	RefreshInterval     time.Duration // zero means reload only on request
	MaxLinesPerStep     int
	FetchConcurrency    int
	AutoExpandFailures  bool
	SortFailedFirst     bool
	DropEmptySystemJobs bool
	LogFile             string
	LogLevel            string
}

const (
	defaultConfigPath       = "~/.config/prlogs/config.toml"
	defaultLogFile          = "~/.local/state/prlogs/debug.log"
	defaultLogLevel         = "debug"
	defaultMaxLinesPerStep  = 5000
	defaultFetchConcurrency = 4
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		MaxLinesPerStep:     defaultMaxLinesPerStep,
		FetchConcurrency:    defaultFetchConcurrency,
		AutoExpandFailures:  true,
		SortFailedFirst:     true,
		DropEmptySystemJobs: true,
		LogFile:             mustExpand(defaultLogFile),
		LogLevel:            defaultLogLevel,
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
		Repo                string `toml:"repo"`
		RefreshInterval     int    `toml:"refresh_interval"`
		MaxLinesPerStep     *int   `toml:"max_lines_per_step"`
		FetchConcurrency    int    `toml:"fetch_concurrency"`
		AutoExpandFailures  *bool  `toml:"auto_expand_failures"`
		SortFailedFirst     *bool  `toml:"sort_failed_first"`
		DropEmptySystemJobs *bool  `toml:"drop_empty_system_jobs"`
		LogFile             string `toml:"log_file"`
		LogLevel            string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Repo = strings.TrimSpace(raw.Repo)
	if raw.RefreshInterval > 0 {
		cfg.RefreshInterval = time.Duration(raw.RefreshInterval) * time.Second
	}
	if raw.MaxLinesPerStep != nil && *raw.MaxLinesPerStep >= 0 {
		cfg.MaxLinesPerStep = *raw.MaxLinesPerStep
	}
	if raw.FetchConcurrency > 0 {
		cfg.FetchConcurrency = raw.FetchConcurrency
	}
	if raw.AutoExpandFailures != nil {
		cfg.AutoExpandFailures = *raw.AutoExpandFailures
	}
	if raw.SortFailedFirst != nil {
		cfg.SortFailedFirst = *raw.SortFailedFirst
	}
	if raw.DropEmptySystemJobs != nil {
		cfg.DropEmptySystemJobs = *raw.DropEmptySystemJobs
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// PanelOptions maps the tree settings onto the navigator panel.
func (c Config) PanelOptions() buildlog.PanelOptions {
	return buildlog.PanelOptions{
		Build: buildlog.BuildOptions{
			SortFailedFirst:     c.SortFailedFirst,
			DropEmptySystemJobs: c.DropEmptySystemJobs,
			MaxLinesPerStep:     c.MaxLinesPerStep,
		},
		AutoExpandFailures: c.AutoExpandFailures,
	}
}

// LogPath returns the debug log file, using the default when unset.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return mustExpand(defaultLogFile)
	}
	return c.LogFile
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
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
