package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/prlogs/internal/config"
)

// setupLogging sends logs to the configured file when debugging is on
// (--debug or DEBUG set). Otherwise only fatal messages reach stderr, since
// the TUI owns the terminal.
func setupLogging(debug bool, configPath string) error {
	if _, ok := os.LookupEnv("DEBUG"); ok {
		debug = true
	}
	if !debug {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.FatalLevel)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(file)
	log.SetTimeFormat("15:04:05.000")
	log.SetReportCaller(true)

	level := cfg.LogLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	log.SetLevel(parseLevel(level))
	log.Debug("logging to file", "path", path, "level", log.GetLevel())
	return nil
}

func parseLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.DebugLevel
	}
}
