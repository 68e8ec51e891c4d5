package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// debugEnv enables debug logging regardless of flags and config.
const debugEnv = "GLUA_DEBUG"

// Config holds the settings read from the YAML config file.
type Config struct {
	Debug        bool   `yaml:"debug"`
	Prompt       string `yaml:"prompt"`
	HistoryFile  string `yaml:"history_file"`
	MaxCallDepth int    `yaml:"max_call_depth"`
	Check        bool   `yaml:"check"`
}

func defaultConfig() Config {
	history := ".glua_history"
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, history)
	}
	return Config{
		Prompt:      "> ",
		HistoryFile: history,
	}
}

// loadConfig reads the config at path on top of the defaults. An empty path
// gives the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return decodeConfig(f, cfg)
}

func decodeConfig(r io.Reader, cfg Config) (Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.MaxCallDepth < 0 {
		return cfg, fmt.Errorf("parse config: max_call_depth must not be negative, got %d", cfg.MaxCallDepth)
	}
	return cfg, nil
}

// newLogger creates the debug logger. When debugging is off, everything
// below the warning level is dropped.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug || os.Getenv(debugEnv) != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
