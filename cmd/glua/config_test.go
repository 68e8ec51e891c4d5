package main

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeConfig(t *testing.T) {
	testCases := []struct {
		yaml string
		cfg  Config
	}{
		{"", Config{Prompt: "> ", HistoryFile: "hist"}},
		{
			"debug: true\nprompt: 'lua> '\nhistory_file: /tmp/h\nmax_call_depth: 100\ncheck: true\n",
			Config{Debug: true, Prompt: "lua> ", HistoryFile: "/tmp/h", MaxCallDepth: 100, Check: true},
		},
		{"prompt: ''\n", Config{Prompt: "> ", HistoryFile: "hist"}},
		{"# only a comment\n", Config{Prompt: "> ", HistoryFile: "hist"}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		cfg, err := decodeConfig(strings.NewReader(tc.yaml), Config{Prompt: "> ", HistoryFile: "hist"})
		assert.NoError(err, tc.yaml)
		assert.Equal(tc.cfg, cfg, tc.yaml)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := decodeConfig(strings.NewReader("max_call_depth: -1\n"), defaultConfig())
	assert.EqualError(err, "parse config: max_call_depth must not be negative, got -1")

	_, err = decodeConfig(strings.NewReader("colour: red\n"), defaultConfig())
	if assert.Error(err) {
		assert.True(strings.HasPrefix(err.Error(), "parse config: "))
	}

	_, err = decodeConfig(strings.NewReader("debug: [1, 2]\n"), defaultConfig())
	assert.Error(err)
}

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	cfg, err := loadConfig("")
	assert.NoError(err)
	assert.Equal(defaultConfig(), cfg)

	path := writeFile(t, "glua.yaml", "prompt: '$ '\n")
	cfg, err = loadConfig(path)
	assert.NoError(err)
	assert.Equal("$ ", cfg.Prompt)
	assert.Equal(defaultConfig().HistoryFile, cfg.HistoryFile)

	_, err = loadConfig(path + ".missing")
	assert.ErrorIs(err, fs.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	assert := assert.New(t)
	t.Setenv(debugEnv, "")
	ctx := context.Background()

	var out bytes.Buffer
	logger := newLogger(&out, false)
	assert.False(logger.Enabled(ctx, slog.LevelDebug))
	assert.True(logger.Enabled(ctx, slog.LevelWarn))

	logger.Warn("careful", "n", 1)
	assert.Equal("level=WARN msg=careful n=1\n", out.String())

	assert.True(newLogger(&out, true).Enabled(ctx, slog.LevelDebug))

	t.Setenv(debugEnv, "1")
	assert.True(newLogger(&out, false).Enabled(ctx, slog.LevelDebug))
}
