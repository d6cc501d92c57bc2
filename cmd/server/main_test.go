package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/technosupport/site-safety/internal/config"
	"github.com/technosupport/site-safety/internal/logs"
)

func testApp(out *bytes.Buffer) *cli.App {
	return &cli.App{
		Name:   "site-safety",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
			&cli.StringSliceFlag{Name: "env-file"},
			&cli.BoolFlag{Name: "debug"},
		},
		Commands: []*cli.Command{logsCommand(), versionCommand()},
	}
}

func TestLogsCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "detection_logs.txt"), []byte(
		"a - info: [c] Detected 1 persons, 1 helmets, 1 harnesses in 2.5ms\n"+
			"b - info: [c] Detected 2 persons, 0 helmets, 0 harnesses in 3ms\n"), 0644))
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage:\n  data_root: "+dir+"\n"), 0644))
	t.Setenv("SAFETY_DATA_ROOT", "")

	var out bytes.Buffer
	err := testApp(&out).Run([]string{"site-safety", "--config", cfgPath, "logs", "--limit", "1"})
	require.NoError(t, err)

	var page logs.Page
	require.NoError(t, json.Unmarshal(out.Bytes(), &page))
	assert.Equal(t, 2, page.TotalLogs)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, "b", page.Logs[0].Timestamp)
}

func TestLogsCommand_InvalidPage(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage:\n  data_root: "+t.TempDir()+"\n"), 0644))

	var out bytes.Buffer
	err := testApp(&out).Run([]string{"site-safety", "--config", cfgPath, "logs", "--page", "0"})
	assert.ErrorIs(t, err, logs.ErrInvalidArgument)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, testApp(&out).Run([]string{"site-safety", "version"}))
	assert.Contains(t, out.String(), "Version:    dev")
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(config.LoggingConfig{Level: "warn", Format: "json"}, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = newLogger(config.LoggingConfig{Level: "bogus", Format: "console"}, false)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = newLogger(config.LoggingConfig{}, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
