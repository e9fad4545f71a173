package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigEmptyPathIsZeroValue(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, demoConfig{}, cfg)
}

func TestLoadConfigParsesYAML(t *testing.T) {
	path := writeTemp(t, "demo.yaml", "grammar: digits\nrecovery_enabled: true\n")
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, demoConfig{Grammar: "digits", RecoveryEnabled: true}, cfg)
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestBuildLoggerRaisesLevelUnderDebugOrTrace(t *testing.T) {
	debugFlag, traceFlag = false, false
	log := buildLogger()
	require.False(t, log.Core().Enabled(zapcore.DebugLevel))

	debugFlag = true
	log = buildLogger()
	require.True(t, log.Core().Enabled(zapcore.DebugLevel))
	debugFlag = false
}

// TestRunDemoDigitsDiagnosticOutput snapshots the CLI's printed output for
// a successful parse, the same way CWBudde-go-dws's fixture harness
// snapshots interpreter output it has no hand-authored expectation file for.
func TestRunDemoDigitsDiagnosticOutput(t *testing.T) {
	input := writeTemp(t, "digits.txt", "[1, 2, 3]")
	configFlag = ""

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = runDemo("digits", input, false)
	})
	require.NoError(t, runErr)
	snaps.MatchSnapshot(t, "digits success output", stdout)
}

func TestRunDemoUnknownGrammarErrors(t *testing.T) {
	input := writeTemp(t, "in.txt", "[1]")
	configFlag = ""

	err := runDemo("nope", input, false)
	require.Error(t, err)
	snaps.MatchSnapshot(t, "unknown grammar error", err.Error())
}
