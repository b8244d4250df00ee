package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestDriver(t *testing.T, logLevel string) (*driver, *bytes.Buffer) {
	t.Helper()

	buff := &bytes.Buffer{}
	d, err := newDriver("", logLevel, buff)
	require.NoError(t, err)
	return d, buff
}

func output(buff *bytes.Buffer) string {
	return pterm.RemoveColorFromString(buff.String())
}

func TestNewDriverMissingConfig(t *testing.T) {
	_, err := newDriver(filepath.Join(t.TempDir(), "minic.toml"), "", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewDriverLogLevelOverride(t *testing.T) {
	path := writeSource(t, t.TempDir(), "minic.toml", "[compiler]\nlog-level = \"error\"\njobs = 2\n")

	d, err := newDriver(path, "", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "error", d.cfg.LogLevelName)
	assert.Equal(t, 2, d.cfg.Jobs)

	d, err = newDriver(path, "silent", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "silent", d.cfg.LogLevelName)
	assert.Equal(t, 0, d.rep.LogLevel())
}

func TestScan(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.mc", "main { x = 1; }")
	d, buff := newTestDriver(t, "verbose")

	d.scan(path)

	out := output(buff)
	assert.Contains(t, out, "MAIN")
	assert.Contains(t, out, "SEMICOLON")
	assert.Equal(t, 0, d.exitCode())
}

func TestScanReportsLexicalErrors(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.mc", "main { x = 32.algo; }")
	d, buff := newTestDriver(t, "verbose")

	d.scan(path)

	assert.Contains(t, output(buff), "malformed fractional part '.algo'")
	assert.Equal(t, 1, d.exitCode())
}

func TestParseTreeAndDump(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.mc", "main { x = 3 + 4; }")
	d, buff := newTestDriver(t, "verbose")

	d.parse(path, true, true)

	out := output(buff)
	assert.Contains(t, out, "Program (1:1)")
	assert.Contains(t, out, "BinaryExpr + (1:14)")
	assert.Contains(t, out, "ast.Program")
	assert.Equal(t, 0, d.exitCode())
}

func TestCheckFile(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.mc", "main {\n  int x;\n  x = y;\n}\n")
	d, buff := newTestDriver(t, "verbose")

	d.check(context.Background(), path, true)

	out := output(buff)
	assert.Contains(t, out, "variable 'y' not declared")
	assert.Contains(t, out, path+":3:7")
	assert.Contains(t, out, "int")
	assert.Equal(t, 1, d.exitCode())
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.mc", "main { a = 1; }")
	writeSource(t, dir, "b.mc", "main { int b; b = 2; }")
	writeSource(t, dir, "c.mc", "main { c = 3; }")
	writeSource(t, dir, "notes.txt", "main { d = 4; }")

	d, buff := newTestDriver(t, "verbose")
	d.check(context.Background(), dir, false)
	d.rep.ReportFinished()

	out := output(buff)
	first := strings.Index(out, "variable 'a' not declared")
	second := strings.Index(out, "variable 'c' not declared")
	require.True(t, first >= 0 && second >= 0, out)
	assert.Less(t, first, second)
	assert.NotContains(t, out, "variable 'd'")
	assert.Contains(t, out, "1 of 3 files passed")
	assert.Contains(t, out, "Oh no! (2 errors, 0 warnings)")

	errs, warns := d.rep.Counts()
	assert.Equal(t, 2, errs)
	assert.Equal(t, 0, warns)
}

func TestCheckMissingPath(t *testing.T) {
	d, _ := newTestDriver(t, "silent")

	d.check(context.Background(), filepath.Join(t.TempDir(), "missing.mc"), false)
	assert.Equal(t, 1, d.exitCode())
}

func TestSilentDriverStillCounts(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.mc", "main { x = 4 / 0; }")
	d, buff := newTestDriver(t, "silent")

	d.check(context.Background(), path, false)
	d.rep.ReportFinished()

	assert.Empty(t, buff.String())
	errs, warns := d.rep.Counts()
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, warns)
}
