package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticJSON(t *testing.T) {
	d := Raise(PhaseSyntactic, Position{Offset: 12, Line: 2, Column: 5}, 1, "expected %s but found %s", "';'", "'y'").
		WithToken("y", "ID")

	b, err := json.Marshal(d)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &fields))

	assert.Equal(t, "syntactic", fields["phase"])
	assert.Equal(t, "error", fields["severity"])
	assert.Equal(t, "expected ';' but found 'y'", fields["message"])
	assert.Equal(t, float64(2), fields["line"])
	assert.Equal(t, float64(5), fields["column"])
	assert.Equal(t, "ID", fields["token_kind"])

	var back Diagnostic
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, *d, back)
}

func TestDiagnosticJSONOmitsEmptyToken(t *testing.T) {
	d := Warn(PhaseSemantic, Position{Line: 1, Column: 1}, 1, "division by zero")

	b, err := json.Marshal(d)
	require.NoError(t, err)

	assert.NotContains(t, string(b), "lexeme")
	assert.Contains(t, string(b), `"severity":"warning"`)
}

func TestPhaseUnmarshalRejectsUnknown(t *testing.T) {
	var p Phase
	assert.Error(t, json.Unmarshal([]byte(`"codegen"`), &p))
}

func TestCountAndSort(t *testing.T) {
	diags := []*Diagnostic{
		Raise(PhaseSemantic, Position{Offset: 9, Line: 1, Column: 10}, 1, "c"),
		Warn(PhaseSemantic, Position{Offset: 3, Line: 1, Column: 4}, 1, "b"),
		Raise(PhaseLexical, Position{Offset: 3, Line: 1, Column: 4}, 1, "a"),
	}

	errs, warns := CountBySeverity(diags)
	assert.Equal(t, 2, errs)
	assert.Equal(t, 1, warns)

	SortByPosition(diags)
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.Message)
	}
	assert.Equal(t, []string{"b", "a", "c"}, msgs)
}

func TestDiagnosticError(t *testing.T) {
	d := Raise(PhaseSemantic, Position{Offset: 4, Line: 3, Column: 7}, 1, "variable '%s' not declared", "y")
	assert.Equal(t, "3:7: semantic error: variable 'y' not declared", d.Error())
}

// -----------------------------------------------------------------------------

func plain(s string) string {
	return pterm.RemoveColorFromString(s)
}

func TestFormatDiagnosticExcerpt(t *testing.T) {
	src := "main {\n    x = y + 1;\n}"
	li := NewLineIndex(src)
	d := Raise(PhaseSemantic, li.Position(strings.Index(src, "y")), 1, "variable 'y' not declared")

	out := plain(formatDiagnostic("test.mc", li, d))

	assert.Contains(t, out, "Semantic Error")
	assert.Contains(t, out, "test.mc:2:9")
	assert.Contains(t, out, "variable 'y' not declared")
	assert.Contains(t, out, "2 | x = y + 1;\n")
	assert.Contains(t, out, "  |     ^\n")
}

func TestFormatDiagnosticClampsCarets(t *testing.T) {
	li := NewLineIndex("/* open")
	d := Raise(PhaseLexical, li.Position(0), 40, "unterminated block comment")

	out := plain(formatDiagnostic("c.mc", li, d))
	assert.Contains(t, out, "1 | /* open\n  | ^^^^^^^\n")
}

func TestFormatCompilationFinished(t *testing.T) {
	assert.Equal(t, "All done! (0 errors, 0 warnings)", plain(formatCompilationFinished(true, 0, 0)))
	assert.Equal(t, "Oh no! (1 error, 2 warnings)", plain(formatCompilationFinished(false, 1, 2)))
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, level)

	_, err = ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestReporterRespectsLogLevel(t *testing.T) {
	diags := []*Diagnostic{
		Raise(PhaseLexical, Position{Line: 1, Column: 1}, 1, "illegal character '@'"),
		Warn(PhaseSemantic, Position{Line: 1, Column: 1}, 1, "division by zero"),
	}

	buf := &bytes.Buffer{}
	r := NewReporter(buf, LogLevelError)
	r.ReportDiagnostics("a.mc", nil, diags)
	r.ReportInfo("scan", "%d tokens", 3)

	out := plain(buf.String())
	assert.Contains(t, out, "illegal character '@'")
	assert.NotContains(t, out, "division by zero")
	assert.NotContains(t, out, "3 tokens")

	errs, warns := r.Counts()
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, warns)
	assert.True(t, r.AnyErrors())
}

func TestReporterSilent(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf, LogLevelSilent)

	r.ReportStdError("io", errors.New("boom"))
	r.ReportText("hello")
	r.ReportFinished()

	assert.Empty(t, buf.String())
	assert.True(t, r.AnyErrors())
}

func TestReporterConcurrentBatchesDoNotInterleave(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf, LogLevelVerbose)

	wg := &sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.ReportDiagnostics("f.mc", nil, []*Diagnostic{
				Raise(PhaseSyntactic, Position{Line: 1, Column: 1}, 1, "first"),
				Raise(PhaseSyntactic, Position{Line: 1, Column: 2}, 1, "second"),
			})
		}()
	}
	wg.Wait()

	out := plain(buf.String())
	assert.Equal(t, 8, strings.Count(out, "first\n"))

	// every "first" is immediately followed by its own batch's "second"
	parts := strings.Split(out, "first\n")
	for _, part := range parts[1:] {
		assert.Contains(t, part, "second")
		assert.NotContains(t, strings.SplitN(part, "second", 2)[0], "first")
	}

	errs, _ := r.Counts()
	assert.Equal(t, 16, errs)
}
