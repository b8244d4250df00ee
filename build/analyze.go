package build

import (
	"errors"
	"fmt"
	"os"

	"minic/ast"
	"minic/report"
	"minic/syntax"
	"minic/walk"
)

// ErrSourceTooLarge is returned when a source text exceeds the configured size
// limit.  Inputs are capped rather than interrupted mid-run.
var ErrSourceTooLarge = errors.New("source too large")

// Enumeration of the pipeline stages at which analysis can stop.
const (
	StageCheck = iota // Scan, parse and check (default).
	StageScan         // Only scan.
	StageParse        // Scan and parse.
)

// DefaultMaxSourceBytes is the default limit on the size of a source text.
const DefaultMaxSourceBytes = 1 << 20

// Options controls a single analysis run.
type Options struct {
	// The largest source text accepted in bytes.  A non-positive value selects
	// the default.
	MaxSourceBytes int

	// The deepest nesting the parser accepts.  A non-positive value selects
	// the default.
	MaxDepth int

	// The last stage to run.
	Stage int
}

// Result is the outcome of analyzing one source text.  It is never modified
// after Analyze returns and may be shared between goroutines.
type Result struct {
	Source string
	Lines  *report.LineIndex

	Tokens []*syntax.Token

	// The AST is nil if analysis stopped after scanning.
	AST *ast.Program

	// The lexical, syntactic and semantic diagnostics in that order.
	Diagnostics []*report.Diagnostic

	// Whether scanning and parsing produced no diagnostics.
	ParseOK bool

	// The declaration table is nil unless the check stage ran.
	Table *walk.DeclTable
}

// HasErrors returns whether any diagnostic is an error.  Warnings do not
// count.
func (r *Result) HasErrors() bool {
	errs, _ := report.CountBySeverity(r.Diagnostics)
	return errs > 0
}

// Analyze runs the pipeline over a source text.  Every call builds its own
// lexer, parser and declaration table, so concurrent calls are safe.
func Analyze(src string, opts Options) (*Result, error) {
	limit := opts.MaxSourceBytes
	if limit <= 0 {
		limit = DefaultMaxSourceBytes
	}

	if len(src) > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds the limit of %d", ErrSourceTooLarge, len(src), limit)
	}

	res := &Result{
		Source: src,
		Lines:  report.NewLineIndex(src),
		Tokens: syntax.Scan(src),
	}

	if opts.Stage == StageScan {
		res.Diagnostics = syntax.LexicalDiagnostics(res.Tokens)
		res.ParseOK = len(res.Diagnostics) == 0
		return res, nil
	}

	parseRes := syntax.NewParser(res.Tokens, opts.MaxDepth).Parse()
	res.AST = parseRes.AST
	res.Diagnostics = parseRes.Diagnostics
	res.ParseOK = parseRes.Success

	if opts.Stage == StageParse {
		return res, nil
	}

	semDiags, table := walk.CheckWithTable(res.AST)
	res.Diagnostics = append(res.Diagnostics, semDiags...)
	res.Table = table

	return res, nil
}

// AnalyzeFile reads a source file and analyzes it.  Oversized files are
// rejected before they are read.
func AnalyzeFile(path string, opts Options) (*Result, error) {
	limit := opts.MaxSourceBytes
	if limit <= 0 {
		limit = DefaultMaxSourceBytes
	}

	finfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	} else if finfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	} else if finfo.Size() > int64(limit) {
		return nil, fmt.Errorf("%w: %s is %d bytes, the limit is %d", ErrSourceTooLarge, path, finfo.Size(), limit)
	}

	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Analyze(string(buff), opts)
}
