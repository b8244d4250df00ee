package report

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Phase identifies the compilation phase that produced a diagnostic.
type Phase int

// Enumeration of compilation phases.
const (
	PhaseLexical Phase = iota
	PhaseSyntactic
	PhaseSemantic
)

var phaseNames = [...]string{
	PhaseLexical:   "lexical",
	PhaseSyntactic: "syntactic",
	PhaseSemantic:  "semantic",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}

	return fmt.Sprintf("phase(%d)", int(p))
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phase) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}

	for i, pname := range phaseNames {
		if pname == name {
			*p = Phase(i)
			return nil
		}
	}

	return fmt.Errorf("unknown phase: %q", name)
}

// Severity distinguishes errors from warnings.
type Severity int

// Enumeration of severities.
const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}

	return "error"
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}

	switch name {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return fmt.Errorf("unknown severity: %q", name)
	}

	return nil
}

// -----------------------------------------------------------------------------

// Diagnostic is a structured, non-fatal record of a problem in the input.  It
// is pure data: it never refers back to the scanner or parser that made it.
type Diagnostic struct {
	Phase    Phase    `json:"phase"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`

	// Line and Column are one-indexed.
	Line   int `json:"line"`
	Column int `json:"column"`

	// Offset is the byte offset the diagnostic points at and Length is the
	// number of bytes that should be underlined when it is displayed.
	Offset int `json:"offset"`
	Length int `json:"length"`

	// Lexeme and TokenKind describe the offending token if there is one.
	Lexeme    string `json:"lexeme,omitempty"`
	TokenKind string `json:"token_kind,omitempty"`
}

// Raise creates a new error diagnostic at the given position.
func Raise(phase Phase, pos Position, length int, msg string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Phase:    phase,
		Severity: SeverityError,
		Message:  fmt.Sprintf(msg, args...),
		Line:     pos.Line,
		Column:   pos.Column,
		Offset:   pos.Offset,
		Length:   length,
	}
}

// Warn creates a new warning diagnostic at the given position.
func Warn(phase Phase, pos Position, length int, msg string, args ...interface{}) *Diagnostic {
	d := Raise(phase, pos, length, msg, args...)
	d.Severity = SeverityWarning
	return d
}

// WithToken attaches the offending token's lexeme and kind name.
func (d *Diagnostic) WithToken(lexeme, kind string) *Diagnostic {
	d.Lexeme = lexeme
	d.TokenKind = kind
	return d
}

// IsError returns whether the diagnostic is an error rather than a warning.
func (d *Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s %s: %s", d.Line, d.Column, d.Phase, d.Severity, d.Message)
}

// -----------------------------------------------------------------------------

// CountBySeverity returns the number of errors and warnings in diags.
func CountBySeverity(diags []*Diagnostic) (errors, warnings int) {
	for _, d := range diags {
		if d.IsError() {
			errors++
		} else {
			warnings++
		}
	}

	return
}

// SortByPosition stably sorts diagnostics by their offset.  Diagnostics at the
// same offset keep their relative (phase) order.
func SortByPosition(diags []*Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Offset < diags[j].Offset
	})
}
