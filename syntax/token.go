package syntax

import "minic/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The exact source text of the token.  String tokens keep their quotes.
	Value string

	// The byte offset of the first character of the token.
	Offset int

	// The one-indexed line and column of the first character of the token.
	Line, Col int

	// The reason an ERROR token is malformed.  This is FAULT_NONE for all
	// other tokens.
	Fault int
}

// Pos returns the position of the token's first character.
func (tok *Token) Pos() report.Position {
	return report.Position{Offset: tok.Offset, Line: tok.Line, Column: tok.Col}
}

// End returns the position just past the token's last character.  Tokens
// which span lines only ever occur as ERROR tokens and are never asked for
// their end position.
func (tok *Token) End() report.Position {
	return report.Position{
		Offset: tok.Offset + len(tok.Value),
		Line:   tok.Line,
		Column: tok.Col + len(tok.Value),
	}
}

// KindName returns the name of the token's kind, eg. `NUMBER` or `SEMICOLON`.
func (tok *Token) KindName() string {
	return KindName(tok.Kind)
}

// Enumeration of token kinds.
const (
	TOK_NUMBER = iota
	TOK_REAL
	TOK_ID
	TOK_STRING
	TOK_ERROR

	TOK_IF
	TOK_ELSE
	TOK_END
	TOK_DO
	TOK_WHILE
	TOK_SWITCH
	TOK_CASE
	TOK_THEN
	TOK_UNTIL
	TOK_INT
	TOK_FLOAT
	TOK_BOOL
	TOK_MAIN
	TOK_CIN
	TOK_COUT
	TOK_TRUE
	TOK_FALSE

	TOK_PLUS
	TOK_MINUS
	TOK_TIMES
	TOK_DIVIDE
	TOK_MODULO
	TOK_POWER
	TOK_INCREMENT
	TOK_DECREMENT

	TOK_LT
	TOK_LE
	TOK_GT
	TOK_GE
	TOK_EQ
	TOK_NE

	TOK_AND
	TOK_OR
	TOK_NOT

	TOK_ASSIGN
	TOK_SHIFT_IN
	TOK_SHIFT_OUT

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_COMMA
	TOK_SEMICOLON

	TOK_EOF
)

// Enumeration of the reasons an ERROR token can be malformed.
const (
	FAULT_NONE               = iota
	FAULT_ILLEGAL_CHAR       // A character which begins no token.
	FAULT_MALFORMED_REAL     // A real literal with more than one `.`.
	FAULT_MALFORMED_FRACTION // A `.` after an integer not followed by digits.
	FAULT_ILLEGAL_IDENT      // An identifier containing `@`.
	FAULT_UNCLOSED_STRING    // A string literal missing its closing quote.
	FAULT_UNCLOSED_COMMENT   // A block comment missing its closing `*/`.
)

var kindNames = [...]string{
	TOK_NUMBER: "NUMBER",
	TOK_REAL:   "REAL",
	TOK_ID:     "ID",
	TOK_STRING: "STRING",
	TOK_ERROR:  "ERROR",

	TOK_IF:     "IF",
	TOK_ELSE:   "ELSE",
	TOK_END:    "END",
	TOK_DO:     "DO",
	TOK_WHILE:  "WHILE",
	TOK_SWITCH: "SWITCH",
	TOK_CASE:   "CASE",
	TOK_THEN:   "THEN",
	TOK_UNTIL:  "UNTIL",
	TOK_INT:    "INT",
	TOK_FLOAT:  "FLOAT",
	TOK_BOOL:   "BOOL",
	TOK_MAIN:   "MAIN",
	TOK_CIN:    "CIN",
	TOK_COUT:   "COUT",
	TOK_TRUE:   "TRUE",
	TOK_FALSE:  "FALSE",

	TOK_PLUS:      "PLUS",
	TOK_MINUS:     "MINUS",
	TOK_TIMES:     "TIMES",
	TOK_DIVIDE:    "DIVIDE",
	TOK_MODULO:    "MODULO",
	TOK_POWER:     "POWER",
	TOK_INCREMENT: "INCREMENT",
	TOK_DECREMENT: "DECREMENT",

	TOK_LT: "LT",
	TOK_LE: "LE",
	TOK_GT: "GT",
	TOK_GE: "GE",
	TOK_EQ: "EQ",
	TOK_NE: "NE",

	TOK_AND: "AND",
	TOK_OR:  "OR",
	TOK_NOT: "NOT",

	TOK_ASSIGN:    "ASSIGN",
	TOK_SHIFT_IN:  "SHIFT_IN",
	TOK_SHIFT_OUT: "SHIFT_OUT",

	TOK_LPAREN:    "LPAREN",
	TOK_RPAREN:    "RPAREN",
	TOK_LBRACE:    "LBRACE",
	TOK_RBRACE:    "RBRACE",
	TOK_COMMA:     "COMMA",
	TOK_SEMICOLON: "SEMICOLON",

	TOK_EOF: "EOF",
}

// KindName returns the name of a token kind.
func KindName(kind int) string {
	if kind < 0 || kind >= len(kindNames) {
		report.ReportICE("unknown token kind: %d", kind)
	}

	return kindNames[kind]
}

// describeKind returns how a token kind is referred to when it is expected
// but missing.
func describeKind(kind int) string {
	switch kind {
	case TOK_ID:
		return "identifier"
	case TOK_NUMBER, TOK_REAL:
		return "number"
	case TOK_STRING:
		return "string"
	case TOK_EOF:
		return "end of input"
	}

	for sym, symKind := range symbolPatterns {
		if symKind == kind {
			return "'" + sym + "'"
		}
	}

	for kw, kwKind := range keywordPatterns {
		if kwKind == kind {
			return "'" + kw + "'"
		}
	}

	report.ReportICE("token kind %s has no description", KindName(kind))
	return ""
}

// describeToken returns how a token is referred to when it is found but
// unexpected.
func describeToken(tok *Token) string {
	if tok.Kind == TOK_EOF {
		return "end of input"
	}

	return "'" + tok.Value + "'"
}
