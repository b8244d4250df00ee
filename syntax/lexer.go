package syntax

import (
	"unicode/utf8"

	"minic/report"
)

// Lexer is responsible for tokenizing a source text.  A lexer owns all of its
// state: separate lexers never affect each other.
type Lexer struct {
	src string

	// The offset of the next unread byte.
	pos int

	// The current one-indexed line and the offset at which it begins.
	line, lineStart int

	// The position at which the token being lexed begins.
	start, startLine, startCol int

	// The kind and end offset of the last token produced.  These are used to
	// recognize a malformed fractional part directly after an integer.
	prevKind, prevEnd int
}

// NewLexer creates a new lexer over the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:      src,
		line:     1,
		prevKind: -1,
		prevEnd:  -1,
	}
}

// Scan converts a source text into its tokens.  Malformed fragments become
// ERROR tokens; the scan never stops early.  The last token is always EOF.
func Scan(src string) []*Token {
	l := NewLexer(src)

	var toks []*Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)

		if tok.Kind == TOK_EOF {
			return toks
		}
	}
}

// NextToken retrieves the next token from the source.  If the source has
// ended, this will be an EOF token; every later call also returns EOF.
func (l *Lexer) NextToken() *Token {
	tok := l.nextToken()
	l.prevKind = tok.Kind
	l.prevEnd = tok.Offset + len(tok.Value)
	return tok
}

func (l *Lexer) nextToken() *Token {
	for {
		c := l.peek()
		if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok := l.lexCommentOrDiv(); tok != nil {
				return tok
			}
		case '"':
			return l.lexStringLit()
		case '.':
			return l.lexDot()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF)
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_TIMES,
	// Division operator is handled with comment logic.
	"%": TOK_MODULO,
	"^": TOK_POWER,

	"++": TOK_INCREMENT,
	"--": TOK_DECREMENT,

	"<":  TOK_LT,
	"<=": TOK_LE,
	">":  TOK_GT,
	">=": TOK_GE,
	"==": TOK_EQ,
	"!=": TOK_NE,

	"&&": TOK_AND,
	"||": TOK_OR,
	"!":  TOK_NOT,

	"=":  TOK_ASSIGN,
	">>": TOK_SHIFT_IN,
	"<<": TOK_SHIFT_OUT,

	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,
	",": TOK_COMMA,
	";": TOK_SEMICOLON,
}

// lexPunctOrOper lexes a punctuation or operator symbol.  Two character
// symbols are preferred over their one character prefixes.  A character that
// begins no symbol becomes a one rune ERROR token.
func (l *Lexer) lexPunctOrOper() *Token {
	l.mark()

	if l.pos+2 <= len(l.src) {
		if kind, ok := symbolPatterns[l.src[l.pos:l.pos+2]]; ok {
			l.eat()
			l.eat()
			return l.makeToken(kind)
		}
	}

	if kind, ok := symbolPatterns[l.src[l.pos:l.pos+1]]; ok {
		l.eat()
		return l.makeToken(kind)
	}

	l.eatRune()
	return l.makeError(FAULT_ILLEGAL_CHAR)
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"main": TOK_MAIN,

	"int":   TOK_INT,
	"float": TOK_FLOAT,
	"bool":  TOK_BOOL,

	"if":     TOK_IF,
	"then":   TOK_THEN,
	"else":   TOK_ELSE,
	"end":    TOK_END,
	"while":  TOK_WHILE,
	"do":     TOK_DO,
	"until":  TOK_UNTIL,
	"switch": TOK_SWITCH,
	"case":   TOK_CASE,

	"cin":  TOK_CIN,
	"cout": TOK_COUT,

	"true":  TOK_TRUE,
	"false": TOK_FALSE,
}

// lexIdentOrKeyword lexes an identifier or a keyword.  An identifier which
// runs into an `@` is illegal: the whole run, `@`s included, becomes a single
// ERROR token.
func (l *Lexer) lexIdentOrKeyword() *Token {
	l.mark()
	l.eat()

	for c := l.peek(); isFirstIdentChar(c) || isDecimalDigit(c); c = l.peek() {
		l.eat()
	}

	if l.peek() == '@' {
		for c := l.peek(); c == '@' || isFirstIdentChar(c) || isDecimalDigit(c); c = l.peek() {
			l.eat()
		}

		return l.makeError(FAULT_ILLEGAL_IDENT)
	}

	if kind, ok := keywordPatterns[l.src[l.start:l.pos]]; ok {
		return l.makeToken(kind)
	}

	return l.makeToken(TOK_ID)
}

// -----------------------------------------------------------------------------

// lexNumericLit lexes an integer or real literal.  A `.` which is not
// followed by a digit is left for the next token: see lexDot.
func (l *Lexer) lexNumericLit() *Token {
	l.mark()
	l.eatDigits()

	if l.peek() != '.' || !isDecimalDigit(l.peekAt(1)) {
		return l.makeToken(TOK_NUMBER)
	}

	l.eat()
	l.eatDigits()

	// A second `.` makes the whole run of the literal malformed.
	if l.peek() == '.' {
		for c := l.peek(); c == '.' || isFirstIdentChar(c) || isDecimalDigit(c); c = l.peek() {
			l.eat()
		}

		return l.makeError(FAULT_MALFORMED_REAL)
	}

	return l.makeToken(TOK_REAL)
}

// lexDot lexes a `.` which does not belong to a real literal.  Directly after
// an integer, the dot begins a malformed fractional part such as the `.algo`
// of `32.algo`, which extends over any following identifier characters and
// dots.  Anywhere else a `.` is an illegal character.
func (l *Lexer) lexDot() *Token {
	l.mark()
	l.eat()

	if l.prevKind == TOK_NUMBER && l.prevEnd == l.start {
		for c := l.peek(); c == '.' || isFirstIdentChar(c) || isDecimalDigit(c); c = l.peek() {
			l.eat()
		}

		return l.makeError(FAULT_MALFORMED_FRACTION)
	}

	return l.makeError(FAULT_ILLEGAL_CHAR)
}

// eatDigits consumes a run of decimal digits.
func (l *Lexer) eatDigits() {
	for isDecimalDigit(l.peek()) {
		l.eat()
	}
}

// -----------------------------------------------------------------------------

// lexStringLit lexes a string literal.  No escape sequences are processed.  A
// string which is not closed before the end of its line becomes an ERROR
// token covering the text up to the line's end.
func (l *Lexer) lexStringLit() *Token {
	l.mark()
	l.eat()

	for {
		switch l.peek() {
		case -1, '\n':
			return l.makeError(FAULT_UNCLOSED_STRING)
		case '"':
			l.eat()
			return l.makeToken(TOK_STRING)
		default:
			l.eat()
		}
	}
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv lexes a comment or a division token.  Comments produce no
// token and nil is returned, except for an unclosed block comment which
// becomes an ERROR token spanning the rest of the source.
func (l *Lexer) lexCommentOrDiv() *Token {
	l.mark()
	l.eat()

	switch l.peek() {
	case '/':
		for c := l.peek(); c != '\n' && c != -1; c = l.peek() {
			l.skip()
		}
	case '*':
		l.skip()

		for {
			c := l.skip()
			if c == -1 {
				return l.makeError(FAULT_UNCLOSED_COMMENT)
			} else if c == '*' && l.peek() == '/' {
				l.skip()
				break
			}
		}
	default:
		return l.makeToken(TOK_DIVIDE)
	}

	return nil
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start position to its current position.
func (l *Lexer) mark() {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.pos - l.lineStart + 1
}

// makeToken produces a new token of the given kind spanning from the marked
// start position to the lexer's current position.
func (l *Lexer) makeToken(kind int) *Token {
	return &Token{
		Kind:   kind,
		Value:  l.src[l.start:l.pos],
		Offset: l.start,
		Line:   l.startLine,
		Col:    l.startCol,
	}
}

// makeError produces a new ERROR token with the given fault.
func (l *Lexer) makeError(fault int) *Token {
	tok := l.makeToken(TOK_ERROR)
	tok.Fault = fault
	return tok
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one byte and returns it.  If the lexer is at the
// end of the source, -1 is returned and the lexer does not move.  Skipped
// bytes still belong to the current token's span: the token's value is always
// a slice of the source.
func (l *Lexer) eat() rune {
	if l.pos >= len(l.src) {
		return -1
	}

	c := l.src[l.pos]
	l.pos++

	if c == '\n' {
		l.line++
		l.lineStart = l.pos
	}

	return rune(c)
}

// skip moves the lexer forward one byte.  It is the same as eat but is used
// where the byte consumed is discarded.
func (l *Lexer) skip() rune {
	return l.eat()
}

// eatRune moves the lexer forward over one whole UTF-8 encoded rune.  Invalid
// encodings are consumed one byte at a time.
func (l *Lexer) eatRune() {
	_, n := utf8.DecodeRuneInString(l.src[l.pos:])
	for i := 0; i < n; i++ {
		l.eat()
	}
}

// peek returns the next byte without moving the lexer forward.  If the lexer
// is at the end of the source, -1 is returned.
func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt returns the byte n bytes ahead of the next byte.
func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.src) {
		return -1
	}

	return rune(l.src[l.pos+n])
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isFirstIdentChar returns whether c could be the first character of an
// identifier.
func isFirstIdentChar(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

// -----------------------------------------------------------------------------

// LexicalDiagnostics converts every ERROR token into a lexical diagnostic.
// The diagnostics are in source order.
func LexicalDiagnostics(toks []*Token) []*report.Diagnostic {
	var diags []*report.Diagnostic

	for _, tok := range toks {
		if tok.Kind != TOK_ERROR {
			continue
		}

		var d *report.Diagnostic
		switch tok.Fault {
		case FAULT_MALFORMED_REAL:
			d = report.Raise(report.PhaseLexical, tok.Pos(), len(tok.Value), "malformed real literal '%s'", tok.Value)
		case FAULT_MALFORMED_FRACTION:
			d = report.Raise(report.PhaseLexical, tok.Pos(), len(tok.Value), "malformed fractional part '%s'", tok.Value)
		case FAULT_ILLEGAL_IDENT:
			d = report.Raise(report.PhaseLexical, tok.Pos(), len(tok.Value), "illegal identifier '%s'", tok.Value)
		case FAULT_UNCLOSED_STRING:
			d = report.Raise(report.PhaseLexical, tok.Pos(), len(tok.Value), "unterminated string literal")
		case FAULT_UNCLOSED_COMMENT:
			d = report.Raise(report.PhaseLexical, tok.Pos(), len(tok.Value), "unterminated block comment")
		default:
			d = report.Raise(report.PhaseLexical, tok.Pos(), len(tok.Value), "illegal character '%s'", tok.Value)
		}

		diags = append(diags, d.WithToken(tok.Value, tok.KindName()))
	}

	return diags
}
