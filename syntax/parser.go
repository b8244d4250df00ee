package syntax

import (
	"minic/ast"
	"minic/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// DefaultMaxDepth is the default limit on how deeply blocks and expressions
// may nest before the parser gives up on them.
const DefaultMaxDepth = 256

// Parser is a recursive descent parser over a token sequence.  All parsing
// functions assume that they begin with the parser centered on the first token
// of their production and must consume all tokens (including the last) of
// their production, leaving the parser on the next token.  A parsing function
// that fails returns false after reporting a diagnostic; the statement level
// then discards tokens until it can resume.  Parsers are created once per
// token sequence and hold no state shared with any other parser.
type Parser struct {
	toks []*Token
	ndx  int

	// The current token and the one before it.
	tok, prev *Token

	diags []*report.Diagnostic

	// Whether the parser is recovering from an error.  No syntactic
	// diagnostics are reported while recovering: this flag is cleared once
	// the parser resynchronizes on a `;` or reaches the start of a new
	// declaration or statement.
	recovering bool

	// Whether the end of input has been reported.  It is only ever reported
	// once.
	eofReported bool

	depth, maxDepth int
}

// ParseResult is the outcome of parsing a token sequence.
type ParseResult struct {
	// The best-effort AST.  Constructs that could not be parsed are replaced
	// by error nodes.
	AST *ast.Program

	// The lexical diagnostics for any ERROR tokens followed by all syntactic
	// diagnostics.
	Diagnostics []*report.Diagnostic

	// Whether parsing produced no diagnostics at all.
	Success bool
}

// Parse scans and parses a source text.
func Parse(src string) *ParseResult {
	return ParseTokens(Scan(src))
}

// ParseTokens parses a token sequence with the default nesting limit.
func ParseTokens(toks []*Token) *ParseResult {
	return NewParser(toks, DefaultMaxDepth).Parse()
}

// NewParser creates a new parser over the given tokens.  If the tokens do not
// end with an EOF token, one is added.  A non-positive maxDepth selects the
// default limit.
func NewParser(toks []*Token, maxDepth int) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Kind != TOK_EOF {
		eof := &Token{Kind: TOK_EOF, Line: 1, Col: 1}
		if len(toks) > 0 {
			last := toks[len(toks)-1]
			eof.Offset = last.Offset + len(last.Value)
			eof.Line = last.Line
			eof.Col = last.Col + len(last.Value)
		}

		toks = append(toks[:len(toks):len(toks)], eof)
	}

	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &Parser{
		toks:     toks,
		tok:      toks[0],
		maxDepth: maxDepth,
	}
}

// Parse parses the parser's tokens.  It always consumes the whole sequence
// and always returns an AST.
func (p *Parser) Parse() *ParseResult {
	prog := p.parseProgram()

	diags := append(LexicalDiagnostics(p.toks), p.diags...)

	return &ParseResult{
		AST:         prog,
		Diagnostics: diags,
		Success:     len(diags) == 0,
	}
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.  The parser never moves past the
// EOF token.
func (p *Parser) next() {
	if p.tok.Kind == TOK_EOF {
		return
	}

	p.ndx++
	p.prev = p.tok
	p.tok = p.toks[p.ndx]
}

// peek returns the token after the current token.
func (p *Parser) peek() *Token {
	if p.tok.Kind == TOK_EOF {
		return p.tok
	}

	return p.toks[p.ndx+1]
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// gotOneOf returns if the parser's current token kind is one of given kinds.
func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// assert checks if the parser is on a token of a given kind and rejects the
// token if not.  It returns a boolean indicating whether or not the parser is
// on a matching token kind (and should continue).
func (p *Parser) assert(kind int) bool {
	if p.got(kind) {
		return true
	}

	p.rejectExpecting(describeKind(kind))
	return false
}

// assertAndNext performs an assert operation and moves the parser forward.
func (p *Parser) assertAndNext(kind int) bool {
	if p.assert(kind) {
		p.next()
		return true
	}

	return false
}

// -----------------------------------------------------------------------------

// reject reports an unexpected token error on the current token.
func (p *Parser) reject() {
	switch p.tok.Kind {
	case TOK_EOF:
		p.rejectEOF()
	case TOK_ERROR:
		// ERROR tokens already have a lexical diagnostic.
		p.recovering = true
	default:
		p.errorOn(p.tok, "unexpected token %s", describeToken(p.tok))
	}
}

// rejectExpecting reports that the current token is not what was expected.
func (p *Parser) rejectExpecting(what string) {
	switch p.tok.Kind {
	case TOK_EOF:
		p.rejectEOF()
	case TOK_ERROR:
		p.recovering = true
	default:
		p.errorOn(p.tok, "expected %s but found %s", what, describeToken(p.tok))
	}
}

// rejectEOF reports an unexpected end of input.  This is reported at most
// once and regardless of whether the parser is recovering.
func (p *Parser) rejectEOF() {
	if !p.eofReported {
		p.eofReported = true
		p.diags = append(p.diags, p.raise(p.tok.Pos(), 0, "unexpected end of input"))
	}

	p.recovering = true
}

// errorOn reports an error on a given token.  Nothing is reported while the
// parser is recovering.  The parser is always recovering afterwards.
func (p *Parser) errorOn(tok *Token, msg string, a ...interface{}) {
	if !p.recovering {
		d := p.raise(tok.Pos(), len(tok.Value), msg, a...).WithToken(tok.Value, tok.KindName())
		p.diags = append(p.diags, d)
	}

	p.recovering = true
}

// errorAt reports an error at a given position.
func (p *Parser) errorAt(pos report.Position, length int, msg string, a ...interface{}) {
	if !p.recovering {
		p.diags = append(p.diags, p.raise(pos, length, msg, a...))
	}

	p.recovering = true
}

// raise creates a syntactic diagnostic.
func (p *Parser) raise(pos report.Position, length int, msg string, a ...interface{}) *report.Diagnostic {
	return report.Raise(report.PhaseSyntactic, pos, length, msg, a...)
}

// -----------------------------------------------------------------------------

// enter records that the parser is descending into a nested construct.  It
// reports an error and returns false if the nesting is too deep.
func (p *Parser) enter() bool {
	if p.depth >= p.maxDepth {
		p.errorOn(p.tok, "nesting too deep")
		return false
	}

	p.depth++
	return true
}

// leave records that the parser has left a nested construct.
func (p *Parser) leave() {
	p.depth--
}

// sync discards tokens until a synchronizing token is reached: a `;` is
// consumed, which ends recovery, while `{`, `}` and EOF are left for the
// caller.
func (p *Parser) sync() {
	for {
		switch p.tok.Kind {
		case TOK_SEMICOLON:
			p.next()
			p.recovering = false
			return
		case TOK_LBRACE, TOK_RBRACE, TOK_EOF:
			return
		}

		p.next()
	}
}
