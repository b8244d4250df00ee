package syntax

import (
	"minic/ast"
	"minic/util"
)

// expr = or_expr
func (p *Parser) parseExpr() (ast.Node, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	return p.parseBinOpExpr(len(precTable) - 1)
}

// precTable is the operator precedence table for binary operators.  The table
// is ordered highest to lowest precedence.
var precTable = [][]int{
	{TOK_POWER},
	{TOK_TIMES, TOK_DIVIDE, TOK_MODULO},
	{TOK_PLUS, TOK_MINUS},
	{TOK_LT, TOK_LE, TOK_GT, TOK_GE, TOK_EQ, TOK_NE},
	{TOK_AND},
	{TOK_OR},
}

const (
	powerPrec      = 0
	relationalPrec = 3
)

// or_expr = and_expr {'||' and_expr}
// and_expr = rel_expr {'&&' rel_expr}
// rel_expr = arith_expr [('<' | '<=' | '>' | '>=' | '==' | '!=') arith_expr]
// arith_expr = term {('+' | '-') term}
// term = power {('*' | '/' | '%') power}
// power = unary_expr ['^' power]
//
// parseBinOpExpr parses a binary operator expression whose operators are of
// the given precedence level or higher.
func (p *Parser) parseBinOpExpr(prec int) (ast.Node, bool) {
	if prec < 0 {
		return p.parseUnaryExpr()
	}

	lhs, ok := p.parseBinOpExpr(prec - 1)
	if !ok {
		return nil, false
	}

	for p.gotOneOf(precTable[prec]...) {
		op := p.tok
		p.next()

		var rhs ast.Node
		if prec == powerPrec {
			// `^` is right associative.
			if !p.enter() {
				return nil, false
			}

			rhs, ok = p.parseBinOpExpr(powerPrec)
			p.leave()
		} else {
			rhs, ok = p.parseBinOpExpr(prec - 1)
		}

		if !ok {
			return nil, false
		}

		lhs = &ast.BinaryExpr{
			ASTBase: ast.NewASTBaseOn(op.Pos()),
			Op:      op.Value,
			Lhs:     lhs,
			Rhs:     rhs,
		}

		if prec == powerPrec {
			break
		}

		// Comparisons are not associative: a chain is reported but still
		// parsed left to right so that the rest of the statement is checked.
		if prec == relationalPrec && p.gotOneOf(precTable[relationalPrec]...) {
			wasRecovering := p.recovering
			p.errorOn(p.tok, "comparison operators cannot be chained")
			p.recovering = wasRecovering
		}
	}

	return lhs, true
}

// -----------------------------------------------------------------------------

// unaryOps are the kinds of the prefix unary operators.
var unaryOps = []int{TOK_PLUS, TOK_MINUS, TOK_NOT}

// unary_expr = ('+' | '-' | '!') unary_expr | atom
func (p *Parser) parseUnaryExpr() (ast.Node, bool) {
	if !util.Contains(unaryOps, p.tok.Kind) {
		return p.parseAtom()
	}

	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	op := p.tok
	p.next()

	operand, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	return &ast.UnaryExpr{
		ASTBase: ast.NewASTBaseOn(op.Pos()),
		Op:      op.Value,
		Operand: operand,
	}, true
}

// atom = '(' expr ')' | 'NUMBER' | 'REAL' | 'ID' | 'STRING' | 'true' | 'false'
func (p *Parser) parseAtom() (ast.Node, bool) {
	tok := p.tok
	base := ast.NewASTBaseOn(tok.Pos())

	switch tok.Kind {
	case TOK_LPAREN:
		p.next()

		expr, ok := p.parseExpr()
		if !ok || !p.assertAndNext(TOK_RPAREN) {
			return nil, false
		}

		return expr, true
	case TOK_NUMBER, TOK_REAL:
		p.next()

		// An integer directly followed by a malformed fractional part, as in
		// `32.algo`, is one malformed literal.
		if p.got(TOK_ERROR) && p.tok.Fault == FAULT_MALFORMED_FRACTION {
			frac := p.tok
			p.next()
			return &ast.Error{ASTBase: base, Text: tok.Value + frac.Value}, true
		}

		return &ast.NumberLiteral{ASTBase: base, Value: tok.Value, IsReal: tok.Kind == TOK_REAL}, true
	case TOK_ID:
		p.next()
		return &ast.Identifier{ASTBase: base, Name: tok.Value}, true
	case TOK_STRING:
		p.next()
		return &ast.StringLiteral{ASTBase: base, Value: tok.Value[1 : len(tok.Value)-1]}, true
	case TOK_TRUE, TOK_FALSE:
		p.next()
		return &ast.BoolLiteral{ASTBase: base, Value: tok.Kind == TOK_TRUE}, true
	case TOK_ERROR:
		// The lexical diagnostic for the token is enough.
		p.next()
		return &ast.Error{ASTBase: base, Text: tok.Value}, true
	}

	p.reject()
	return nil, false
}
