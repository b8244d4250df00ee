package syntax

import (
	"minic/ast"
	"minic/report"
)

// stmt = assignment | inc_dec | if_stmt | while_stmt | do_until_stmt | input_stmt | output_stmt
func (p *Parser) parseStmt() (ast.Node, bool) {
	switch p.tok.Kind {
	case TOK_ID, TOK_ERROR:
		return p.parseAssignOrIncDec()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileStmt()
	case TOK_DO:
		return p.parseDoUntilStmt()
	case TOK_CIN:
		return p.parseInputStmt()
	case TOK_COUT:
		return p.parseOutputStmt()
	}

	report.ReportICE("parseStmt called on token %s", p.tok.KindName())
	return nil, false
}

// assignment = 'ID' '=' expr ';'
// inc_dec = 'ID' ('++' | '--') ';'
func (p *Parser) parseAssignOrIncDec() (ast.Node, bool) {
	target, _ := p.parseTarget()
	targetPos := target.Pos()

	switch p.tok.Kind {
	case TOK_ASSIGN:
		p.next()

		value, ok := p.parseExpr()
		if !ok || !p.assertAndNext(TOK_SEMICOLON) {
			return nil, false
		}

		return &ast.Assignment{
			ASTBase: ast.NewASTBaseOn(targetPos),
			Target:  target,
			Value:   value,
		}, true
	case TOK_INCREMENT, TOK_DECREMENT:
		op := p.tok.Value
		p.next()

		if !p.assertAndNext(TOK_SEMICOLON) {
			return nil, false
		}

		return &ast.IncDec{
			ASTBase: ast.NewASTBaseOn(targetPos),
			Target:  target,
			Op:      op,
		}, true
	}

	p.rejectExpecting("'=', '++' or '--'")
	return nil, false
}

// -----------------------------------------------------------------------------

// if_stmt = 'if' expr 'then' block ['else' block] 'end'
func (p *Parser) parseIfStmt() (ast.Node, bool) {
	ifStmt := &ast.If{ASTBase: ast.NewASTBaseOn(p.tok.Pos())}
	p.next()

	var ok bool
	if ifStmt.Condition, ok = p.parseExpr(); !ok {
		return nil, false
	}

	if !p.assertAndNext(TOK_THEN) {
		return nil, false
	}

	if ifStmt.Then, ok = p.parseBlock(); !ok {
		return nil, false
	}

	if p.got(TOK_ELSE) {
		p.next()

		if ifStmt.Else, ok = p.parseBlock(); !ok {
			return nil, false
		}
	}

	if !p.assertAndNext(TOK_END) {
		return nil, false
	}

	return ifStmt, true
}

// while_stmt = 'while' expr block 'end'
func (p *Parser) parseWhileStmt() (ast.Node, bool) {
	whileStmt := &ast.While{ASTBase: ast.NewASTBaseOn(p.tok.Pos())}
	p.next()

	var ok bool
	if whileStmt.Condition, ok = p.parseExpr(); !ok {
		return nil, false
	}

	if whileStmt.Body, ok = p.parseBlock(); !ok {
		return nil, false
	}

	if !p.assertAndNext(TOK_END) {
		return nil, false
	}

	return whileStmt, true
}

// do_until_stmt = 'do' block 'until' expr ';'
func (p *Parser) parseDoUntilStmt() (ast.Node, bool) {
	doStmt := &ast.DoUntil{ASTBase: ast.NewASTBaseOn(p.tok.Pos())}
	p.next()

	var ok bool
	if doStmt.Body, ok = p.parseBlock(); !ok {
		return nil, false
	}

	if !p.assertAndNext(TOK_UNTIL) {
		return nil, false
	}

	if doStmt.Condition, ok = p.parseExpr(); !ok {
		return nil, false
	}

	if !p.assertAndNext(TOK_SEMICOLON) {
		return nil, false
	}

	return doStmt, true
}

// -----------------------------------------------------------------------------

// input_stmt = 'cin' '>>' 'ID' {'>>' 'ID'} ';'
func (p *Parser) parseInputStmt() (ast.Node, bool) {
	input := &ast.Input{ASTBase: ast.NewASTBaseOn(p.tok.Pos())}
	p.next()

	if !p.assert(TOK_SHIFT_IN) {
		return nil, false
	}

	for p.got(TOK_SHIFT_IN) {
		p.next()

		target, ok := p.parseTarget()
		if !ok {
			return nil, false
		}

		input.Targets = append(input.Targets, target)
	}

	if !p.assertAndNext(TOK_SEMICOLON) {
		return nil, false
	}

	return input, true
}

// output_stmt = 'cout' '<<' expr {'<<' expr} ';'
func (p *Parser) parseOutputStmt() (ast.Node, bool) {
	output := &ast.Output{ASTBase: ast.NewASTBaseOn(p.tok.Pos())}
	p.next()

	if !p.assert(TOK_SHIFT_OUT) {
		return nil, false
	}

	for p.got(TOK_SHIFT_OUT) {
		p.next()

		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}

		output.Values = append(output.Values, value)
	}

	if !p.assertAndNext(TOK_SEMICOLON) {
		return nil, false
	}

	return output, true
}

// -----------------------------------------------------------------------------

// block = '{' stmt_list '}'
func (p *Parser) parseBlock() (*ast.Block, bool) {
	if !p.assert(TOK_LBRACE) {
		return nil, false
	}

	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	block := &ast.Block{ASTBase: ast.NewASTBaseOn(p.tok.Pos())}
	p.next()

	block.Stmts = p.parseStmtList(false)

	if !p.assertAndNext(TOK_RBRACE) {
		return nil, false
	}

	return block, true
}
