package syntax

import "minic/ast"

// program = 'main' '{' decl_list '}'
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{ASTBase: ast.NewASTBaseOn(p.tok.Pos())}

	if !p.assertAndNext(TOK_MAIN) {
		// Skip ahead to the opening brace of main if there is one.
		for !p.gotOneOf(TOK_LBRACE, TOK_EOF) {
			p.next()
		}

		// Nothing was opened, so there is nothing left to report.
		if p.got(TOK_EOF) {
			return prog
		}
	}

	if !p.assertAndNext(TOK_LBRACE) {
		return prog
	}

	prog.Decls = p.parseStmtList(true)

	if !p.assertAndNext(TOK_RBRACE) {
		return prog
	}

	if !p.got(TOK_EOF) {
		p.recovering = false
		p.errorOn(p.tok, "unexpected token after end of program")
	}

	return prog
}

// decl_list = {typed_decl | stmt}
// stmt_list = {stmt}
//
// parseStmtList parses statements until a closing brace or the end of input.
// At the top level of main, declarations are allowed.  The closing brace is
// not consumed.
func (p *Parser) parseStmtList(topLevel bool) []ast.Node {
	var stmts []ast.Node

	for !p.gotOneOf(TOK_RBRACE, TOK_EOF) {
		start, startNdx := p.tok, p.ndx

		// The start of a new declaration or statement ends any recovery.
		if p.gotOneOf(TOK_INT, TOK_FLOAT, TOK_BOOL) || p.startsStmt() {
			p.recovering = false
		}

		switch p.tok.Kind {
		case TOK_INT, TOK_FLOAT, TOK_BOOL:
			if !topLevel {
				p.errorOn(p.tok, "declarations are only allowed at the top level of main")
			}

			if decl, ok := p.parseTypedDecl(); ok {
				stmts = append(stmts, decl)
				p.recovering = false
			} else {
				stmts = append(stmts, &ast.Error{ASTBase: ast.NewASTBaseOn(start.Pos())})
				p.sync()
			}
		case TOK_LBRACE:
			// A stray block is parsed so that its contents do not cause
			// further errors, but it is not part of the AST.
			wasRecovering := p.recovering
			p.errorOn(p.tok, "unexpected token %s", describeToken(p.tok))
			p.parseBlock()
			p.recovering = wasRecovering
		default:
			if !p.startsStmt() {
				// At a statement boundary, skipping the one offending token is
				// enough to resynchronize.
				p.reject()
				p.next()
				continue
			}

			if stmt, ok := p.parseStmt(); ok {
				stmts = append(stmts, stmt)
				p.recovering = false
			} else {
				stmts = append(stmts, &ast.Error{ASTBase: ast.NewASTBaseOn(start.Pos())})
				p.sync()
			}
		}

		// Every iteration must consume at least one token.
		if p.ndx == startNdx {
			p.next()
		}
	}

	return stmts
}

// startsStmt returns whether the parser's current token can begin a
// statement.  An ERROR token can stand in for the target of an assignment or
// increment.
func (p *Parser) startsStmt() bool {
	switch p.tok.Kind {
	case TOK_ID, TOK_IF, TOK_WHILE, TOK_DO, TOK_CIN, TOK_COUT:
		return true
	case TOK_ERROR:
		switch p.peek().Kind {
		case TOK_ASSIGN, TOK_INCREMENT, TOK_DECREMENT:
			return true
		}
	}

	return false
}

// startsDeclOrStmt returns whether the parser's current token begins a new
// declaration or statement.  An identifier only counts if it is followed by
// the operator of an assignment or increment.
func (p *Parser) startsDeclOrStmt() bool {
	switch p.tok.Kind {
	case TOK_INT, TOK_FLOAT, TOK_BOOL, TOK_IF, TOK_WHILE, TOK_DO, TOK_CIN, TOK_COUT:
		return true
	case TOK_ID:
		switch p.peek().Kind {
		case TOK_ASSIGN, TOK_INCREMENT, TOK_DECREMENT:
			return true
		}
	}

	return false
}

// -----------------------------------------------------------------------------

// typed_decl = ('int' | 'float' | 'bool') ident_list ';'
// ident_list = 'ID' {',' 'ID'}
func (p *Parser) parseTypedDecl() (*ast.Declaration, bool) {
	decl := &ast.Declaration{
		ASTBase: ast.NewASTBaseOn(p.tok.Pos()),
		Type:    p.tok.Value,
	}
	p.next()

	for {
		if name, ok := p.parseTarget(); ok {
			decl.Names = append(decl.Names, name)
		} else {
			return nil, false
		}

		if p.got(TOK_COMMA) {
			p.next()
		} else {
			break
		}
	}

	if p.got(TOK_SEMICOLON) {
		p.next()
		return decl, true
	}

	// A declaration directly followed by the next declaration or statement (or
	// by the end of the block) is just missing its semicolon: nothing needs to
	// be discarded.
	if p.startsDeclOrStmt() || p.got(TOK_RBRACE) {
		wasRecovering := p.recovering
		p.errorAt(p.prev.End(), 1, "missing ';' after '%s'", p.prev.Value)
		p.recovering = wasRecovering
		return decl, true
	}

	p.rejectExpecting(describeKind(TOK_SEMICOLON))
	return nil, false
}

// parseTarget parses a variable name in a declaration or input statement.  An
// ERROR token in its place becomes an error node.
func (p *Parser) parseTarget() (ast.Node, bool) {
	switch p.tok.Kind {
	case TOK_ID:
		id := &ast.Identifier{ASTBase: ast.NewASTBaseOn(p.tok.Pos()), Name: p.tok.Value}
		p.next()
		return id, true
	case TOK_ERROR:
		errNode := &ast.Error{ASTBase: ast.NewASTBaseOn(p.tok.Pos()), Text: p.tok.Value}
		p.next()
		return errNode, true
	}

	p.rejectExpecting(describeKind(TOK_ID))
	return nil, false
}
