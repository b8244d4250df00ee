package syntax

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minic/ast"
	"minic/report"
)

func messages(diags []*report.Diagnostic) []string {
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.Message)
	}

	return msgs
}

func TestParseWellFormedPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"precedence",
			"main { int x; x = 3 + 4 * 2; }",
			"(program (decl int x) (assign x (+ 3 (* 4 2))))",
		},
		{
			"declaration list",
			"main { int a, b; float c; bool d; }",
			"(program (decl int a b) (decl float c) (decl bool d))",
		},
		{
			"left associative",
			"main { x = 1 - 2 - 3; y = 8 / 4 % 3; }",
			"(program (assign x (- (- 1 2) 3)) (assign y (% (/ 8 4) 3)))",
		},
		{
			"power is right associative",
			"main { x = 2 ^ 3 ^ 2; }",
			"(program (assign x (^ 2 (^ 3 2))))",
		},
		{
			"logical operators",
			"main { x = a || b && c == d; }",
			"(program (assign x (|| a (&& b (== c d)))))",
		},
		{
			"unary operators",
			"main { x = -a * +b; y = !(a < b); z = - -1; }",
			"(program (assign x (* (- a) (+ b))) (assign y (! (< a b))) (assign z (- (- 1))))",
		},
		{
			"parentheses",
			"main { x = (1 + 2) * 3.5; }",
			"(program (assign x (* (+ 1 2) 3.5)))",
		},
		{
			"if then else",
			"main { if a > 1 then { b = 1; } else { b = 2; } end }",
			"(program (if (> a 1) (block (assign b 1)) (block (assign b 2))))",
		},
		{
			"loops",
			"main { while i < 10 { i++; } end do { i--; } until i == 0; }",
			"(program (while (< i 10) (block (++ i))) (do (block (-- i)) (== i 0)))",
		},
		{
			"input and output",
			`main { cin >> a >> b; cout << "hi" << a + 1; cout << true; }`,
			`(program (cin a b) (cout "hi" (+ a 1)) (cout true))`,
		},
		{
			"empty program",
			"main { }",
			"(program)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Parse(tc.src)

			require.Empty(t, messages(res.Diagnostics))
			assert.True(t, res.Success)
			assert.Equal(t, tc.want, ast.Format(res.AST))
		})
	}
}

func TestParseNodeShapes(t *testing.T) {
	res := Parse("main { int x; x = 3 + 4 * 2; }")
	require.True(t, res.Success)
	require.Len(t, res.AST.Decls, 2)

	decl, ok := res.AST.Decls[0].(*ast.Declaration)
	require.True(t, ok)
	assert.Equal(t, "int", decl.Type)
	require.Len(t, decl.Names, 1)
	assert.Equal(t, "x", decl.Names[0].(*ast.Identifier).Name)

	assign, ok := res.AST.Decls[1].(*ast.Assignment)
	require.True(t, ok)
	assert.Equal(t, ast.KindAssignment, assign.Kind())

	sum, ok := assign.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", sum.Op)

	// Binary expressions are positioned at their operator.
	assert.Equal(t, report.Position{Offset: 20, Line: 1, Column: 21}, sum.Pos())

	product, ok := sum.Rhs.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", product.Op)
	assert.Equal(t, 24, product.Pos().Offset)
}

func TestParseIfKinds(t *testing.T) {
	res := Parse("main { if a then { } end if a then { } else { } end }")
	require.True(t, res.Success)

	assert.Equal(t, ast.KindIfThen, res.AST.Decls[0].Kind())
	assert.Equal(t, ast.KindIfThenElse, res.AST.Decls[1].Kind())
}

func TestParseMissingSemicolon(t *testing.T) {
	res := Parse("main { int x x = 1; }")

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, report.PhaseSyntactic, d.Phase)
	assert.Equal(t, "missing ';' after 'x'", d.Message)

	// reported just past the `x` rather than at the next token
	assert.Equal(t, 1, d.Line)
	assert.Equal(t, 13, d.Column)

	assert.False(t, res.Success)
	assert.Equal(t, "(program (decl int x) (assign x 1))", ast.Format(res.AST))
}

func TestParseMissingSemicolonBeforeDeclaration(t *testing.T) {
	res := Parse("main {\n  int x\n  float y;\n}")

	assert.Equal(t, []string{"missing ';' after 'x'"}, messages(res.Diagnostics))
	assert.Equal(t, 2, res.Diagnostics[0].Line)
	assert.Equal(t, 8, res.Diagnostics[0].Column)
	assert.Equal(t, "(program (decl int x) (decl float y))", ast.Format(res.AST))
}

func TestParseRecovery(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		diags []string
		want  string
	}{
		{
			"missing operand",
			"main { int x; x = ; x = 2; }",
			[]string{"unexpected token ';'"},
			"(program (decl int x) (error) (assign x 2))",
		},
		{
			"missing semicolon after assignment",
			"main { x = 1 y = 2; z = 3; }",
			[]string{"expected ';' but found 'y'"},
			"(program (error) (assign z 3))",
		},
		{
			"stray keyword",
			"main { end x = 1; }",
			[]string{"unexpected token 'end'"},
			"(program (assign x 1))",
		},
		{
			"missing then",
			"main { if x { y = 1; } end z = 2; }",
			[]string{"expected 'then' but found '{'"},
			"(program (error) (assign z 2))",
		},
		{
			"chained comparison",
			"main { x = a < b < c; }",
			[]string{"comparison operators cannot be chained"},
			"(program (assign x (< (< a b) c)))",
		},
		{
			"declaration in block",
			"main { int x; if x > 0 then { int y; } end }",
			[]string{"declarations are only allowed at the top level of main"},
			"(program (decl int x) (if (> x 0) (block (decl int y))))",
		},
		{
			"reserved word without grammar",
			"main { switch x = 1; }",
			[]string{"unexpected token 'switch'"},
			"(program (assign x 1))",
		},
		{
			"trailing tokens",
			"main { } x = 1;",
			[]string{"unexpected token after end of program"},
			"(program)",
		},
		{
			"missing main",
			"{ x = 1; }",
			[]string{"expected 'main' but found '{'"},
			"(program (assign x 1))",
		},
		{
			"bad input target",
			"main { cin >> 1; cout << 2; }",
			[]string{"expected identifier but found '1'"},
			"(program (error) (cout 2))",
		},
		{
			"missing main and block",
			"x = 1;",
			[]string{"expected 'main' but found 'x'"},
			"(program)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Parse(tc.src)

			assert.Equal(t, tc.diags, messages(res.Diagnostics))
			assert.False(t, res.Success)
			assert.Equal(t, tc.want, ast.Format(res.AST))
		})
	}
}

func TestParseReportsErrorsAfterRecovery(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		diags []string
		want  string
	}{
		{
			"two missing operands",
			"main { x = ; y = ; }",
			[]string{"unexpected token ';'", "unexpected token ';'"},
			"(program (error) (error))",
		},
		{
			"bad input then bad output",
			"main { cin x; cout y; }",
			[]string{"expected '>>' but found 'x'", "expected '<<' but found 'y'"},
			"(program (error) (error))",
		},
		{
			"two missing semicolons",
			"main { x = 1 2; y = 3 4; }",
			[]string{"expected ';' but found '2'", "expected ';' but found '4'"},
			"(program (error) (error))",
		},
		{
			"missing declaration semicolon after a failed statement",
			"main { x = ; int y z = 1; }",
			[]string{"unexpected token ';'", "missing ';' after 'y'"},
			"(program (error) (decl int y) (assign z 1))",
		},
		{
			"chained comparison after a failed statement",
			"main { x = ; y = a < b < c; }",
			[]string{"unexpected token ';'", "comparison operators cannot be chained"},
			"(program (error) (assign y (< (< a b) c)))",
		},
		{
			"stray token after a failed statement",
			"main { x = ; ) y = 1; }",
			[]string{"unexpected token ';'", "unexpected token ')'"},
			"(program (error) (assign y 1))",
		},
		{
			"failed statement after a stray block",
			"main { { x = 1; } y = ; }",
			[]string{"unexpected token '{'", "unexpected token ';'"},
			"(program (error))",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Parse(tc.src)

			assert.Equal(t, tc.diags, messages(res.Diagnostics))
			assert.False(t, res.Success)
			assert.Equal(t, tc.want, ast.Format(res.AST))
		})
	}
}

func TestParseEndOfInput(t *testing.T) {
	inputs := []string{
		"",
		"main",
		"main {",
		"main { x = 1;",
		"main { x = ",
		"main { if x then { y = 1;",
		"main { while x { do { cin >> ",
		"main { int a, ",
	}

	for _, src := range inputs {
		res := Parse(src)

		assert.Equal(t, []string{"unexpected end of input"}, messages(res.Diagnostics), "input %q", src)
		assert.NotNil(t, res.AST)
	}
}

func TestParseErrorTokensBecomeErrorNodes(t *testing.T) {
	res := Parse("main { int x; x = 32.algo; int sum@r; x = 1 + @; }")

	assert.Equal(t, []string{
		"malformed fractional part '.algo'",
		"illegal identifier 'sum@r'",
		"illegal character '@'",
	}, messages(res.Diagnostics))

	for _, d := range res.Diagnostics {
		assert.Equal(t, report.PhaseLexical, d.Phase)
	}

	assert.Equal(t,
		`(program (decl int x) (assign x (error "32.algo")) (decl int (error "sum@r")) (assign x (+ 1 (error "@"))))`,
		ast.Format(res.AST),
	)
}

func TestParseErrorTokenAsTarget(t *testing.T) {
	res := Parse("main { sum@r = 1; @ y = 2; }")

	assert.Equal(t, []string{"illegal identifier 'sum@r'", "illegal character '@'"}, messages(res.Diagnostics))
	assert.Equal(t, `(program (assign (error "sum@r") 1) (assign y 2))`, ast.Format(res.AST))
}

func TestParseLexicalDiagnosticsComeFirst(t *testing.T) {
	res := Parse("main { x = ; y = 34.34.34; }")

	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, report.PhaseLexical, res.Diagnostics[0].Phase)
	assert.Equal(t, report.PhaseSyntactic, res.Diagnostics[1].Phase)
}

func TestParseNestingTooDeep(t *testing.T) {
	deepParens := "main { x = " + strings.Repeat("(", 1000) + "1" + strings.Repeat(")", 1000) + "; y = 2; }"
	deepUnary := "main { x = " + strings.Repeat("- ", 5000) + "1; y = 2; }"
	deepPower := "main { x = 2" + strings.Repeat(" ^ 2", 5000) + "; y = 2; }"

	for _, src := range []string{deepParens, deepUnary, deepPower} {
		res := Parse(src)

		assert.Equal(t, []string{"nesting too deep"}, messages(res.Diagnostics))
		assert.Equal(t, "(program (error) (assign y 2))", ast.Format(res.AST))
	}
}

func TestParseDeepBlocks(t *testing.T) {
	src := "main { " + strings.Repeat("while x { ", 500) + strings.Repeat("} end ", 500) + "}"

	var res *ParseResult
	require.NotPanics(t, func() { res = Parse(src) })

	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, "nesting too deep", res.Diagnostics[0].Message)
}

func TestParseNestingWithinLimit(t *testing.T) {
	src := "main { x = " + strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100) + "; }"

	res := Parse(src)
	assert.True(t, res.Success)
}

func TestParseCustomDepth(t *testing.T) {
	toks := Scan("main { x = ((((1)))); }")

	assert.True(t, NewParser(toks, 0).Parse().Success)
	assert.Equal(t, []string{"nesting too deep"}, messages(NewParser(toks, 3).Parse().Diagnostics))
}

func TestParseTokensWithoutEOF(t *testing.T) {
	toks := Scan("main { x = 1; }")
	toks = toks[:len(toks)-1]

	res := ParseTokens(toks)
	assert.True(t, res.Success)
	assert.Equal(t, "(program (assign x 1))", ast.Format(res.AST))

	res = ParseTokens(nil)
	assert.Equal(t, []string{"unexpected end of input"}, messages(res.Diagnostics))
}

func TestParseIsIdempotent(t *testing.T) {
	src := "main { int x x = 1; y = 32.algo; if x < then { } end cout << sum@r; "

	first := Parse(src)
	second := Parse(src)

	if diff := cmp.Diff(first.Diagnostics, second.Diagnostics); diff != "" {
		t.Errorf("diagnostics differ between runs (-first +second):\n%s", diff)
	}
	assert.Equal(t, ast.Format(first.AST), ast.Format(second.AST))
}

func TestParseNeverPanics(t *testing.T) {
	inputs := append([]string{
		"}}}}{{{{",
		"main main main",
		"main { ( ) ; ; ; } }",
		"main { x = (; }",
		"main { if then else end until }",
		"main { do until ; }",
		"main { cout << ; cin >> ; }",
		"main { x++ y-- ; }",
		"main { { { } } }",
		"main { {",
	}, scanInputs...)

	for _, src := range inputs {
		assert.NotPanics(t, func() {
			res := Parse(src)
			assert.NotNil(t, res.AST)
			assert.Equal(t, len(res.Diagnostics) == 0, res.Success)
		}, "input %q", src)
	}
}
