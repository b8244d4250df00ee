package walk

import (
	"minic/ast"
	"minic/report"
)

// Walker is the construct responsible for the semantic checking of a program:
// it records declarations as it meets them and reports every use of a
// variable that has not been declared before it.  Walkers are created once per
// check.
type Walker struct {
	table *DeclTable
	diags []*report.Diagnostic
}

// NewWalker creates a new walker with an empty declaration table.
func NewWalker() *Walker {
	return &Walker{table: NewDeclTable()}
}

// Check checks an AST and returns its semantic diagnostics in source order.
// It works on partially recovered ASTs and never looks at the diagnostics of
// earlier phases.
func Check(root ast.Node) []*report.Diagnostic {
	diags, _ := CheckWithTable(root)
	return diags
}

// CheckWithTable checks an AST and also returns the declaration table built
// while checking it.
func CheckWithTable(root ast.Node) ([]*report.Diagnostic, *DeclTable) {
	w := NewWalker()
	w.Walk(root)

	// Binary expressions are visited before their left operands.
	diags := w.Diagnostics()
	report.SortByPosition(diags)
	return diags, w.Table()
}

// Walk visits a node and its subtree in source order.  The walk uses an
// explicit stack so arbitrarily deep trees cannot overflow the call stack.
func (w *Walker) Walk(root ast.Node) {
	if root == nil {
		return
	}

	stack := []ast.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !w.visit(node) {
			continue
		}

		// Push the children in reverse so they are popped in source order.
		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if children[i] != nil {
				stack = append(stack, children[i])
			}
		}
	}
}

// visit checks a single node.  It returns whether the node's children should
// be visited.
func (w *Walker) visit(node ast.Node) bool {
	switch v := node.(type) {
	case *ast.Declaration:
		for _, name := range v.Names {
			if id, ok := name.(*ast.Identifier); ok {
				pos := id.Pos()
				w.table.Declare(&Decl{
					Name:   id.Name,
					Type:   v.Type,
					Line:   pos.Line,
					Column: pos.Column,
				})
			}
		}

		// The declared names are not uses.
		return false
	case *ast.Identifier:
		if _, ok := w.table.Lookup(v.Name); !ok {
			w.logError(v.Pos(), len(v.Name), "variable '%s' not declared", v.Name)
		}
	case *ast.BinaryExpr:
		if v.Op == "/" || v.Op == "%" {
			if lit, ok := v.Rhs.(*ast.NumberLiteral); ok && lit.IsZero() {
				w.logWarning(v.Pos(), len(v.Op), "division by zero")
			}
		}
	}

	return true
}

// Table returns the walker's declaration table.
func (w *Walker) Table() *DeclTable {
	return w.table
}

// Diagnostics returns the diagnostics reported so far.
func (w *Walker) Diagnostics() []*report.Diagnostic {
	return w.diags
}
