package ast

import (
	"fmt"
	"strconv"
	"strings"

	"minic/report"
)

// Format renders a node and its subtree as an S-expression, eg.
// `(program (decl int x) (assign x (+ 3 (* 4 2))))`.
func Format(node Node) string {
	sb := &strings.Builder{}
	writeNode(sb, node)
	return sb.String()
}

func writeNode(sb *strings.Builder, node Node) {
	switch v := node.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Identifier:
		sb.WriteString(v.Name)
	case *NumberLiteral:
		sb.WriteString(v.Value)
	case *StringLiteral:
		sb.WriteString(strconv.Quote(v.Value))
	case *BoolLiteral:
		sb.WriteString(strconv.FormatBool(v.Value))
	case *Error:
		if v.Text == "" {
			sb.WriteString("(error)")
		} else {
			sb.WriteString("(error " + strconv.Quote(v.Text) + ")")
		}
	default:
		sb.WriteRune('(')
		sb.WriteString(head(node))

		for _, child := range node.Children() {
			sb.WriteRune(' ')
			writeNode(sb, child)
		}

		sb.WriteRune(')')
	}
}

// head returns the leading word of a compound node's S-expression.
func head(node Node) string {
	switch v := node.(type) {
	case *Program:
		return "program"
	case *Declaration:
		return "decl " + v.Type
	case *Assignment:
		return "assign"
	case *IncDec:
		return v.Op
	case *Input:
		return "cin"
	case *Output:
		return "cout"
	case *If:
		return "if"
	case *While:
		return "while"
	case *DoUntil:
		return "do"
	case *Block:
		return "block"
	case *BinaryExpr:
		return v.Op
	case *UnaryExpr:
		return v.Op
	}

	report.ReportICE("no S-expression head for node kind %s", node.Kind())
	return ""
}

// -----------------------------------------------------------------------------

// Label returns a one line description of a node, eg. `BinaryExpr +`.
func Label(node Node) string {
	if value := nodeValue(node); value != "" {
		return node.Kind().String() + " " + value
	}

	return node.Kind().String()
}

// nodeValue returns the payload of a node: its operator, name, type or
// literal value.
func nodeValue(node Node) string {
	switch v := node.(type) {
	case *Declaration:
		return v.Type
	case *IncDec:
		return v.Op
	case *BinaryExpr:
		return v.Op
	case *UnaryExpr:
		return v.Op
	case *Identifier:
		return v.Name
	case *NumberLiteral:
		return v.Value
	case *StringLiteral:
		return strconv.Quote(v.Value)
	case *BoolLiteral:
		return strconv.FormatBool(v.Value)
	case *Error:
		return v.Text
	}

	return ""
}

// TreeItems flattens a node's subtree into leveled items for display as a
// tree.  Each item is labeled with its node and position.
func TreeItems(node Node) []report.TreeItem {
	var items []report.TreeItem

	var visit func(n Node, level int)
	visit = func(n Node, level int) {
		items = append(items, report.TreeItem{
			Level: level,
			Text:  fmt.Sprintf("%s (%s)", Label(n), n.Pos()),
		})

		for _, child := range n.Children() {
			visit(child, level+1)
		}
	}

	visit(node, 0)
	return items
}

// -----------------------------------------------------------------------------

// JSONNode is the serializable form of an AST node.
type JSONNode struct {
	Kind     NodeKind    `json:"kind"`
	Value    string      `json:"value,omitempty"`
	Line     int         `json:"line"`
	Column   int         `json:"column"`
	Offset   int         `json:"offset"`
	Children []*JSONNode `json:"children,omitempty"`
}

// Export converts a node and its subtree into their serializable form.
func Export(node Node) *JSONNode {
	pos := node.Pos()
	jn := &JSONNode{
		Kind:   node.Kind(),
		Value:  nodeValue(node),
		Line:   pos.Line,
		Column: pos.Column,
		Offset: pos.Offset,
	}

	for _, child := range node.Children() {
		jn.Children = append(jn.Children, Export(child))
	}

	return jn
}
