package ast

import "minic/report"

// Node is the abstract interface for all AST nodes.
type Node interface {
	// Kind returns the enumerated kind of the node.
	Kind() NodeKind

	// Pos returns the position of the node's defining token.  This is the
	// leftmost token of its production except for binary expressions which
	// are positioned at their operator.
	Pos() report.Position

	// Children returns the node's child nodes in source order.
	Children() []Node
}

// NodeKind enumerates the different kinds of AST nodes.
type NodeKind int

// Enumeration of node kinds.
const (
	KindProgram NodeKind = iota
	KindDeclaration
	KindAssignment
	KindIfThen
	KindIfThenElse
	KindWhile
	KindDoUntil
	KindInput
	KindOutput
	KindIncDec
	KindBlock
	KindBinaryExpr
	KindUnaryExpr
	KindIdentifier
	KindNumberLiteral
	KindStringLiteral
	KindBoolLiteral
	KindError
)

var kindNames = [...]string{
	KindProgram:       "Program",
	KindDeclaration:   "Declaration",
	KindAssignment:    "Assignment",
	KindIfThen:        "IfThen",
	KindIfThenElse:    "IfThenElse",
	KindWhile:         "While",
	KindDoUntil:       "DoUntil",
	KindInput:         "Input",
	KindOutput:        "Output",
	KindIncDec:        "IncDec",
	KindBlock:         "Block",
	KindBinaryExpr:    "BinaryExpr",
	KindUnaryExpr:     "UnaryExpr",
	KindIdentifier:    "Identifier",
	KindNumberLiteral: "NumberLiteral",
	KindStringLiteral: "StringLiteral",
	KindBoolLiteral:   "BoolLiteral",
	KindError:         "Error",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}

	return kindNames[k]
}

// MarshalText makes node kinds serialize as their names.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ASTBase is a utility base struct for all AST nodes.
type ASTBase struct {
	// The position of the node's defining token.
	pos report.Position
}

// NewASTBaseOn creates a new AST base at the given position.
func NewASTBaseOn(pos report.Position) ASTBase {
	return ASTBase{pos: pos}
}

func (ab ASTBase) Pos() report.Position {
	return ab.pos
}

// -----------------------------------------------------------------------------

// Program is the root of the AST: the contents of `main { ... }`.
type Program struct {
	ASTBase

	// The top level declarations and statements in source order.
	Decls []Node
}

func (p *Program) Kind() NodeKind {
	return KindProgram
}

func (p *Program) Children() []Node {
	return p.Decls
}

// Block represents a braced list of statements.
type Block struct {
	ASTBase

	// The statements of the block.
	Stmts []Node
}

func (b *Block) Kind() NodeKind {
	return KindBlock
}

func (b *Block) Children() []Node {
	return b.Stmts
}

// Error is a placeholder for a construct that could not be parsed.
type Error struct {
	ASTBase

	// The offending source text if there was any.
	Text string
}

func (e *Error) Kind() NodeKind {
	return KindError
}

func (e *Error) Children() []Node {
	return nil
}
