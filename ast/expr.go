package ast

// BinaryExpr represents a binary operator application.  Its position is that
// of its operator.
type BinaryExpr struct {
	ASTBase

	// The operator lexeme, eg. `+` or `<=`.
	Op string

	Lhs, Rhs Node
}

func (be *BinaryExpr) Kind() NodeKind {
	return KindBinaryExpr
}

func (be *BinaryExpr) Children() []Node {
	return []Node{be.Lhs, be.Rhs}
}

// UnaryExpr represents a unary operator application.
type UnaryExpr struct {
	ASTBase

	// The operator lexeme: `+`, `-` or `!`.
	Op string

	Operand Node
}

func (ue *UnaryExpr) Kind() NodeKind {
	return KindUnaryExpr
}

func (ue *UnaryExpr) Children() []Node {
	return []Node{ue.Operand}
}

// -----------------------------------------------------------------------------

// Identifier represents a variable name.
type Identifier struct {
	ASTBase

	Name string
}

func (id *Identifier) Kind() NodeKind {
	return KindIdentifier
}

func (id *Identifier) Children() []Node {
	return nil
}

// NumberLiteral represents an integer or real literal.
type NumberLiteral struct {
	ASTBase

	// The source text of the literal.
	Value string

	// Whether the literal is a real rather than an integer.
	IsReal bool
}

func (nl *NumberLiteral) Kind() NodeKind {
	return KindNumberLiteral
}

func (nl *NumberLiteral) Children() []Node {
	return nil
}

// IsZero returns whether the literal's value is zero.
func (nl *NumberLiteral) IsZero() bool {
	for _, c := range nl.Value {
		if c != '0' && c != '.' {
			return false
		}
	}

	return true
}

// StringLiteral represents a string literal.
type StringLiteral struct {
	ASTBase

	// The text between the quotes.
	Value string
}

func (sl *StringLiteral) Kind() NodeKind {
	return KindStringLiteral
}

func (sl *StringLiteral) Children() []Node {
	return nil
}

// BoolLiteral represents `true` or `false`.
type BoolLiteral struct {
	ASTBase

	Value bool
}

func (bl *BoolLiteral) Kind() NodeKind {
	return KindBoolLiteral
}

func (bl *BoolLiteral) Children() []Node {
	return nil
}
