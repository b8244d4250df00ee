package ast

// Declaration represents a typed variable declaration: `int x, y;`.
type Declaration struct {
	ASTBase

	// The name of the declared type: `int`, `float` or `bool`.
	Type string

	// The declared variables.  These are identifiers or error nodes.
	Names []Node
}

func (d *Declaration) Kind() NodeKind {
	return KindDeclaration
}

func (d *Declaration) Children() []Node {
	return d.Names
}

// Assignment represents an assignment statement.
type Assignment struct {
	ASTBase

	// The variable being assigned to: an identifier or an error node.
	Target Node

	// The value being assigned.
	Value Node
}

func (a *Assignment) Kind() NodeKind {
	return KindAssignment
}

func (a *Assignment) Children() []Node {
	return []Node{a.Target, a.Value}
}

// IncDec represents an increment/decrement statement: `x++;` or `x--;`.
type IncDec struct {
	ASTBase

	// The variable being mutated: an identifier or an error node.
	Target Node

	// The operator: `++` or `--`.
	Op string
}

func (id *IncDec) Kind() NodeKind {
	return KindIncDec
}

func (id *IncDec) Children() []Node {
	return []Node{id.Target}
}

// Input represents a `cin` statement.
type Input struct {
	ASTBase

	// The variables being read into.  These are identifiers or error nodes.
	Targets []Node
}

func (in *Input) Kind() NodeKind {
	return KindInput
}

func (in *Input) Children() []Node {
	return in.Targets
}

// Output represents a `cout` statement.
type Output struct {
	ASTBase

	// The expressions being written.
	Values []Node
}

func (out *Output) Kind() NodeKind {
	return KindOutput
}

func (out *Output) Children() []Node {
	return out.Values
}

// -----------------------------------------------------------------------------

// If represents an if/then/else statement.
type If struct {
	ASTBase

	// The condition of the statement.
	Condition Node

	// The body run when the condition holds.
	Then *Block

	// The (optional) else block.
	Else *Block
}

func (i *If) Kind() NodeKind {
	if i.Else == nil {
		return KindIfThen
	}

	return KindIfThenElse
}

func (i *If) Children() []Node {
	if i.Else == nil {
		return []Node{i.Condition, i.Then}
	}

	return []Node{i.Condition, i.Then, i.Else}
}

// While represents a while loop.
type While struct {
	ASTBase

	// The condition of the loop.
	Condition Node

	// The body of the loop.
	Body *Block
}

func (w *While) Kind() NodeKind {
	return KindWhile
}

func (w *While) Children() []Node {
	return []Node{w.Condition, w.Body}
}

// DoUntil represents a do/until loop.
type DoUntil struct {
	ASTBase

	// The body of the loop.
	Body *Block

	// The exit condition of the loop.
	Condition Node
}

func (du *DoUntil) Kind() NodeKind {
	return KindDoUntil
}

func (du *DoUntil) Children() []Node {
	return []Node{du.Body, du.Condition}
}
