package walk

import "sort"

// Decl is the declaration metadata recorded for a variable.
type Decl struct {
	Name string `json:"name"`

	// The declared type: `int`, `float` or `bool`.
	Type string `json:"type"`

	// The position of the declared name.
	Line   int `json:"line"`
	Column int `json:"column"`
}

// DeclTable maps variable names to their declarations.  The language has no
// nested scopes so a single flat table covers the whole program.
type DeclTable struct {
	decls map[string]*Decl
}

// NewDeclTable creates a new, empty declaration table.
func NewDeclTable() *DeclTable {
	return &DeclTable{decls: make(map[string]*Decl)}
}

// Declare records a declaration.  Redeclaring a name is allowed: the last
// declaration wins.
func (dt *DeclTable) Declare(decl *Decl) {
	dt.decls[decl.Name] = decl
}

// Lookup returns the declaration of a name if there is one.
func (dt *DeclTable) Lookup(name string) (*Decl, bool) {
	decl, ok := dt.decls[name]
	return decl, ok
}

// Len returns the number of declared names.
func (dt *DeclTable) Len() int {
	return len(dt.decls)
}

// Decls returns all declarations ordered by name.
func (dt *DeclTable) Decls() []*Decl {
	decls := make([]*Decl, 0, len(dt.decls))
	for _, decl := range dt.decls {
		decls = append(decls, decl)
	}

	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})

	return decls
}
