// Package ast defines the parsed-program tree the core consumes: modules,
// entities, declarations, statements and expressions, each carrying a
// source token and exposing its immediate children for generic traversal.
//
// Nodes are immutable after parse except for the specific mutations
// semantic analysis performs: wrapping an expression operand in an
// implicit cast, filling a bus's signals from a named shape, and
// appending to owner-side bookkeeping maps that live outside the AST.
package ast

import "github.com/smeil-lang/smeilc/internal/token"

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
	// Children returns the node's immediate children in source order, for
	// generic depth-first traversal. Leaf nodes return nil.
	Children() []Node
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// Declaration is any node introduced inside a module or entity body that
// binds a name or synthesizes structure: variables, constants, busses,
// enums, functions, instances, generators, typedefs, connect clauses.
type Declaration interface {
	Node
	declarationNode()
}

// Entity is a top-level process or network.
type Entity interface {
	Node
	declarationNode() // entities are also declarations of the module
	entityNode()
	EntityName() *Identifier
}

// Identifier is a bare name reference, the leaf of most declarations.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) TokenLiteral() string { return i.Token.Text }
func (i *Identifier) String() string       { return i.Value }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) Children() []Node     { return nil }
func (i *Identifier) expressionNode()      {}

// Import names a module this module depends on. Import resolution itself
// is the module loader's job; the core only needs the name for
// diagnostics.
type Import struct {
	Token token.Token
	Path  *Identifier
}

func (im *Import) TokenLiteral() string { return im.Token.Text }
func (im *Import) String() string       { return "import " + im.Path.String() }
func (im *Import) Pos() token.Position  { return im.Token.Pos }
func (im *Import) Children() []Node     { return []Node{im.Path} }

// Module is the root of the parsed program: one file's worth of imports,
// declarations and entities, in source order.
type Module struct {
	Token        token.Token
	Name         string
	Imports      []*Import
	Declarations []Declaration
	Entities     []Entity
}

func (m *Module) TokenLiteral() string { return m.Token.Text }
func (m *Module) String() string       { return "module " + m.Name }
func (m *Module) Pos() token.Position  { return m.Token.Pos }

func (m *Module) Children() []Node {
	children := make([]Node, 0, len(m.Imports)+len(m.Declarations)+len(m.Entities))
	for _, im := range m.Imports {
		children = append(children, im)
	}
	for _, d := range m.Declarations {
		children = append(children, d)
	}
	for _, e := range m.Entities {
		children = append(children, e)
	}
	return children
}

// AllDeclarations returns the module's declarations followed by its
// entities, the order elaboration walks them in.
func (m *Module) AllDeclarations() []Declaration {
	all := make([]Declaration, 0, len(m.Declarations)+len(m.Entities))
	all = append(all, m.Declarations...)
	for _, e := range m.Entities {
		all = append(all, e)
	}
	return all
}
