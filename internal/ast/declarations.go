package ast

import "github.com/smeil-lang/smeilc/internal/token"

// Direction is a formal parameter's I/O direction.
type Direction int

const (
	DirIn Direction = iota
	DirOut
	DirConst
	DirInverse // direction of the referenced bus signal is inverted
)

func (d Direction) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	case DirConst:
		return "const"
	case DirInverse:
		return "inverse"
	default:
		return "?"
	}
}

// Parameter is a formal parameter on a process, network or function.
type Parameter struct {
	Token     token.Token
	Name      *Identifier
	Direction Direction
	Type      *TypeName // nil when the formal has no explicit annotation
}

func (p *Parameter) TokenLiteral() string { return p.Token.Text }
func (p *Parameter) String() string       { return p.Direction.String() + " " + p.Name.Value }
func (p *Parameter) Pos() token.Position  { return p.Token.Pos }

func (p *Parameter) Children() []Node {
	if p.Type != nil {
		return []Node{p.Name, p.Type}
	}
	return []Node{p.Name}
}

// VariableDecl declares a local mutable variable.
type VariableDecl struct {
	Token token.Token
	Name  *Identifier
	Type  *TypeName  // nil if inferred from Init
	Init  Expression // nil if uninitialized
}

func (v *VariableDecl) TokenLiteral() string { return v.Token.Text }
func (v *VariableDecl) String() string       { return "var " + v.Name.Value }
func (v *VariableDecl) Pos() token.Position  { return v.Token.Pos }
func (v *VariableDecl) declarationNode()     {}

func (v *VariableDecl) Children() []Node {
	children := []Node{v.Name}
	if v.Type != nil {
		children = append(children, v.Type)
	}
	if v.Init != nil {
		children = append(children, v.Init)
	}
	return children
}

// ConstantDecl declares a compile-time constant; its Init must resolve to
// literals, enum fields, or other constants.
type ConstantDecl struct {
	Token token.Token
	Name  *Identifier
	Type  *TypeName
	Init  Expression
}

func (c *ConstantDecl) TokenLiteral() string { return c.Token.Text }
func (c *ConstantDecl) String() string       { return "const " + c.Name.Value }
func (c *ConstantDecl) Pos() token.Position  { return c.Token.Pos }
func (c *ConstantDecl) declarationNode()     {}

func (c *ConstantDecl) Children() []Node {
	children := []Node{c.Name}
	if c.Type != nil {
		children = append(children, c.Type)
	}
	children = append(children, c.Init)
	return children
}

// SignalDecl is one named, typed signal inside a bus declaration.
type SignalDecl struct {
	Token token.Token
	Name  *Identifier
	Type  *TypeName
	Init  Expression // optional initializer
}

func (s *SignalDecl) TokenLiteral() string { return s.Token.Text }
func (s *SignalDecl) String() string       { return s.Name.Value + ": " + s.Type.String() }
func (s *SignalDecl) Pos() token.Position  { return s.Token.Pos }

func (s *SignalDecl) Children() []Node {
	children := []Node{s.Name, s.Type}
	if s.Init != nil {
		children = append(children, s.Init)
	}
	return children
}

// BusDecl declares a bus either as an explicit list of signals or via a
// reference to a named bus-shape typedef.
type BusDecl struct {
	Token     token.Token
	Name      *Identifier
	Signals   []*SignalDecl // explicit form; nil when TypeRef is set
	TypeRef   *TypeName     // named-shape form; nil when Signals is set
	Exposed   bool
	IsUnique  bool
}

func (b *BusDecl) TokenLiteral() string { return b.Token.Text }
func (b *BusDecl) String() string       { return "bus " + b.Name.Value }
func (b *BusDecl) Pos() token.Position  { return b.Token.Pos }
func (b *BusDecl) declarationNode()     {}

func (b *BusDecl) Children() []Node {
	children := []Node{b.Name}
	for _, s := range b.Signals {
		children = append(children, s)
	}
	if b.TypeRef != nil {
		children = append(children, b.TypeRef)
	}
	return children
}

// EnumField is one member of an EnumDecl; Value is nil when the source
// omits an explicit literal.
type EnumField struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

// EnumDecl declares an enumeration type; Fields has at least one entry.
type EnumDecl struct {
	Token  token.Token
	Name   *Identifier
	Fields []*EnumField
}

func (e *EnumDecl) TokenLiteral() string { return e.Token.Text }
func (e *EnumDecl) String() string       { return "enum " + e.Name.Value }
func (e *EnumDecl) Pos() token.Position  { return e.Token.Pos }
func (e *EnumDecl) declarationNode()     {}

func (e *EnumDecl) Children() []Node {
	children := []Node{e.Name}
	for _, f := range e.Fields {
		children = append(children, f.Name)
		if f.Value != nil {
			children = append(children, f.Value)
		}
	}
	return children
}

// FunctionDecl declares a callable function with its own parameter and
// local-declaration scope.
type FunctionDecl struct {
	Token        token.Token
	Name         *Identifier
	Parameters   []*Parameter
	ReturnType   *TypeName // nil for a void function
	Declarations []Declaration
	Statements   []Statement
}

func (f *FunctionDecl) TokenLiteral() string { return f.Token.Text }
func (f *FunctionDecl) String() string       { return "function " + f.Name.Value }
func (f *FunctionDecl) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionDecl) declarationNode()     {}

func (f *FunctionDecl) Children() []Node {
	children := []Node{f.Name}
	for _, p := range f.Parameters {
		children = append(children, p)
	}
	if f.ReturnType != nil {
		children = append(children, f.ReturnType)
	}
	for _, d := range f.Declarations {
		children = append(children, d)
	}
	for _, s := range f.Statements {
		children = append(children, s)
	}
	return children
}

// ParamMap binds one actual argument expression to a formal, by name when
// Name is non-nil or positionally otherwise.
type ParamMap struct {
	Name  *Identifier // nil for a positional argument
	Value Expression
}

// InstanceDecl instantiates a process or network under a local name.
type InstanceDecl struct {
	Token      token.Token
	Name       *Identifier
	Source     *Identifier // the process/network entity being instantiated
	Parameters []*ParamMap
}

func (i *InstanceDecl) TokenLiteral() string { return i.Token.Text }
func (i *InstanceDecl) String() string       { return "instance " + i.Name.Value }
func (i *InstanceDecl) Pos() token.Position  { return i.Token.Pos }
func (i *InstanceDecl) declarationNode()     {}

func (i *InstanceDecl) Children() []Node {
	children := []Node{i.Name, i.Source}
	for _, p := range i.Parameters {
		if p.Name != nil {
			children = append(children, p.Name)
		}
		children = append(children, p.Value)
	}
	return children
}

// GeneratorDecl repeats Inner once per integer value in [From, To].
type GeneratorDecl struct {
	Token token.Token
	Name  *Identifier
	From  Expression
	To    Expression
	Inner []Declaration
}

func (g *GeneratorDecl) TokenLiteral() string { return g.Token.Text }
func (g *GeneratorDecl) String() string       { return "generate " + g.Name.Value }
func (g *GeneratorDecl) Pos() token.Position  { return g.Token.Pos }
func (g *GeneratorDecl) declarationNode()     {}

func (g *GeneratorDecl) Children() []Node {
	children := []Node{g.Name, g.From, g.To}
	for _, d := range g.Inner {
		children = append(children, d)
	}
	return children
}

// TypeDecl binds a name to a type alias (an intrinsic, an enum, or a bus
// shape).
type TypeDecl struct {
	Token token.Token
	Name  *Identifier
	Alias *TypeName
}

func (t *TypeDecl) TokenLiteral() string { return t.Token.Text }
func (t *TypeDecl) String() string       { return "type " + t.Name.Value + " = " + t.Alias.String() }
func (t *TypeDecl) Pos() token.Position  { return t.Token.Pos }
func (t *TypeDecl) declarationNode()     {}
func (t *TypeDecl) Children() []Node     { return []Node{t.Name, t.Alias} }

// ConnectEntry is one "from -> to" wiring inside a connect declaration.
type ConnectEntry struct {
	Token token.Token
	From  *NameExpr
	To    *NameExpr
}

// ConnectDecl synthesizes identity processes wiring each entry's source to
// its destination.
type ConnectDecl struct {
	Token   token.Token
	Entries []*ConnectEntry
}

func (c *ConnectDecl) TokenLiteral() string { return c.Token.Text }
func (c *ConnectDecl) String() string       { return "connect" }
func (c *ConnectDecl) Pos() token.Position  { return c.Token.Pos }
func (c *ConnectDecl) declarationNode()     {}

func (c *ConnectDecl) Children() []Node {
	children := make([]Node, 0, len(c.Entries)*2)
	for _, e := range c.Entries {
		children = append(children, e.From, e.To)
	}
	return children
}
