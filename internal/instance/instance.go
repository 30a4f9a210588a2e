// Package instance holds the elaborated program graph: the concrete
// Module/Network/Process/Bus/Signal/... tree that instance elaboration
// builds from the AST, annotated in later passes with
// resolved types, parameter bindings, and usage records.
//
// Instances are never destroyed once created; the only permitted
// post-elaboration mutations are wrapping expression operands in
// implicit casts, filling a bus's signals from its typedef, appending
// to assigned-types/usage maps, and appending mapped parameters.
package instance

import (
	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/scope"
	"github.com/smeil-lang/smeilc/internal/token"
	"github.com/smeil-lang/smeilc/internal/types"
)

// Instance is any node of the elaborated instance graph.
type Instance interface {
	Pos() token.Position
}

// ProcessTag distinguishes why a process exists. Elaboration tags every
// process instantiated from source Normal and every process synthesized
// for a connect entry Connect; no pass assigns Identity or TypeCast.
type ProcessTag int

const (
	TagNormal ProcessTag = iota
	TagIdentity
	TagConnect
	TagTypeCast
)

func (t ProcessTag) String() string {
	switch t {
	case TagNormal:
		return "Normal"
	case TagIdentity:
		return "Identity"
	case TagConnect:
		return "Connect"
	case TagTypeCast:
		return "TypeCast"
	default:
		return "?"
	}
}

// Params is embedded by every parameterized instance (process, network,
// function invocation) to hold its formal parameters and, once wired,
// its bound mapped parameters.
type Params struct {
	Formals []*Parameter
	Mapped  []*MappedParameter
	Inner   *scope.Scope // the instance's own local scope, for dotted lookup and wiring
}

func (p *Params) FormalParameters() []*Parameter       { return p.Formals }
func (p *Params) MappedParameters() []*MappedParameter { return p.Mapped }
func (p *Params) AddMappedParameter(mp *MappedParameter) {
	p.Mapped = append(p.Mapped, mp)
}
func (p *Params) Scope() *scope.Scope { return p.Inner }

// ParameterizedInstance is any instance that binds actual arguments to
// formal parameters.
type ParameterizedInstance interface {
	Instance
	FormalParameters() []*Parameter
	MappedParameters() []*MappedParameter
	AddMappedParameter(*MappedParameter)
	Scope() *scope.Scope
}

// Module is the elaborated root: the module's own constants/enums plus
// the single instantiated top-level network.
type Module struct {
	AST       *ast.Module
	Name      string
	Constants []*ConstantReference
	Enums     []*EnumTypeReference
	Network   *Network
	Inner     *scope.Scope

	// AssignedTypes records the type computed for every validated
	// expression reachable from the module's own constant initializers.
	AssignedTypes map[ast.Expression]types.DataType
}

func (m *Module) Pos() token.Position { return m.AST.Pos() }

func (m *Module) SetType(e ast.Expression, t types.DataType) {
	if m.AssignedTypes == nil {
		m.AssignedTypes = make(map[ast.Expression]types.DataType)
	}
	m.AssignedTypes[e] = t
}

// Network is an elaborated network: its declared busses, constants,
// enums, child process/network instantiations, and formal parameters.
type Network struct {
	AST    *ast.Network
	Name   string
	Parent *Network // nil for the top-level network
	Params

	Busses    []*Bus
	Constants []*ConstantReference
	Enums     []*EnumTypeReference
	Children  []Instance // *Process or *Network instantiations, in source order

	// AssignedTypes records the type computed for every validated
	// expression reachable from this network's own constant and
	// locally-declared bus-signal initializers.
	AssignedTypes map[ast.Expression]types.DataType
}

func (n *Network) Pos() token.Position { return n.AST.Pos() }

func (n *Network) SetType(e ast.Expression, t types.DataType) {
	if n.AssignedTypes == nil {
		n.AssignedTypes = make(map[ast.Expression]types.DataType)
	}
	n.AssignedTypes[e] = t
}

// Usage is a bitmask of how a signal or variable was touched inside a
// process.
type Usage int

const (
	UsageRead Usage = 1 << iota
	UsageWrite
)

func (u Usage) Has(flag Usage) bool { return u&flag != 0 }

// Process is an elaborated behavioral entity.
type Process struct {
	AST     *ast.Process
	Name    string
	Tag     ProcessTag
	Clocked bool
	Params

	Variables []*Variable
	Constants []*ConstantReference
	Enums     []*EnumTypeReference
	Busses    []*Bus // locally declared (bidirectional) busses
	ForLoops  []*ForLoop
	Invocations []*FunctionInvocation

	// AssignedTypes records the type computed for every validated
	// expression reachable from this process.
	AssignedTypes map[ast.Expression]types.DataType
	// Usage records Read/Write/Both for every Signal or Variable touched
	// by this process's statements.
	Usage map[Instance]Usage

	// SourceConnection is set on Connect-tagged processes, pointing back
	// to the ConnectDecl entry that synthesized them (for diagnostics and
	// schedule/emitter metadata). Nil for Normal/Identity processes.
	SourceConnection *Connection
}

func (p *Process) Pos() token.Position { return p.AST.Pos() }

func (p *Process) RecordUsage(item Instance, u Usage) {
	if p.Usage == nil {
		p.Usage = make(map[Instance]Usage)
	}
	p.Usage[item] |= u
}

func (p *Process) SetType(e ast.Expression, t types.DataType) {
	if p.AssignedTypes == nil {
		p.AssignedTypes = make(map[ast.Expression]types.DataType)
	}
	p.AssignedTypes[e] = t
}

// Bus is an elaborated bus: an ordered set of signal children plus its
// Exposed/Unique flags, preserved but unconsumed by the core.
type Bus struct {
	AST      *ast.BusDecl
	Name     string
	Signals  []*Signal
	Exposed  bool
	IsUnique bool

	shapeType    types.DataType
	shapeResolved bool
}

func (b *Bus) Pos() token.Position { return b.AST.Pos() }

// ShapeType returns the bus's shape as stored by CacheShapeType, and
// false if no shape has been cached yet.
func (b *Bus) ShapeType() (types.DataType, bool) {
	if b.shapeResolved {
		return b.shapeType, true
	}
	return nil, false
}

func (b *Bus) CacheShapeType(t types.DataType) {
	b.shapeType = t
	b.shapeResolved = true
}

// Signal is one named, typed member of a Bus. AST is nil when the signal
// was synthesized from a typedef shape rather than written out
// explicitly — Tok then carries the owning bus declaration's position.
type Signal struct {
	AST  *ast.SignalDecl
	Name string
	Bus  *Bus // owning bus, non-owning back reference
	Tok  token.Position

	typ      types.DataType
	resolved bool
}

func (s *Signal) Pos() token.Position {
	if s.AST != nil {
		return s.AST.Pos()
	}
	return s.Tok
}

func (s *Signal) Type() (types.DataType, bool) {
	if s.resolved {
		return s.typ, true
	}
	return nil, false
}

func (s *Signal) CacheType(t types.DataType) {
	s.typ = t
	s.resolved = true
}

// Variable is an elaborated local variable. AST is nil for a for-loop
// counter, which has no VariableDecl of its own; Tok then carries the
// loop's position.
type Variable struct {
	AST  *ast.VariableDecl
	Name string
	Tok  token.Position

	typ      types.DataType
	resolved bool
}

func (v *Variable) Pos() token.Position {
	if v.AST != nil {
		return v.AST.Pos()
	}
	return v.Tok
}

func (v *Variable) Type() (types.DataType, bool) {
	if v.resolved {
		return v.typ, true
	}
	return nil, false
}

func (v *Variable) CacheType(t types.DataType) {
	v.typ = t
	v.resolved = true
}

// ConstantReference is an elaborated constant, unique per scope.
type ConstantReference struct {
	AST  *ast.ConstantDecl
	Name string

	typ      types.DataType
	resolved bool
}

func (c *ConstantReference) Pos() token.Position { return c.AST.Pos() }

func (c *ConstantReference) Type() (types.DataType, bool) {
	if c.resolved {
		return c.typ, true
	}
	return nil, false
}

func (c *ConstantReference) CacheType(t types.DataType) {
	c.typ = t
	c.resolved = true
}

// EnumTypeReference is an elaborated enum declaration, also registered as
// a typedef.
type EnumTypeReference struct {
	AST    *ast.EnumDecl
	Name   string
	Fields []*EnumFieldReference
}

func (e *EnumTypeReference) Pos() token.Position { return e.AST.Pos() }

// EnumName satisfies types.EnumDecl so an EnumTypeReference can back a
// types.Enumeration value directly.
func (e *EnumTypeReference) EnumName() string { return e.Name }

// EnumFieldReference is one field of an elaborated enum, with its
// resolved integer value.
type EnumFieldReference struct {
	AST    *ast.EnumField
	Name   string
	Value  int64
	Parent *EnumTypeReference
}

func (e *EnumFieldReference) Pos() token.Position { return e.AST.Name.Pos() }

// Literal is an instance created for a literal expression bound directly
// to a parameter.
type Literal struct {
	AST *ast.LiteralExpr
	Typ types.DataType
}

func (l *Literal) Pos() token.Position { return l.AST.Pos() }

// ForLoop is an elaborated for-loop, with its counter registered as a
// local variable in a nested scope.
type ForLoop struct {
	AST     *ast.ForStmt
	Counter *Variable
	Inner   *scope.Scope
}

func (f *ForLoop) Pos() token.Position { return f.AST.Pos() }

// Connection records one resolved `connect` entry: the declaration that
// asked for the wiring, and the synthesized process that performs it.
// The dependency graph schedules the Process directly;
// Connection itself is retained as emitter-facing lineage, not scheduled
// a second time.
type Connection struct {
	AST     *ast.ConnectEntry
	From    Instance // *Signal or *Bus
	To      Instance // *Signal or *Bus
	Process *Process // the synthesized Connect process
}

func (c *Connection) Pos() token.Position { return c.AST.Token.Pos }

// Parameter is an elaborated formal parameter.
type Parameter struct {
	AST       *ast.Parameter
	Name      string
	Direction ast.Direction
	Type      types.DataType // resolved annotation; nil when the formal has none
}

func (p *Parameter) Pos() token.Position { return p.AST.Pos() }

// MappedParameter binds one resolved argument instance to a formal
//. ArgumentExpr is the original source expression, kept for
// diagnostics.
type MappedParameter struct {
	Formal       *Parameter
	Argument     Instance
	ArgumentExpr ast.Expression
}

func (m *MappedParameter) Pos() token.Position { return m.ArgumentExpr.Pos() }

// FunctionInvocation is one call site of a FunctionDecl: a fresh, cloned
// copy of the definition's body plus its own locals, so implicit casts
// inserted during type assignment never leak back into the shared
// definition.
type FunctionInvocation struct {
	Def      *ast.FunctionDecl
	CallSite token.Token
	Params

	Statements   []ast.Statement // cloned body
	Declarations []ast.Declaration
	Locals       []Instance

	ReturnType types.DataType

	AssignedTypes map[ast.Expression]types.DataType
	Usage         map[Instance]Usage
}

func (f *FunctionInvocation) Pos() token.Position { return f.CallSite.Pos }

func (f *FunctionInvocation) RecordUsage(item Instance, u Usage) {
	if f.Usage == nil {
		f.Usage = make(map[Instance]Usage)
	}
	f.Usage[item] |= u
}

func (f *FunctionInvocation) SetType(e ast.Expression, t types.DataType) {
	if f.AssignedTypes == nil {
		f.AssignedTypes = make(map[ast.Expression]types.DataType)
	}
	f.AssignedTypes[e] = t
}
