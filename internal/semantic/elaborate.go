package semantic

import (
	"fmt"
	"strconv"

	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/errors"
	"github.com/smeil-lang/smeilc/internal/instance"
	"github.com/smeil-lang/smeilc/internal/scope"
	"github.com/smeil-lang/smeilc/internal/token"
	"github.com/smeil-lang/smeilc/internal/types"
)

// ElaboratePass builds the instance graph from the parsed module:
// module-level constants/enums/functions, then the top-level network
// and everything it recursively instantiates.
type ElaboratePass struct{}

func (ElaboratePass) Name() string { return "elaborate" }

func (p ElaboratePass) Run(ctx *Context) *errors.Diagnostic {
	moduleScope := scope.New(nil)
	mod := &instance.Module{AST: ctx.Module, Name: ctx.Module.Name, Inner: moduleScope}
	ctx.Registry.Bind(mod, moduleScope)
	ctx.Root = mod

	for _, d := range ctx.Module.Declarations {
		if diag := elaborateModuleDecl(d, moduleScope, mod); diag != nil {
			return diag
		}
	}
	for _, e := range ctx.Module.Entities {
		entityTok := token.Token{Pos: e.Pos(), Text: e.TokenLiteral()}
		if err := moduleScope.TryAddSymbol(e.EntityName().Value, e, entityTok); err != nil {
			return dupDiag(err, entityTok)
		}
	}

	topAST, diag := findTopNetwork(ctx.Module, ctx.TopNetworkName)
	if diag != nil {
		return diag
	}

	net, diag := elaborateNetwork(ctx, topAST, nil, moduleScope)
	if diag != nil {
		return diag
	}
	mod.Network = net

	ctx.AddWireJob(&WireJob{
		Target:    net,
		Args:      cliArgsToActuals(ctx.Args),
		Enclosing: moduleScope,
		CallToken: topAST.Token,
	})

	return nil
}

func dupDiag(err error, tok token.Token) *errors.Diagnostic {
	if dup, ok := err.(*scope.DuplicateSymbolError); ok {
		return errors.Newf(errors.DuplicateSymbol, tok, "%q is already declared in this scope", dup.Name)
	}
	return errors.New(errors.DuplicateSymbol, tok, err.Error())
}

func findTopNetwork(mod *ast.Module, name string) (*ast.Network, *errors.Diagnostic) {
	var networks []*ast.Network
	for _, e := range mod.Entities {
		if n, ok := e.(*ast.Network); ok {
			if name != "" && n.Name.Value == name {
				return n, nil
			}
			networks = append(networks, n)
		}
	}
	if name != "" {
		return nil, errors.New(errors.UnknownSymbol, mod.Token, fmt.Sprintf("no top-level network named %q", name))
	}
	if len(networks) == 1 {
		return networks[0], nil
	}
	if len(networks) == 0 {
		return nil, errors.New(errors.UnknownSymbol, mod.Token, "module declares no network")
	}
	return nil, errors.New(errors.UnknownSymbol, mod.Token, "module declares multiple networks; a top-level network name is required")
}

// elaborateModuleDecl elaborates the module-level declarations —
// constants, enums, functions — plus typedefs (type aliases and named
// bus shapes), since the module scope is where those typedefs live for
// every network to reference.
func elaborateModuleDecl(d ast.Declaration, sc *scope.Scope, mod *instance.Module) *errors.Diagnostic {
	switch v := d.(type) {
	case *ast.ConstantDecl:
		cr, diag := elaborateConstant(v, sc)
		if diag != nil {
			return diag
		}
		mod.Constants = append(mod.Constants, cr)
		return nil
	case *ast.EnumDecl:
		et, diag := elaborateEnum(v, sc)
		if diag != nil {
			return diag
		}
		mod.Enums = append(mod.Enums, et)
		return nil
	case *ast.TypeDecl:
		if err := sc.TryAddTypedef(v.Name.Value, v, v.Token); err != nil {
			return dupDiag(err, v.Token)
		}
		return nil
	case *ast.BusDecl:
		if err := sc.TryAddTypedef(v.Name.Value, v, v.Token); err != nil {
			return dupDiag(err, v.Token)
		}
		return nil
	case *ast.FunctionDecl:
		if err := sc.TryAddSymbol(v.Name.Value, v, v.Token); err != nil {
			return dupDiag(err, v.Token)
		}
		return nil
	default:
		return nil
	}
}

func elaborateConstant(d *ast.ConstantDecl, sc *scope.Scope) (*instance.ConstantReference, *errors.Diagnostic) {
	cr := &instance.ConstantReference{AST: d, Name: d.Name.Value}
	if err := sc.TryAddSymbol(d.Name.Value, cr, d.Token); err != nil {
		return nil, dupDiag(err, d.Token)
	}
	return cr, nil
}

func elaborateEnum(d *ast.EnumDecl, sc *scope.Scope) (*instance.EnumTypeReference, *errors.Diagnostic) {
	et := &instance.EnumTypeReference{AST: d, Name: d.Name.Value}
	var prev int64 = -1
	fields := make([]*instance.EnumFieldReference, 0, len(d.Fields))
	for _, f := range d.Fields {
		var val int64
		if f.Value != nil {
			v, diag := EvalConstInt(f.Value, sc)
			if diag != nil {
				return nil, diag
			}
			val = v
		} else {
			val = prev + 1
		}
		prev = val
		fr := &instance.EnumFieldReference{AST: f, Name: f.Name.Value, Value: val, Parent: et}
		fields = append(fields, fr)
		if err := sc.TryAddSymbol(f.Name.Value, fr, f.Token); err != nil {
			return nil, dupDiag(err, f.Token)
		}
	}
	et.Fields = fields
	if err := sc.TryAddSymbol(d.Name.Value, et, d.Token); err != nil {
		return nil, dupDiag(err, d.Token)
	}
	if err := sc.TryAddTypedef(d.Name.Value, et, d.Token); err != nil {
		return nil, dupDiag(err, d.Token)
	}
	return et, nil
}

// elaborateBus builds a live bus instance (one declared inside a network
// or process body, as opposed to a module-level pure-shape typedef). Shape
// resolution runs eagerly here rather than deferred to first access during
// type assignment — observationally equivalent since shapes never change,
// and it avoids threading a component-D/component-G ordering dependency
// through the rest of the pipeline (documented in DESIGN.md).
func elaborateBus(d *ast.BusDecl, sc *scope.Scope, reg *scope.Registry) (*instance.Bus, *errors.Diagnostic) {
	shape, diag := resolveBusShape(d, sc, make(map[interface{}]bool))
	if diag != nil {
		return nil, diag
	}
	busShape := shape.(types.Bus)

	b := &instance.Bus{AST: d, Name: d.Name.Value, Exposed: d.Exposed, IsUnique: d.IsUnique}
	busScope := scope.New(nil)

	if d.TypeRef != nil {
		for _, f := range busShape.Fields {
			sig := &instance.Signal{Name: f.Name, Bus: b, Tok: d.Token.Pos}
			sig.CacheType(f.Type)
			b.Signals = append(b.Signals, sig)
			if err := busScope.TryAddSymbol(f.Name, sig, d.Token); err != nil {
				return nil, dupDiag(err, d.Token)
			}
		}
	} else {
		for _, sdecl := range d.Signals {
			sig := &instance.Signal{AST: sdecl, Name: sdecl.Name.Value, Bus: b}
			if t, ok := busShape.FieldType(sdecl.Name.Value); ok {
				sig.CacheType(t)
			}
			b.Signals = append(b.Signals, sig)
			if err := busScope.TryAddSymbol(sdecl.Name.Value, sig, sdecl.Token); err != nil {
				return nil, dupDiag(err, sdecl.Token)
			}
		}
	}
	b.CacheShapeType(busShape)
	reg.Bind(b, busScope)

	if err := sc.TryAddSymbol(d.Name.Value, b, d.Token); err != nil {
		return nil, dupDiag(err, d.Token)
	}
	return b, nil
}

// elaborateNetwork elaborates one network entity into an instance,
// recursively elaborating its declarations in source order.
func elaborateNetwork(ctx *Context, nast *ast.Network, parent *instance.Network, lexicalParent *scope.Scope) (*instance.Network, *errors.Diagnostic) {
	if !ctx.EnterInstantiation() {
		return nil, errors.Newf(errors.RecursionLimitExceeded, nast.Token, "network instantiation depth exceeds %d", MaxInstantiationDepth)
	}
	defer ctx.ExitInstantiation()

	sc := scope.New(lexicalParent)
	net := &instance.Network{AST: nast, Name: nast.Name.Value, Parent: parent}
	net.Inner = sc

	for _, p := range nast.Parameters {
		param, diag := elaborateParameter(p, sc)
		if diag != nil {
			return nil, diag
		}
		net.Formals = append(net.Formals, param)
		if err := sc.TryAddSymbol(p.Name.Value, param, p.Token); err != nil {
			return nil, dupDiag(err, p.Token)
		}
	}
	ctx.Registry.Bind(net, sc)

	for _, d := range nast.Declarations {
		if diag := elaborateNetworkDecl(ctx, d, sc, net); diag != nil {
			return nil, diag
		}
	}
	return net, nil
}

func elaborateParameter(p *ast.Parameter, sc *scope.Scope) (*instance.Parameter, *errors.Diagnostic) {
	var t types.DataType
	if p.Type != nil {
		rt, diag := ResolveTypeName(p.Type, sc)
		if diag != nil {
			return nil, diag
		}
		t = rt
	}
	return &instance.Parameter{AST: p, Name: p.Name.Value, Direction: p.Direction, Type: t}, nil
}

func elaborateNetworkDecl(ctx *Context, d ast.Declaration, sc *scope.Scope, net *instance.Network) *errors.Diagnostic {
	switch v := d.(type) {
	case *ast.BusDecl:
		b, diag := elaborateBus(v, sc, ctx.Registry)
		if diag != nil {
			return diag
		}
		net.Busses = append(net.Busses, b)
		return nil
	case *ast.ConstantDecl:
		cr, diag := elaborateConstant(v, sc)
		if diag != nil {
			return diag
		}
		net.Constants = append(net.Constants, cr)
		return nil
	case *ast.EnumDecl:
		et, diag := elaborateEnum(v, sc)
		if diag != nil {
			return diag
		}
		net.Enums = append(net.Enums, et)
		return nil
	case *ast.TypeDecl:
		if err := sc.TryAddTypedef(v.Name.Value, v, v.Token); err != nil {
			return dupDiag(err, v.Token)
		}
		return nil
	case *ast.FunctionDecl:
		if err := sc.TryAddSymbol(v.Name.Value, v, v.Token); err != nil {
			return dupDiag(err, v.Token)
		}
		return nil
	case *ast.GeneratorDecl:
		return elaborateGenerator(ctx, v, sc, net)
	case *ast.InstanceDecl:
		return elaborateInstanceDecl(ctx, v, sc, net)
	case *ast.ConnectDecl:
		for _, entry := range v.Entries {
			proc, diag := synthesizeConnect(ctx, entry, sc)
			if diag != nil {
				return diag
			}
			net.Children = append(net.Children, proc)
		}
		return nil
	default:
		return nil
	}
}

func elaborateGenerator(ctx *Context, g *ast.GeneratorDecl, sc *scope.Scope, net *instance.Network) *errors.Diagnostic {
	from, diag := EvalConstInt(g.From, sc)
	if diag != nil {
		return diag
	}
	to, diag := EvalConstInt(g.To, sc)
	if diag != nil {
		return diag
	}
	// Each iteration gets its own child scope, so repeated names across
	// iterations never collide.
	for i := from; i <= to; i++ {
		iterScope := scope.New(sc)
		for _, inner := range g.Inner {
			if diag := elaborateNetworkDecl(ctx, inner, iterScope, net); diag != nil {
				return diag
			}
		}
	}
	return nil
}

func elaborateInstanceDecl(ctx *Context, d *ast.InstanceDecl, sc *scope.Scope, net *instance.Network) *errors.Diagnostic {
	entry, ok := sc.Lookup(d.Source.Value)
	if !ok {
		suggestion := scope.Suggest(d.Source.Value, sc.AllNames())
		msg := "unknown symbol " + d.Source.Value
		if suggestion != "" {
			msg += "; did you mean " + suggestion + "?"
		}
		return errors.New(errors.UnknownSymbol, d.Source.Token, msg)
	}

	switch source := entry.Item.(type) {
	case *ast.Process:
		proc, diag := elaborateProcess(ctx, source, instance.TagNormal, sc)
		if diag != nil {
			return diag
		}
		proc.Name = d.Name.Value
		net.Children = append(net.Children, proc)
		if err := sc.TryAddSymbol(d.Name.Value, proc, d.Token); err != nil {
			return dupDiag(err, d.Token)
		}
		ctx.AddWireJob(&WireJob{Target: proc, Args: paramMapsToActuals(d.Parameters), Enclosing: sc, CallToken: d.Token})
		return nil
	case *ast.Network:
		child, diag := elaborateNetwork(ctx, source, net, sc)
		if diag != nil {
			return diag
		}
		child.Name = d.Name.Value
		net.Children = append(net.Children, child)
		if err := sc.TryAddSymbol(d.Name.Value, child, d.Token); err != nil {
			return dupDiag(err, d.Token)
		}
		ctx.AddWireJob(&WireJob{Target: child, Args: paramMapsToActuals(d.Parameters), Enclosing: sc, CallToken: d.Token})
		return nil
	default:
		return errors.Newf(errors.UnknownSymbol, d.Source.Token, "%q is not a process or network", d.Source.Value)
	}
}

func paramMapsToActuals(pms []*ast.ParamMap) []Actual {
	out := make([]Actual, len(pms))
	for i, pm := range pms {
		out[i] = Actual{Name: pm.Name, Value: pm.Value}
	}
	return out
}

// cliArgsToActuals wraps each raw command-line argument string in a
// literal expression: those that parse as an integer become int literals,
// everything else a string literal, so the top-level network's
// pseudo-instantiation can be wired by the same parameter-wiring
// pass (component F) as any other instance. These literals carry a
// synthetic zero-position token since the arguments have no source
// location of their own.
func cliArgsToActuals(args []string) []Actual {
	out := make([]Actual, len(args))
	for i, a := range args {
		tok := token.Token{Text: a}
		var lit *ast.LiteralExpr
		if n, err := strconv.ParseInt(a, 10, 64); err == nil {
			lit = &ast.LiteralExpr{Token: tok, Kind: ast.LiteralInt, Int: n}
		} else {
			lit = &ast.LiteralExpr{Token: tok, Kind: ast.LiteralString, Str: a}
		}
		out[i] = Actual{Value: lit}
	}
	return out
}

// ---- connect synthesis ----

func namePath(n *ast.NameExpr) []string {
	segs := make([]string, len(n.Path))
	for i, s := range n.Path {
		segs[i] = s.Name.Value
	}
	return segs
}

func resolveConnectEndpoint(n *ast.NameExpr, sc *scope.Scope, reg *scope.Registry) (interface{}, *errors.Diagnostic) {
	path := namePath(n)
	res := scope.Resolve(path, sc, reg)
	if res.Item == nil {
		names := scope.NamesVisibleAt(path, res.FailedIndex, sc, reg)
		suggestion := scope.Suggest(path[res.FailedIndex], names)
		msg := "unknown symbol " + path[res.FailedIndex]
		if suggestion != "" {
			msg += "; did you mean " + suggestion + "?"
		}
		return nil, errors.New(errors.UnknownSymbol, n.First().Token, msg)
	}
	return res.Item, nil
}

func synthesizeConnect(ctx *Context, entry *ast.ConnectEntry, sc *scope.Scope) (*instance.Process, *errors.Diagnostic) {
	from, diag := resolveConnectEndpoint(entry.From, sc, ctx.Registry)
	if diag != nil {
		return nil, diag
	}
	to, diag := resolveConnectEndpoint(entry.To, sc, ctx.Registry)
	if diag != nil {
		return nil, diag
	}

	switch f := from.(type) {
	case *instance.Signal:
		t, ok := to.(*instance.Signal)
		if !ok {
			return nil, errors.New(errors.IncompatibleConnect, entry.Token, "connect endpoints must both be signals or both be busses")
		}
		return synthesizeSignalConnect(ctx, entry, f, t, sc)
	case *instance.Bus:
		t, ok := to.(*instance.Bus)
		if !ok {
			return nil, errors.New(errors.IncompatibleConnect, entry.Token, "connect endpoints must both be signals or both be busses")
		}
		return synthesizeBusConnect(ctx, entry, f, t, sc)
	default:

		return nil, errors.New(errors.IncompatibleConnect, entry.Token, "connect endpoints must be signals or busses")
	}
}

func synthIdent(tok token.Token, name string) *ast.Identifier {
	return &ast.Identifier{Token: tok, Value: name}
}

func nameExprOf(tok token.Token, segs ...string) *ast.NameExpr {
	path := make([]*ast.NameSegment, len(segs))
	for i, s := range segs {
		path[i] = &ast.NameSegment{Name: synthIdent(tok, s)}
	}
	return &ast.NameExpr{Path: path}
}

// castIfNeeded wraps value in an explicit CastExpr to target when source
// and target differ, the cast rule a synthesized connect-identity
// process applies between its formal and the endpoint it bridges.
func castIfNeeded(tok token.Token, value ast.Expression, source, target types.DataType) ast.Expression {
	if sameType(source, target) {
		return value
	}
	return &ast.CastExpr{
		Token:    tok,
		Type:     &ast.TypeName{Token: tok, Name: target.String()},
		Operand:  value,
		Explicit: true,
	}
}

func synthesizeSignalConnect(ctx *Context, entry *ast.ConnectEntry, from, to *instance.Signal, sc *scope.Scope) (*instance.Process, *errors.Diagnostic) {
	fromType, ok := from.Type()
	if !ok {
		return nil, errors.New(errors.IncompatibleConnect, entry.Token, "connect source signal has no resolved type")
	}
	toType, ok := to.Type()
	if !ok {
		return nil, errors.New(errors.IncompatibleConnect, entry.Token, "connect destination signal has no resolved type")
	}

	tok := entry.Token
	inParamAST := &ast.Parameter{Token: tok, Name: synthIdent(tok, "in"), Direction: ast.DirIn}
	outParamAST := &ast.Parameter{Token: tok, Name: synthIdent(tok, "out"), Direction: ast.DirOut}
	value := castIfNeeded(tok, nameExprOf(tok, "in"), fromType, toType)
	assign := &ast.AssignStmt{Token: tok, Target: nameExprOf(tok, "out"), Value: value}

	procAST := &ast.Process{
		Token:      tok,
		Name:       synthIdent(tok, "connect_"+from.Name+"_to_"+to.Name),
		Parameters: []*ast.Parameter{inParamAST, outParamAST},
		Statements: []ast.Statement{assign},
	}

	return buildConnectProcess(ctx, entry, procAST, inParamAST, outParamAST, fromType, toType, from, to, sc)
}

func synthesizeBusConnect(ctx *Context, entry *ast.ConnectEntry, from, to *instance.Bus, sc *scope.Scope) (*instance.Process, *errors.Diagnostic) {
	fromShape, ok := from.ShapeType()
	if !ok {
		return nil, errors.New(errors.IncompatibleConnect, entry.Token, "connect source bus has no resolved shape")
	}
	toShape, ok := to.ShapeType()
	if !ok {
		return nil, errors.New(errors.IncompatibleConnect, entry.Token, "connect destination bus has no resolved shape")
	}
	fb, toB := fromShape.(types.Bus), toShape.(types.Bus)

	tok := entry.Token
	inParamAST := &ast.Parameter{Token: tok, Name: synthIdent(tok, "in"), Direction: ast.DirIn}
	outParamAST := &ast.Parameter{Token: tok, Name: synthIdent(tok, "out"), Direction: ast.DirOut}

	var statements []ast.Statement
	for _, field := range fb.Fields {
		targetType, present := toB.FieldType(field.Name)
		if !present {
			continue // signals present on only one side are silently dropped
		}
		value := castIfNeeded(tok, nameExprOf(tok, "in", field.Name), field.Type, targetType)
		statements = append(statements, &ast.AssignStmt{Token: tok, Target: nameExprOf(tok, "out", field.Name), Value: value})
	}

	procAST := &ast.Process{
		Token:      tok,
		Name:       synthIdent(tok, "connect_"+from.Name+"_to_"+to.Name),
		Parameters: []*ast.Parameter{inParamAST, outParamAST},
		Statements: statements,
	}

	return buildConnectProcess(ctx, entry, procAST, inParamAST, outParamAST, fb, toB, from, to, sc)
}

func buildConnectProcess(ctx *Context, entry *ast.ConnectEntry, procAST *ast.Process, inParamAST, outParamAST *ast.Parameter, fromType, toType types.DataType, fromInstance, toInstance instance.Instance, sc *scope.Scope) (*instance.Process, *errors.Diagnostic) {
	proc := &instance.Process{AST: procAST, Name: procAST.Name.Value, Tag: instance.TagConnect}
	procScope := scope.New(sc)
	proc.Inner = procScope
	ctx.Registry.Bind(proc, procScope)

	formalIn := &instance.Parameter{AST: inParamAST, Name: "in", Direction: ast.DirIn, Type: fromType}
	formalOut := &instance.Parameter{AST: outParamAST, Name: "out", Direction: ast.DirOut, Type: toType}
	proc.Formals = []*instance.Parameter{formalIn, formalOut}
	proc.Mapped = []*instance.MappedParameter{
		{Formal: formalIn, Argument: fromInstance, ArgumentExpr: entry.From},
		{Formal: formalOut, Argument: toInstance, ArgumentExpr: entry.To},
	}

	if err := procScope.TryAddSymbol("in", fromInstance, entry.Token); err != nil {
		return nil, dupDiag(err, entry.Token)
	}
	if err := procScope.TryAddSymbol("out", toInstance, entry.Token); err != nil {
		return nil, dupDiag(err, entry.Token)
	}

	connection := &instance.Connection{AST: entry, From: fromInstance, To: toInstance, Process: proc}
	proc.SourceConnection = connection
	return proc, nil
}
