package semantic

import (
	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/errors"
	"github.com/smeil-lang/smeilc/internal/instance"
	"github.com/smeil-lang/smeilc/internal/scope"
	"github.com/smeil-lang/smeilc/internal/token"
	"github.com/smeil-lang/smeilc/internal/types"
)

// TypeAssignPass computes and caches the type of every expression
// reachable from the instance graph, inserting implicit casts where
// required and enforcing signal-direction and precision rules.
type TypeAssignPass struct{}

func (TypeAssignPass) Name() string { return "assign-types" }

func (TypeAssignPass) Run(ctx *Context) *errors.Diagnostic {
	mod := ctx.Root
	ts := &typerCtx{
		sc:  mod.Inner,
		reg: ctx.Registry,
		setType: func(e ast.Expression, t types.DataType) { mod.SetType(e, t) },
		getType: func(e ast.Expression) (types.DataType, bool) { t, ok := mod.AssignedTypes[e]; return t, ok },
	}
	for _, c := range mod.Constants {
		if d := ts.ensureConstantType(c); d != nil {
			return d
		}
	}
	if mod.Network == nil {
		return nil
	}
	return assignNetworkTypes(ctx, mod.Network)
}

func assignNetworkTypes(ctx *Context, net *instance.Network) *errors.Diagnostic {
	ts := &typerCtx{
		sc:  net.Inner,
		reg: ctx.Registry,
		setType: func(e ast.Expression, t types.DataType) { net.SetType(e, t) },
		getType: func(e ast.Expression) (types.DataType, bool) { t, ok := net.AssignedTypes[e]; return t, ok },
	}
	for _, c := range net.Constants {
		if d := ts.ensureConstantType(c); d != nil {
			return d
		}
	}
	for _, b := range net.Busses {
		if d := ts.ensureBusInits(b); d != nil {
			return d
		}
	}
	for _, child := range net.Children {
		switch c := child.(type) {
		case *instance.Process:
			if d := assignProcessTypes(ctx, c); d != nil {
				return d
			}
		case *instance.Network:
			if d := assignNetworkTypes(ctx, c); d != nil {
				return d
			}
		}
	}
	return nil
}

func assignProcessTypes(ctx *Context, p *instance.Process) *errors.Diagnostic {
	busDir, sigDir := directionMaps(p.Mapped)
	ts := &typerCtx{
		sc:  p.Inner,
		reg: ctx.Registry,
		setType: func(e ast.Expression, t types.DataType) { p.SetType(e, t) },
		getType: func(e ast.Expression) (types.DataType, bool) { t, ok := p.AssignedTypes[e]; return t, ok },
		recordUse: func(item instance.Instance, u instance.Usage) { p.RecordUsage(item, u) },
		busDir:  busDir,
		sigDir:  sigDir,
	}
	for _, c := range p.Constants {
		if d := ts.ensureConstantType(c); d != nil {
			return d
		}
	}
	for _, v := range p.Variables {
		if d := ts.ensureVariableType(v); d != nil {
			return d
		}
	}
	for _, b := range p.Busses {
		if d := ts.ensureBusInits(b); d != nil {
			return d
		}
	}
	if d := ts.typeStatements(p.AST.Statements); d != nil {
		return d
	}
	for _, inv := range p.Invocations {
		if d := assignInvocationTypes(ctx, inv); d != nil {
			return d
		}
	}
	return nil
}

func assignInvocationTypes(ctx *Context, inv *instance.FunctionInvocation) *errors.Diagnostic {
	ts := &typerCtx{
		sc:  inv.Inner,
		reg: ctx.Registry,
		setType: func(e ast.Expression, t types.DataType) { inv.SetType(e, t) },
		getType: func(e ast.Expression) (types.DataType, bool) { t, ok := inv.AssignedTypes[e]; return t, ok },
		recordUse: func(item instance.Instance, u instance.Usage) { inv.RecordUsage(item, u) },
	}
	for _, loc := range inv.Locals {
		switch v := loc.(type) {
		case *instance.ConstantReference:
			if d := ts.ensureConstantType(v); d != nil {
				return d
			}
		case *instance.Variable:
			if d := ts.ensureVariableType(v); d != nil {
				return d
			}
		}
	}
	return ts.typeStatements(inv.Statements)
}

// directionMaps indexes a process's mapped parameters by the argument
// instance they bound, so checkDirection can enforce the formal's
// direction against every later read or write of that argument.
func directionMaps(mapped []*instance.MappedParameter) (map[*instance.Bus]ast.Direction, map[*instance.Signal]ast.Direction) {
	busDir := make(map[*instance.Bus]ast.Direction, len(mapped))
	sigDir := make(map[*instance.Signal]ast.Direction, len(mapped))
	for _, mp := range mapped {
		switch arg := mp.Argument.(type) {
		case *instance.Bus:
			busDir[arg] = mp.Formal.Direction
		case *instance.Signal:
			sigDir[arg] = mp.Formal.Direction
		}
	}
	return busDir, sigDir
}

// typerCtx carries the state one expression-typing traversal needs: the
// scope expressions resolve against, the owning instance's type/usage
// sinks (a plain func pair rather than an interface, since Module,
// Network, Process and FunctionInvocation share no common method set
// beyond SetType), and — for a process body — the direction a mapped
// bus or signal argument was bound with.
type typerCtx struct {
	sc  *scope.Scope
	reg *scope.Registry

	setType func(ast.Expression, types.DataType)
	getType func(ast.Expression) (types.DataType, bool)

	recordUse func(instance.Instance, instance.Usage) // nil outside process/invocation bodies

	busDir map[*instance.Bus]ast.Direction
	sigDir map[*instance.Signal]ast.Direction
}

func (ts *typerCtx) record(item instance.Instance, usage instance.Usage) {
	if ts.recordUse != nil {
		ts.recordUse(item, usage)
	}
}

// checkDirection enforces a mapped signal's binding direction against a
// read or write of it. A local, bidirectional bus's signals
// carry no binding and are left unchecked; DirInverse is treated as
// unconstrained, a best-effort resolution of inverted-direction's
// ambiguous semantics, recorded in DESIGN.md.
func (ts *typerCtx) checkDirection(sig *instance.Signal, usage instance.Usage, tok token.Token) *errors.Diagnostic {
	dir, ok := ts.sigDir[sig]
	if !ok {
		if sig.Bus == nil {
			return nil
		}
		dir, ok = ts.busDir[sig.Bus]
		if !ok {
			return nil
		}
	}
	switch dir {
	case ast.DirOut:
		if usage == instance.UsageRead {
			return errors.Newf(errors.IllegalSignalDirection, tok, "signal %q is bound out and cannot be read", sig.Name)
		}
	case ast.DirIn, ast.DirConst:
		if usage == instance.UsageWrite {
			return errors.Newf(errors.IllegalSignalDirection, tok, "signal %q is bound %s and cannot be written", sig.Name, dir)
		}
	}
	return nil
}

func (ts *typerCtx) instanceTypeOf(item interface{}, tok token.Token, usage instance.Usage) (types.DataType, instance.Instance, *errors.Diagnostic) {
	switch v := item.(type) {
	case *instance.Signal:
		t, ok := v.Type()
		if !ok {
			return nil, nil, errors.Newf(errors.BadType, tok, "signal %q has no resolved type", v.Name)
		}
		ts.record(v, usage)
		if d := ts.checkDirection(v, usage, tok); d != nil {
			return nil, nil, d
		}
		return t, v, nil
	case *instance.Bus:
		t, ok := v.ShapeType()
		if !ok {
			return nil, nil, errors.Newf(errors.BadType, tok, "bus %q has no resolved shape", v.Name)
		}
		return t, v, nil
	case *instance.Variable:
		if d := ts.ensureVariableType(v); d != nil {
			return nil, nil, d
		}
		t, _ := v.Type()
		ts.record(v, usage)
		return t, v, nil
	case *instance.ConstantReference:
		if d := ts.ensureConstantType(v); d != nil {
			return nil, nil, d
		}
		t, _ := v.Type()
		return t, v, nil
	case *instance.EnumFieldReference:
		return types.Enumeration{Decl: v.Parent}, v, nil
	case *instance.Parameter:
		if v.Type == nil {
			return nil, nil, errors.Newf(errors.BadType, tok, "parameter %q has no resolved type", v.Name)
		}
		return v.Type, v, nil
	default:
		return nil, nil, errors.New(errors.BadType, tok, "this name cannot be used in an expression")
	}
}

func (ts *typerCtx) typeOfName(n *ast.NameExpr, usage instance.Usage) (types.DataType, instance.Instance, *errors.Diagnostic) {
	for _, seg := range n.Path {
		if seg.Index == nil {
			continue
		}
		idxType, d := ts.typeOf(seg.Index)
		if d != nil {
			return nil, nil, d
		}
		if !types.IsInteger(idxType) {
			return nil, nil, errors.Newf(errors.TypeMismatch, exprTok(seg.Index), "array index must be an integer, got %s", idxType)
		}
	}

	path := namePath(n)
	res := scope.Resolve(path, ts.sc, ts.reg)
	if res.Item == nil {
		candidates := scope.NamesVisibleAt(path, res.FailedIndex, ts.sc, ts.reg)
		suggestion := scope.Suggest(path[res.FailedIndex], candidates)
		msg := "unknown symbol " + path[res.FailedIndex]
		if suggestion != "" {
			msg += "; did you mean " + suggestion + "?"
		}
		return nil, nil, errors.New(errors.UnknownSymbol, n.First().Token, msg)
	}

	t, inst, d := ts.instanceTypeOf(res.Item, n.First().Token, usage)
	if d != nil {
		return nil, nil, d
	}
	ts.setType(n, t)
	return t, inst, nil
}

// typeOf is the single recursive, memoized expression typer: every
// expression's type is known as soon as its children's types are, so
// one traversal computes seed, declaration, and dependent types alike.
func (ts *typerCtx) typeOf(e ast.Expression) (types.DataType, *errors.Diagnostic) {
	switch v := e.(type) {
	case *ast.LiteralExpr:
		t := literalType(v)
		ts.setType(e, t)
		return t, nil

	case *ast.NameExpr:
		t, _, d := ts.typeOfName(v, instance.UsageRead)
		return t, d

	case *ast.UnaryExpr:
		return ts.typeOfUnary(v)

	case *ast.BinaryExpr:
		return ts.typeOfBinary(v)

	case *ast.ParenExpr:
		t, d := ts.typeOf(v.Inner)
		if d != nil {
			return nil, d
		}
		ts.setType(e, t)
		return t, nil

	case *ast.CastExpr:
		return ts.typeOfCast(v)

	default:
		return nil, errors.New(errors.BadType, exprTok(e), "expression cannot be typed")
	}
}

func (ts *typerCtx) typeOfUnary(v *ast.UnaryExpr) (types.DataType, *errors.Diagnostic) {
	operand, d := ts.typeOf(v.Operand)
	if d != nil {
		return nil, d
	}
	var result types.DataType
	switch v.Op {
	case "!":
		if operand.Kind() != types.KindBool {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operator %q requires a bool operand, got %s", v.Op, operand)
		}
		result = types.Bool{}
	case "-", "+":
		if !types.IsNumeric(operand) {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operator %q requires a numeric operand, got %s", v.Op, operand)
		}
		result = operand
	case "~":
		if !types.IsInteger(operand) {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operator %q requires an integer operand, got %s", v.Op, operand)
		}
		result = operand
	default:
		return nil, errors.Newf(errors.BadType, v.Token, "unknown unary operator %q", v.Op)
	}
	ts.setType(v, result)
	return result, nil
}

func (ts *typerCtx) typeOfBinary(v *ast.BinaryExpr) (types.DataType, *errors.Diagnostic) {
	lt, d := ts.typeOf(v.Left)
	if d != nil {
		return nil, d
	}
	rt, d := ts.typeOf(v.Right)
	if d != nil {
		return nil, d
	}

	var result types.DataType
	switch v.Op {
	case "+", "-", "*", "/", "%":
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operator %q requires numeric operands, got %s and %s", v.Op, lt, rt)
		}
		unified, ok := types.Unify(lt, rt)
		if !ok {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operand types %s and %s do not unify", lt, rt)
		}
		ts.coerceBinaryOperands(v, lt, rt, unified)
		result = unified

	case "<", "<=", ">", ">=":
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operator %q requires numeric operands, got %s and %s", v.Op, lt, rt)
		}
		unified, ok := types.Unify(lt, rt)
		if !ok {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operand types %s and %s do not unify", lt, rt)
		}
		ts.coerceBinaryOperands(v, lt, rt, unified)
		result = types.Bool{}

	case "==", "!=":
		unified, ok := types.Unify(lt, rt)
		if !ok {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operand types %s and %s do not unify", lt, rt)
		}
		ts.coerceBinaryOperands(v, lt, rt, unified)
		result = types.Bool{}

	case "&&", "||":
		if lt.Kind() != types.KindBool || rt.Kind() != types.KindBool {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operator %q requires bool operands, got %s and %s", v.Op, lt, rt)
		}
		result = types.Bool{}

	case "&", "|", "^":
		if !types.IsInteger(lt) || !types.IsInteger(rt) {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operator %q requires integer operands, got %s and %s", v.Op, lt, rt)
		}
		unified, ok := types.Unify(lt, rt)
		if !ok {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operand types %s and %s do not unify", lt, rt)
		}
		ts.coerceBinaryOperands(v, lt, rt, unified)
		result = unified

	case "<<", ">>":
		if !types.IsInteger(lt) || !types.IsInteger(rt) {
			return nil, errors.Newf(errors.TypeMismatch, v.Token, "operator %q requires integer operands, got %s and %s", v.Op, lt, rt)
		}
		// Shift amount keeps its own width; the result stays the left
		// operand's type unchanged, so no implicit cast is inserted here.
		result = lt

	default:
		return nil, errors.Newf(errors.BadType, v.Token, "unknown binary operator %q", v.Op)
	}

	ts.setType(v, result)
	return result, nil
}

// coerceBinaryOperands wraps either side of a binary expression in an
// implicit cast when its own type differs from the unified result type,
// i.e. when the two operands had unequal type.
func (ts *typerCtx) coerceBinaryOperands(v *ast.BinaryExpr, lt, rt, unified types.DataType) {
	if !sameType(lt, unified) {
		v.Left = ts.wrapCast(v.Left, unified)
	}
	if !sameType(rt, unified) {
		v.Right = ts.wrapCast(v.Right, unified)
	}
}

func (ts *typerCtx) typeOfCast(v *ast.CastExpr) (types.DataType, *errors.Diagnostic) {
	operand, d := ts.typeOf(v.Operand)
	if d != nil {
		return nil, d
	}
	if !v.Explicit {
		if t, ok := ts.getType(v); ok {
			return t, nil
		}
		ts.setType(v, operand)
		return operand, nil
	}
	target, diag := ResolveTypeName(v.Type, ts.sc)
	if diag != nil {
		return nil, diag
	}
	if !types.CanCast(operand, target) {
		return nil, errors.Newf(errors.IncompatibleCast, v.Token, "cannot cast %s to %s", operand, target)
	}
	ts.setType(v, target)
	return target, nil
}

// wrapCast wraps e in an implicit cast to target, recording the wrapper's
// type immediately so a later lookup of the same expression node never
// re-derives it.
func (ts *typerCtx) wrapCast(e ast.Expression, target types.DataType) ast.Expression {
	tok := exprTok(e)
	cast := &ast.CastExpr{Token: token.Token{Pos: tok.Pos, Text: tok.Text}, Operand: e, Explicit: false}
	ts.setType(cast, target)
	return cast
}

// sameType is strict structural equality, distinct from types.Equal
// (which only asks whether two types unify) — it decides whether an
// implicit cast needs inserting at all.
func sameType(a, b types.DataType) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case types.Bus:
		bv := b.(types.Bus)
		if len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name || !sameType(av.Fields[i].Type, bv.Fields[i].Type) {
				return false
			}
		}
		return true
	case types.Enumeration:
		bv := b.(types.Enumeration)
		return av.Decl == bv.Decl
	default:
		return a == b
	}
}

// ensureVariableType computes and caches v's type on demand, extending
// resolveVariableType (component F's annotation/literal-only shortcut)
// to a full expression-typed initializer, checking it against an
// explicit annotation when both are present.
func (ts *typerCtx) ensureVariableType(v *instance.Variable) *errors.Diagnostic {
	if _, ok := v.Type(); ok {
		return nil
	}
	if v.AST == nil {
		return nil // a for-loop counter; cached during elaboration
	}

	var annotated types.DataType
	if v.AST.Type != nil {
		t, d := ResolveTypeName(v.AST.Type, ts.sc)
		if d != nil {
			return d
		}
		annotated = t
	}

	if v.AST.Init == nil {
		if annotated == nil {
			return errors.Newf(errors.BadType, token.Token{Pos: v.Pos(), Text: v.Name}, "cannot determine type for %q", v.Name)
		}
		v.CacheType(annotated)
		return nil
	}

	initType, d := ts.typeOf(v.AST.Init)
	if d != nil {
		return d
	}
	if annotated == nil {
		v.CacheType(initType)
		return nil
	}
	if !types.Equal(initType, annotated) {
		return errors.Newf(errors.TypeMismatch, exprTok(v.AST.Init), "initializer type %s does not match declared type %s for %q", initType, annotated, v.Name)
	}
	if types.Width(annotated) > 0 && types.Width(initType) > types.Width(annotated) {
		return errors.Newf(errors.PrecisionLoss, exprTok(v.AST.Init), "initializer for %q loses precision converting %s to %s", v.Name, initType, annotated)
	}
	if !sameType(initType, annotated) {
		v.AST.Init = ts.wrapCast(v.AST.Init, annotated)
	}
	v.CacheType(annotated)
	return nil
}

// ensureConstantType mirrors ensureVariableType for constants, whose
// initializer must still fold to a compile-time constant (already
// checked by component E) but whose type component G now computes in
// full, including operators resolveConstantType's literal-only walk
// does not cover.
func (ts *typerCtx) ensureConstantType(c *instance.ConstantReference) *errors.Diagnostic {
	if _, ok := c.Type(); ok {
		return nil
	}
	var annotated types.DataType
	if c.AST.Type != nil {
		t, d := ResolveTypeName(c.AST.Type, ts.sc)
		if d != nil {
			return d
		}
		annotated = t
	}
	initType, d := ts.typeOf(c.AST.Init)
	if d != nil {
		return d
	}
	if annotated == nil {
		c.CacheType(initType)
		return nil
	}
	if !types.Equal(initType, annotated) {
		return errors.Newf(errors.TypeMismatch, exprTok(c.AST.Init), "initializer type %s does not match declared type %s for %q", initType, annotated, c.Name)
	}
	if types.Width(annotated) > 0 && types.Width(initType) > types.Width(annotated) {
		return errors.Newf(errors.PrecisionLoss, exprTok(c.AST.Init), "initializer for %q loses precision converting %s to %s", c.Name, initType, annotated)
	}
	if !sameType(initType, annotated) {
		c.AST.Init = ts.wrapCast(c.AST.Init, annotated)
	}
	c.CacheType(annotated)
	return nil
}

// ensureBusInits types every signal initializer on an already-shaped bus
// (its signal types themselves were resolved eagerly during elaboration).
func (ts *typerCtx) ensureBusInits(b *instance.Bus) *errors.Diagnostic {
	for _, sig := range b.Signals {
		if sig.AST == nil || sig.AST.Init == nil {
			continue
		}
		sigType, ok := sig.Type()
		if !ok {
			return errors.Newf(errors.BadType, token.Token{Pos: sig.Pos(), Text: sig.Name}, "signal %q has no resolved type", sig.Name)
		}
		initType, d := ts.typeOf(sig.AST.Init)
		if d != nil {
			return d
		}
		if !types.Equal(initType, sigType) {
			return errors.Newf(errors.TypeMismatch, exprTok(sig.AST.Init), "initializer type %s does not match signal %q's type %s", initType, sig.Name, sigType)
		}
		if types.Width(sigType) > 0 && types.Width(initType) > types.Width(sigType) {
			return errors.Newf(errors.PrecisionLoss, exprTok(sig.AST.Init), "initializer for signal %q loses precision", sig.Name)
		}
		if !sameType(initType, sigType) {
			sig.AST.Init = ts.wrapCast(sig.AST.Init, sigType)
		}
	}
	return nil
}

// checkAssignment types an assignment statement, checking target/value
// compatibility and inserting an implicit cast on the value side when the
// types differ.
func (ts *typerCtx) checkAssignment(a *ast.AssignStmt) *errors.Diagnostic {
	targetType, _, d := ts.typeOfName(a.Target, instance.UsageWrite)
	if d != nil {
		return d
	}
	valType, d := ts.typeOf(a.Value)
	if d != nil {
		return d
	}
	if !types.Equal(valType, targetType) {
		return errors.Newf(errors.TypeMismatch, exprTok(a.Value), "value of type %s is not assignable to %s", valType, targetType)
	}
	if types.Width(targetType) > 0 && types.Width(valType) > types.Width(targetType) {
		return errors.Newf(errors.PrecisionLoss, exprTok(a.Value), "assigning %s to %s loses precision", valType, targetType)
	}
	if !sameType(valType, targetType) {
		a.Value = ts.wrapCast(a.Value, targetType)
	}
	return nil
}

func (ts *typerCtx) typeStatements(stmts []ast.Statement) *errors.Diagnostic {
	for _, s := range stmts {
		if d := ts.typeStatement(s); d != nil {
			return d
		}
	}
	return nil
}

func (ts *typerCtx) typeStatement(s ast.Statement) *errors.Diagnostic {
	switch st := s.(type) {
	case *ast.AssignStmt:
		return ts.checkAssignment(st)

	case *ast.IfStmt:
		ct, d := ts.typeOf(st.Cond)
		if d != nil {
			return d
		}
		if ct.Kind() != types.KindBool {
			return errors.Newf(errors.TypeMismatch, exprTok(st.Cond), "if condition must be bool, got %s", ct)
		}
		if d := ts.typeStatements(st.Then); d != nil {
			return d
		}
		for _, el := range st.Elifs {
			ect, d := ts.typeOf(el.Cond)
			if d != nil {
				return d
			}
			if ect.Kind() != types.KindBool {
				return errors.Newf(errors.TypeMismatch, exprTok(el.Cond), "elif condition must be bool, got %s", ect)
			}
			if d := ts.typeStatements(el.Body); d != nil {
				return d
			}
		}
		return ts.typeStatements(st.Else)

	case *ast.ForStmt:
		ft, d := ts.typeOf(st.From)
		if d != nil {
			return d
		}
		if !types.IsInteger(ft) {
			return errors.Newf(errors.TypeMismatch, exprTok(st.From), "for-loop bound must be an integer, got %s", ft)
		}
		tt, d := ts.typeOf(st.To)
		if d != nil {
			return d
		}
		if !types.IsInteger(tt) {
			return errors.Newf(errors.TypeMismatch, exprTok(st.To), "for-loop bound must be an integer, got %s", tt)
		}
		return ts.typeStatements(st.Body)

	case *ast.SwitchStmt:
		vt, d := ts.typeOf(st.Value)
		if d != nil {
			return d
		}
		for _, c := range st.Cases {
			for _, val := range c.Values {
				ct, d := ts.typeOf(val)
				if d != nil {
					return d
				}
				if !types.Equal(ct, vt) {
					return errors.Newf(errors.TypeMismatch, exprTok(val), "case value of type %s does not match switch value type %s", ct, vt)
				}
			}
			if d := ts.typeStatements(c.Body); d != nil {
				return d
			}
		}
		return nil

	case *ast.CallStmt:
		// Argument types were already checked while wiring (component F);
		// nothing left to type here.
		return nil

	case *ast.TraceStmt:
		for _, a := range st.Args {
			if _, d := ts.typeOf(a); d != nil {
				return d
			}
		}
		return nil

	case *ast.AssertStmt:
		ct, d := ts.typeOf(st.Cond)
		if d != nil {
			return d
		}
		if ct.Kind() != types.KindBool {
			return errors.Newf(errors.TypeMismatch, exprTok(st.Cond), "assert condition must be bool, got %s", ct)
		}
		if st.Message != nil {
			if _, d := ts.typeOf(st.Message); d != nil {
				return d
			}
		}
		return nil

	case *ast.BreakStmt:
		return nil

	default:
		return errors.New(errors.BadType, token.Token{Pos: s.Pos(), Text: s.TokenLiteral()}, "unsupported statement")
	}
}
