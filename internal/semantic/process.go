package semantic

import (
	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/errors"
	"github.com/smeil-lang/smeilc/internal/instance"
	"github.com/smeil-lang/smeilc/internal/scope"
	"github.com/smeil-lang/smeilc/internal/types"
)

// elaborateProcess elaborates one process entity into an instance.
func elaborateProcess(ctx *Context, past *ast.Process, tag instance.ProcessTag, lexicalParent *scope.Scope) (*instance.Process, *errors.Diagnostic) {
	sc := scope.New(lexicalParent)
	proc := &instance.Process{AST: past, Name: past.Name.Value, Tag: tag, Clocked: past.Clocked}
	proc.Inner = sc

	for _, p := range past.Parameters {
		param, diag := elaborateParameter(p, sc)
		if diag != nil {
			return nil, diag
		}
		proc.Formals = append(proc.Formals, param)
		if err := sc.TryAddSymbol(p.Name.Value, param, p.Token); err != nil {
			return nil, dupDiag(err, p.Token)
		}
	}
	ctx.Registry.Bind(proc, sc)

	for _, d := range past.Declarations {
		if diag := elaborateProcessDecl(ctx, d, sc, proc); diag != nil {
			return nil, diag
		}
	}

	if diag := elaborateProcessStatements(ctx, proc, past.Statements, sc); diag != nil {
		return nil, diag
	}

	return proc, nil
}

func elaborateProcessDecl(ctx *Context, d ast.Declaration, sc *scope.Scope, proc *instance.Process) *errors.Diagnostic {
	switch v := d.(type) {
	case *ast.VariableDecl:
		vr := &instance.Variable{AST: v, Name: v.Name.Value}
		if err := sc.TryAddSymbol(v.Name.Value, vr, v.Token); err != nil {
			return dupDiag(err, v.Token)
		}
		proc.Variables = append(proc.Variables, vr)
		return nil
	case *ast.ConstantDecl:
		cr, diag := elaborateConstant(v, sc)
		if diag != nil {
			return diag
		}
		proc.Constants = append(proc.Constants, cr)
		return nil
	case *ast.EnumDecl:
		et, diag := elaborateEnum(v, sc)
		if diag != nil {
			return diag
		}
		proc.Enums = append(proc.Enums, et)
		return nil
	case *ast.BusDecl:
		b, diag := elaborateBus(v, sc, ctx.Registry)
		if diag != nil {
			return diag
		}
		proc.Busses = append(proc.Busses, b)
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
	default:
		return nil
	}
}

// elaborateProcessStatements walks a statement list looking for two
// constructs: for loops (which register a counter in a nested scope)
// and function call statements (which create a per-call-site
// FunctionInvocation). It recurses into every nested block so a for
// loop or call inside an if/switch/for body is still found.
func elaborateProcessStatements(ctx *Context, proc *instance.Process, stmts []ast.Statement, sc *scope.Scope) *errors.Diagnostic {
	for _, st := range stmts {
		if diag := elaborateStatement(ctx, proc, st, sc); diag != nil {
			return diag
		}
	}
	return nil
}

func elaborateStatement(ctx *Context, proc *instance.Process, st ast.Statement, sc *scope.Scope) *errors.Diagnostic {
	switch v := st.(type) {
	case *ast.ForStmt:
		inner := scope.New(sc)
		counter := &instance.Variable{Name: v.Var.Value, Tok: v.Token.Pos}
		counter.CacheType(types.SignedInteger{Width: types.Unconstrained})
		if err := inner.TryAddSymbol(v.Var.Value, counter, v.Token); err != nil {
			return dupDiag(err, v.Token)
		}
		fl := &instance.ForLoop{AST: v, Counter: counter, Inner: inner}
		proc.ForLoops = append(proc.ForLoops, fl)
		ctx.Registry.Bind(fl, inner)
		return elaborateProcessStatements(ctx, proc, v.Body, inner)
	case *ast.IfStmt:
		if diag := elaborateProcessStatements(ctx, proc, v.Then, sc); diag != nil {
			return diag
		}
		for _, e := range v.Elifs {
			if diag := elaborateProcessStatements(ctx, proc, e.Body, sc); diag != nil {
				return diag
			}
		}
		return elaborateProcessStatements(ctx, proc, v.Else, sc)
	case *ast.SwitchStmt:
		for _, c := range v.Cases {
			if diag := elaborateProcessStatements(ctx, proc, c.Body, sc); diag != nil {
				return diag
			}
		}
		return nil
	case *ast.CallStmt:
		return elaborateCall(ctx, proc, v.Call, sc)
	default:
		return nil
	}
}

// elaborateCall resolves a function call statement's target and creates a
// FunctionInvocation with its own cloned body, so implicit casts inserted
// later never leak back to the shared FunctionDecl.
//
// Function bodies are not walked for nested for-loops or further calls:
// SMEIL functions are combinational helpers, not process-like behavior,
// and the statement-walking rule for registering loop counters and
// call sites applies to processes only.
func elaborateCall(ctx *Context, proc *instance.Process, call *ast.CallExpr, sc *scope.Scope) *errors.Diagnostic {
	name := call.Callee.First().Value
	entry, ok := sc.Lookup(name)
	if !ok {
		suggestion := scope.Suggest(name, sc.AllNames())
		msg := "unknown symbol " + name
		if suggestion != "" {
			msg += "; did you mean " + suggestion + "?"
		}
		return errors.New(errors.UnknownSymbol, call.Callee.First().Token, msg)
	}
	fn, ok := entry.Item.(*ast.FunctionDecl)
	if !ok {
		return errors.Newf(errors.UnknownSymbol, call.Token, "%q is not a function", name)
	}

	invScope := scope.New(sc)
	inv := &instance.FunctionInvocation{Def: fn, CallSite: call.Token}
	inv.Inner = invScope
	for _, p := range fn.Parameters {
		param, diag := elaborateParameter(p, invScope)
		if diag != nil {
			return diag
		}
		inv.Formals = append(inv.Formals, param)
		if err := invScope.TryAddSymbol(p.Name.Value, param, p.Token); err != nil {
			return dupDiag(err, p.Token)
		}
	}
	ctx.Registry.Bind(inv, invScope)

	for _, d := range fn.Declarations {
		if diag := elaborateInvocationDecl(d, invScope, inv); diag != nil {
			return diag
		}
	}
	inv.Statements = ast.CloneStatements(fn.Statements)
	inv.Declarations = fn.Declarations

	if fn.ReturnType != nil {
		rt, diag := ResolveTypeName(fn.ReturnType, invScope)
		if diag != nil {
			return diag
		}
		inv.ReturnType = rt
	}

	proc.Invocations = append(proc.Invocations, inv)
	ctx.AddWireJob(&WireJob{Target: inv, Args: callArgsToActuals(call.Args), Enclosing: sc, CallToken: call.Token})
	return nil
}

func elaborateInvocationDecl(d ast.Declaration, sc *scope.Scope, inv *instance.FunctionInvocation) *errors.Diagnostic {
	switch v := d.(type) {
	case *ast.VariableDecl:
		vr := &instance.Variable{AST: v, Name: v.Name.Value}
		if err := sc.TryAddSymbol(v.Name.Value, vr, v.Token); err != nil {
			return dupDiag(err, v.Token)
		}
		inv.Locals = append(inv.Locals, vr)
		return nil
	case *ast.ConstantDecl:
		cr, diag := elaborateConstant(v, sc)
		if diag != nil {
			return diag
		}
		inv.Locals = append(inv.Locals, cr)
		return nil
	case *ast.EnumDecl:
		et, diag := elaborateEnum(v, sc)
		if diag != nil {
			return diag
		}
		inv.Locals = append(inv.Locals, et)
		return nil
	default:
		return nil
	}
}

func callArgsToActuals(args []*ast.Arg) []Actual {
	out := make([]Actual, len(args))
	for i, a := range args {
		out[i] = Actual{Name: a.Name, Value: a.Value}
	}
	return out
}
