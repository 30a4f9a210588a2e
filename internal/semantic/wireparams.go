package semantic

import (
	"sort"

	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/errors"
	"github.com/smeil-lang/smeilc/internal/instance"
	"github.com/smeil-lang/smeilc/internal/scope"
	"github.com/smeil-lang/smeilc/internal/token"
	"github.com/smeil-lang/smeilc/internal/types"
)

// WireParamsPass binds actual arguments to formals for every
// parameterized instance recorded during elaboration.
type WireParamsPass struct{}

func (WireParamsPass) Name() string { return "wire-parameters" }

func (WireParamsPass) Run(ctx *Context) *errors.Diagnostic {
	jobs := make([]*WireJob, len(ctx.WireJobs))
	copy(jobs, ctx.WireJobs)
	sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].Depth < jobs[j].Depth })

	for _, job := range jobs {
		if d := wireJob(ctx, job); d != nil {
			return d
		}
	}
	return nil
}

func wireJob(ctx *Context, job *WireJob) *errors.Diagnostic {
	formals := job.Target.FormalParameters()
	bound := make(map[string]bool, len(formals))
	seenNamed := false

	for i, actual := range job.Args {
		var formal *instance.Parameter
		if actual.Name == nil {
			if seenNamed {
				return errors.New(errors.PositionalAfterNamed, job.CallToken, "positional argument cannot follow a named argument")
			}
			if i >= len(formals) {
				return errors.New(errors.UnknownParameter, job.CallToken, "too many positional arguments")
			}
			formal = formals[i]
		} else {
			seenNamed = true
			formal = findFormal(formals, actual.Name.Value)
			if formal == nil {
				names := make([]string, len(formals))
				for j, f := range formals {
					names[j] = f.Name
				}
				suggestion := scope.Suggest(actual.Name.Value, names)
				msg := "\"" + actual.Name.Value + "\" is not a parameter of this instance"
				if suggestion != "" {
					msg += "; did you mean " + suggestion + "?"
				}
				return errors.New(errors.UnknownParameter, actual.Name.Token, msg)
			}
		}

		if bound[formal.Name] {
			tok := job.CallToken
			if actual.Name != nil {
				tok = actual.Name.Token
			}
			return errors.Newf(errors.DuplicateArgument, tok, "parameter %q is already bound", formal.Name)
		}
		if d := bindActual(ctx, job, formal, actual); d != nil {
			return d
		}
		bound[formal.Name] = true
	}

	for _, f := range formals {
		if !bound[f.Name] {
			return errors.Newf(errors.MissingArgument, job.CallToken, "missing argument for parameter %q", f.Name)
		}
	}
	return nil
}

func findFormal(formals []*instance.Parameter, name string) *instance.Parameter {
	for _, f := range formals {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func exprTok(e ast.Expression) token.Token {
	return token.Token{Pos: e.Pos(), Text: e.TokenLiteral()}
}

func bindActual(ctx *Context, job *WireJob, formal *instance.Parameter, actual Actual) *errors.Diagnostic {
	arg, argType, diag := resolveArgumentInstance(ctx, actual.Value, job.Enclosing)
	if diag != nil {
		return diag
	}

	formalType := formal.Type
	if formalType == nil {
		formalType = argType
	}

	if formal.Direction == ast.DirOut && formalType != nil && formalType.Kind() != types.KindBus {
		return errors.Newf(errors.OutValueParameter, exprTok(actual.Value), "value-typed parameter %q cannot be declared out", formal.Name)
	}

	// A pass-through reference to an outer, still-unannotated formal
	// carries no type of its own yet; the concrete binding resolves
	// transitively once that outer formal is itself wired, so the width
	// check is skipped rather than forced against an absent type.
	if argType != nil && formalType != nil {
		unified, ok := types.Unify(argType, formalType)
		if !ok {
			return errors.Newf(errors.ArgumentTypeMismatch, exprTok(actual.Value), "argument type %s does not unify with parameter %q's type %s", argType, formal.Name, formalType)
		}
		if !sameType(unified, argType) {
			return errors.Newf(errors.ArgumentTypeMismatch, exprTok(actual.Value), "argument of type %s loses precision binding parameter %q of type %s", argType, formal.Name, formalType)
		}
	}
	if formal.Type == nil {
		formal.Type = formalType
	}

	job.Target.AddMappedParameter(&instance.MappedParameter{Formal: formal, Argument: arg, ArgumentExpr: actual.Value})

	ownerScope := job.Target.Scope()
	if entry, ok := ownerScope.LookupLocal(formal.Name); ok {
		entry.Item = arg
	}
	return nil
}

// resolveArgumentInstance resolves an actual-argument expression to one
// of the permitted instance kinds: bus, signal, variable, constant,
// literal, or enum field — plus an as-yet-unwired formal parameter, for
// pass-through forwarding down an instantiation chain.
// Composite expressions are rejected with UnsupportedArgumentExpr.
func resolveArgumentInstance(ctx *Context, value ast.Expression, sc *scope.Scope) (instance.Instance, types.DataType, *errors.Diagnostic) {
	switch v := value.(type) {
	case *ast.LiteralExpr:
		t := literalType(v)
		return &instance.Literal{AST: v, Typ: t}, t, nil

	case *ast.NameExpr:
		path := namePath(v)
		res := scope.Resolve(path, sc, ctx.Registry)
		if res.Item == nil {
			candidates := scope.NamesVisibleAt(path, res.FailedIndex, sc, ctx.Registry)
			suggestion := scope.Suggest(path[res.FailedIndex], candidates)
			msg := "unknown symbol " + path[res.FailedIndex]
			if suggestion != "" {
				msg += "; did you mean " + suggestion + "?"
			}
			return nil, nil, errors.New(errors.UnknownSymbol, v.First().Token, msg)
		}
		return argumentTypeOf(res.Item, v.First().Token, sc)

	default:
		return nil, nil, errors.New(errors.UnsupportedArgumentExpr, exprTok(value), "composite expressions are not supported as arguments")
	}
}

func argumentTypeOf(item interface{}, tok token.Token, sc *scope.Scope) (instance.Instance, types.DataType, *errors.Diagnostic) {
	switch v := item.(type) {
	case *instance.Signal:
		t, _ := v.Type()
		return v, t, nil
	case *instance.Bus:
		t, _ := v.ShapeType()
		return v, t, nil
	case *instance.Variable:
		t, diag := resolveVariableType(v, sc)
		if diag != nil {
			return nil, nil, diag
		}
		return v, t, nil
	case *instance.ConstantReference:
		t, diag := resolveConstantType(v, sc)
		if diag != nil {
			return nil, nil, diag
		}
		return v, t, nil
	case *instance.EnumFieldReference:
		return v, types.Enumeration{Decl: v.Parent}, nil
	case *instance.Parameter:
		return v, v.Type, nil
	default:
		return nil, nil, errors.New(errors.UnsupportedArgumentExpr, tok, "this name cannot be used as an argument")
	}
}

// literalType computes the intrinsic type of a literal in argument or
// initializer position.
func literalType(l *ast.LiteralExpr) types.DataType {
	switch l.Kind {
	case ast.LiteralBool:
		return types.Bool{}
	case ast.LiteralInt:
		return types.SignedInteger{Width: types.Unconstrained}
	case ast.LiteralFloat:
		return types.Float{Width: types.Unconstrained}
	default:
		return types.SPECIAL
	}
}

// resolveVariableType computes and caches a variable's type on first
// need: from its explicit annotation, or else inferred from a literal
// initializer.
func resolveVariableType(v *instance.Variable, sc *scope.Scope) (types.DataType, *errors.Diagnostic) {
	if t, ok := v.Type(); ok {
		return t, nil
	}
	if v.AST == nil {
		return nil, nil
	}
	if v.AST.Type != nil {
		t, diag := ResolveTypeName(v.AST.Type, sc)
		if diag != nil {
			return nil, diag
		}
		v.CacheType(t)
		return t, nil
	}
	if lit, ok := v.AST.Init.(*ast.LiteralExpr); ok {
		t := literalType(lit)
		v.CacheType(t)
		return t, nil
	}
	return nil, nil
}

// resolveConstantType mirrors resolveVariableType for constants: the
// explicit annotation wins, and otherwise the type is inferred from the
// initializer's literals and operators (another constant's Init is
// walked recursively) before component G runs.
func resolveConstantType(c *instance.ConstantReference, sc *scope.Scope) (types.DataType, *errors.Diagnostic) {
	if t, ok := c.Type(); ok {
		return t, nil
	}
	if c.AST.Type != nil {
		t, diag := ResolveTypeName(c.AST.Type, sc)
		if diag != nil {
			return nil, diag
		}
		c.CacheType(t)
		return t, nil
	}
	t, diag := inferConstantInitType(c.AST.Init, sc)
	if diag != nil {
		return nil, diag
	}
	if t != nil {
		c.CacheType(t)
	}
	return t, nil
}

func inferConstantInitType(e ast.Expression, sc *scope.Scope) (types.DataType, *errors.Diagnostic) {
	switch v := e.(type) {
	case *ast.LiteralExpr:
		return literalType(v), nil
	case *ast.ParenExpr:
		return inferConstantInitType(v.Inner, sc)
	case *ast.UnaryExpr:
		return inferConstantInitType(v.Operand, sc)
	case *ast.BinaryExpr:
		lt, diag := inferConstantInitType(v.Left, sc)
		if diag != nil || lt == nil {
			return lt, diag
		}
		rt, diag := inferConstantInitType(v.Right, sc)
		if diag != nil || rt == nil {
			return rt, diag
		}
		unified, ok := types.Unify(lt, rt)
		if !ok {
			return nil, errors.New(errors.TypeMismatch, exprTok(e), "operand types do not unify in constant initializer")
		}
		return unified, nil
	case *ast.NameExpr:
		if v.Dotted() || v.Path[0].Index != nil {
			return nil, nil
		}
		entry, ok := sc.Lookup(v.First().Value)
		if !ok {
			return nil, nil
		}
		switch item := entry.Item.(type) {
		case *instance.ConstantReference:
			return resolveConstantType(item, sc)
		case *instance.EnumFieldReference:
			return types.Enumeration{Decl: item.Parent}, nil
		default:
			return nil, nil
		}
	default:
		return nil, nil
	}
}
