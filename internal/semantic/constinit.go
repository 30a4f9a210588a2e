package semantic

import (
	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/errors"
	"github.com/smeil-lang/smeilc/internal/instance"
	"github.com/smeil-lang/smeilc/internal/scope"
	"github.com/smeil-lang/smeilc/internal/token"
)

// ConstantInitPass verifies constant and variable initializer closures
//, run against the instance graph produced by
// elaboration. It walks every constant and initialized variable reachable
// from the module, detecting direct self-reference and longer cycles.
type ConstantInitPass struct{}

func (ConstantInitPass) Name() string { return "verify-constant-initializers" }

func (ConstantInitPass) Run(ctx *Context) *errors.Diagnostic {
	mod := ctx.Root
	if d := checkConstants(mod.Constants, mod.Inner); d != nil {
		return d
	}
	if mod.Network == nil {
		return nil
	}
	return checkNetworkInits(mod.Network)
}

func checkNetworkInits(net *instance.Network) *errors.Diagnostic {
	if d := checkConstants(net.Constants, net.Inner); d != nil {
		return d
	}
	for _, child := range net.Children {
		switch c := child.(type) {
		case *instance.Process:
			if d := checkProcessInits(c); d != nil {
				return d
			}
		case *instance.Network:
			if d := checkNetworkInits(c); d != nil {
				return d
			}
		}
	}
	return nil
}

func checkProcessInits(p *instance.Process) *errors.Diagnostic {
	if d := checkVariables(p.Variables, p.Inner); d != nil {
		return d
	}
	if d := checkConstants(p.Constants, p.Inner); d != nil {
		return d
	}
	for _, inv := range p.Invocations {
		if d := checkInvocationInits(inv); d != nil {
			return d
		}
	}
	return nil
}

func checkInvocationInits(inv *instance.FunctionInvocation) *errors.Diagnostic {
	for _, loc := range inv.Locals {
		switch v := loc.(type) {
		case *instance.ConstantReference:
			if d := checkConstantClosure(v, inv.Inner); d != nil {
				return d
			}
		case *instance.Variable:
			if d := checkVariableClosure(v, inv.Inner); d != nil {
				return d
			}
		}
	}
	return nil
}

func checkConstants(cs []*instance.ConstantReference, sc *scope.Scope) *errors.Diagnostic {
	for _, c := range cs {
		if d := checkConstantClosure(c, sc); d != nil {
			return d
		}
	}
	return nil
}

func checkVariables(vs []*instance.Variable, sc *scope.Scope) *errors.Diagnostic {
	for _, v := range vs {
		if d := checkVariableClosure(v, sc); d != nil {
			return d
		}
	}
	return nil
}

// initClosure tracks the identity of the declaration a closure check
// started from (for SelfReferenceInitializer) and the set of constants
// currently on the walk's path (for CircularInitializer).
type initClosure struct {
	root  interface{}
	stack map[interface{}]bool
}

func checkConstantClosure(c *instance.ConstantReference, sc *scope.Scope) *errors.Diagnostic {
	if c.AST.Init == nil {
		return nil
	}
	cc := &initClosure{root: c, stack: map[interface{}]bool{c: true}}
	return walkInitClosure(c.AST.Init, sc, cc)
}

func checkVariableClosure(v *instance.Variable, sc *scope.Scope) *errors.Diagnostic {
	if v.AST == nil || v.AST.Init == nil {
		return nil
	}
	cc := &initClosure{root: v, stack: map[interface{}]bool{v: true}}
	return walkInitClosure(v.AST.Init, sc, cc)
}

// walkInitClosure walks an initializer expression (literals, casts,
// unary/binary nodes, and names) looking only for the names it
// transitively depends on.
func walkInitClosure(e ast.Expression, sc *scope.Scope, cc *initClosure) *errors.Diagnostic {
	switch v := e.(type) {
	case *ast.LiteralExpr:
		return nil
	case *ast.ParenExpr:
		return walkInitClosure(v.Inner, sc, cc)
	case *ast.UnaryExpr:
		return walkInitClosure(v.Operand, sc, cc)
	case *ast.BinaryExpr:
		if d := walkInitClosure(v.Left, sc, cc); d != nil {
			return d
		}
		return walkInitClosure(v.Right, sc, cc)
	case *ast.CastExpr:
		return walkInitClosure(v.Operand, sc, cc)
	case *ast.NameExpr:
		if v.Dotted() || v.Path[0].Index != nil {
			return errors.New(errors.BadType, v.First().Token, "expected a literal, enum field, or constant")
		}
		name := v.First().Value
		entry, ok := sc.Lookup(name)
		if !ok {
			suggestion := scope.Suggest(name, sc.AllNames())
			msg := "unknown symbol " + name
			if suggestion != "" {
				msg += "; did you mean " + suggestion + "?"
			}
			return errors.New(errors.UnknownSymbol, v.First().Token, msg)
		}
		switch item := entry.Item.(type) {
		case *instance.EnumFieldReference:
			return nil
		case *instance.ConstantReference:
			if item == cc.root {
				return errors.Newf(errors.SelfReferenceInitializer, v.First().Token, "%q refers to itself in its initializer", name)
			}
			if cc.stack[item] {
				return errors.Newf(errors.CircularInitializer, v.First().Token, "circular constant initializer through %q", name)
			}
			cc.stack[item] = true
			defer delete(cc.stack, item)
			if item.AST.Init == nil {
				return nil
			}
			return walkInitClosure(item.AST.Init, sc, cc)
		default:
			return errors.Newf(errors.BadType, v.First().Token, "%q is not a literal, enum field, or constant", name)
		}
	default:
		return errors.New(errors.BadType, token.Token{Pos: e.Pos(), Text: e.TokenLiteral()}, "expected a literal, enum field, or constant")
	}
}
