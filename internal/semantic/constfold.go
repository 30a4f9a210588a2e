package semantic

import (
	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/errors"
	"github.com/smeil-lang/smeilc/internal/instance"
	"github.com/smeil-lang/smeilc/internal/scope"
	"github.com/smeil-lang/smeilc/internal/token"
)

// EvalConstInt folds a compile-time integer constant expression: literals,
// parenthesization, unary +/-/~, the usual binary arithmetic/bitwise
// operators, and references to already-elaborated constants or enum
// fields.
func EvalConstInt(e ast.Expression, sc *scope.Scope) (int64, *errors.Diagnostic) {
	switch v := e.(type) {
	case *ast.LiteralExpr:
		if v.Kind != ast.LiteralInt {
			return 0, errors.New(errors.BadType, v.Token, "expected a compile-time integer constant")
		}
		return v.Int, nil

	case *ast.ParenExpr:
		return EvalConstInt(v.Inner, sc)

	case *ast.UnaryExpr:
		operand, d := EvalConstInt(v.Operand, sc)
		if d != nil {
			return 0, d
		}
		switch v.Op {
		case "-":
			return -operand, nil
		case "+":
			return operand, nil
		case "~":
			return ^operand, nil
		default:
			return 0, errors.Newf(errors.BadType, v.Token, "operator %q is not valid in a constant integer expression", v.Op)
		}

	case *ast.BinaryExpr:
		left, d := EvalConstInt(v.Left, sc)
		if d != nil {
			return 0, d
		}
		right, d := EvalConstInt(v.Right, sc)
		if d != nil {
			return 0, d
		}
		switch v.Op {
		case "+":
			return left + right, nil
		case "-":
			return left - right, nil
		case "*":
			return left * right, nil
		case "/":
			if right == 0 {
				return 0, errors.New(errors.BadType, v.Token, "division by zero in constant expression")
			}
			return left / right, nil
		case "%":
			if right == 0 {
				return 0, errors.New(errors.BadType, v.Token, "division by zero in constant expression")
			}
			return left % right, nil
		case "&":
			return left & right, nil
		case "|":
			return left | right, nil
		case "^":
			return left ^ right, nil
		case "<<":
			return left << uint(right), nil
		case ">>":
			return left >> uint(right), nil
		default:
			return 0, errors.Newf(errors.BadType, v.Token, "operator %q is not valid in a constant integer expression", v.Op)
		}

	case *ast.NameExpr:
		if v.Dotted() || v.Path[0].Index != nil {
			return 0, errors.New(errors.BadType, v.First().Token, "expected a compile-time integer constant")
		}
		name := v.First().Value
		entry, ok := sc.Lookup(name)
		if !ok {
			suggestion := scope.Suggest(name, sc.AllNames())
			msg := "unknown symbol " + name
			if suggestion != "" {
				msg += "; did you mean " + suggestion + "?"
			}
			return 0, errors.New(errors.UnknownSymbol, v.First().Token, msg)
		}
		switch item := entry.Item.(type) {
		case *instance.ConstantReference:
			return EvalConstInt(item.AST.Init, sc)
		case *instance.EnumFieldReference:
			return item.Value, nil
		default:
			return 0, errors.Newf(errors.BadType, v.First().Token, "%q is not a compile-time integer constant", name)
		}

	default:
		return 0, errors.New(errors.BadType, token.Token{Pos: e.Pos(), Text: e.TokenLiteral()}, "expected a compile-time integer constant")
	}
}
