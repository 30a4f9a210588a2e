package semantic

import (
	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/errors"
	"github.com/smeil-lang/smeilc/internal/types"
)

// keywords is the reserved-word list no declaration may shadow.
var keywords = map[string]bool{}

func init() {
	for _, kw := range []string{
		"as", "async", "await", "barrier", "break", "bus", "case", "const",
		"connect", "clocked", "default", "elif", "else", "enum", "exposed",
		"for", "from", "function", "generate", "if", "import", "in",
		"instance", "inverse", "network", "normal", "of", "out", "proc",
		"return", "switch", "sync", "to", "type", "unique", "var", "wait",
		"where",
	} {
		keywords[kw] = true
	}
}

// isReserved reports whether name may never be (re)declared: it is a
// keyword or an intrinsic-type spelling.
func isReserved(name string) bool {
	if keywords[name] {
		return true
	}
	_, ok := types.ParseIntrinsic(name)
	return ok
}

// IdentifierPass rejects every declared name that collides with a
// keyword or intrinsic-type spelling, run before elaboration
// against the raw AST.
type IdentifierPass struct{}

func (IdentifierPass) Name() string { return "identifiers" }

func (IdentifierPass) Run(ctx *Context) *errors.Diagnostic {
	return checkDeclaredNames(ctx.Module.AllDeclarations())
}

func checkDeclaredNames(decls []ast.Declaration) *errors.Diagnostic {
	for _, d := range decls {
		if d := checkDeclNames(d); d != nil {
			return d
		}
	}
	return nil
}

func reservedDiag(id *ast.Identifier) *errors.Diagnostic {
	return errors.Newf(errors.ReservedName, id.Token, "%q is a reserved keyword or intrinsic type name and cannot be declared", id.Value)
}

func checkName(id *ast.Identifier) *errors.Diagnostic {
	if id.Value == "_" {
		return nil
	}
	if isReserved(id.Value) {
		return reservedDiag(id)
	}
	return nil
}

func checkParams(params []*ast.Parameter) *errors.Diagnostic {
	for _, p := range params {
		if d := checkName(p.Name); d != nil {
			return d
		}
	}
	return nil
}

func checkDeclNames(d ast.Declaration) *errors.Diagnostic {
	switch v := d.(type) {
	case *ast.VariableDecl:
		return checkName(v.Name)
	case *ast.ConstantDecl:
		return checkName(v.Name)
	case *ast.BusDecl:
		if d := checkName(v.Name); d != nil {
			return d
		}
		for _, s := range v.Signals {
			if d := checkName(s.Name); d != nil {
				return d
			}
		}
		return nil
	case *ast.EnumDecl:
		if d := checkName(v.Name); d != nil {
			return d
		}
		for _, f := range v.Fields {
			if d := checkName(f.Name); d != nil {
				return d
			}
		}
		return nil
	case *ast.FunctionDecl:
		if d := checkName(v.Name); d != nil {
			return d
		}
		if d := checkParams(v.Parameters); d != nil {
			return d
		}
		return checkDeclaredNames(v.Declarations)
	case *ast.InstanceDecl:
		return checkName(v.Name)
	case *ast.GeneratorDecl:
		if d := checkName(v.Name); d != nil {
			return d
		}
		return checkDeclaredNames(v.Inner)
	case *ast.TypeDecl:
		return checkName(v.Name)
	case *ast.ConnectDecl:
		return nil
	case *ast.Process:
		if d := checkName(v.Name); d != nil {
			return d
		}
		if d := checkParams(v.Parameters); d != nil {
			return d
		}
		return checkDeclaredNames(v.Declarations)
	case *ast.Network:
		if d := checkName(v.Name); d != nil {
			return d
		}
		if d := checkParams(v.Parameters); d != nil {
			return d
		}
		return checkDeclaredNames(v.Declarations)
	default:
		return nil
	}
}
