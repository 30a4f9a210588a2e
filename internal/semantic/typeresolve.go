package semantic

import (
	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/errors"
	"github.com/smeil-lang/smeilc/internal/instance"
	"github.com/smeil-lang/smeilc/internal/scope"
	"github.com/smeil-lang/smeilc/internal/types"
)

// ResolveTypeName resolves a type annotation as written in source: an
// intrinsic spelling short-circuits to a built-in without any lookup;
// otherwise the name is looked up in sc's typedef chain and resolved
// recursively, detecting cycles with a visited set.
func ResolveTypeName(tn *ast.TypeName, sc *scope.Scope) (types.DataType, *errors.Diagnostic) {
	return resolveNamed(tn, sc, make(map[interface{}]bool))
}

func resolveNamed(tn *ast.TypeName, sc *scope.Scope, visited map[interface{}]bool) (types.DataType, *errors.Diagnostic) {
	if t, ok := types.ParseIntrinsic(tn.Name); ok {
		return t, nil
	}

	entry, ok := sc.LookupTypedef(tn.Name)
	if !ok {
		suggestion := scope.Suggest(tn.Name, sc.AllTypedefNames())
		msg := "unknown type " + tn.Name
		if suggestion != "" {
			msg += "; did you mean " + suggestion + "?"
		}
		return nil, errors.New(errors.BadType, tn.Token, msg)
	}

	switch item := entry.Item.(type) {
	case *instance.EnumTypeReference:
		return types.Enumeration{Decl: item}, nil
	case *ast.BusDecl:
		if visited[item] {
			return nil, errors.Newf(errors.CircularType, tn.Token, "circular type definition through %q", tn.Name)
		}
		visited[item] = true
		return resolveBusShape(item, sc, visited)
	case *ast.TypeDecl:
		if visited[item] {
			return nil, errors.Newf(errors.CircularType, tn.Token, "circular type definition through %q", tn.Name)
		}
		visited[item] = true
		return resolveNamed(item.Alias, sc, visited)
	default:
		return nil, errors.New(errors.BadType, tn.Token, "unknown type "+tn.Name)
	}
}

// resolveBusShape computes the types.Bus shape for a bus declaration,
// whether it lists its signals explicitly or aliases another named
// shape: an enum typedef resolves to Enumeration(decl), and a bus
// typedef resolves to Bus(shape) with signal types recursively resolved
// to intrinsics.
func resolveBusShape(decl *ast.BusDecl, sc *scope.Scope, visited map[interface{}]bool) (types.DataType, *errors.Diagnostic) {
	if decl.TypeRef != nil {
		return resolveNamed(decl.TypeRef, sc, visited)
	}
	fields := make([]types.BusField, 0, len(decl.Signals))
	for _, sig := range decl.Signals {
		t, d := resolveNamed(sig.Type, sc, visited)
		if d != nil {
			return nil, d
		}
		fields = append(fields, types.BusField{Name: sig.Name.Value, Type: t})
	}
	return types.Bus{Fields: fields}, nil
}
