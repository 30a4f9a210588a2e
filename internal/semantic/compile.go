package semantic

import (
	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/errors"
)

// Compile runs the full, fixed six-pass validator pipeline over module,
// elaborating topNetwork with args bound to its top-level formals, and
// returns the populated Context or the first diagnostic raised.
func Compile(module *ast.Module, topNetwork string, args []string) (*Context, *errors.Diagnostic) {
	ctx := NewContext(module, topNetwork, args)
	pm := NewPassManager(
		IdentifierPass{},
		ElaboratePass{},
		ConstantInitPass{},
		WireParamsPass{},
		TypeAssignPass{},
		DependencyPass{},
	)
	if diag := pm.RunAll(ctx); diag != nil {
		return ctx, diag
	}
	return ctx, nil
}
