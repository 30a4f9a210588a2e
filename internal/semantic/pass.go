package semantic

import "github.com/smeil-lang/smeilc/internal/errors"

// Pass is a single validator in the fixed pipeline. It returns at most
// one diagnostic: the core does not recover from a failed check, so the
// first diagnostic produced anywhere ends the compilation.
type Pass interface {
	Name() string
	Run(ctx *Context) *errors.Diagnostic
}

// PassManager runs passes in the order they were registered, stopping at
// the first pass that reports a diagnostic.
type PassManager struct {
	passes []Pass
}

func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

func (pm *PassManager) RunAll(ctx *Context) *errors.Diagnostic {
	for _, p := range pm.passes {
		if d := p.Run(ctx); d != nil {
			return d
		}
	}
	return nil
}
