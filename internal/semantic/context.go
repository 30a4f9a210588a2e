// Package semantic implements the four validators that turn a parsed
// Module into an elaborated instance graph with a verified dependency
// schedule: instance elaboration, type assignment, parameter wiring,
// and dependency analysis, plus the identifier check that runs before
// them and the constant-initializer check that runs after elaboration.
package semantic

import (
	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/instance"
	"github.com/smeil-lang/smeilc/internal/scope"
	"github.com/smeil-lang/smeilc/internal/token"
)

// MaxInstantiationDepth bounds recursive network instantiation.
const MaxInstantiationDepth = 64

// Actual is one actual argument in a parameter map: a positional
// argument when Name is nil, a named one otherwise. It unifies
// ast.ParamMap (instance declarations) and ast.Arg (call expressions) so
// the wiring pass (component F) can treat both uniformly.
type Actual struct {
	Name  *ast.Identifier
	Value ast.Expression
}

// WireJob is a deferred parameter-binding task recorded during
// elaboration and executed by the wire-parameters pass, once per
// parameterized instance.
type WireJob struct {
	Target    instance.ParameterizedInstance
	Args      []Actual
	Enclosing *scope.Scope // the scope actual-argument expressions resolve in
	CallToken token.Token

	// Depth is the network-instantiation nesting depth in effect when
	// this job was queued. The wire-parameters pass processes jobs in
	// ascending Depth order so an outer instance's formals are already
	// bound to concrete arguments before an inner instance forwards them.
	Depth int
}

// Context is the shared, mutable state threaded through every validator:
// the scope registry, the elaborated instance root, and deferred wiring
// jobs.
type Context struct {
	Module         *ast.Module
	TopNetworkName string
	Args           []string

	Registry *scope.Registry
	Root     *instance.Module

	WireJobs []*WireJob

	// DependencyGraph maps each scheduled process to the processes whose
	// outputs feed one of its inputs. Schedule is the
	// dependency graph resolved into synchronous wavefronts: Schedule[i]
	// processes are ready together once every Schedule[0..i-1] wave has
	// run. Both are populated by DependencyPass.
	DependencyGraph map[*instance.Process][]*instance.Process
	Schedule        [][]*instance.Process

	depth int // current network-instantiation recursion depth
}

// NewContext creates an empty analysis context for module.
func NewContext(module *ast.Module, topNetworkName string, args []string) *Context {
	return &Context{
		Module:         module,
		TopNetworkName: topNetworkName,
		Args:           args,
		Registry:       scope.NewRegistry(),
	}
}

func (c *Context) EnterInstantiation() bool {
	c.depth++
	return c.depth <= MaxInstantiationDepth
}

func (c *Context) ExitInstantiation() {
	c.depth--
}

func (c *Context) AddWireJob(job *WireJob) {
	job.Depth = c.depth
	c.WireJobs = append(c.WireJobs, job)
}
