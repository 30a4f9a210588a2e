package semantic

import (
	"strings"

	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/errors"
	"github.com/smeil-lang/smeilc/internal/instance"
	"github.com/smeil-lang/smeilc/internal/token"
)

// DependencyPass builds the process dependency graph and a synchronous
// wavefront schedule from the fully-typed instance graph. It
// runs last, after component G has populated every process's Usage map.
type DependencyPass struct{}

func (DependencyPass) Name() string { return "build-dependency-graph" }

func (DependencyPass) Run(ctx *Context) *errors.Diagnostic {
	graph, schedule, diag := BuildDependencyGraph(ctx.Root)
	if diag != nil {
		return diag
	}
	ctx.DependencyGraph = graph
	ctx.Schedule = schedule
	return nil
}

// procIO is the deduplicated, source-ordered set of signals a process
// reads from and writes to, derived from its mapped bus/signal arguments
// and the usage recorded on its own locally-declared busses.
type procIO struct {
	inputs  []*instance.Signal
	outputs []*instance.Signal
}

// sigSet is an insertion-ordered set of signals, used to dedup a
// process's computed inputs/outputs while keeping diagnostics
// deterministic.
type sigSet struct {
	order []*instance.Signal
	seen  map[*instance.Signal]bool
}

func newSigSet() *sigSet { return &sigSet{seen: make(map[*instance.Signal]bool)} }

func (s *sigSet) add(sig *instance.Signal) {
	if sig == nil || s.seen[sig] {
		return
	}
	s.seen[sig] = true
	s.order = append(s.order, sig)
}

// computeIO classifies every signal a process touches as an input,
// output, or both: bus/signal arguments by their formal's bound
// direction, and locally-declared (bidirectional) bus signals by the
// Read/Write usage component G recorded against them.
func computeIO(p *instance.Process) procIO {
	in, out := newSigSet(), newSigSet()

	for _, mp := range p.Mapped {
		dir := mp.Formal.Direction
		switch arg := mp.Argument.(type) {
		case *instance.Bus:
			for _, sig := range arg.Signals {
				addByDirection(in, out, sig, dir)
			}
		case *instance.Signal:
			addByDirection(in, out, arg, dir)
		}
	}

	for _, b := range p.Busses {
		for _, sig := range b.Signals {
			u := p.Usage[sig]
			if u.Has(instance.UsageRead) {
				in.add(sig)
			}
			if u.Has(instance.UsageWrite) {
				out.add(sig)
			}
		}
	}

	return procIO{inputs: in.order, outputs: out.order}
}

// addByDirection classifies one signal by its formal's bound direction.
// DirInverse carries no universally fixed sense for inverted bus
// signals; the core treats it conservatively as both an input and an
// output, a best-effort resolution recorded in DESIGN.md.
func addByDirection(in, out *sigSet, sig *instance.Signal, dir ast.Direction) {
	switch dir {
	case ast.DirIn, ast.DirConst:
		in.add(sig)
	case ast.DirOut:
		out.add(sig)
	case ast.DirInverse:
		in.add(sig)
		out.add(sig)
	}
}

// collectProcesses gathers every process instantiated under net, in
// source order, recursing into child network instances.
func collectProcesses(net *instance.Network, out *[]*instance.Process) {
	for _, child := range net.Children {
		switch c := child.(type) {
		case *instance.Process:
			*out = append(*out, c)
		case *instance.Network:
			collectProcesses(c, out)
		}
	}
}

// topLevelSignalSet computes the signals allowed to be read with no
// writer of their own: those on a bus declared directly on the top-level
// network, and any bus anywhere marked Exposed (an implementation
// decision on what counts as a legitimate top-level input, recorded in
// DESIGN.md).
func topLevelSignalSet(mod *instance.Module) map[*instance.Signal]bool {
	set := make(map[*instance.Signal]bool)
	if mod.Network == nil {
		return set
	}
	for _, b := range mod.Network.Busses {
		for _, sig := range b.Signals {
			set[sig] = true
		}
	}
	markExposed(mod.Network, set)
	return set
}

func markExposed(net *instance.Network, set map[*instance.Signal]bool) {
	for _, b := range net.Busses {
		if b.Exposed {
			for _, sig := range b.Signals {
				set[sig] = true
			}
		}
	}
	for _, child := range net.Children {
		switch c := child.(type) {
		case *instance.Process:
			for _, b := range c.Busses {
				if b.Exposed {
					for _, sig := range b.Signals {
						set[sig] = true
					}
				}
			}
		case *instance.Network:
			markExposed(c, set)
		}
	}
}

// BuildDependencyGraph computes the single-writer check, orphan-signal
// check, process dependency graph and wavefront schedule for mod.
// Diagnostics fail fast, in process-then-signal source order, so
// results are deterministic across runs.
func BuildDependencyGraph(mod *instance.Module) (map[*instance.Process][]*instance.Process, [][]*instance.Process, *errors.Diagnostic) {
	var procs []*instance.Process
	if mod.Network != nil {
		collectProcesses(mod.Network, &procs)
	}

	io := make(map[*instance.Process]procIO, len(procs))
	for _, p := range procs {
		io[p] = computeIO(p)
	}

	writers := make(map[*instance.Signal]*instance.Process)
	for _, p := range procs {
		for _, sig := range io[p].outputs {
			if existing, ok := writers[sig]; ok {
				return nil, nil, errors.Newf(errors.MultipleWriters, token.Token{Pos: p.Pos(), Text: p.Name},
					"signal %q is written by both %q and %q", sig.Name, existing.Name, p.Name)
			}
			writers[sig] = p
		}
	}

	topLevel := topLevelSignalSet(mod)
	for _, p := range procs {
		for _, sig := range io[p].inputs {
			if _, ok := writers[sig]; ok {
				continue
			}
			if topLevel[sig] {
				continue
			}
			return nil, nil, errors.Newf(errors.OrphanSignal, token.Token{Pos: p.Pos(), Text: p.Name},
				"signal %q read by %q has no writer and is not a top-level input", sig.Name, p.Name)
		}
	}

	schedule, diag := buildSchedule(procs, io, topLevel)
	if diag != nil {
		return nil, nil, diag
	}

	graph := make(map[*instance.Process][]*instance.Process, len(procs))
	for _, p := range procs {
		var deps []*instance.Process
		seen := make(map[*instance.Process]bool)
		for _, sig := range io[p].inputs {
			if w, ok := writers[sig]; ok && w != p && !seen[w] {
				seen[w] = true
				deps = append(deps, w)
			}
		}
		graph[p] = deps
	}

	return graph, schedule, nil
}

// buildSchedule resolves the dependency graph into synchronous
// wavefronts: repeatedly select every unscheduled process whose inputs
// are all ready, mark its outputs ready, and repeat. A round that
// selects nothing means the remaining processes form a cycle and the
// graph is rejected with CircularDependency.
func buildSchedule(procs []*instance.Process, io map[*instance.Process]procIO, topLevel map[*instance.Signal]bool) ([][]*instance.Process, *errors.Diagnostic) {
	ready := make(map[*instance.Signal]bool, len(topLevel))
	for sig := range topLevel {
		ready[sig] = true
	}

	scheduled := make(map[*instance.Process]bool, len(procs))
	var waves [][]*instance.Process
	remaining := len(procs)

	for remaining > 0 {
		var wave []*instance.Process
		for _, p := range procs {
			if scheduled[p] {
				continue
			}
			allReady := true
			for _, sig := range io[p].inputs {
				if !ready[sig] {
					allReady = false
					break
				}
			}
			if allReady {
				wave = append(wave, p)
			}
		}

		if len(wave) == 0 {
			var stuck []string
			var first *instance.Process
			for _, p := range procs {
				if !scheduled[p] {
					if first == nil {
						first = p
					}
					stuck = append(stuck, p.Name)
				}
			}
			return nil, errors.Newf(errors.CircularDependency, token.Token{Pos: first.Pos(), Text: first.Name},
				"circular dependency among processes: %s", strings.Join(stuck, ", "))
		}

		for _, p := range wave {
			scheduled[p] = true
			remaining--
			for _, sig := range io[p].outputs {
				ready[sig] = true
			}
		}
		waves = append(waves, wave)
	}

	return waves, nil
}
