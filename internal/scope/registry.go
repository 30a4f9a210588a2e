package scope

// Registry maps an owning node's identity (an AST or instance pointer) to
// the local scope it introduces, so dotted-name lookup can hop from a
// found item into that item's own namespace.
//
// Registry is arena-shaped: entries are never removed, only added, for
// the lifetime of one compilation.
type Registry struct {
	scopes map[interface{}]*Scope
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{scopes: make(map[interface{}]*Scope)}
}

// Bind registers s as owner's local scope. owner must be a pointer (or
// other comparable identity) — reconstructable scopes are keyed by
// identity, not by name.
func (r *Registry) Bind(owner interface{}, s *Scope) {
	r.scopes[owner] = s
}

// ScopeOf returns the scope previously bound to owner, if any.
func (r *Registry) ScopeOf(owner interface{}) (*Scope, bool) {
	s, ok := r.scopes[owner]
	return s, ok
}

// ResolveResult is the outcome of a dotted-name lookup.
type ResolveResult struct {
	Item interface{} // the resolved item (nil on failure)
	// FailedIndex is the path index of the first segment that could not
	// be found. Valid only when Item is nil.
	FailedIndex int
}

// Resolve walks a dotted path: the first segment is resolved by walking
// start's scope chain; each subsequent segment is resolved in the local
// scope of the item just found, via the registry.
func Resolve(path []string, start *Scope, reg *Registry) ResolveResult {
	if len(path) == 0 {
		return ResolveResult{FailedIndex: 0}
	}
	entry, ok := start.Lookup(path[0])
	if !ok {
		return ResolveResult{FailedIndex: 0}
	}
	cur := entry.Item
	for i := 1; i < len(path); i++ {
		childScope, ok := reg.ScopeOf(cur)
		if !ok {
			return ResolveResult{FailedIndex: i}
		}
		next, ok := childScope.LookupLocal(path[i])
		if !ok {
			return ResolveResult{FailedIndex: i}
		}
		cur = next.Item
	}
	return ResolveResult{Item: cur, FailedIndex: -1}
}

// NamesVisibleAt returns the candidate names for a near-miss suggestion
// when resolving the segment at failedIndex of path against start: the
// full chain's names for the first segment, or the local names of the
// segment found just before it otherwise.
func NamesVisibleAt(path []string, failedIndex int, start *Scope, reg *Registry) []string {
	if failedIndex == 0 {
		return start.AllNames()
	}
	entry, ok := start.Lookup(path[0])
	if !ok {
		return nil
	}
	cur := entry.Item
	for i := 1; i < failedIndex; i++ {
		childScope, ok := reg.ScopeOf(cur)
		if !ok {
			return nil
		}
		next, ok := childScope.LookupLocal(path[i])
		if !ok {
			return nil
		}
		cur = next.Item
	}
	childScope, ok := reg.ScopeOf(cur)
	if !ok {
		return nil
	}
	return childScope.symbolOrder
}
