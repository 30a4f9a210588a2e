// Package scope implements the chained, lexically scoped name→entity
// maps: a symbol namespace and a separate typedef namespace per scope,
// chained to an enclosing parent, plus a registry that lets dotted-name
// lookup hop from a found instance into its own local scope.
package scope

import "github.com/smeil-lang/smeilc/internal/token"

// Entry is one binding in a scope's symbol or typedef map.
type Entry struct {
	Name  string // original-case spelling, for diagnostics
	Token token.Token
	Item  interface{}
}

// Scope owns two chained maps (symbols, typedefs), lexically nested
// inside an optional parent. Parent is a non-owning back reference.
type Scope struct {
	Parent *Scope

	symbols  map[string]*Entry
	typedefs map[string]*Entry

	// order preserves declaration order for deterministic diagnostics and
	// for any caller that needs to iterate a scope's own bindings.
	symbolOrder  []string
	typedefOrder []string
}

// New creates a scope chained to the given parent (nil for the outermost
// scope).
func New(parent *Scope) *Scope {
	return &Scope{
		Parent:   parent,
		symbols:  make(map[string]*Entry),
		typedefs: make(map[string]*Entry),
	}
}

// DuplicateSymbolError reports that name is already bound in the local
// scope.
type DuplicateSymbolError struct {
	Name     string
	Original token.Token
}

func (e *DuplicateSymbolError) Error() string {
	return "duplicate symbol: " + e.Name
}

// TryAddSymbol binds name to item in the local scope. The sentinel
// identifier "_" is never added, silently succeeding without binding
// anything.
func (s *Scope) TryAddSymbol(name string, item interface{}, tok token.Token) error {
	if name == "_" {
		return nil
	}
	if existing, ok := s.symbols[name]; ok {
		return &DuplicateSymbolError{Name: name, Original: existing.Token}
	}
	s.symbols[name] = &Entry{Name: name, Token: tok, Item: item}
	s.symbolOrder = append(s.symbolOrder, name)
	return nil
}

// TryAddTypedef binds name in the typedef namespace.
func (s *Scope) TryAddTypedef(name string, item interface{}, tok token.Token) error {
	if name == "_" {
		return nil
	}
	if existing, ok := s.typedefs[name]; ok {
		return &DuplicateSymbolError{Name: name, Original: existing.Token}
	}
	s.typedefs[name] = &Entry{Name: name, Token: tok, Item: item}
	s.typedefOrder = append(s.typedefOrder, name)
	return nil
}

// LookupLocal finds name in this scope only, without walking to Parent.
func (s *Scope) LookupLocal(name string) (*Entry, bool) {
	e, ok := s.symbols[name]
	return e, ok
}

// LookupTypedefLocal finds name in this scope's typedef namespace only.
func (s *Scope) LookupTypedefLocal(name string) (*Entry, bool) {
	e, ok := s.typedefs[name]
	return e, ok
}

// Lookup walks the scope chain outward from s, returning the first match.
func (s *Scope) Lookup(name string) (*Entry, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if e, ok := cur.symbols[name]; ok {
			return e, true
		}
	}
	return nil, false
}

// LookupTypedef walks the scope chain's typedef namespace.
func (s *Scope) LookupTypedef(name string) (*Entry, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if e, ok := cur.typedefs[name]; ok {
			return e, true
		}
	}
	return nil, false
}

// AllNames returns every symbol name visible from s (its own plus every
// ancestor's), for near-miss suggestion. Shadowed ancestor names are
// still included — suggestions do not need to be reachable, just close.
func (s *Scope) AllNames() []string {
	var names []string
	for cur := s; cur != nil; cur = cur.Parent {
		names = append(names, cur.symbolOrder...)
	}
	return names
}

// AllTypedefNames returns every typedef name visible from s.
func (s *Scope) AllTypedefNames() []string {
	var names []string
	for cur := s; cur != nil; cur = cur.Parent {
		names = append(names, cur.typedefOrder...)
	}
	return names
}
