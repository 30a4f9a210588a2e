// Package types implements the structural type lattice: signed/unsigned
// integers of parametric width, floats, bool, enumerations and bus
// shapes, together with unification and castability.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the DataType variants.
type Kind int

const (
	KindSigned Kind = iota
	KindUnsigned
	KindFloat
	KindBool
	KindEnum
	KindBus
	KindSpecial
)

// DataType is any SMEIL type: an intrinsic integer/float/bool, an
// enumeration, a bus shape, or the undefined "special" type of an
// un-elaborated literal.
type DataType interface {
	Kind() Kind
	String() string
}

// Unconstrained is the sentinel width for an integer with no fixed
// bit width, e.g. a literal before it unifies with a concrete operand.
const Unconstrained = -1

// SignedInteger is a signed integer of the given bit width, or
// Unconstrained.
type SignedInteger struct{ Width int }

func (SignedInteger) Kind() Kind { return KindSigned }
func (s SignedInteger) String() string {
	if s.Width == Unconstrained {
		return "int"
	}
	return fmt.Sprintf("i%d", s.Width)
}

// UnsignedInteger is an unsigned integer of the given bit width, or
// Unconstrained.
type UnsignedInteger struct{ Width int }

func (UnsignedInteger) Kind() Kind { return KindUnsigned }
func (u UnsignedInteger) String() string {
	if u.Width == Unconstrained {
		return "uint"
	}
	return fmt.Sprintf("u%d", u.Width)
}

// Float is an IEEE-width float of 8, 16, 32 or 64 bits, or Unconstrained
// for an un-elaborated float literal.
type Float struct{ Width int }

func (Float) Kind() Kind  { return KindFloat }
func (f Float) String() string {
	if f.Width == Unconstrained {
		return "float"
	}
	return fmt.Sprintf("f%d", f.Width)
}

// Bool is the boolean type (always width 1).
type Bool struct{}

func (Bool) Kind() Kind    { return KindBool }
func (Bool) String() string { return "bool" }

// BOOLEAN is the single shared Bool value.
var BOOLEAN DataType = Bool{}

// Special is the type of an as-yet-undefined literal ("U" in source).
type Special struct{}

func (Special) Kind() Kind    { return KindSpecial }
func (Special) String() string { return "special" }

// SPECIAL is the single shared Special value.
var SPECIAL DataType = Special{}

// EnumDecl is the minimal shape an enum declaration needs to expose to the
// type system: identity (for comparison) and a name (for printing). The
// concrete AST/instance node satisfies this.
type EnumDecl interface {
	EnumName() string
}

// Enumeration is an enum type, identity-compared by its declaration:
// two enum types are equal only if they share the same declaration.
type Enumeration struct{ Decl EnumDecl }

func (Enumeration) Kind() Kind { return KindEnum }
func (e Enumeration) String() string { return e.Decl.EnumName() }

// BusField is one named, typed signal in a bus shape, in declaration
// order; shapes compare by their ordered signal set.
type BusField struct {
	Name string
	Type DataType
}

// Bus is a bus shape: an ordered mapping from signal name to its
// resolved element type.
type Bus struct{ Fields []BusField }

func (Bus) Kind() Kind { return KindBus }

func (b Bus) String() string {
	var sb strings.Builder
	sb.WriteString("bus{")
	for i, f := range b.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Type.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// FieldType returns the type of the named signal, or (nil, false).
func (b Bus) FieldType(name string) (DataType, bool) {
	for _, f := range b.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// IsNumeric reports whether t is a signed/unsigned integer or float.
func IsNumeric(t DataType) bool {
	switch t.Kind() {
	case KindSigned, KindUnsigned, KindFloat:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t is a signed or unsigned integer.
func IsInteger(t DataType) bool {
	return t.Kind() == KindSigned || t.Kind() == KindUnsigned
}

// Width returns t's bit width (Unconstrained for an integer or float
// of unconstrained width, 1 for bool); bus, enum and special types
// report 0.
func Width(t DataType) int {
	switch v := t.(type) {
	case SignedInteger:
		return v.Width
	case UnsignedInteger:
		return v.Width
	case Float:
		return v.Width
	case Bool:
		return 1
	default:
		return 0
	}
}

// ParseIntrinsic parses an intrinsic type spelling (int, uint, bool,
// f8/f16/f32/f64, iN, uN). Unrecognized spellings and invalid bit
// widths return ok=false — callers raise BadType.
func ParseIntrinsic(name string) (DataType, bool) {
	switch name {
	case "int":
		return SignedInteger{Width: Unconstrained}, true
	case "uint":
		return UnsignedInteger{Width: Unconstrained}, true
	case "bool":
		return Bool{}, true
	case "f8":
		return Float{Width: 8}, true
	case "f16":
		return Float{Width: 16}, true
	case "f32":
		return Float{Width: 32}, true
	case "f64":
		return Float{Width: 64}, true
	}
	if len(name) >= 2 && (name[0] == 'i' || name[0] == 'u') {
		n, err := strconv.Atoi(name[1:])
		if err != nil || n <= 0 {
			return nil, false
		}
		if name[0] == 'i' {
			return SignedInteger{Width: n}, true
		}
		return UnsignedInteger{Width: n}, true
	}
	return nil, false
}
