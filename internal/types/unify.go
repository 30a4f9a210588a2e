package types

// Unify computes the widened common type of a and b, or reports that no
// common type exists. Unify is symmetric: Unify(a,b) and
// Unify(b,a) always agree, and Unify(a,a) == a.
func Unify(a, b DataType) (DataType, bool) {
	switch av := a.(type) {
	case SignedInteger:
		switch bv := b.(type) {
		case SignedInteger:
			return SignedInteger{Width: maxWidth(av.Width, bv.Width)}, true
		case UnsignedInteger:
			return SignedInteger{Width: signedUnsignedWidth(av.Width, bv.Width)}, true
		}
	case UnsignedInteger:
		switch bv := b.(type) {
		case UnsignedInteger:
			return UnsignedInteger{Width: maxWidth(av.Width, bv.Width)}, true
		case SignedInteger:
			return SignedInteger{Width: signedUnsignedWidth(bv.Width, av.Width)}, true
		}
	case Float:
		if bv, ok := b.(Float); ok {
			return Float{Width: maxWidth(av.Width, bv.Width)}, true
		}
	case Bool:
		if _, ok := b.(Bool); ok {
			return Bool{}, true
		}
	case Enumeration:
		if bv, ok := b.(Enumeration); ok && av.Decl == bv.Decl {
			return av, true
		}
	case Bus:
		if bv, ok := b.(Bus); ok {
			return unifyBus(av, bv)
		}
	}
	return nil, false
}

// maxWidth returns the wider of two widths, treating Unconstrained (-1)
// as narrower than any fixed width — so unifying an unconstrained literal
// with a fixed-width operand simply adopts the fixed width, and unifying
// two unconstrained operands stays unconstrained.
func maxWidth(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// signedUnsignedWidth computes the result width of unifying a signed
// operand of width signedWidth with an unsigned operand of width
// unsignedWidth: when the signed side's width is ≤ the unsigned side's
// (and neither is unconstrained), the result needs one extra bit to
// hold the unsigned side's full range.
func signedUnsignedWidth(signedWidth, unsignedWidth int) int {
	if signedWidth == Unconstrained || unsignedWidth == Unconstrained {
		return maxWidth(signedWidth, unsignedWidth)
	}
	if signedWidth <= unsignedWidth {
		return maxWidth(signedWidth, unsignedWidth) + 1
	}
	return signedWidth
}

// unifyBus merges two bus shapes by the union of their signal names.
// Signals present in both sides must agree on type; shapes never widen
// element types.
func unifyBus(a, b Bus) (DataType, bool) {
	fields := make([]BusField, 0, len(a.Fields)+len(b.Fields))
	seen := make(map[string]DataType, len(a.Fields))
	for _, f := range a.Fields {
		fields = append(fields, f)
		seen[f.Name] = f.Type
	}
	for _, f := range b.Fields {
		if existing, ok := seen[f.Name]; ok {
			if !Equal(existing, f.Type) {
				return nil, false
			}
			continue
		}
		fields = append(fields, f)
		seen[f.Name] = f.Type
	}
	return Bus{Fields: fields}, true
}

// Equal reports whether two types are permitted to be compared for
// equality: they unify.
func Equal(a, b DataType) bool {
	_, ok := Unify(a, b)
	return ok
}
