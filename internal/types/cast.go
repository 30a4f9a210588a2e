package types

// CanCast reports whether an explicit cast from source to target is
// permitted: the types unify, or both sides are numeric and neither is
// bool or bus.
func CanCast(source, target DataType) bool {
	if Equal(source, target) {
		return true
	}
	return IsNumeric(source) && IsNumeric(target)
}
