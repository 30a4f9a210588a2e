package types

import "testing"

func TestParseIntrinsic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want DataType
		ok   bool
	}{
		{"int", "int", SignedInteger{Width: Unconstrained}, true},
		{"uint", "uint", UnsignedInteger{Width: Unconstrained}, true},
		{"bool", "bool", Bool{}, true},
		{"f32", "f32", Float{Width: 32}, true},
		{"i8", "i8", SignedInteger{Width: 8}, true},
		{"u16", "u16", UnsignedInteger{Width: 16}, true},
		{"bad width", "i0", nil, false},
		{"bad letter", "x8", nil, false},
		{"garbage", "iabc", nil, false},
		{"unknown name", "frobnicate", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseIntrinsic(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWidth(t *testing.T) {
	if Width(SignedInteger{Width: 8}) != 8 {
		t.Error("SignedInteger width mismatch")
	}
	if Width(Bool{}) != 1 {
		t.Error("Bool should report width 1")
	}
	if Width(Bus{}) != 0 {
		t.Error("Bus should report width 0")
	}
}

func TestIsNumericIsInteger(t *testing.T) {
	numeric := []DataType{SignedInteger{Width: 8}, UnsignedInteger{Width: 8}, Float{Width: 32}}
	for _, n := range numeric {
		if !IsNumeric(n) {
			t.Errorf("%v should be numeric", n)
		}
	}
	if IsNumeric(Bool{}) {
		t.Error("Bool should not be numeric")
	}
	if IsInteger(Float{Width: 32}) {
		t.Error("Float should not be an integer")
	}
	if !IsInteger(UnsignedInteger{Width: 8}) {
		t.Error("UnsignedInteger should be an integer")
	}
}

type fakeEnum struct{ name string }

func (f fakeEnum) EnumName() string { return f.name }

func TestBusFieldType(t *testing.T) {
	b := Bus{Fields: []BusField{
		{Name: "a", Type: SignedInteger{Width: 8}},
		{Name: "b", Type: Bool{}},
	}}
	if typ, ok := b.FieldType("a"); !ok || typ != (SignedInteger{Width: 8}) {
		t.Errorf("FieldType(a) = %v, %v", typ, ok)
	}
	if _, ok := b.FieldType("missing"); ok {
		t.Error("FieldType(missing) should report false")
	}
}

func TestEnumerationIdentity(t *testing.T) {
	colorDecl := fakeEnum{name: "Color"}
	sizeDecl := fakeEnum{name: "Size"}
	if !Equal(Enumeration{Decl: colorDecl}, Enumeration{Decl: colorDecl}) {
		t.Error("identical enum decl should unify")
	}
	if Equal(Enumeration{Decl: colorDecl}, Enumeration{Decl: sizeDecl}) {
		t.Error("distinct enum decls should not unify even with the same Kind")
	}
}
