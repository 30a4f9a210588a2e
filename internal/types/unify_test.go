package types

import "testing"

func TestUnifySignedUnsigned(t *testing.T) {
	tests := []struct {
		name string
		a, b DataType
		want DataType
		ok   bool
	}{
		{"signed/signed widens", SignedInteger{Width: 8}, SignedInteger{Width: 16}, SignedInteger{Width: 16}, true},
		{"unsigned/unsigned widens", UnsignedInteger{Width: 8}, UnsignedInteger{Width: 16}, UnsignedInteger{Width: 16}, true},
		{"signed <= unsigned widens by one", SignedInteger{Width: 8}, UnsignedInteger{Width: 8}, SignedInteger{Width: 9}, true},
		{"signed > unsigned stays signed width", SignedInteger{Width: 16}, UnsignedInteger{Width: 8}, SignedInteger{Width: 16}, true},
		{"float/float widens", Float{Width: 32}, Float{Width: 64}, Float{Width: 64}, true},
		{"bool/bool", Bool{}, Bool{}, Bool{}, true},
		{"bool/int never unify", Bool{}, SignedInteger{Width: 8}, nil, false},
		{"float/int never unify", Float{Width: 32}, SignedInteger{Width: 8}, nil, false},
		{"unconstrained signed adopts fixed width", SignedInteger{Width: Unconstrained}, SignedInteger{Width: 8}, SignedInteger{Width: 8}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Unify(tt.a, tt.b)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Unify(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Unify is documented as symmetric.
			got2, ok2 := Unify(tt.b, tt.a)
			if ok2 != ok || got2 != got {
				t.Errorf("Unify not symmetric: Unify(b,a) = %v, %v; Unify(a,b) = %v, %v", got2, ok2, got, ok)
			}
		})
	}
}

func TestUnifyBus(t *testing.T) {
	a := Bus{Fields: []BusField{{Name: "x", Type: SignedInteger{Width: 8}}}}
	b := Bus{Fields: []BusField{{Name: "y", Type: Bool{}}}}
	got, ok := Unify(a, b)
	if !ok {
		t.Fatal("disjoint bus shapes should unify into their union")
	}
	bus := got.(Bus)
	if len(bus.Fields) != 2 {
		t.Fatalf("want 2 fields in union, got %d", len(bus.Fields))
	}

	c := Bus{Fields: []BusField{{Name: "x", Type: Bool{}}}}
	if _, ok := Unify(a, c); ok {
		t.Error("conflicting shared-field types should fail to unify")
	}

	agreeing := Bus{Fields: []BusField{{Name: "x", Type: SignedInteger{Width: 16}}}}
	if _, ok := Unify(a, agreeing); !ok {
		t.Error("shared fields that themselves unify should not fail")
	}
}

func TestCanCast(t *testing.T) {
	tests := []struct {
		name   string
		source DataType
		target DataType
		want   bool
	}{
		{"numeric to numeric", SignedInteger{Width: 8}, Float{Width: 32}, true},
		{"same unify", SignedInteger{Width: 8}, SignedInteger{Width: 16}, true},
		{"bool to int forbidden", Bool{}, SignedInteger{Width: 8}, false},
		{"int to bool forbidden", SignedInteger{Width: 8}, Bool{}, false},
		{"bus to bus only via unify", Bus{Fields: []BusField{{Name: "a", Type: Bool{}}}}, Bus{Fields: []BusField{{Name: "a", Type: SignedInteger{Width: 8}}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCast(tt.source, tt.target); got != tt.want {
				t.Errorf("CanCast(%v, %v) = %v, want %v", tt.source, tt.target, got, tt.want)
			}
		})
	}
}
