package instance

import (
	"testing"

	"github.com/smeil-lang/smeilc/internal/types"
)

func TestUsageBitmask(t *testing.T) {
	u := UsageRead
	if !u.Has(UsageRead) {
		t.Error("expected Has(UsageRead)")
	}
	if u.Has(UsageWrite) {
		t.Error("did not expect Has(UsageWrite) yet")
	}
	u |= UsageWrite
	if !u.Has(UsageRead) || !u.Has(UsageWrite) {
		t.Errorf("expected both flags set, got %v", u)
	}
}

func TestProcessRecordUsageAccumulates(t *testing.T) {
	p := &Process{}
	sig := &Signal{Name: "x"}

	p.RecordUsage(sig, UsageRead)
	p.RecordUsage(sig, UsageWrite)

	got := p.Usage[sig]
	if !got.Has(UsageRead) || !got.Has(UsageWrite) {
		t.Errorf("Usage[sig] = %v, want Read|Write", got)
	}
}

func TestBusShapeTypeCaching(t *testing.T) {
	b := &Bus{Name: "B"}
	if _, ok := b.ShapeType(); ok {
		t.Fatal("expected unresolved shape before caching")
	}
	shape := types.Bus{Fields: []types.BusField{{Name: "value", Type: types.SignedInteger{Width: 8}}}}
	b.CacheShapeType(shape)

	got, ok := b.ShapeType()
	if !ok {
		t.Fatal("expected resolved shape after caching")
	}
	if !types.Equal(got, shape) {
		t.Errorf("ShapeType() = %v, want %v", got, shape)
	}
}

func TestSignalTypeCaching(t *testing.T) {
	s := &Signal{Name: "value"}
	if _, ok := s.Type(); ok {
		t.Fatal("expected unresolved type before caching")
	}
	s.CacheType(types.SignedInteger{Width: 8})
	got, ok := s.Type()
	if !ok || got.Kind() != types.KindSigned {
		t.Fatalf("Type() = %v, %v", got, ok)
	}
}

func TestEnumTypeReferenceSatisfiesEnumDecl(t *testing.T) {
	e := &EnumTypeReference{Name: "Color"}
	var decl types.EnumDecl = e
	if decl.EnumName() != "Color" {
		t.Errorf("EnumName() = %q, want %q", decl.EnumName(), "Color")
	}
}

func TestProcessTagString(t *testing.T) {
	tests := []struct {
		tag  ProcessTag
		want string
	}{
		{TagNormal, "Normal"},
		{TagIdentity, "Identity"},
		{TagConnect, "Connect"},
		{TagTypeCast, "TypeCast"},
	}
	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
