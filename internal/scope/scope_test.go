package scope

import (
	"testing"

	"github.com/smeil-lang/smeilc/internal/token"
)

func tok(text string) token.Token {
	return token.Token{Pos: token.Position{Line: 1, Column: 1}, Text: text}
}

func TestTryAddSymbolDuplicate(t *testing.T) {
	s := New(nil)
	if err := s.TryAddSymbol("x", 1, tok("x")); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := s.TryAddSymbol("x", 2, tok("x"))
	if err == nil {
		t.Fatal("expected DuplicateSymbolError")
	}
	if _, ok := err.(*DuplicateSymbolError); !ok {
		t.Errorf("wrong error type: %T", err)
	}
}

func TestTryAddSymbolUnderscoreNeverBinds(t *testing.T) {
	s := New(nil)
	if err := s.TryAddSymbol("_", 1, tok("_")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.TryAddSymbol("_", 2, tok("_")); err != nil {
		t.Fatalf("second _ should not collide: %v", err)
	}
	if _, ok := s.LookupLocal("_"); ok {
		t.Error("_ should never be bound")
	}
}

func TestLookupChainFirstMatchWins(t *testing.T) {
	outer := New(nil)
	outer.TryAddSymbol("x", "outer", tok("x"))
	inner := New(outer)
	inner.TryAddSymbol("x", "inner", tok("x"))

	e, ok := inner.Lookup("x")
	if !ok || e.Item != "inner" {
		t.Fatalf("expected inner shadow to win, got %v", e)
	}

	e2, ok := outer.Lookup("x")
	if !ok || e2.Item != "outer" {
		t.Fatalf("expected outer binding directly, got %v", e2)
	}
}

func TestLookupMissing(t *testing.T) {
	s := New(nil)
	if _, ok := s.Lookup("missing"); ok {
		t.Error("expected lookup miss")
	}
}

func TestAllNamesIncludesShadowed(t *testing.T) {
	outer := New(nil)
	outer.TryAddSymbol("a", 1, tok("a"))
	inner := New(outer)
	inner.TryAddSymbol("a", 2, tok("a"))
	inner.TryAddSymbol("b", 3, tok("b"))

	names := inner.AllNames()
	counts := map[string]int{}
	for _, n := range names {
		counts[n]++
	}
	if counts["a"] != 2 {
		t.Errorf("expected shadowed 'a' to appear twice, got %d", counts["a"])
	}
	if counts["b"] != 1 {
		t.Errorf("expected 'b' once, got %d", counts["b"])
	}
}
