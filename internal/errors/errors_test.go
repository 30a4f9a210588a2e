package errors

import (
	"testing"

	"github.com/smeil-lang/smeilc/internal/token"
)

func TestDiagnosticErrorFormat(t *testing.T) {
	tok := token.Token{Pos: token.Position{Line: 3, Column: 7}, Text: "foo"}
	d := New(UnknownSymbol, tok, "undefined symbol")
	want := `[3:7] "foo": undefined symbol`
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	tok := token.Token{Pos: token.Position{Line: 1, Column: 1}, Text: "x"}
	d := Newf(TypeMismatch, tok, "want %s, got %s", "i8", "bool")
	want := `[1:1] "x": want i8, got bool`
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
