package ast

import "github.com/smeil-lang/smeilc/internal/token"

// TypeName is a type annotation as written in source: either an intrinsic
// spelling (int, uint, bool, f8/f16/f32/f64, iN, uN) or a named typedef
// reference resolved later by the type system.
type TypeName struct {
	Token token.Token
	Name  string
}

func (t *TypeName) TokenLiteral() string { return t.Token.Text }
func (t *TypeName) String() string       { return t.Name }
func (t *TypeName) Pos() token.Position  { return t.Token.Pos }
func (t *TypeName) Children() []Node     { return nil }
