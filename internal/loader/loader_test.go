package loader

import (
	"encoding/json"
	"testing"

	"github.com/smeil-lang/smeilc/internal/ast"
)

func TestDecodeMinimalModule(t *testing.T) {
	src := `{
		"token": {"line": 1, "column": 1, "text": "m"},
		"name": "m",
		"declarations": [
			{"kind": "constant", "token": {"line": 1, "column": 1, "text": "k"},
			 "name": {"token": {"line": 1, "column": 1, "text": "k"}, "value": "k"},
			 "init": {"kind": "literal", "litKind": "int", "token": {"line": 1, "column": 1, "text": "1"}, "int": 1}}
		],
		"entities": [
			{"kind": "network", "token": {"line": 1, "column": 1, "text": "Top"},
			 "name": {"token": {"line": 1, "column": 1, "text": "Top"}, "value": "Top"},
			 "declarations": []}
		]
	}`

	mod, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if mod.Name != "m" {
		t.Errorf("Name = %q, want %q", mod.Name, "m")
	}
	if len(mod.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(mod.Declarations))
	}
	c, ok := mod.Declarations[0].(*ast.ConstantDecl)
	if !ok {
		t.Fatalf("declaration is %T, want *ast.ConstantDecl", mod.Declarations[0])
	}
	if c.Name.Value != "k" {
		t.Errorf("constant name = %q, want %q", c.Name.Value, "k")
	}
	lit, ok := c.Init.(*ast.LiteralExpr)
	if !ok {
		t.Fatalf("init is %T, want *ast.LiteralExpr", c.Init)
	}
	if lit.Kind != ast.LiteralInt || lit.Int != 1 {
		t.Errorf("init = %+v, want int literal 1", lit)
	}
	if len(mod.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(mod.Entities))
	}
	if _, ok := mod.Entities[0].(*ast.Network); !ok {
		t.Errorf("entity is %T, want *ast.Network", mod.Entities[0])
	}
}

func TestDecodeRejectsUnknownDeclarationKind(t *testing.T) {
	src := `{"token": {"line":1,"column":1,"text":"m"}, "name": "m",
	         "declarations": [{"kind":"nonsense"}], "entities": []}`
	if _, err := Decode([]byte(src)); err == nil {
		t.Fatal("expected an error for an unknown declaration kind")
	}
}

func TestDecodeRejectsMissingKind(t *testing.T) {
	src := `{"token": {"line":1,"column":1,"text":"m"}, "name": "m",
	         "declarations": [{}], "entities": []}`
	if _, err := Decode([]byte(src)); err == nil {
		t.Fatal("expected an error for a node missing \"kind\"")
	}
}

func TestDecodeNestedExpressionTree(t *testing.T) {
	raw := json.RawMessage(`{
		"kind": "binary", "token": {"line":1,"column":1,"text":"+"}, "op": "+",
		"left": {"kind":"literal","litKind":"int","token":{"line":1,"column":1,"text":"1"},"int":1},
		"right": {"kind":"paren","token":{"line":1,"column":1,"text":"("},
		          "inner": {"kind":"name","path":[{"name":{"token":{"line":1,"column":1,"text":"x"},"value":"x"}}]}}
	}`)
	expr, err := decodeExpression(raw)
	if err != nil {
		t.Fatalf("decodeExpression: %v", err)
	}
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expr is %T, want *ast.BinaryExpr", expr)
	}
	if bin.Op != "+" {
		t.Errorf("Op = %q, want %q", bin.Op, "+")
	}
	if _, ok := bin.Left.(*ast.LiteralExpr); !ok {
		t.Errorf("Left is %T, want *ast.LiteralExpr", bin.Left)
	}
	paren, ok := bin.Right.(*ast.ParenExpr)
	if !ok {
		t.Fatalf("Right is %T, want *ast.ParenExpr", bin.Right)
	}
	name, ok := paren.Inner.(*ast.NameExpr)
	if !ok {
		t.Fatalf("paren.Inner is %T, want *ast.NameExpr", paren.Inner)
	}
	if len(name.Path) != 1 || name.Path[0].Name.Value != "x" {
		t.Errorf("name path = %+v, want single segment \"x\"", name.Path)
	}
}
