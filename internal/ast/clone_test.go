package ast

import "testing"

func TestCloneExpressionDeepCopiesBinary(t *testing.T) {
	orig := &BinaryExpr{
		Op:   "+",
		Left: &LiteralExpr{Kind: LiteralInt, Int: 1},
		Right: &NameExpr{Path: []*NameSegment{
			{Name: &Identifier{Value: "x"}},
		}},
	}
	clone := CloneExpression(orig).(*BinaryExpr)

	clone.Op = "-"
	clone.Left.(*LiteralExpr).Int = 99
	clone.Right.(*NameExpr).Path[0].Name.Value = "y"

	if orig.Op != "+" {
		t.Errorf("original Op mutated: %q", orig.Op)
	}
	if orig.Left.(*LiteralExpr).Int != 1 {
		t.Errorf("original Left mutated: %d", orig.Left.(*LiteralExpr).Int)
	}
	if orig.Right.(*NameExpr).Path[0].Name.Value != "x" {
		t.Errorf("original Right mutated: %q", orig.Right.(*NameExpr).Path[0].Name.Value)
	}
}

func TestCloneExpressionNilIsNil(t *testing.T) {
	if got := CloneExpression(nil); got != nil {
		t.Errorf("CloneExpression(nil) = %v, want nil", got)
	}
}

func TestCloneStatementsIndependentSlices(t *testing.T) {
	orig := []Statement{
		&AssignStmt{
			Target: &NameExpr{Path: []*NameSegment{{Name: &Identifier{Value: "a"}}}},
			Value:  &LiteralExpr{Kind: LiteralInt, Int: 1},
		},
	}
	clone := CloneStatements(orig)
	clone[0].(*AssignStmt).Value.(*LiteralExpr).Int = 42

	if orig[0].(*AssignStmt).Value.(*LiteralExpr).Int != 1 {
		t.Error("cloning statements leaked a mutation back to the original")
	}
}

func TestCloneStatementForLoopCopiesVar(t *testing.T) {
	orig := &ForStmt{
		Var:  &Identifier{Value: "i"},
		From: &LiteralExpr{Kind: LiteralInt, Int: 0},
		To:   &LiteralExpr{Kind: LiteralInt, Int: 10},
		Body: []Statement{&BreakStmt{}},
	}
	clone := CloneStatement(orig).(*ForStmt)
	clone.Var.Value = "j"
	if orig.Var.Value != "i" {
		t.Errorf("original Var mutated: %q", orig.Var.Value)
	}
	if &clone.Body[0] == &orig.Body[0] {
		t.Error("Body slices share backing array")
	}
}
