package semantic

import (
	"encoding/json"
	"testing"

	"github.com/smeil-lang/smeilc/internal/errors"
	"github.com/smeil-lang/smeilc/internal/loader"
)

func compileFixture(t *testing.T, fixture map[string]interface{}, topNetwork string) (*Context, *errors.Diagnostic) {
	t.Helper()
	data, err := json.Marshal(fixture)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	mod, err := loader.Decode(data)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return Compile(mod, topNetwork, nil)
}

func wordShapeDecl() map[string]interface{} {
	return map[string]interface{}{
		"kind": "bus", "token": pos("Word"), "name": ident("Word"),
		"signals": []map[string]interface{}{signal("value", "i8")},
	}
}

func sumProcessDecl() map[string]interface{} {
	return process("Sum",
		[]map[string]interface{}{
			parameter("busA", "in", "Word"),
			parameter("busB", "in", "Word"),
			parameter("out_bus", "out", "Word"),
		},
		[]map[string]interface{}{
			assignStmt([]string{"out_bus", "value"}, binary("+", nameExpr("busA", "value"), nameExpr("busB", "value"))),
		},
	)
}

// networkWithParams builds a "network" declaration carrying formal
// parameters, which the network() fixture helper does not expose.
func networkWithParams(name string, params, decls []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"kind": "network", "token": pos(name), "name": ident(name),
		"parameters": params, "declarations": decls,
	}
}

// TestBuildDependencyGraphTwoWaveSchedule wires a two-stage pipeline
// inside a nested "Stage" network: s1 feeds its Mid output to s2.
// Mid is local to Stage, not the top-level Adder network, so it is not
// exempt from the single-writer/schedule analysis the way a top-level
// or exposed bus would be — s2 must wait for s1's wave before it can
// become ready.
func TestBuildDependencyGraphTwoWaveSchedule(t *testing.T) {
	stage := networkWithParams("Stage",
		[]map[string]interface{}{
			parameter("busA", "in", "Word"),
			parameter("busB", "in", "Word"),
			parameter("busOut", "out", "Word"),
		},
		[]map[string]interface{}{
			busDeclRef("Mid", "Word", false),
			instanceDecl("s1", "Sum", nameExpr("busA"), nameExpr("busB"), nameExpr("Mid")),
			instanceDecl("s2", "Sum", nameExpr("Mid"), nameExpr("busB"), nameExpr("busOut")),
		},
	)
	adder := network("Adder", []map[string]interface{}{
		busDeclRef("InBusA", "Word", true),
		busDeclRef("InBusB", "Word", true),
		busDeclRef("OutBus", "Word", true),
		instanceDecl("stage", "Stage", nameExpr("InBusA"), nameExpr("InBusB"), nameExpr("OutBus")),
	})
	fixture := module("adder", []map[string]interface{}{wordShapeDecl()}, []map[string]interface{}{sumProcessDecl(), stage, adder})

	ctx, diag := compileFixture(t, fixture, "Adder")
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if len(ctx.Schedule) != 2 {
		t.Fatalf("got %d waves, want 2", len(ctx.Schedule))
	}
	if len(ctx.Schedule[0]) != 1 || ctx.Schedule[0][0].Name != "s1" {
		t.Errorf("wave 0 = %v, want [s1]", ctx.Schedule[0])
	}
	if len(ctx.Schedule[1]) != 1 || ctx.Schedule[1][0].Name != "s2" {
		t.Errorf("wave 1 = %v, want [s2]", ctx.Schedule[1])
	}
}

// TestBuildDependencyGraphOrphanSignalFails nests the reader inside a
// "Sub" network so the signal it reads is declared neither on the
// top-level network nor marked exposed, and is never written.
func TestBuildDependencyGraphOrphanSignalFails(t *testing.T) {
	sub := network("Sub", []map[string]interface{}{
		busDeclRef("Floating", "Word", false),
		busDeclRef("Out2", "Word", false),
		instanceDecl("subS", "Sum", nameExpr("Floating"), nameExpr("Floating"), nameExpr("Out2")),
	})
	adder := network("Adder", []map[string]interface{}{
		instanceDecl("sub", "Sub"),
	})
	fixture := module("adder", []map[string]interface{}{wordShapeDecl()}, []map[string]interface{}{sumProcessDecl(), sub, adder})

	_, diag := compileFixture(t, fixture, "Adder")
	if diag == nil {
		t.Fatal("expected a diagnostic")
	}
	if diag.Kind != errors.OrphanSignal {
		t.Errorf("Kind = %v, want OrphanSignal", diag.Kind)
	}
}

// TestBuildDependencyGraphCircularDependencyFails nests a mutually
// dependent pair of processes inside a "Stage" network: s1 reads
// Loop2 and writes Mid, s2 reads Mid and writes Loop2. Neither Mid nor
// Loop2 is exposed or top-level, so neither is ever ready and the
// schedule can never make progress.
func TestBuildDependencyGraphCircularDependencyFails(t *testing.T) {
	stage := network("Stage", []map[string]interface{}{
		busDeclRef("Mid", "Word", false),
		busDeclRef("Loop2", "Word", false),
		instanceDecl("s1", "Sum", nameExpr("Loop2"), nameExpr("Loop2"), nameExpr("Mid")),
		instanceDecl("s2", "Sum", nameExpr("Mid"), nameExpr("Mid"), nameExpr("Loop2")),
	})
	adder := network("Adder", []map[string]interface{}{
		instanceDecl("stage", "Stage"),
	})
	fixture := module("adder", []map[string]interface{}{wordShapeDecl()}, []map[string]interface{}{sumProcessDecl(), stage, adder})

	_, diag := compileFixture(t, fixture, "Adder")
	if diag == nil {
		t.Fatal("expected a diagnostic")
	}
	if diag.Kind != errors.CircularDependency {
		t.Errorf("Kind = %v, want CircularDependency", diag.Kind)
	}
}
