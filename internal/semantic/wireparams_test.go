package semantic

import (
	"testing"

	"github.com/smeil-lang/smeilc/internal/errors"
)

// namedArg builds a named-parameter instance-decl argument, the
// JSON shape instanceDecl's positional args don't cover.
func namedArg(name string, value interface{}) map[string]interface{} {
	return map[string]interface{}{"name": ident(name), "value": value}
}

func instanceDeclArgs(name, source string, params ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"kind": "instance", "token": pos(name), "name": ident(name), "source": ident(source), "parameters": params,
	}
}

func TestWireParamsMissingArgumentFails(t *testing.T) {
	inst := instanceDecl("s1", "Sum", nameExpr("InBusA"), nameExpr("InBusB"))
	fixture := adderFixtureWithInstance(inst)

	_, diag := compileFixture(t, fixture, "Adder")
	if diag == nil {
		t.Fatal("expected a diagnostic")
	}
	if diag.Kind != errors.MissingArgument {
		t.Errorf("Kind = %v, want MissingArgument", diag.Kind)
	}
}

func TestWireParamsUnknownParameterFails(t *testing.T) {
	inst := instanceDeclArgs("s1", "Sum",
		namedArg("busA", nameExpr("InBusA")),
		namedArg("busB", nameExpr("InBusB")),
		namedArg("busNope", nameExpr("OutBus")),
	)
	fixture := adderFixtureWithInstance(inst)

	_, diag := compileFixture(t, fixture, "Adder")
	if diag == nil {
		t.Fatal("expected a diagnostic")
	}
	if diag.Kind != errors.UnknownParameter {
		t.Errorf("Kind = %v, want UnknownParameter", diag.Kind)
	}
}

func TestWireParamsDuplicateArgumentFails(t *testing.T) {
	inst := instanceDeclArgs("s1", "Sum",
		nameExprArg("InBusA"),
		namedArg("busA", nameExpr("InBusB")),
		namedArg("out_bus", nameExpr("OutBus")),
	)
	fixture := adderFixtureWithInstance(inst)

	_, diag := compileFixture(t, fixture, "Adder")
	if diag == nil {
		t.Fatal("expected a diagnostic")
	}
	if diag.Kind != errors.DuplicateArgument {
		t.Errorf("Kind = %v, want DuplicateArgument", diag.Kind)
	}
}

func TestWireParamsPositionalAfterNamedFails(t *testing.T) {
	inst := instanceDeclArgs("s1", "Sum",
		namedArg("busA", nameExpr("InBusA")),
		nameExprArg("InBusB"),
		nameExprArg("OutBus"),
	)
	fixture := adderFixtureWithInstance(inst)

	_, diag := compileFixture(t, fixture, "Adder")
	if diag == nil {
		t.Fatal("expected a diagnostic")
	}
	if diag.Kind != errors.PositionalAfterNamed {
		t.Errorf("Kind = %v, want PositionalAfterNamed", diag.Kind)
	}
}

func nameExprArg(name string) map[string]interface{} {
	return map[string]interface{}{"value": nameExpr(name)}
}

// TestWireParamsNarrowerArgumentFails binds a u8 bus signal to a scalar
// formal declared u16: Unify(u8, u16) widens to u16, but the argument
// itself stays u8, so binding it must fail rather than be silently
// accepted as if it were already u16.
func TestWireParamsNarrowerArgumentFails(t *testing.T) {
	byteShape := map[string]interface{}{
		"kind": "bus", "token": pos("Byte"), "name": ident("Byte"),
		"signals": []map[string]interface{}{signal("value", "u8")},
	}
	widen := process("Widen",
		[]map[string]interface{}{parameter("narrow", "in", "u16")},
		nil,
	)
	adder := network("Adder", []map[string]interface{}{
		busDeclRef("InByte", "Byte", true),
		instanceDecl("w1", "Widen", nameExpr("InByte", "value")),
	})
	fixture := module("adder", []map[string]interface{}{byteShape}, []map[string]interface{}{widen, adder})

	_, diag := compileFixture(t, fixture, "Adder")
	if diag == nil {
		t.Fatal("expected a diagnostic")
	}
	if diag.Kind != errors.ArgumentTypeMismatch {
		t.Errorf("Kind = %v, want ArgumentTypeMismatch", diag.Kind)
	}
}

// adderFixtureWithInstance builds a module whose only Sum instance is
// inst, so malformed wiring can be exercised in isolation from the
// default one adderFixture sets up.
func adderFixtureWithInstance(inst map[string]interface{}) map[string]interface{} {
	return adderFixture(nil, nil, inst)
}
