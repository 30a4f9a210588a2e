package semantic

// Helpers building the JSON wire shape internal/loader decodes, used to
// assemble small module fixtures for the end-to-end pipeline tests below
// without hand-writing long JSON documents.

func pos(text string) map[string]interface{} {
	return map[string]interface{}{"line": 1, "column": 1, "text": text}
}

func ident(text string) map[string]interface{} {
	return map[string]interface{}{"token": pos(text), "value": text}
}

func typeName(name string) map[string]interface{} {
	return map[string]interface{}{"token": pos(name), "name": name}
}

func nameExpr(segs ...string) map[string]interface{} {
	path := make([]map[string]interface{}, len(segs))
	for i, s := range segs {
		path[i] = map[string]interface{}{"name": ident(s)}
	}
	return map[string]interface{}{"kind": "name", "path": path}
}

func binary(op string, left, right interface{}) map[string]interface{} {
	return map[string]interface{}{"kind": "binary", "token": pos(op), "op": op, "left": left, "right": right}
}

func assignStmt(target []string, value interface{}) map[string]interface{} {
	return map[string]interface{}{"kind": "assign", "token": pos("="), "target": nameExpr(target...), "value": value}
}

func parameter(name, direction, typ string) map[string]interface{} {
	return map[string]interface{}{
		"token": pos(name), "name": ident(name), "direction": direction, "type": typeName(typ),
	}
}

func signal(name, typ string) map[string]interface{} {
	return map[string]interface{}{"token": pos(name), "name": ident(name), "type": typeName(typ)}
}

func busDecl(name string, signals []map[string]interface{}, exposed bool) map[string]interface{} {
	return map[string]interface{}{
		"kind": "bus", "token": pos(name), "name": ident(name), "signals": signals, "exposed": exposed,
	}
}

func busDeclRef(name, ref string, exposed bool) map[string]interface{} {
	return map[string]interface{}{
		"kind": "bus", "token": pos(name), "name": ident(name), "typeRef": typeName(ref), "exposed": exposed,
	}
}

func instanceDecl(name, source string, args ...interface{}) map[string]interface{} {
	params := make([]map[string]interface{}, len(args))
	for i, a := range args {
		params[i] = map[string]interface{}{"value": a}
	}
	return map[string]interface{}{
		"kind": "instance", "token": pos(name), "name": ident(name), "source": ident(source), "parameters": params,
	}
}

func process(name string, params []map[string]interface{}, stmts []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"kind": "process", "token": pos(name), "clocked": false, "name": ident(name),
		"parameters": params, "statements": stmts,
	}
}

func network(name string, decls []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"kind": "network", "token": pos(name), "name": ident(name), "declarations": decls,
	}
}

func constantDecl(name string, init interface{}) map[string]interface{} {
	return map[string]interface{}{"kind": "constant", "token": pos(name), "name": ident(name), "init": init}
}

func literal(kind string, value interface{}) map[string]interface{} {
	m := map[string]interface{}{"kind": "literal", "token": pos("lit"), "litKind": kind}
	switch kind {
	case "bool":
		m["bool"] = value
	case "int":
		m["int"] = value
	case "float":
		m["float"] = value
	case "string":
		m["string"] = value
	}
	return m
}

func module(name string, decls []map[string]interface{}, entities []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"token": pos(name), "name": name, "declarations": decls, "entities": entities,
	}
}

// adderFixture builds a module with a "Word" bus-shape typedef, a
// single-signal-per-bus Sum process summing two input busses into an
// output bus, and a top-level Adder network wiring one instance of it.
// sumInstances lets callers add more instances of Sum (e.g. to provoke a
// multiple-writers diagnostic) and extraNetworkDecls lets them add more
// declarations to the Adder network.
func adderFixture(extraModuleDecls, extraNetworkDecls []map[string]interface{}, sumInstances ...map[string]interface{}) map[string]interface{} {
	wordShape := map[string]interface{}{
		"kind": "bus", "token": pos("Word"), "name": ident("Word"),
		"signals": []map[string]interface{}{signal("value", "i8")},
	}

	sum := process("Sum",
		[]map[string]interface{}{
			parameter("busA", "in", "Word"),
			parameter("busB", "in", "Word"),
			parameter("out_bus", "out", "Word"),
		},
		[]map[string]interface{}{
			assignStmt([]string{"out_bus", "value"}, binary("+", nameExpr("busA", "value"), nameExpr("busB", "value"))),
		},
	)

	netDecls := []map[string]interface{}{
		busDeclRef("InBusA", "Word", true),
		busDeclRef("InBusB", "Word", true),
		busDeclRef("OutBus", "Word", true),
	}
	if len(sumInstances) == 0 {
		netDecls = append(netDecls, instanceDecl("s1", "Sum", nameExpr("InBusA"), nameExpr("InBusB"), nameExpr("OutBus")))
	} else {
		netDecls = append(netDecls, sumInstances...)
	}
	netDecls = append(netDecls, extraNetworkDecls...)

	adder := network("Adder", netDecls)

	modDecls := []map[string]interface{}{wordShape}
	modDecls = append(modDecls, extraModuleDecls...)

	return module("adder", modDecls, []map[string]interface{}{sum, adder})
}
