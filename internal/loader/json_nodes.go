package loader

import (
	"encoding/json"
	"fmt"

	"github.com/smeil-lang/smeilc/internal/ast"
)

// ---- expressions ----

func decodeExpression(raw json.RawMessage) (ast.Expression, error) {
	kind, err := kindOf(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "literal":
		var j struct {
			Token pos    `json:"token"`
			Kind  string `json:"litKind"`
			Bool  bool   `json:"bool"`
			Int   int64  `json:"int"`
			Float float64 `json:"float"`
			Str   string `json:"string"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: literal: %w", err)
		}
		lk, err := literalKind(j.Kind)
		if err != nil {
			return nil, err
		}
		return &ast.LiteralExpr{Token: j.Token.token(), Kind: lk, Bool: j.Bool, Int: j.Int, Float: j.Float, Str: j.Str}, nil

	case "name":
		return decodeName(raw)

	case "unary":
		var j struct {
			Token   pos             `json:"token"`
			Op      string          `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: unary: %w", err)
		}
		operand, err := decodeExpression(j.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Token: j.Token.token(), Op: j.Op, Operand: operand}, nil

	case "binary":
		var j struct {
			Token pos             `json:"token"`
			Op    string          `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: binary: %w", err)
		}
		left, err := decodeExpression(j.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(j.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Token: j.Token.token(), Op: j.Op, Left: left, Right: right}, nil

	case "paren":
		var j struct {
			Token pos             `json:"token"`
			Inner json.RawMessage `json:"inner"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: paren: %w", err)
		}
		inner, err := decodeExpression(j.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Token: j.Token.token(), Inner: inner}, nil

	case "cast":
		var j struct {
			Token    pos             `json:"token"`
			Type     *jsonTypeName   `json:"type"`
			Operand  json.RawMessage `json:"operand"`
			Explicit bool            `json:"explicit"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: cast: %w", err)
		}
		operand, err := decodeExpression(j.Operand)
		if err != nil {
			return nil, err
		}
		c := &ast.CastExpr{Token: j.Token.token(), Operand: operand, Explicit: j.Explicit}
		if j.Type != nil {
			c.Type = j.Type.build()
		}
		return c, nil

	case "call":
		return decodeCall(raw)

	default:
		return nil, fmt.Errorf("loader: unknown expression kind %q", kind)
	}
}

func decodeName(raw json.RawMessage) (*ast.NameExpr, error) {
	var j struct {
		Path []struct {
			Name  jsonIdent        `json:"name"`
			Index *json.RawMessage `json:"index"`
		} `json:"path"`
	}
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("loader: name: %w", err)
	}
	n := &ast.NameExpr{}
	for _, seg := range j.Path {
		s := &ast.NameSegment{Name: seg.Name.build()}
		if seg.Index != nil {
			idx, err := decodeExpression(*seg.Index)
			if err != nil {
				return nil, err
			}
			s.Index = idx
		}
		n.Path = append(n.Path, s)
	}
	return n, nil
}

func decodeCall(raw json.RawMessage) (*ast.CallExpr, error) {
	var j struct {
		Token  pos             `json:"token"`
		Callee json.RawMessage `json:"callee"`
		Args   []struct {
			Name  *jsonIdent      `json:"name"`
			Value json.RawMessage `json:"value"`
		} `json:"args"`
	}
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("loader: call: %w", err)
	}
	callee, err := decodeName(j.Callee)
	if err != nil {
		return nil, err
	}
	c := &ast.CallExpr{Token: j.Token.token(), Callee: callee}
	for _, a := range j.Args {
		value, err := decodeExpression(a.Value)
		if err != nil {
			return nil, err
		}
		arg := &ast.Arg{Value: value}
		if a.Name != nil {
			arg.Name = a.Name.build()
		}
		c.Args = append(c.Args, arg)
	}
	return c, nil
}

func literalKind(name string) (ast.LiteralKind, error) {
	switch name {
	case "bool":
		return ast.LiteralBool, nil
	case "int":
		return ast.LiteralInt, nil
	case "float":
		return ast.LiteralFloat, nil
	case "string":
		return ast.LiteralString, nil
	case "special":
		return ast.LiteralSpecial, nil
	default:
		return 0, fmt.Errorf("loader: unknown literal kind %q", name)
	}
}

// ---- statements ----

func decodeStatements(raws []json.RawMessage) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(raws))
	for _, raw := range raws {
		s, err := decodeStatement(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeStatement(raw json.RawMessage) (ast.Statement, error) {
	kind, err := kindOf(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "assign":
		var j struct {
			Token  pos             `json:"token"`
			Target json.RawMessage `json:"target"`
			Value  json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: assign: %w", err)
		}
		target, err := decodeName(j.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(j.Value)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Token: j.Token.token(), Target: target, Value: value}, nil

	case "if":
		var j struct {
			Token pos               `json:"token"`
			Cond  json.RawMessage   `json:"cond"`
			Then  []json.RawMessage `json:"then"`
			Elifs []struct {
				Token pos               `json:"token"`
				Cond  json.RawMessage   `json:"cond"`
				Body  []json.RawMessage `json:"body"`
			} `json:"elifs"`
			Else []json.RawMessage `json:"else"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: if: %w", err)
		}
		cond, err := decodeExpression(j.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeStatements(j.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeStatements(j.Else)
		if err != nil {
			return nil, err
		}
		s := &ast.IfStmt{Token: j.Token.token(), Cond: cond, Then: then, Else: els}
		for _, e := range j.Elifs {
			econd, err := decodeExpression(e.Cond)
			if err != nil {
				return nil, err
			}
			ebody, err := decodeStatements(e.Body)
			if err != nil {
				return nil, err
			}
			s.Elifs = append(s.Elifs, &ast.ElifClause{Token: e.Token.token(), Cond: econd, Body: ebody})
		}
		return s, nil

	case "for":
		var j struct {
			Token pos               `json:"token"`
			Var   jsonIdent         `json:"var"`
			From  json.RawMessage   `json:"from"`
			To    json.RawMessage   `json:"to"`
			Body  []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: for: %w", err)
		}
		from, err := decodeExpression(j.From)
		if err != nil {
			return nil, err
		}
		to, err := decodeExpression(j.To)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(j.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForStmt{Token: j.Token.token(), Var: j.Var.build(), From: from, To: to, Body: body}, nil

	case "switch":
		var j struct {
			Token pos             `json:"token"`
			Value json.RawMessage `json:"value"`
			Cases []struct {
				Token  pos               `json:"token"`
				Values []json.RawMessage `json:"values"`
				Body   []json.RawMessage `json:"body"`
			} `json:"cases"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: switch: %w", err)
		}
		value, err := decodeExpression(j.Value)
		if err != nil {
			return nil, err
		}
		s := &ast.SwitchStmt{Token: j.Token.token(), Value: value}
		for _, c := range j.Cases {
			cc := &ast.CaseClause{Token: c.Token.token()}
			for _, v := range c.Values {
				ve, err := decodeExpression(v)
				if err != nil {
					return nil, err
				}
				cc.Values = append(cc.Values, ve)
			}
			body, err := decodeStatements(c.Body)
			if err != nil {
				return nil, err
			}
			cc.Body = body
			s.Cases = append(s.Cases, cc)
		}
		return s, nil

	case "call":
		call, err := decodeCall(raw)
		if err != nil {
			return nil, err
		}
		return &ast.CallStmt{Call: call}, nil

	case "trace":
		var j struct {
			Token  pos               `json:"token"`
			Format string            `json:"format"`
			Args   []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: trace: %w", err)
		}
		t := &ast.TraceStmt{Token: j.Token.token(), Format: j.Format}
		for _, a := range j.Args {
			e, err := decodeExpression(a)
			if err != nil {
				return nil, err
			}
			t.Args = append(t.Args, e)
		}
		return t, nil

	case "assert":
		var j struct {
			Token   pos              `json:"token"`
			Cond    json.RawMessage  `json:"cond"`
			Message *json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: assert: %w", err)
		}
		cond, err := decodeExpression(j.Cond)
		if err != nil {
			return nil, err
		}
		a := &ast.AssertStmt{Token: j.Token.token(), Cond: cond}
		if j.Message != nil {
			msg, err := decodeExpression(*j.Message)
			if err != nil {
				return nil, err
			}
			a.Message = msg
		}
		return a, nil

	case "break":
		var j struct {
			Token pos `json:"token"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: break: %w", err)
		}
		return &ast.BreakStmt{Token: j.Token.token()}, nil

	default:
		return nil, fmt.Errorf("loader: unknown statement kind %q", kind)
	}
}

// ---- parameters, signals, enum fields (untagged, always nested) ----

type jsonParameter struct {
	Token     pos           `json:"token"`
	Name      jsonIdent     `json:"name"`
	Direction string        `json:"direction"`
	Type      *jsonTypeName `json:"type"`
}

func (j jsonParameter) build() (*ast.Parameter, error) {
	dir, err := direction(j.Direction)
	if err != nil {
		return nil, err
	}
	p := &ast.Parameter{Token: j.Token.token(), Name: j.Name.build(), Direction: dir}
	if j.Type != nil {
		p.Type = j.Type.build()
	}
	return p, nil
}

func direction(s string) (ast.Direction, error) {
	switch s {
	case "", "in":
		return ast.DirIn, nil
	case "out":
		return ast.DirOut, nil
	case "const":
		return ast.DirConst, nil
	case "inverse":
		return ast.DirInverse, nil
	default:
		return 0, fmt.Errorf("loader: unknown parameter direction %q", s)
	}
}

func decodeParameters(js []jsonParameter) ([]*ast.Parameter, error) {
	out := make([]*ast.Parameter, 0, len(js))
	for _, j := range js {
		p, err := j.build()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

type jsonSignal struct {
	Token pos              `json:"token"`
	Name  jsonIdent        `json:"name"`
	Type  jsonTypeName     `json:"type"`
	Init  *json.RawMessage `json:"init"`
}

func (j jsonSignal) build() (*ast.SignalDecl, error) {
	s := &ast.SignalDecl{Token: j.Token.token(), Name: j.Name.build(), Type: j.Type.build()}
	if j.Init != nil {
		init, err := decodeExpression(*j.Init)
		if err != nil {
			return nil, err
		}
		s.Init = init
	}
	return s, nil
}

type jsonEnumField struct {
	Token pos              `json:"token"`
	Name  jsonIdent        `json:"name"`
	Value *json.RawMessage `json:"value"`
}

func (j jsonEnumField) build() (*ast.EnumField, error) {
	f := &ast.EnumField{Token: j.Token.token(), Name: j.Name.build()}
	if j.Value != nil {
		v, err := decodeExpression(*j.Value)
		if err != nil {
			return nil, err
		}
		f.Value = v
	}
	return f, nil
}

// ---- declarations and entities ----

func decodeDeclarations(raws []json.RawMessage) ([]ast.Declaration, error) {
	out := make([]ast.Declaration, 0, len(raws))
	for _, raw := range raws {
		d, err := decodeDeclaration(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeEntity(raw json.RawMessage) (ast.Entity, error) {
	d, err := decodeDeclaration(raw)
	if err != nil {
		return nil, err
	}
	e, ok := d.(ast.Entity)
	if !ok {
		return nil, fmt.Errorf("loader: declaration is not an entity")
	}
	return e, nil
}

func decodeDeclaration(raw json.RawMessage) (ast.Declaration, error) {
	kind, err := kindOf(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "constant":
		var j struct {
			Token pos             `json:"token"`
			Name  jsonIdent       `json:"name"`
			Type  *jsonTypeName   `json:"type"`
			Init  json.RawMessage `json:"init"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: constant: %w", err)
		}
		init, err := decodeExpression(j.Init)
		if err != nil {
			return nil, err
		}
		c := &ast.ConstantDecl{Token: j.Token.token(), Name: j.Name.build(), Init: init}
		if j.Type != nil {
			c.Type = j.Type.build()
		}
		return c, nil

	case "variable":
		var j struct {
			Token pos              `json:"token"`
			Name  jsonIdent        `json:"name"`
			Type  *jsonTypeName    `json:"type"`
			Init  *json.RawMessage `json:"init"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: variable: %w", err)
		}
		v := &ast.VariableDecl{Token: j.Token.token(), Name: j.Name.build()}
		if j.Type != nil {
			v.Type = j.Type.build()
		}
		if j.Init != nil {
			init, err := decodeExpression(*j.Init)
			if err != nil {
				return nil, err
			}
			v.Init = init
		}
		return v, nil

	case "bus":
		var j struct {
			Token    pos           `json:"token"`
			Name     jsonIdent     `json:"name"`
			Signals  []jsonSignal  `json:"signals"`
			TypeRef  *jsonTypeName `json:"typeRef"`
			Exposed  bool          `json:"exposed"`
			Unique   bool          `json:"unique"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: bus: %w", err)
		}
		b := &ast.BusDecl{Token: j.Token.token(), Name: j.Name.build(), Exposed: j.Exposed, IsUnique: j.Unique}
		if j.TypeRef != nil {
			b.TypeRef = j.TypeRef.build()
		}
		for _, s := range j.Signals {
			sig, err := s.build()
			if err != nil {
				return nil, err
			}
			b.Signals = append(b.Signals, sig)
		}
		return b, nil

	case "enum":
		var j struct {
			Token  pos             `json:"token"`
			Name   jsonIdent       `json:"name"`
			Fields []jsonEnumField `json:"fields"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: enum: %w", err)
		}
		e := &ast.EnumDecl{Token: j.Token.token(), Name: j.Name.build()}
		for _, f := range j.Fields {
			field, err := f.build()
			if err != nil {
				return nil, err
			}
			e.Fields = append(e.Fields, field)
		}
		return e, nil

	case "function":
		var j struct {
			Token        pos               `json:"token"`
			Name         jsonIdent         `json:"name"`
			Parameters   []jsonParameter   `json:"parameters"`
			ReturnType   *jsonTypeName     `json:"returnType"`
			Declarations []json.RawMessage `json:"declarations"`
			Statements   []json.RawMessage `json:"statements"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: function: %w", err)
		}
		params, err := decodeParameters(j.Parameters)
		if err != nil {
			return nil, err
		}
		decls, err := decodeDeclarations(j.Declarations)
		if err != nil {
			return nil, err
		}
		stmts, err := decodeStatements(j.Statements)
		if err != nil {
			return nil, err
		}
		f := &ast.FunctionDecl{Token: j.Token.token(), Name: j.Name.build(), Parameters: params, Declarations: decls, Statements: stmts}
		if j.ReturnType != nil {
			f.ReturnType = j.ReturnType.build()
		}
		return f, nil

	case "instance":
		var j struct {
			Token      pos       `json:"token"`
			Name       jsonIdent `json:"name"`
			Source     jsonIdent `json:"source"`
			Parameters []struct {
				Name  *jsonIdent      `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"parameters"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: instance: %w", err)
		}
		i := &ast.InstanceDecl{Token: j.Token.token(), Name: j.Name.build(), Source: j.Source.build()}
		for _, p := range j.Parameters {
			value, err := decodeExpression(p.Value)
			if err != nil {
				return nil, err
			}
			pm := &ast.ParamMap{Value: value}
			if p.Name != nil {
				pm.Name = p.Name.build()
			}
			i.Parameters = append(i.Parameters, pm)
		}
		return i, nil

	case "generator":
		var j struct {
			Token pos               `json:"token"`
			Name  jsonIdent         `json:"name"`
			From  json.RawMessage   `json:"from"`
			To    json.RawMessage   `json:"to"`
			Inner []json.RawMessage `json:"inner"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: generator: %w", err)
		}
		from, err := decodeExpression(j.From)
		if err != nil {
			return nil, err
		}
		to, err := decodeExpression(j.To)
		if err != nil {
			return nil, err
		}
		inner, err := decodeDeclarations(j.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.GeneratorDecl{Token: j.Token.token(), Name: j.Name.build(), From: from, To: to, Inner: inner}, nil

	case "type":
		var j struct {
			Token pos          `json:"token"`
			Name  jsonIdent    `json:"name"`
			Alias jsonTypeName `json:"alias"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: type: %w", err)
		}
		return &ast.TypeDecl{Token: j.Token.token(), Name: j.Name.build(), Alias: j.Alias.build()}, nil

	case "connect":
		var j struct {
			Token   pos `json:"token"`
			Entries []struct {
				Token pos             `json:"token"`
				From  json.RawMessage `json:"from"`
				To    json.RawMessage `json:"to"`
			} `json:"entries"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: connect: %w", err)
		}
		c := &ast.ConnectDecl{Token: j.Token.token()}
		for _, e := range j.Entries {
			from, err := decodeName(e.From)
			if err != nil {
				return nil, err
			}
			to, err := decodeName(e.To)
			if err != nil {
				return nil, err
			}
			c.Entries = append(c.Entries, &ast.ConnectEntry{Token: e.Token.token(), From: from, To: to})
		}
		return c, nil

	case "process":
		var j struct {
			Token        pos               `json:"token"`
			Clocked      bool              `json:"clocked"`
			Name         jsonIdent         `json:"name"`
			Parameters   []jsonParameter   `json:"parameters"`
			Declarations []json.RawMessage `json:"declarations"`
			Statements   []json.RawMessage `json:"statements"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: process: %w", err)
		}
		params, err := decodeParameters(j.Parameters)
		if err != nil {
			return nil, err
		}
		decls, err := decodeDeclarations(j.Declarations)
		if err != nil {
			return nil, err
		}
		stmts, err := decodeStatements(j.Statements)
		if err != nil {
			return nil, err
		}
		return &ast.Process{Token: j.Token.token(), Clocked: j.Clocked, Name: j.Name.build(), Parameters: params, Declarations: decls, Statements: stmts}, nil

	case "network":
		var j struct {
			Token        pos               `json:"token"`
			Name         jsonIdent         `json:"name"`
			Parameters   []jsonParameter   `json:"parameters"`
			Declarations []json.RawMessage `json:"declarations"`
		}
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("loader: network: %w", err)
		}
		params, err := decodeParameters(j.Parameters)
		if err != nil {
			return nil, err
		}
		decls, err := decodeDeclarations(j.Declarations)
		if err != nil {
			return nil, err
		}
		return &ast.Network{Token: j.Token.token(), Name: j.Name.build(), Parameters: params, Declarations: decls}, nil

	default:
		return nil, fmt.Errorf("loader: unknown declaration kind %q", kind)
	}
}
