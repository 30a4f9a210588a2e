// Package loader is the core's boundary to an external lexer/parser:
// this package never tokenizes or parses SMEIL surface syntax. Instead
// it defines the JSON wire shape a front end would hand the core — one
// "kind"-tagged object per AST node — and decodes it into an
// *ast.Module the validator pipeline can consume. A real front end
// replaces this package without the rest of the core noticing;
// cmd/smeilc's check subcommand uses it only because no SMEIL grammar
// is wired up to parse against.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/smeil-lang/smeilc/internal/ast"
	"github.com/smeil-lang/smeilc/internal/token"
)

// Load reads and decodes the JSON module description at path.
func Load(path string) (*ast.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return Decode(data)
}

// Decode parses a JSON-encoded module description.
func Decode(data []byte) (*ast.Module, error) {
	var raw jsonModule
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return raw.build()
}

// pos is the JSON shape of a token.Token; omitted Line/Column/Offset
// default to zero, which only blunts diagnostic position reporting, not
// correctness.
type pos struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
	Text   string `json:"text"`
}

func (p pos) token() token.Token {
	return token.Token{Pos: token.Position{Line: p.Line, Column: p.Column, Offset: p.Offset}, Text: p.Text}
}

type jsonIdent struct {
	Token pos    `json:"token"`
	Value string `json:"value"`
}

func (j jsonIdent) build() *ast.Identifier {
	return &ast.Identifier{Token: j.Token.token(), Value: j.Value}
}

type jsonTypeName struct {
	Token pos    `json:"token"`
	Name  string `json:"name"`
}

func (j jsonTypeName) build() *ast.TypeName {
	return &ast.TypeName{Token: j.Token.token(), Name: j.Name}
}

func kindOf(raw json.RawMessage) (string, error) {
	var env struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("loader: %w", err)
	}
	if env.Kind == "" {
		return "", fmt.Errorf("loader: node missing \"kind\"")
	}
	return env.Kind, nil
}

type jsonModule struct {
	Token        pos               `json:"token"`
	Name         string            `json:"name"`
	Imports      []jsonImport      `json:"imports"`
	Declarations []json.RawMessage `json:"declarations"`
	Entities     []json.RawMessage `json:"entities"`
}

type jsonImport struct {
	Token pos    `json:"token"`
	Path  string `json:"path"`
}

func (m jsonModule) build() (*ast.Module, error) {
	mod := &ast.Module{Token: m.Token.token(), Name: m.Name}
	for _, im := range m.Imports {
		mod.Imports = append(mod.Imports, &ast.Import{
			Token: im.Token.token(),
			Path:  &ast.Identifier{Token: im.Token.token(), Value: im.Path},
		})
	}
	for _, raw := range m.Declarations {
		d, err := decodeDeclaration(raw)
		if err != nil {
			return nil, err
		}
		mod.Declarations = append(mod.Declarations, d)
	}
	for _, raw := range m.Entities {
		e, err := decodeEntity(raw)
		if err != nil {
			return nil, err
		}
		mod.Entities = append(mod.Entities, e)
	}
	return mod, nil
}
