package ast

import "github.com/smeil-lang/smeilc/internal/token"

// Process is a behavioral entity: parameters, local declarations, and a
// statement body that computes next-cycle signal values.
type Process struct {
	Token        token.Token
	Clocked      bool
	Name         *Identifier
	Parameters   []*Parameter
	Declarations []Declaration
	Statements   []Statement
}

func (p *Process) TokenLiteral() string    { return p.Token.Text }
func (p *Process) String() string          { return "process " + p.Name.Value }
func (p *Process) Pos() token.Position     { return p.Token.Pos }
func (p *Process) declarationNode()        {}
func (p *Process) entityNode()             {}
func (p *Process) EntityName() *Identifier { return p.Name }

func (p *Process) Children() []Node {
	children := []Node{p.Name}
	for _, prm := range p.Parameters {
		children = append(children, prm)
	}
	for _, d := range p.Declarations {
		children = append(children, d)
	}
	for _, s := range p.Statements {
		children = append(children, s)
	}
	return children
}

// Network is a composition of process instances and bus connections.
type Network struct {
	Token        token.Token
	Name         *Identifier
	Parameters   []*Parameter
	Declarations []Declaration
}

func (n *Network) TokenLiteral() string    { return n.Token.Text }
func (n *Network) String() string          { return "network " + n.Name.Value }
func (n *Network) Pos() token.Position     { return n.Token.Pos }
func (n *Network) declarationNode()        {}
func (n *Network) entityNode()             {}
func (n *Network) EntityName() *Identifier { return n.Name }

func (n *Network) Children() []Node {
	children := []Node{n.Name}
	for _, prm := range n.Parameters {
		children = append(children, prm)
	}
	for _, d := range n.Declarations {
		children = append(children, d)
	}
	return children
}
