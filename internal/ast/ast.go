// Package ast defines the Abstract Syntax Tree node types for Slate.
package ast

import (
	"bytes"

	"github.com/cwbudde/go-slate/internal/lexer"
)

// Node is the base interface for all AST nodes.
// Every node must provide its token literal, a compact string form for
// debugging, and position information for error reporting.
type Node interface {
	// TokenLiteral returns the literal value of the token this node is
	// associated with.
	TokenLiteral() string

	// String returns a string representation of the node for debugging
	// and testing.
	String() string

	// Pos returns the position of the node in the source code.
	Pos() lexer.Position
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that performs an action inside a function
// body.
type Statement interface {
	Node
	statementNode()
}

// Declaration represents a top-level program element.
type Declaration interface {
	Node
	declarationNode()
}

// Program is the root node of the AST. It holds the top-level
// declarations in source order.
type Program struct {
	Declarations []Declaration
}

func (p *Program) TokenLiteral() string {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, decl := range p.Declarations {
		out.WriteString(decl.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() lexer.Position {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// Comment is a source comment. Comments survive parsing so the printer
// can reproduce them; analysis and lowering skip them. A comment is valid
// at declaration, class-member, and statement position.
type Comment struct {
	Token lexer.Token // the COMMENT token
	Text  string
}

func (c *Comment) statementNode()       {}
func (c *Comment) declarationNode()     {}
func (c *Comment) TokenLiteral() string { return c.Token.Literal }
func (c *Comment) String() string       { return c.Text }
func (c *Comment) Pos() lexer.Position  { return c.Token.Pos }
