package ast

import (
	"bytes"

	"github.com/cwbudde/go-slate/internal/lexer"
)

// VarDecl declares a local variable with a declared type and an optional
// initializer: `int x = 1;`.
type VarDecl struct {
	Token    lexer.Token // the type token
	TypeName string
	Name     string
	Init     Expression // nil when there is no initializer
}

func (vd *VarDecl) statementNode()       {}
func (vd *VarDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDecl) Pos() lexer.Position  { return vd.Token.Pos }
func (vd *VarDecl) String() string {
	s := vd.TypeName + " " + vd.Name
	if vd.Init != nil {
		s += " = " + vd.Init.String()
	}
	return s + ";"
}

// CompoundStmt is a braced statement block. Entering one opens a new
// lexical scope.
type CompoundStmt struct {
	Token      lexer.Token // the '{' token
	Statements []Statement
}

func (cs *CompoundStmt) statementNode()       {}
func (cs *CompoundStmt) TokenLiteral() string { return cs.Token.Literal }
func (cs *CompoundStmt) Pos() lexer.Position  { return cs.Token.Pos }
func (cs *CompoundStmt) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, stmt := range cs.Statements {
		out.WriteString(stmt.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// ReturnStmt returns from the enclosing function, optionally with a
// value.
type ReturnStmt struct {
	Token lexer.Token // the 'return' keyword
	Value Expression  // nil for a bare return
}

func (rs *ReturnStmt) statementNode()       {}
func (rs *ReturnStmt) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStmt) Pos() lexer.Position  { return rs.Token.Pos }
func (rs *ReturnStmt) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}

// ExpressionStmt wraps an expression used at statement position.
type ExpressionStmt struct {
	Token      lexer.Token // first token of the expression
	Expression Expression
}

func (es *ExpressionStmt) statementNode()       {}
func (es *ExpressionStmt) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStmt) Pos() lexer.Position  { return es.Token.Pos }
func (es *ExpressionStmt) String() string {
	if es.Expression == nil {
		return ";"
	}
	return es.Expression.String() + ";"
}

// ElifBranch is one `elif (cond) { ... }` arm of an if statement.
type ElifBranch struct {
	Token lexer.Token // the 'elif' keyword
	Cond  Expression
	Body  *CompoundStmt
}

func (eb *ElifBranch) TokenLiteral() string { return eb.Token.Literal }
func (eb *ElifBranch) Pos() lexer.Position  { return eb.Token.Pos }
func (eb *ElifBranch) String() string {
	return "elif (" + eb.Cond.String() + ") " + eb.Body.String()
}

// IfStmt is a conditional with optional elif arms and else branch.
type IfStmt struct {
	Token lexer.Token // the 'if' keyword
	Cond  Expression
	Then  *CompoundStmt
	Elifs []*ElifBranch
	Else  *CompoundStmt // nil when there is no else
}

func (is *IfStmt) statementNode()       {}
func (is *IfStmt) TokenLiteral() string { return is.Token.Literal }
func (is *IfStmt) Pos() lexer.Position  { return is.Token.Pos }
func (is *IfStmt) String() string {
	var out bytes.Buffer
	out.WriteString("if (" + is.Cond.String() + ") " + is.Then.String())
	for _, e := range is.Elifs {
		out.WriteString(" " + e.String())
	}
	if is.Else != nil {
		out.WriteString(" else " + is.Else.String())
	}
	return out.String()
}

// ForStmt is a C-style for loop. Init, Cond and Update are each
// optional: a missing condition loops forever, a missing update does
// nothing between iterations.
type ForStmt struct {
	Token  lexer.Token // the 'for' keyword
	Init   Node        // *VarDecl or an expression; nil when absent
	Cond   Expression  // nil when absent
	Update Expression  // nil when absent
	Body   *CompoundStmt
}

func (fs *ForStmt) statementNode()       {}
func (fs *ForStmt) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStmt) Pos() lexer.Position  { return fs.Token.Pos }
func (fs *ForStmt) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if fs.Init != nil {
		out.WriteString(fs.Init.String())
	} else {
		out.WriteString(";")
	}
	out.WriteString(" ")
	if fs.Cond != nil {
		out.WriteString(fs.Cond.String())
	}
	out.WriteString("; ")
	if fs.Update != nil {
		out.WriteString(fs.Update.String())
	}
	out.WriteString(") ")
	out.WriteString(fs.Body.String())
	return out.String()
}

// BreakStmt exits the innermost enclosing loop.
type BreakStmt struct {
	Token lexer.Token // the 'break' keyword
}

func (bs *BreakStmt) statementNode()       {}
func (bs *BreakStmt) TokenLiteral() string { return bs.Token.Literal }
func (bs *BreakStmt) Pos() lexer.Position  { return bs.Token.Pos }
func (bs *BreakStmt) String() string       { return "break;" }

// ContinueStmt jumps to the update point of the innermost enclosing
// loop.
type ContinueStmt struct {
	Token lexer.Token // the 'continue' keyword
}

func (cs *ContinueStmt) statementNode()       {}
func (cs *ContinueStmt) TokenLiteral() string { return cs.Token.Literal }
func (cs *ContinueStmt) Pos() lexer.Position  { return cs.Token.Pos }
func (cs *ContinueStmt) String() string       { return "continue;" }
